package geometry

import (
	"math"
	"strconv"
	"strings"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/pkg/units"
)

// VerticalScale builds the metres/feet scale bar oriented along a guide line.
// Metre ticks sit on the right of the guide direction, feet ticks on the left.
func VerticalScale(spec domain.VerticalScaleSpec) (*domain.GeometrySet, error) {
	if err := validateScaleSpec(spec); err != nil {
		return nil, err
	}

	az := azimuth(spec.GuideStart, spec.GuideEnd)
	factor := spec.Denominator / 1000
	base := project(spec.GuideStart, spec.Offset, az-90)
	tick := spec.TickLength
	set := &domain.GeometrySet{}

	line := func(id, symbol string, cs ...domain.Coord) {
		set.Add(domain.Feature{Kind: domain.KindLine, Coords: cs, ID: id, Symbol: symbol, Layer: domain.LayerScaleLines})
	}
	label := func(id, text string, at domain.Coord) {
		set.Add(domain.Feature{Kind: domain.KindPoint, Coords: []domain.Coord{at}, ID: id, Symbol: "scale_label", TxtLabel: text, Layer: domain.LayerScaleLabels})
	}

	var mTicks []domain.Coord
	for v := 0; v <= spec.MetersMax; v += spec.MetersStep {
		p0 := project(base, float64(v)*factor, az)
		p1 := project(p0, tick, az+90)
		mTicks = append(mTicks, p0)
		txt := strconv.Itoa(v)
		line("m_tick_"+txt, "m_tick", p0, p1)
		label("m_"+txt, txt, project(p1, tick*0.6, az+90))
	}

	var ftTicks []domain.Coord
	for v := 0; v <= spec.FeetMax; v += spec.FeetStep {
		p0 := project(base, units.FeetToMetres(float64(v))*factor, az)
		p1 := project(p0, tick, az-90)
		ftTicks = append(ftTicks, p0)
		txt := strconv.Itoa(v)
		line("ft_tick_"+txt, "ft_tick", p0, p1)
		label("ft_"+txt, txt, project(p1, tick*0.6, az-90))
	}

	line("scale_line", "scale_line", mTicks...)
	topM, topFt := mTicks[len(mTicks)-1], ftTicks[len(ftTicks)-1]
	line("top_connect", "top_connect", topM, topFt)

	label("lbl_meters", "METERS", project(topM, tick*1.2, az+90))
	label("lbl_feet", "FEET", project(topFt, tick*1.2, az-90))
	bottom := project(base, -tick*2.5, az)
	label("lbl_vertical", "VERTICAL", bottom)
	label("lbl_scale", "SCALE", project(bottom, tick*1.5, az))
	label("lbl_ratio", ScaleRatioText(spec.Denominator), project(bottom, tick*3, az))
	return set, nil
}

// ScaleRatioText formats a denominator as "1:10 000".
func ScaleRatioText(denominator float64) string {
	digits := strconv.FormatInt(int64(denominator), 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return "1:" + b.String()
}

func validateScaleSpec(s domain.VerticalScaleSpec) error {
	for _, c := range []domain.Coord{s.GuideStart, s.GuideEnd} {
		if !units.Finite(c.X) || !units.Finite(c.Y) {
			return domain.Malformed("guide", "coordinates must be finite")
		}
	}
	if s.GuideStart == s.GuideEnd {
		return domain.Malformed("guide", "guide line has zero length")
	}
	if !units.Finite(s.Denominator) || s.Denominator <= 0 {
		return domain.Malformed("denominator", "must be > 0, got %g", s.Denominator)
	}
	if !units.Finite(s.TickLength) || s.TickLength <= 0 {
		return domain.Malformed("tick_length", "must be > 0, got %g", s.TickLength)
	}
	if !units.Finite(s.Offset) {
		return domain.Malformed("offset", "must be a number")
	}
	if s.MetersStep <= 0 || s.FeetStep <= 0 {
		return domain.Malformed("step", "meters_step and feet_step must be > 0, got %d and %d", s.MetersStep, s.FeetStep)
	}
	if s.MetersMax < 0 || s.FeetMax < 0 {
		return domain.Malformed("max", "meters_max and feet_max must be >= 0, got %d and %d", s.MetersMax, s.FeetMax)
	}
	return nil
}

// azimuth returns the bearing from a to b in degrees clockwise from +y.
func azimuth(a, b domain.Coord) float64 {
	return math.Atan2(b.X-a.X, b.Y-a.Y) * 180 / math.Pi
}

// project moves c by dist along a bearing in degrees clockwise from +y.
func project(c domain.Coord, dist, bearingDeg float64) domain.Coord {
	r := bearingDeg * math.Pi / 180
	return domain.Coord{X: c.X + dist*math.Sin(r), Y: c.Y + dist*math.Cos(r)}
}
