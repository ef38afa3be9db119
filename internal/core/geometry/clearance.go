package geometry

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/pkg/units"
)

// Source identifies where a clearance span came from. Lower values win.
type Source int

const (
	SourceOCA Source = iota
	SourceMOCA
	SourceLegacy
)

func (s Source) String() string {
	switch s {
	case SourceOCA:
		return "oca"
	case SourceMOCA:
		return "moca"
	default:
		return "moca_pt"
	}
}

// Coverage is one resolved clearance span ready to be drawn.
type Coverage struct {
	Source  Source
	Span    domain.Span // normalized
	Remarks string
}

// ResolveCoverage validates every configured span and returns the spans to draw,
// highest priority first: OCA, explicit MOCA, then the per-point legacy MOCA.
//
// A non-empty OCA segment list replaces the single OCA span. Legacy spans are cut
// down to the parts of the axis that no OCA or MOCA span covers.
func ResolveCoverage(cfg domain.ProfileConfig, axisMaxNM float64) ([]Coverage, error) {
	var out []Coverage

	switch {
	case len(cfg.OCASegments) > 0:
		for i, s := range cfg.OCASegments {
			n, err := checkSpan("oca_segments", i, s, axisMaxNM)
			if err != nil {
				return nil, err
			}
			out = append(out, Coverage{Source: SourceOCA, Span: n, Remarks: fmt.Sprintf("OCA %s-%sNM", fmtNM(n.FromNM), fmtNM(n.ToNM))})
		}
	case cfg.OCA != nil:
		n, err := checkSpan("oca", 0, *cfg.OCA, axisMaxNM)
		if err != nil {
			return nil, err
		}
		out = append(out, Coverage{Source: SourceOCA, Span: n, Remarks: fmt.Sprintf("OCA %s-%sNM", fmtNM(n.FromNM), fmtNM(n.ToNM))})
	}

	for i, s := range cfg.MOCASegments {
		n, err := checkSpan("moca_segments", i, s, axisMaxNM)
		if err != nil {
			return nil, err
		}
		out = append(out, Coverage{Source: SourceMOCA, Span: n, Remarks: fmt.Sprintf("%s-%sNM", fmtNM(n.FromNM), fmtNM(n.ToNM))})
	}

	covered := mergeIntervals(out)
	pts := SortedPoints(cfg.Points)
	for i := 0; i+1 < len(pts); i++ {
		p1, p2 := pts[i], pts[i+1]
		if p1.MOCAFT == nil {
			continue
		}
		remarks := p1.Name() + " - " + p2.Name()
		for _, piece := range subtract(p1.DistanceNM, p2.DistanceNM, covered) {
			out = append(out, Coverage{
				Source:  SourceLegacy,
				Span:    domain.Span{FromNM: piece[0], ToNM: piece[1], HeightFT: *p1.MOCAFT},
				Remarks: remarks,
			})
		}
	}
	return out, nil
}

// Clearance draws one closed rectangle per coverage span, baseline to height,
// ring order bottom-left, bottom-right, top-right, top-left, bottom-left.
func Clearance(m Mapper, cov []Coverage) []domain.Feature {
	out := make([]domain.Feature, 0, len(cov))
	seq := map[Source]int{}
	for _, c := range cov {
		seq[c.Source]++
		s := c.Span
		bl := m.Map(s.FromNM, 0)
		br := m.Map(s.ToNM, 0)
		tr := m.Map(s.ToNM, s.HeightFT)
		tl := m.Map(s.FromNM, s.HeightFT)

		symbol := "moca"
		if c.Source == SourceOCA {
			symbol = "oca"
		}
		out = append(out, domain.Feature{
			Kind:     domain.KindPolygon,
			Coords:   []domain.Coord{bl, br, tr, tl, bl},
			ID:       fmt.Sprintf("%s_%d", c.Source, seq[c.Source]),
			Symbol:   symbol,
			TxtLabel: strconv.FormatFloat(s.HeightFT, 'f', -1, 64),
			Remarks:  c.Remarks,
			Layer:    domain.LayerMOCA,
		})
	}
	return out
}

func checkSpan(source string, idx int, s domain.Span, axisMaxNM float64) (domain.Span, error) {
	field := fmt.Sprintf("%s[%d]", source, idx)
	if !units.Finite(s.FromNM) || !units.Finite(s.ToNM) {
		return s, domain.Malformed(field, "span endpoints must be numbers")
	}
	if !units.Finite(s.HeightFT) || s.HeightFT < 0 {
		return s, domain.Malformed(field+".height_ft", "must be a number >= 0, got %g", s.HeightFT)
	}
	n := s.Normalized()
	spanErr := &domain.InvalidSpanError{Source: source, Index: idx, FromNM: n.FromNM, ToNM: n.ToNM, AxisMaxNM: axisMaxNM}
	if n.FromNM == n.ToNM {
		spanErr.Reason = "span collapses to a single distance"
		return n, spanErr
	}
	if math.Min(n.ToNM, axisMaxNM)-math.Max(n.FromNM, 0) <= 0 {
		spanErr.Reason = fmt.Sprintf("span lies outside the axis 0-%s NM", fmtNM(axisMaxNM))
		return n, spanErr
	}
	return n, nil
}

// mergeIntervals returns the union of the coverage spans as sorted, disjoint intervals.
func mergeIntervals(cov []Coverage) [][2]float64 {
	iv := make([][2]float64, 0, len(cov))
	for _, c := range cov {
		iv = append(iv, [2]float64{c.Span.FromNM, c.Span.ToNM})
	}
	slices.SortFunc(iv, func(a, b [2]float64) int {
		switch {
		case a[0] < b[0]:
			return -1
		case a[0] > b[0]:
			return 1
		}
		return 0
	})

	var merged [][2]float64
	for _, v := range iv {
		if n := len(merged); n > 0 && v[0] <= merged[n-1][1] {
			merged[n-1][1] = math.Max(merged[n-1][1], v[1])
			continue
		}
		merged = append(merged, v)
	}
	return merged
}

// subtract returns the parts of [from, to] not inside any covered interval.
// Zero-width remainders are dropped.
func subtract(from, to float64, covered [][2]float64) [][2]float64 {
	if from > to {
		from, to = to, from
	}
	var out [][2]float64
	cur := from
	for _, c := range covered {
		if c[1] <= cur {
			continue
		}
		if c[0] >= to {
			break
		}
		if c[0] > cur {
			out = append(out, [2]float64{cur, c[0]})
		}
		cur = math.Max(cur, c[1])
	}
	if cur < to {
		out = append(out, [2]float64{cur, to})
	}
	return out
}

func fmtNM(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e6)/1e6, 'f', -1, 64)
}
