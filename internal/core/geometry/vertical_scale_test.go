package geometry_test

import (
	"errors"
	"math"
	"testing"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/core/geometry"
)

func TestVerticalScale_Defaults(t *testing.T) {
	// guide pointing north: metres to the east, feet to the west
	spec := domain.DefaultVerticalScaleSpec(domain.Coord{X: 0, Y: 0}, domain.Coord{X: 0, Y: 100})
	set, err := geometry.VerticalScale(spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mTicks := set.WithSymbol("m_tick")
	ftTicks := set.WithSymbol("ft_tick")
	if len(mTicks) != 5 || len(ftTicks) != 7 {
		t.Fatalf("expected 5 metre and 7 feet ticks, got %d and %d", len(mTicks), len(ftTicks))
	}

	// offset -50 at bearing -90 puts the base 50 units east of the guide start
	top := mTicks[4].Coords[0]
	if math.Abs(top.X-50) > eps || math.Abs(top.Y-1000) > eps {
		t.Errorf("expected 100 m tick at (50, 1000), got %+v", top)
	}
	if end := mTicks[4].Coords[1]; math.Abs(end.X-65) > eps {
		t.Errorf("metre tick should point east by 15, got %+v", end)
	}
	if end := ftTicks[6].Coords[1]; math.Abs(end.X-35) > eps {
		t.Errorf("feet tick should point west by 15, got %+v", end)
	}
	if y := ftTicks[6].Coords[0].Y; math.Abs(y-300*0.3048*10) > eps {
		t.Errorf("expected 300 ft tick at y=914.4, got %g", y)
	}

	if sl := set.WithSymbol("scale_line"); len(sl) != 1 || len(sl[0].Coords) != 5 {
		t.Errorf("expected scale line through 5 metre ticks, got %+v", sl)
	}
	if tc := set.WithSymbol("top_connect"); len(tc) != 1 {
		t.Errorf("expected top connector, got %d", len(tc))
	}

	texts := map[string]bool{}
	for _, f := range set.Points {
		texts[f.TxtLabel] = true
		if f.Layer != domain.LayerScaleLabels {
			t.Errorf("%s: unexpected layer %s", f.ID, f.Layer)
		}
	}
	for _, want := range []string{"METERS", "FEET", "VERTICAL", "SCALE", "1:10 000", "75", "250"} {
		if !texts[want] {
			t.Errorf("missing label %q", want)
		}
	}
}

func TestVerticalScale_Invalid(t *testing.T) {
	p := domain.Coord{X: 5, Y: 5}
	tests := []struct {
		name   string
		mutate func(*domain.VerticalScaleSpec)
	}{
		{"zero length guide", func(s *domain.VerticalScaleSpec) { s.GuideEnd = p }},
		{"zero denominator", func(s *domain.VerticalScaleSpec) { s.Denominator = 0 }},
		{"zero step", func(s *domain.VerticalScaleSpec) { s.FeetStep = 0 }},
		{"negative max", func(s *domain.VerticalScaleSpec) { s.MetersMax = -25 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := domain.DefaultVerticalScaleSpec(p, domain.Coord{X: 5, Y: 50})
			tt.mutate(&spec)
			if _, err := geometry.VerticalScale(spec); !errors.Is(err, domain.ErrMalformedInput) {
				t.Errorf("expected malformed input, got %v", err)
			}
		})
	}
}

func TestScaleRatioText(t *testing.T) {
	for in, want := range map[float64]string{10000: "1:10 000", 500: "1:500", 1250000: "1:1 250 000"} {
		if got := geometry.ScaleRatioText(in); got != want {
			t.Errorf("%g: expected %q, got %q", in, want, got)
		}
	}
}
