package geometry_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/core/geometry"
)

func ft(v float64) *float64 { return &v }

func TestClearance_SpanNormalization(t *testing.T) {
	m := mustMapper(t, domain.Coord{}, 10)

	build := func(s domain.Span) []domain.Feature {
		t.Helper()
		cov, err := geometry.ResolveCoverage(domain.ProfileConfig{MOCASegments: []domain.Span{s}}, 12)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return geometry.Clearance(m, cov)
	}

	rev := build(domain.Span{FromNM: 6.1, ToNM: 0, HeightFT: 950})
	fwd := build(domain.Span{FromNM: 0, ToNM: 6.1, HeightFT: 950})
	if !reflect.DeepEqual(rev, fwd) {
		t.Fatalf("reversed span differs:\n%+v\n%+v", rev, fwd)
	}
}

func TestClearance_RingOrder(t *testing.T) {
	m := mustMapper(t, domain.Coord{}, 1)
	cov, err := geometry.ResolveCoverage(domain.ProfileConfig{
		OCA: &domain.Span{FromNM: 1, ToNM: 2, HeightFT: 1000},
	}, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fs := geometry.Clearance(m, cov)
	if len(fs) != 1 {
		t.Fatalf("expected 1 polygon, got %d", len(fs))
	}
	f := fs[0]
	h := 1000 * 0.3048
	want := []domain.Coord{{X: 1852, Y: 0}, {X: 3704, Y: 0}, {X: 3704, Y: h}, {X: 1852, Y: h}, {X: 1852, Y: 0}}
	if len(f.Coords) != len(want) {
		t.Fatalf("expected %d vertices, got %d", len(want), len(f.Coords))
	}
	for i := range want {
		if math.Abs(f.Coords[i].X-want[i].X) > eps || math.Abs(f.Coords[i].Y-want[i].Y) > eps {
			t.Errorf("vertex %d: expected %+v, got %+v", i, want[i], f.Coords[i])
		}
	}
	if f.Symbol != "oca" || f.Remarks != "OCA 1-2NM" || f.TxtLabel != "1000" {
		t.Errorf("unexpected attributes: %+v", f)
	}
	if f.Layer != domain.LayerMOCA {
		t.Errorf("expected layer %s, got %s", domain.LayerMOCA, f.Layer)
	}
}

func TestResolveCoverage_Precedence(t *testing.T) {
	cfg := domain.ProfileConfig{
		Points: []domain.ProfilePoint{
			{DistanceNM: 0, AltitudeFT: 50, WaypointName: "THR", MOCAFT: ft(500)},
			{DistanceNM: 5, AltitudeFT: 1600, WaypointName: "FAF", MOCAFT: ft(600)},
			{DistanceNM: 10, AltitudeFT: 3000, WaypointName: "IF"},
		},
		OCA:          &domain.Span{FromNM: 0, ToNM: 10, HeightFT: 400},
		OCASegments:  []domain.Span{{FromNM: 0, ToNM: 3, HeightFT: 1000}},
		MOCASegments: []domain.Span{{FromNM: 6, ToNM: 3, HeightFT: 2000}},
	}

	cov, err := geometry.ResolveCoverage(cfg, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cov) != 3 {
		t.Fatalf("expected 3 spans, got %d: %+v", len(cov), cov)
	}

	if cov[0].Source != geometry.SourceOCA || cov[0].Span.ToNM != 3 || cov[0].Span.HeightFT != 1000 {
		t.Errorf("oca_segments should override the single oca span, got %+v", cov[0])
	}
	if cov[1].Source != geometry.SourceMOCA || cov[1].Span.FromNM != 3 || cov[1].Span.ToNM != 6 {
		t.Errorf("expected normalized moca 3-6, got %+v", cov[1])
	}
	// THR-FAF (0-5) is fully covered; FAF-IF (5-10) survives only beyond 6 NM.
	legacy := cov[2]
	if legacy.Source != geometry.SourceLegacy || legacy.Span.FromNM != 6 || legacy.Span.ToNM != 10 {
		t.Errorf("expected legacy 6-10, got %+v", legacy)
	}
	if legacy.Remarks != "FAF - IF" || legacy.Span.HeightFT != 600 {
		t.Errorf("unexpected legacy attributes: %+v", legacy)
	}
}

func TestResolveCoverage_SingleOCAWithoutSegments(t *testing.T) {
	cov, err := geometry.ResolveCoverage(domain.ProfileConfig{
		OCA: &domain.Span{FromNM: 0, ToNM: 4, HeightFT: 800},
	}, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cov) != 1 || cov[0].Remarks != "OCA 0-4NM" {
		t.Fatalf("unexpected coverage: %+v", cov)
	}
}

func TestResolveCoverage_LegacySplitAroundExplicit(t *testing.T) {
	cov, err := geometry.ResolveCoverage(domain.ProfileConfig{
		Points: []domain.ProfilePoint{
			{DistanceNM: 0, Label: "A", MOCAFT: ft(900)},
			{DistanceNM: 8, Label: "B"},
		},
		MOCASegments: []domain.Span{{FromNM: 2, ToNM: 4, HeightFT: 1200}},
	}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var pieces [][2]float64
	for _, c := range cov {
		if c.Source == geometry.SourceLegacy {
			pieces = append(pieces, [2]float64{c.Span.FromNM, c.Span.ToNM})
		}
	}
	want := [][2]float64{{0, 2}, {4, 8}}
	if !reflect.DeepEqual(pieces, want) {
		t.Errorf("expected legacy pieces %v, got %v", want, pieces)
	}
}

func TestResolveCoverage_InvalidSpans(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.ProfileConfig
		want error
	}{
		{"collapsed oca", domain.ProfileConfig{OCA: &domain.Span{FromNM: 3, ToNM: 3, HeightFT: 500}}, domain.ErrInvalidSpan},
		{"moca beyond axis", domain.ProfileConfig{MOCASegments: []domain.Span{{FromNM: 13, ToNM: 15, HeightFT: 500}}}, domain.ErrInvalidSpan},
		{"moca ends at zero", domain.ProfileConfig{MOCASegments: []domain.Span{{FromNM: -2, ToNM: 0, HeightFT: 500}}}, domain.ErrInvalidSpan},
		{"negative height", domain.ProfileConfig{OCASegments: []domain.Span{{FromNM: 1, ToNM: 2, HeightFT: -1}}}, domain.ErrMalformedInput},
		{"nan endpoint", domain.ProfileConfig{MOCASegments: []domain.Span{{FromNM: math.NaN(), ToNM: 2, HeightFT: 100}}}, domain.ErrMalformedInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := geometry.ResolveCoverage(tt.cfg, 12)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestResolveCoverage_PartialOverlapAllowed(t *testing.T) {
	_, err := geometry.ResolveCoverage(domain.ProfileConfig{
		MOCASegments: []domain.Span{{FromNM: 10, ToNM: 14, HeightFT: 500}},
	}, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
