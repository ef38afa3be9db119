package geometry_test

import (
	"math"
	"testing"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/core/geometry"
)

func TestSlopeLabels(t *testing.T) {
	m := mustMapper(t, domain.Coord{}, 10)
	pts := []domain.ProfilePoint{
		{DistanceNM: 1, AltitudeFT: 0 + 1852/0.3048*0.05, Label: "B"},
		{DistanceNM: 0, AltitudeFT: 0, Label: "A"},
	}
	labels := geometry.SlopeLabels(m, pts)
	if len(labels) != 1 {
		t.Fatalf("expected 1 label, got %d", len(labels))
	}
	l := labels[0]
	if l.TxtLabel != "2.9° (5.0%)" {
		t.Errorf("unexpected text %q", l.TxtLabel)
	}
	if math.Abs(l.Rotation-math.Atan(0.05)*180/math.Pi) > 1e-6 {
		t.Errorf("unexpected rotation %g", l.Rotation)
	}
	mid := m.Map(0.5, pts[0].AltitudeFT/2)
	if math.Abs(l.Coords[0].Y-(mid.Y+8)) > 1e-6 {
		t.Errorf("label should sit 80/VE above the midpoint, got %g want %g", l.Coords[0].Y, mid.Y+8)
	}
	if l.Remarks != "A - B" {
		t.Errorf("unexpected remarks %q", l.Remarks)
	}
}

func TestSlopeLabels_SameDistance(t *testing.T) {
	m := mustMapper(t, domain.Coord{}, 10)
	labels := geometry.SlopeLabels(m, []domain.ProfilePoint{
		{DistanceNM: 2, AltitudeFT: 500},
		{DistanceNM: 2, AltitudeFT: 900},
	})
	if len(labels) != 1 || labels[0].TxtLabel != "0.0° (0.0%)" {
		t.Fatalf("unexpected labels %+v", labels)
	}
}

func TestPointAnnotations(t *testing.T) {
	m := mustMapper(t, domain.Coord{}, 10)
	fs := geometry.PointAnnotations(m, []domain.ProfilePoint{
		{DistanceNM: 4, AltitudeFT: 1300, WaypointName: "FAF", Label: "D4.0", Notes: "glide path intercept"},
		{DistanceNM: 0, AltitudeFT: 50, Label: "THR"},
	})
	if len(fs) != 4 {
		t.Fatalf("expected 4 features, got %d", len(fs))
	}
	if fs[0].ID != "fix_1" || fs[0].TxtLabel != "THR" {
		t.Errorf("unexpected first fix %+v", fs[0])
	}
	if fs[2].TxtLabel != "FAF" || fs[2].Remarks != "glide path intercept" {
		t.Errorf("unexpected second fix %+v", fs[2])
	}
	if fs[3].Symbol != "point_name" || fs[3].Size != 10 || fs[3].Layer != domain.LayerCartoLabel {
		t.Errorf("unexpected label %+v", fs[3])
	}
}
