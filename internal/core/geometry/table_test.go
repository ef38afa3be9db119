package geometry_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/core/geometry"
)

func TestDistanceAltitudeTable(t *testing.T) {
	tbl := geometry.DistanceAltitudeTable(
		domain.RunwaySpec{Direction: "27/09"},
		[]domain.ProfilePoint{
			{DistanceNM: 5.2, AltitudeFT: 1600},
			{DistanceNM: 0, AltitudeFT: 50},
			{DistanceNM: 2.5, AltitudeFT: 820},
		},
		geometry.DefaultTableLayout,
	)
	want := [][]string{
		{"NM TO RWY27", "0", "2.5", "5.2"},
		{"ALTITUDE", "50", "820", "1600"},
	}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Errorf("expected %v, got %v", want, tbl.Rows)
	}
	if len(tbl.ColumnWidths) != 4 || tbl.ColumnWidths[0] != 36.2 {
		t.Errorf("unexpected widths %v", tbl.ColumnWidths)
	}
}

func TestColumnWidths(t *testing.T) {
	l := geometry.TableLayout{TotalWidth: 100, FirstColWidth: 20, Stroke: 1, CellMargin: 2}
	got := geometry.ColumnWidths(l, 3)
	// 100 - 20 - (2*1 + 2*2*3) = 66, shared by 2 columns
	if got[0] != 20 || math.Abs(got[1]-33) > eps || math.Abs(got[2]-33) > eps {
		t.Errorf("unexpected widths %v", got)
	}

	l.FirstColWidth = 95
	for _, w := range geometry.ColumnWidths(l, 4) {
		if w != 25 {
			t.Errorf("expected even fallback of 25, got %v", w)
		}
	}

	if got := geometry.ColumnWidths(l, 1); len(got) != 1 || got[0] != 100 {
		t.Errorf("single column should take the total, got %v", got)
	}
	if got := geometry.ColumnWidths(l, 0); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestDistanceAltitudeTable_NoDirection(t *testing.T) {
	tbl := geometry.DistanceAltitudeTable(domain.RunwaySpec{}, nil, geometry.DefaultTableLayout)
	if tbl.Rows[0][0] != "NM TO RWY00" {
		t.Errorf("unexpected header %q", tbl.Rows[0][0])
	}
}
