package units_test

import (
	"math"
	"testing"

	"github.com/samirrijal/aeroprofile/internal/pkg/units"
)

func TestGradientPercent(t *testing.T) {
	tests := []struct {
		name                 string
		d1, a1, d2, a2, want float64
	}{
		{"level", 0, 1000, 5, 1000, 0},
		{"zero distance", 3, 1000, 3, 2000, 0},
		// 3 degrees is roughly 5.24 %; 1 NM at 5.24 % climbs ~318.4 ft
		{"three degree", 0, 0, 1, 318.4, 5.2402},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := units.GradientPercent(tt.d1, tt.a1, tt.d2, tt.a2)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("expected %.4f, got %.4f", tt.want, got)
			}
		})
	}
}

func TestGradientDegrees(t *testing.T) {
	if got := units.GradientDegrees(100); math.Abs(got-45) > 1e-9 {
		t.Errorf("expected 45, got %v", got)
	}
	if got := units.GradientDegrees(0); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestAltitudeAfter(t *testing.T) {
	pct := units.GradientPercent(0, 1000, 2, 2000)
	got := units.AltitudeAfter(1000, pct, 2)
	if math.Abs(got-2000) > 1e-6 {
		t.Errorf("expected 2000 ft, got %v", got)
	}
}

func TestFinite(t *testing.T) {
	if units.Finite(math.NaN()) || units.Finite(math.Inf(1)) {
		t.Error("NaN and Inf must not be finite")
	}
	if !units.Finite(-3.5) {
		t.Error("-3.5 is finite")
	}
}
