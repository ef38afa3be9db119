package geometry_test

import (
	"errors"
	"math"
	"testing"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/core/geometry"
)

const eps = 1e-9

func mustMapper(t *testing.T, origin domain.Coord, ve float64) geometry.Mapper {
	t.Helper()
	m, err := geometry.NewMapper(origin, 1, ve)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func TestMapper_Monotonic(t *testing.T) {
	m := mustMapper(t, domain.Coord{X: 1000, Y: -250}, 10)

	for _, d := range [][2]float64{{0, 0.5}, {0.5, 3}, {3, 12.25}} {
		if a, b := m.Map(d[0], 1500), m.Map(d[1], 1500); a.X >= b.X {
			t.Errorf("x not increasing: map(%g)=%g, map(%g)=%g", d[0], a.X, d[1], b.X)
		}
	}
	for _, a := range [][2]float64{{-200, 0}, {0, 50}, {50, 4000}} {
		if p, q := m.Map(5, a[0]), m.Map(5, a[1]); p.Y >= q.Y {
			t.Errorf("y not increasing: map(%g ft)=%g, map(%g ft)=%g", a[0], p.Y, a[1], q.Y)
		}
	}
}

func TestMapper_ExaggerationIdentity(t *testing.T) {
	ve10 := mustMapper(t, domain.Coord{}, 10)
	ve1 := mustMapper(t, domain.Coord{}, 1)

	for _, d := range []float64{0, 1, 7.5, 12} {
		a, b := ve10.Map(d, 2000), ve1.Map(d, 20000)
		if math.Abs(a.Y-b.Y) > eps {
			t.Errorf("d=%g: VE10 y=%g, VE1 y=%g", d, a.Y, b.Y)
		}
		if a.X != b.X {
			t.Errorf("d=%g: x depends on VE: %g vs %g", d, a.X, b.X)
		}
	}
}

func TestMapper_Units(t *testing.T) {
	m := mustMapper(t, domain.Coord{X: 100, Y: 20}, 1)
	c := m.Map(1, 1000)
	if c.X != 100+1852 {
		t.Errorf("expected x=1952, got %g", c.X)
	}
	if math.Abs(c.Y-(20+304.8)) > eps {
		t.Errorf("expected y=324.8, got %g", c.Y)
	}
	if m.Baseline() != 20 {
		t.Errorf("expected baseline 20, got %g", m.Baseline())
	}
}

func TestMapper_HorizontalScaleDefault(t *testing.T) {
	m, err := geometry.NewMapper(domain.Coord{}, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.X(2); got != 3704 {
		t.Errorf("expected 3704, got %g", got)
	}
}

func TestNewMapper_InvalidExaggeration(t *testing.T) {
	for _, ve := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := geometry.NewMapper(domain.Coord{}, 1, ve)
		var target *domain.InvalidExaggerationError
		if !errors.As(err, &target) {
			t.Errorf("VE=%g: expected InvalidExaggerationError, got %v", ve, err)
		}
	}
}

func TestMapper_LiftIsVisuallyConstant(t *testing.T) {
	for _, ve := range []float64{1, 5, 10, 20} {
		m := mustMapper(t, domain.Coord{}, ve)
		c := m.Lift(domain.Coord{X: 1, Y: 0}, -200)
		if math.Abs(-c.Y*ve-200) > eps {
			t.Errorf("VE=%g: lifted %g, expected visual 200", ve, c.Y)
		}
	}
}
