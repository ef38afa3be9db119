// Package geometry turns a semantic approach profile into planar chart geometry.
//
// Every exported builder is a pure function of its arguments. Generate validates
// the whole input first and then runs the builders, so a failed call never yields
// a partial GeometrySet. Vertical sizes of decorations (ticks, labels, verticals)
// are expressed in raw metres and divided by the vertical exaggeration, which keeps
// them visually constant whatever exaggeration the chart uses.
package geometry

import (
	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/pkg/units"
)

// Mapper maps (distance NM, altitude ft) pairs onto the chart plane.
type Mapper struct {
	origin domain.Coord
	hscale float64
	ve     float64
}

// NewMapper validates the scale factors and returns a Mapper anchored at origin.
// A zero horizontal scale means 1:1.
func NewMapper(origin domain.Coord, horizontalScale, verticalExaggeration float64) (Mapper, error) {
	if !units.Finite(verticalExaggeration) || verticalExaggeration <= 0 {
		return Mapper{}, &domain.InvalidExaggerationError{Value: verticalExaggeration}
	}
	if horizontalScale == 0 {
		horizontalScale = 1.0
	}
	if !units.Finite(horizontalScale) || horizontalScale < 0 {
		return Mapper{}, domain.Malformed("style.horizontal_scale", "must be > 0, got %g", horizontalScale)
	}
	if !units.Finite(origin.X) || !units.Finite(origin.Y) {
		return Mapper{}, domain.Malformed("origin_point", "coordinates must be finite")
	}
	return Mapper{origin: origin, hscale: horizontalScale, ve: verticalExaggeration}, nil
}

// Map returns the chart coordinate of a profile position.
func (m Mapper) Map(distanceNM, altitudeFT float64) domain.Coord {
	return domain.Coord{
		X: m.X(distanceNM),
		Y: m.origin.Y + units.FeetToMetres(altitudeFT)*m.ve,
	}
}

// X returns the chart x of a distance along the axis.
func (m Mapper) X(distanceNM float64) float64 {
	return m.origin.X + units.NMToMetres(distanceNM)*m.hscale
}

// Baseline returns the chart y of altitude zero.
func (m Mapper) Baseline() float64 { return m.origin.Y }

// Origin returns the threshold position on the chart.
func (m Mapper) Origin() domain.Coord { return m.origin }

// VerticalExaggeration returns the factor applied to altitudes.
func (m Mapper) VerticalExaggeration() float64 { return m.ve }

// Visual converts a nominal on-chart size in raw metres to chart units.
func (m Mapper) Visual(rawM float64) float64 {
	return rawM / m.ve
}

// Lift moves c vertically by a nominal size in raw metres (negative moves down).
func (m Mapper) Lift(c domain.Coord, rawM float64) domain.Coord {
	c.Y += m.Visual(rawM)
	return c
}
