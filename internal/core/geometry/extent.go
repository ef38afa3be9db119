package geometry

import (
	"math"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

// AutoZoomFactor is the margin applied around a generated profile when framing it.
const AutoZoomFactor = 1.2

// Extent is an axis-aligned bounding box.
type Extent struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal size of the box.
func (e Extent) Width() float64 { return e.MaxX - e.MinX }

// Height returns the vertical size of the box.
func (e Extent) Height() float64 { return e.MaxY - e.MinY }

// Scale grows (or shrinks) the box about its centre.
func (e Extent) Scale(f float64) Extent {
	cx, cy := (e.MinX+e.MaxX)/2, (e.MinY+e.MaxY)/2
	hw, hh := e.Width()/2*f, e.Height()/2*f
	return Extent{MinX: cx - hw, MinY: cy - hh, MaxX: cx + hw, MaxY: cy + hh}
}

// Bounds returns the bounding box of every coordinate in the set. It reports
// false for an empty set.
func Bounds(set *domain.GeometrySet) (Extent, bool) {
	e := Extent{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	found := false
	for _, f := range set.Features() {
		for _, c := range f.Coords {
			e.MinX = math.Min(e.MinX, c.X)
			e.MinY = math.Min(e.MinY, c.Y)
			e.MaxX = math.Max(e.MaxX, c.X)
			e.MaxY = math.Max(e.MaxY, c.Y)
			found = true
		}
	}
	if !found {
		return Extent{}, false
	}
	return e, true
}
