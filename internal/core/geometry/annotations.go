package geometry

import (
	"fmt"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/pkg/units"
)

const (
	pointLabelSize = 10
	slopeLabelSize = 9
)

// PointAnnotations returns a fix symbol and a name label for every point, in
// distance order.
func PointAnnotations(m Mapper, pts []domain.ProfilePoint) []domain.Feature {
	sorted := SortedPoints(pts)
	out := make([]domain.Feature, 0, 2*len(sorted))
	for i, p := range sorted {
		at := []domain.Coord{m.Map(p.DistanceNM, p.AltitudeFT)}
		out = append(out,
			domain.Feature{
				Kind:     domain.KindPoint,
				Coords:   at,
				ID:       fmt.Sprintf("fix_%d", i+1),
				Symbol:   "fix",
				TxtLabel: p.Name(),
				Remarks:  p.Notes,
				Layer:    domain.LayerPointSymbol,
			},
			domain.Feature{
				Kind:     domain.KindPoint,
				Coords:   at,
				ID:       fmt.Sprintf("name_%d", i+1),
				Symbol:   "point_name",
				TxtLabel: p.Name(),
				Layer:    domain.LayerCartoLabel,
				Size:     pointLabelSize,
			},
		)
	}
	return out
}

// SlopeLabels returns one "deg° (pct%)" label per consecutive pair of points,
// above the segment midpoint and rotated by the gradient angle.
func SlopeLabels(m Mapper, pts []domain.ProfilePoint) []domain.Feature {
	sorted := SortedPoints(pts)
	var out []domain.Feature
	for i := 0; i+1 < len(sorted); i++ {
		p1, p2 := sorted[i], sorted[i+1]
		pct := units.GradientPercent(p1.DistanceNM, p1.AltitudeFT, p2.DistanceNM, p2.AltitudeFT)
		deg := units.GradientDegrees(pct)
		mid := m.Map((p1.DistanceNM+p2.DistanceNM)/2, (p1.AltitudeFT+p2.AltitudeFT)/2)
		out = append(out, domain.Feature{
			Kind:     domain.KindPoint,
			Coords:   []domain.Coord{m.Lift(mid, domain.DefaultSlopeLabelLiftM)},
			ID:       fmt.Sprintf("slope_%d", i+1),
			Symbol:   "slope",
			TxtLabel: fmt.Sprintf("%.1f° (%.1f%%)", deg, pct),
			Remarks:  p1.Name() + " - " + p2.Name(),
			Layer:    domain.LayerCartoLabel,
			Rotation: deg,
			Size:     slopeLabelSize,
		})
	}
	return out
}
