package geometry

import (
	"fmt"
	"slices"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/pkg/units"
)

// SortedPoints returns a copy of pts ordered by distance. Equal distances keep
// their input order and are never merged.
func SortedPoints(pts []domain.ProfilePoint) []domain.ProfilePoint {
	out := slices.Clone(pts)
	slices.SortStableFunc(out, func(a, b domain.ProfilePoint) int {
		switch {
		case a.DistanceNM < b.DistanceNM:
			return -1
		case a.DistanceNM > b.DistanceNM:
			return 1
		}
		return 0
	})
	return out
}

// ProfileLine returns the polyline through the points in distance order. It
// reports false when fewer than two points are given.
func ProfileLine(m Mapper, pts []domain.ProfilePoint) (domain.Feature, bool) {
	if len(pts) < 2 {
		return domain.Feature{}, false
	}
	sorted := SortedPoints(pts)
	coords := make([]domain.Coord, len(sorted))
	for i, p := range sorted {
		coords[i] = m.Map(p.DistanceNM, p.AltitudeFT)
	}
	return domain.Feature{
		Kind:    domain.KindLine,
		Coords:  coords,
		ID:      "profile",
		Symbol:  "profile",
		Remarks: "Main Profile",
		Layer:   domain.LayerLine,
	}, true
}

func validatePoints(pts []domain.ProfilePoint) error {
	if len(pts) == 0 {
		return domain.Malformed("profile_points", "at least one point is required")
	}
	for i, p := range pts {
		field := fmt.Sprintf("profile_points[%d]", i)
		if !units.Finite(p.DistanceNM) || p.DistanceNM < 0 {
			return domain.Malformed(field+".distance_nm", "must be a number >= 0, got %g", p.DistanceNM)
		}
		if !units.Finite(p.AltitudeFT) {
			return domain.Malformed(field+".altitude_ft", "must be a number")
		}
		if p.MOCAFT != nil && (!units.Finite(*p.MOCAFT) || *p.MOCAFT < 0) {
			return domain.Malformed(field+".moca_ft", "must be a number >= 0, got %g", *p.MOCAFT)
		}
	}
	return nil
}
