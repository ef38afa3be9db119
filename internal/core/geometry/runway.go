package geometry

import (
	"fmt"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/pkg/units"
)

// Runway returns the runway segment ending at the threshold. It ignores altitude,
// exaggeration and the deprecated TCH value. A zero length yields a zero-length
// segment at the threshold rather than no geometry.
func Runway(m Mapper, rw domain.RunwaySpec) (domain.Feature, []domain.Warning, error) {
	if err := validateRunway(rw); err != nil {
		return domain.Feature{}, nil, err
	}

	var warns []domain.Warning
	if rw.TCHM != 0 {
		warns = append(warns, domain.Warning{
			Code:    domain.WarnTCHIgnored,
			Message: fmt.Sprintf("tch_rdh %g m is deprecated and has no effect on the chart", rw.TCHM),
		})
	}
	if rw.LengthM == 0 {
		warns = append(warns, domain.Warning{
			Code:    domain.WarnRunwayZeroLength,
			Message: "runway length is 0; runway drawn as a point at the threshold",
		})
	}

	o := m.Origin()
	return domain.Feature{
		Kind: domain.KindLine,
		Coords: []domain.Coord{
			{X: o.X - rw.LengthM, Y: m.Baseline()},
			{X: o.X, Y: m.Baseline()},
		},
		ID:       "runway",
		Symbol:   "runway",
		TxtLabel: rw.Direction,
		Remarks:  "Runway",
		Layer:    domain.LayerLine,
	}, warns, nil
}

func validateRunway(rw domain.RunwaySpec) error {
	if !units.Finite(rw.LengthM) || rw.LengthM < 0 {
		return domain.Malformed("runway.length", "must be >= 0, got %g", rw.LengthM)
	}
	if !units.Finite(rw.ThresholdElevationFT) {
		return domain.Malformed("runway.thr_elevation", "must be a number")
	}
	if !units.Finite(rw.TCHM) {
		return domain.Malformed("runway.tch_rdh", "must be a number")
	}
	return nil
}
