package geometry

import (
	"strings"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/pkg/units"
)

// Allowed raw height of full grid verticals.
const (
	minGridHeightM = 1500.0
	maxGridHeightM = 3000.0
)

// ResolveStyle validates s and fills unset optional sizes with their defaults.
// The vertical exaggeration is checked first, then the axis length.
func ResolveStyle(s domain.StyleConfig) (domain.StyleConfig, error) {
	if !units.Finite(s.VerticalExaggeration) || s.VerticalExaggeration <= 0 {
		return s, &domain.InvalidExaggerationError{Value: s.VerticalExaggeration}
	}
	if !units.Finite(s.AxisMaxNM) || s.AxisMaxNM <= 0 || s.AxisMaxNM > domain.MaxAxisNM {
		return s, &domain.InvalidAxisMaxError{Value: s.AxisMaxNM}
	}
	if s.HorizontalScale == 0 {
		s.HorizontalScale = 1.0
	}

	sizes := []struct {
		field string
		v     *float64
		def   float64
	}{
		{"style.horizontal_scale", &s.HorizontalScale, 1.0},
		{"style.tick_height_m", &s.TickHeightM, domain.DefaultTickHeightM},
		{"style.label_gap_m", &s.LabelGapM, domain.DefaultLabelGapM},
		{"style.grid_height_m", &s.GridHeightM, domain.DefaultGridHeightM},
		{"style.key_vertical_height_m", &s.KeyVerticalHeightM, domain.DefaultKeyVerticalHeightM},
	}
	for _, sz := range sizes {
		if *sz.v == 0 {
			*sz.v = sz.def
		}
		if !units.Finite(*sz.v) || *sz.v < 0 {
			return s, domain.Malformed(sz.field, "must be a positive number, got %g", *sz.v)
		}
	}
	if s.ShowGrid && (s.GridHeightM < minGridHeightM || s.GridHeightM > maxGridHeightM) {
		return s, domain.Malformed("style.grid_height_m", "must be within %g-%g m, got %g",
			minGridHeightM, maxGridHeightM, s.GridHeightM)
	}

	if len(s.KeyWaypoints) == 0 {
		s.KeyWaypoints = domain.DefaultKeyWaypoints
	}
	names := make([]string, 0, len(s.KeyWaypoints))
	for _, n := range s.KeyWaypoints {
		if n = strings.ToUpper(strings.TrimSpace(n)); n != "" {
			names = append(names, n)
		}
	}
	s.KeyWaypoints = names
	return s, nil
}
