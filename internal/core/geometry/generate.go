package geometry

import (
	"fmt"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

// Generate turns one profile and style into a complete GeometrySet.
//
// Every input is validated before any geometry is built: on error the returned
// set is nil. Recoverable conditions are reported as warnings on the set.
func Generate(cfg domain.ProfileConfig, style domain.StyleConfig) (*domain.GeometrySet, error) {
	s, err := ResolveStyle(style)
	if err != nil {
		return nil, err
	}
	m, err := NewMapper(cfg.Origin, s.HorizontalScale, s.VerticalExaggeration)
	if err != nil {
		return nil, err
	}
	if err := validateRunway(cfg.Runway); err != nil {
		return nil, err
	}
	if err := validatePoints(cfg.Points); err != nil {
		return nil, err
	}
	cov, err := ResolveCoverage(cfg, s.AxisMaxNM)
	if err != nil {
		return nil, err
	}

	set := &domain.GeometrySet{}
	if maxD := cfg.MaxDistanceNM(); s.AxisMaxNM < maxD {
		set.Warn(domain.WarnAxisMaxBelowProfile, fmt.Sprintf(
			"axis_max_nm %s is below the last profile point at %s NM; axis labels will not cover the profile",
			fmtNM(s.AxisMaxNM), fmtNM(maxD)))
	}

	rw, warns, err := Runway(m, cfg.Runway)
	if err != nil {
		return nil, err
	}
	set.Add(rw)
	set.Warnings = append(set.Warnings, warns...)

	if line, ok := ProfileLine(m, cfg.Points); ok {
		set.Add(line)
	} else {
		set.Warn(domain.WarnProfileLineSkipped, fmt.Sprintf(
			"profile line needs at least 2 points, got %d", len(cfg.Points)))
	}

	set.Add(Clearance(m, cov)...)
	set.Add(Axis(m, s)...)
	set.Add(KeyVerticals(m, cfg.Points, s)...)
	set.Add(PointAnnotations(m, cfg.Points)...)
	if !s.HideSlopeLabels {
		set.Add(SlopeLabels(m, cfg.Points)...)
	}
	return set, nil
}
