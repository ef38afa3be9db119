package profilejson

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

// Form-level limits for hand-entered values.
const (
	MaxDistanceNM      = domain.MaxAxisNM
	MinElevationFT     = -1500.0
	MaxElevationFT     = 60000.0
	MinRunwayLengthM   = 100.0
	MaxRunwayLengthM   = 6000.0
	MaxMOCAFT          = 60000.0
	MaxPointNameLength = 50
)

var (
	runwayDirectionPattern = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[0-6])/(0[1-9]|[12][0-9]|3[0-6])$`)
	pointNamePattern       = regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`)
)

// FieldError is one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

// ValidationErrors collects every rejected field of a document.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() error { return domain.ErrMalformedInput }

// ValidateDistance checks a distance in NM.
func ValidateDistance(nm float64) error {
	if nm < 0 {
		return fmt.Errorf("distance cannot be negative")
	}
	if nm > MaxDistanceNM {
		return fmt.Errorf("distance exceeds %g NM", MaxDistanceNM)
	}
	return nil
}

// ValidateElevation checks an altitude or elevation in feet.
func ValidateElevation(ft float64) error {
	if ft < MinElevationFT || ft > MaxElevationFT {
		return fmt.Errorf("elevation must be between %g and %g ft", MinElevationFT, MaxElevationFT)
	}
	return nil
}

// ValidateRunwayLength checks a runway length in metres.
func ValidateRunwayLength(m float64) error {
	if m < MinRunwayLengthM || m > MaxRunwayLengthM {
		return fmt.Errorf("runway length must be between %g and %g m", MinRunwayLengthM, MaxRunwayLengthM)
	}
	return nil
}

// ValidateRunwayDirection checks an "NN/NN" designator whose halves are reciprocal.
func ValidateRunwayDirection(dir string) error {
	if dir == "" {
		return fmt.Errorf("runway direction is required")
	}
	m := runwayDirectionPattern.FindStringSubmatch(dir)
	if m == nil {
		return fmt.Errorf("use NN/NN, e.g. 09/27")
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	recip := (a + 18) % 36
	if recip == 0 {
		recip = 36
	}
	if b != recip {
		return fmt.Errorf("directions %02d and %02d are not reciprocal", a, b)
	}
	return nil
}

// ValidatePointName checks a point label.
func ValidatePointName(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return fmt.Errorf("point name is required")
	case len(name) > MaxPointNameLength:
		return fmt.Errorf("point name longer than %d characters", MaxPointNameLength)
	case !pointNamePattern.MatchString(name):
		return fmt.Errorf("point name contains invalid characters")
	}
	return nil
}

// ValidateMOCA checks a minimum obstacle clearance altitude in feet.
func ValidateMOCA(ft float64) error {
	if ft < 0 || ft > MaxMOCAFT {
		return fmt.Errorf("MOCA must be between 0 and %g ft", MaxMOCAFT)
	}
	return nil
}

// ValidateDocument applies the form-level checks to a decoded configuration.
// It returns ValidationErrors listing every failing field, or nil.
// Unnamed points are accepted; named ones must pass ValidatePointName.
func ValidateDocument(cfg domain.ProfileConfig) error {
	var errs ValidationErrors
	add := func(field string, err error) {
		if err != nil {
			errs = append(errs, FieldError{Field: field, Message: err.Error()})
		}
	}

	add("runway.direction", ValidateRunwayDirection(cfg.Runway.Direction))
	add("runway.length", ValidateRunwayLength(cfg.Runway.LengthM))
	add("runway.thr_elevation", ValidateElevation(cfg.Runway.ThresholdElevationFT))
	add("runway.tch_rdh", ValidateElevation(cfg.Runway.TCHM))

	for i, p := range cfg.Points {
		field := fmt.Sprintf("profile_points[%d]", i)
		if p.Label != "" {
			add(field+".point_name", ValidatePointName(p.Label))
		}
		add(field+".distance_nm", ValidateDistance(p.DistanceNM))
		add(field+".elevation_ft", ValidateElevation(p.AltitudeFT))
		if p.MOCAFT != nil {
			add(field+".moca_ft", ValidateMOCA(*p.MOCAFT))
		}
	}
	for i, s := range cfg.MOCASegments {
		add(fmt.Sprintf("moca_segments[%d].moca_ft", i), ValidateMOCA(s.HeightFT))
	}
	for i, s := range cfg.OCASegments {
		add(fmt.Sprintf("oca_segments[%d].oca_ft", i), ValidateElevation(s.HeightFT))
	}
	if cfg.OCA != nil {
		add("oca.oca_ft", ValidateElevation(cfg.OCA.HeightFT))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
