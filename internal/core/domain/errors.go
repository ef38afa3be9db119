package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidExaggeration = errors.New("profile: invalid vertical exaggeration")
	ErrInvalidSpan         = errors.New("profile: invalid span")
	ErrInvalidAxisMax      = errors.New("profile: invalid axis max")
	ErrMalformedInput      = errors.New("profile: malformed input")
	ErrNotFound            = errors.New("not found")
)

// InvalidExaggerationError reports a vertical exaggeration that is not > 0.
type InvalidExaggerationError struct {
	Value float64
}

func (e *InvalidExaggerationError) Error() string {
	return fmt.Sprintf("vertical exaggeration must be > 0, got %g", e.Value)
}

func (e *InvalidExaggerationError) Unwrap() error { return ErrInvalidExaggeration }

// InvalidAxisMaxError reports an axis length outside (0, MaxAxisNM].
type InvalidAxisMaxError struct {
	Value float64
}

func (e *InvalidAxisMaxError) Error() string {
	return fmt.Sprintf("axis_max_nm must be within (0, %g], got %g", MaxAxisNM, e.Value)
}

func (e *InvalidAxisMaxError) Unwrap() error { return ErrInvalidAxisMax }

// InvalidSpanError reports a clearance span that collapses or misses the axis.
type InvalidSpanError struct {
	Source    string // "oca", "oca_segments", "moca_segments"
	Index     int
	FromNM    float64
	ToNM      float64
	AxisMaxNM float64
	Reason    string
}

func (e *InvalidSpanError) Error() string {
	return fmt.Sprintf("%s[%d] %g-%g NM: %s", e.Source, e.Index, e.FromNM, e.ToNM, e.Reason)
}

func (e *InvalidSpanError) Unwrap() error { return ErrInvalidSpan }

// MalformedInputError reports a missing or non-numeric field.
type MalformedInputError struct {
	Field  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }

// Malformed builds a MalformedInputError.
func Malformed(field, format string, args ...any) error {
	return &MalformedInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidExaggeration) ||
		errors.Is(err, ErrInvalidSpan) ||
		errors.Is(err, ErrInvalidAxisMax) ||
		errors.Is(err, ErrMalformedInput)
}
