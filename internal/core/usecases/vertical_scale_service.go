package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/core/geometry"
	"github.com/samirrijal/aeroprofile/internal/core/ports"
)

// VerticalScaleService manages stored scale bars.
type VerticalScaleService struct {
	scales ports.VerticalScaleRepository
	ids    *idSource
	now    func() time.Time
}

// NewVerticalScaleService creates a new VerticalScaleService.
func NewVerticalScaleService(scales ports.VerticalScaleRepository) *VerticalScaleService {
	return &VerticalScaleService{
		scales: scales,
		ids:    newIDSource("vscale", time.Now),
		now:    time.Now,
	}
}

// Create fills unset parameters with the 1:10 000 defaults, checks that the
// scale can be built, and stores it.
func (s *VerticalScaleService) Create(ctx context.Context, vs *domain.VerticalScale) error {
	vs.Spec = withScaleDefaults(vs.Spec)
	if _, err := geometry.VerticalScale(vs.Spec); err != nil {
		return err
	}
	vs.Name = strings.TrimSpace(vs.Name)
	if vs.Name == "" {
		vs.Name = geometry.ScaleRatioText(vs.Spec.Denominator)
	}
	vs.ID = s.ids.next()
	vs.CreatedAt = s.now().UTC()
	if err := s.scales.Create(ctx, vs); err != nil {
		return fmt.Errorf("create vertical scale: %w", err)
	}
	return nil
}

// Get returns one stored scale.
func (s *VerticalScaleService) Get(ctx context.Context, id string) (*domain.VerticalScale, error) {
	return s.scales.GetByID(ctx, id)
}

// Delete removes a stored scale.
func (s *VerticalScaleService) Delete(ctx context.Context, id string) error {
	return s.scales.Delete(ctx, id)
}

// List returns all stored scales.
func (s *VerticalScaleService) List(ctx context.Context) ([]domain.VerticalScale, error) {
	return s.scales.List(ctx)
}

// Build returns the geometry of a stored scale.
func (s *VerticalScaleService) Build(ctx context.Context, id string) (*domain.GeometrySet, error) {
	vs, err := s.scales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return geometry.VerticalScale(vs.Spec)
}

// Preview builds a scale without storing it.
func (s *VerticalScaleService) Preview(spec domain.VerticalScaleSpec) (*domain.GeometrySet, error) {
	return geometry.VerticalScale(withScaleDefaults(spec))
}

func withScaleDefaults(spec domain.VerticalScaleSpec) domain.VerticalScaleSpec {
	d := domain.DefaultVerticalScaleSpec(spec.GuideStart, spec.GuideEnd)
	if spec.Denominator == 0 {
		spec.Denominator = d.Denominator
	}
	if spec.Offset == 0 {
		spec.Offset = d.Offset
	}
	if spec.TickLength == 0 {
		spec.TickLength = d.TickLength
	}
	if spec.MetersMax == 0 && spec.MetersStep == 0 {
		spec.MetersMax, spec.MetersStep = d.MetersMax, d.MetersStep
	}
	if spec.FeetMax == 0 && spec.FeetStep == 0 {
		spec.FeetMax, spec.FeetStep = d.FeetMax, d.FeetStep
	}
	return spec
}
