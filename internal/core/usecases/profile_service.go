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

// ProfileService manages stored profiles and renders them.
type ProfileService struct {
	profiles ports.ProfileRepository
	charts   *ChartService
	ids      *idSource
	now      func() time.Time
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profiles ports.ProfileRepository, charts *ChartService) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		charts:   charts,
		ids:      newIDSource("profile", time.Now),
		now:      time.Now,
	}
}

// Create validates p, assigns an id and timestamps, and stores it.
func (s *ProfileService) Create(ctx context.Context, p *domain.Profile) error {
	if err := s.prepare(p); err != nil {
		return err
	}
	p.ID = s.ids.next()
	p.CreatedAt = s.now().UTC()
	p.UpdatedAt = p.CreatedAt
	if err := s.profiles.Create(ctx, p); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// Import stores many profiles in one batch. Nothing is stored if any is invalid.
func (s *ProfileService) Import(ctx context.Context, ps []domain.Profile) ([]string, error) {
	if len(ps) == 0 {
		return nil, nil
	}
	ids := make([]string, len(ps))
	now := s.now().UTC()
	for i := range ps {
		if err := s.prepare(&ps[i]); err != nil {
			return nil, fmt.Errorf("profile %d (%s): %w", i, ps[i].Name, err)
		}
		ps[i].ID = s.ids.next()
		ps[i].CreatedAt, ps[i].UpdatedAt = now, now
		ids[i] = ps[i].ID
	}
	if err := s.profiles.CreateBatch(ctx, ps); err != nil {
		return nil, fmt.Errorf("import profiles: %w", err)
	}
	return ids, nil
}

// Get returns one stored profile.
func (s *ProfileService) Get(ctx context.Context, id string) (*domain.Profile, error) {
	if id == "" {
		return nil, domain.Malformed("id", "must not be empty")
	}
	return s.profiles.GetByID(ctx, id)
}

// Update replaces the configuration and style of an existing profile.
func (s *ProfileService) Update(ctx context.Context, p *domain.Profile) error {
	existing, err := s.profiles.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if err := s.prepare(p); err != nil {
		return err
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now().UTC()
	if err := s.profiles.Update(ctx, p); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// Delete removes a stored profile.
func (s *ProfileService) Delete(ctx context.Context, id string) error {
	return s.profiles.Delete(ctx, id)
}

// List returns profile summaries, newest first.
func (s *ProfileService) List(ctx context.Context, limit, offset int) ([]domain.ProfileSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.profiles.List(ctx, limit, offset)
}

// Count returns the number of stored profiles.
func (s *ProfileService) Count(ctx context.Context) (int, error) {
	return s.profiles.Count(ctx)
}

// Geometry generates the set of a stored profile without handing it off.
func (s *ProfileService) Geometry(ctx context.Context, id string) (*domain.Profile, *domain.GeometrySet, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	set, err := s.charts.Generate(ctx, p.Config, p.Style)
	if err != nil {
		return nil, nil, err
	}
	return p, set, nil
}

// Render generates and hands off the geometry of a stored profile.
func (s *ProfileService) Render(ctx context.Context, id string) (*domain.ChartEvent, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.charts.Render(ctx, p.ID, p.Name, p.Config, p.Style)
}

// Table returns the distance/altitude table of a stored profile.
func (s *ProfileService) Table(ctx context.Context, id string) (domain.Table, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return domain.Table{}, err
	}
	return geometry.DistanceAltitudeTable(p.Config.Runway, p.Config.Points, geometry.DefaultTableLayout), nil
}

// prepare normalises the name and rejects profiles that cannot be drawn.
func (s *ProfileService) prepare(p *domain.Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		p.Name = "Profile " + strings.TrimSpace(p.Config.Runway.Direction)
	}
	if _, err := geometry.Generate(p.Config, s.charts.withDefaults(p.Style)); err != nil {
		return err
	}
	return nil
}
