package ports

import (
	"context"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

// ProfileRepository persists named profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	CreateBatch(ctx context.Context, ps []domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]domain.ProfileSummary, error)
	Count(ctx context.Context) (int, error)
}

// VerticalScaleRepository persists named vertical scale bars.
type VerticalScaleRepository interface {
	Create(ctx context.Context, vs *domain.VerticalScale) error
	GetByID(ctx context.Context, id string) (*domain.VerticalScale, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.VerticalScale, error)
}
