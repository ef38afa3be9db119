package usecases_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/core/usecases"
)

func newProfileService(repo *mockProfileRepo) *usecases.ProfileService {
	return usecases.NewProfileService(repo, usecases.NewChartService(nil, nil, usecases.ChartOptions{}))
}

func TestProfileService_Create(t *testing.T) {
	var stored *domain.Profile
	repo := &mockProfileRepo{createFn: func(ctx context.Context, p *domain.Profile) error {
		stored = p
		return nil
	}}

	p := &domain.Profile{Config: sampleConfig(), Style: domain.DefaultStyle(12)}
	if err := newProfileService(repo).Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil || !strings.HasPrefix(stored.ID, "profile_") {
		t.Fatalf("expected a profile_<ms> id, got %+v", stored)
	}
	if stored.Name != "Profile 09/27" {
		t.Errorf("unexpected default name %q", stored.Name)
	}
	if stored.CreatedAt.IsZero() || !stored.CreatedAt.Equal(stored.UpdatedAt) {
		t.Errorf("unexpected timestamps %v %v", stored.CreatedAt, stored.UpdatedAt)
	}
}

func TestProfileService_CreateRejectsInvalid(t *testing.T) {
	called := false
	repo := &mockProfileRepo{createFn: func(ctx context.Context, p *domain.Profile) error {
		called = true
		return nil
	}}
	cfg := sampleConfig()
	cfg.OCA = &domain.Span{FromNM: 20, ToNM: 30, HeightFT: 900}

	err := newProfileService(repo).Create(context.Background(), &domain.Profile{Config: cfg, Style: domain.DefaultStyle(12)})
	if !errors.Is(err, domain.ErrInvalidSpan) {
		t.Fatalf("expected invalid span, got %v", err)
	}
	if called {
		t.Error("invalid profile must not be stored")
	}
}

func TestProfileService_ImportUniqueIDs(t *testing.T) {
	var batch []domain.Profile
	repo := &mockProfileRepo{createBatchFn: func(ctx context.Context, ps []domain.Profile) error {
		batch = ps
		return nil
	}}
	ps := []domain.Profile{
		{Name: "a", Config: sampleConfig(), Style: domain.DefaultStyle(12)},
		{Name: "b", Config: sampleConfig(), Style: domain.DefaultStyle(12)},
		{Name: "c", Config: sampleConfig(), Style: domain.DefaultStyle(12)},
	}
	ids, err := newProfileService(repo).Import(context.Background(), ps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 3 || len(batch) != 3 {
		t.Fatalf("expected 3 ids, got %v", ids)
	}
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestProfileService_UpdateKeepsCreatedAt(t *testing.T) {
	existing := &domain.Profile{ID: "profile_1", Config: sampleConfig(), Style: domain.DefaultStyle(12)}
	var updated *domain.Profile
	repo := &mockProfileRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Profile, error) { return existing, nil },
		updateFn: func(ctx context.Context, p *domain.Profile) error {
			updated = p
			return nil
		},
	}
	p := &domain.Profile{ID: "profile_1", Name: "renamed", Config: sampleConfig(), Style: domain.DefaultStyle(10)}
	if err := newProfileService(repo).Update(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil || updated.Name != "renamed" || !updated.CreatedAt.Equal(existing.CreatedAt) {
		t.Errorf("unexpected update %+v", updated)
	}
}

func TestProfileService_GetNotFound(t *testing.T) {
	_, err := newProfileService(&mockProfileRepo{}).Get(context.Background(), "profile_404")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProfileService_ListClampsLimit(t *testing.T) {
	var gotLimit int
	repo := &mockProfileRepo{listFn: func(ctx context.Context, limit, offset int) ([]domain.ProfileSummary, error) {
		gotLimit = limit
		return nil, nil
	}}
	if _, err := newProfileService(repo).List(context.Background(), 1000, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 50 {
		t.Errorf("expected limit 50, got %d", gotLimit)
	}
}

func TestProfileService_Table(t *testing.T) {
	repo := &mockProfileRepo{getByIDFn: func(ctx context.Context, id string) (*domain.Profile, error) {
		return &domain.Profile{ID: id, Config: sampleConfig()}, nil
	}}
	tbl, err := newProfileService(repo).Table(context.Background(), "profile_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Rows[0][0] != "NM TO RWY09" || len(tbl.Rows[1]) != 4 {
		t.Errorf("unexpected table %v", tbl.Rows)
	}
}

func TestVerticalScaleService_CreateAndBuild(t *testing.T) {
	repo := &mockScaleRepo{}
	svc := usecases.NewVerticalScaleService(repo)
	vs := &domain.VerticalScale{Spec: domain.VerticalScaleSpec{
		GuideStart: domain.Coord{X: 0, Y: 0},
		GuideEnd:   domain.Coord{X: 0, Y: 10},
	}}
	if err := svc.Create(context.Background(), vs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(vs.ID, "vscale_") || vs.Name != "1:10 000" {
		t.Errorf("unexpected scale %+v", vs)
	}
	set, err := svc.Build(context.Background(), vs.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.WithSymbol("m_tick")) != 5 {
		t.Errorf("expected defaults to give 5 metre ticks")
	}
}

func TestVerticalScaleService_RejectsZeroGuide(t *testing.T) {
	svc := usecases.NewVerticalScaleService(&mockScaleRepo{})
	err := svc.Create(context.Background(), &domain.VerticalScale{})
	if !errors.Is(err, domain.ErrMalformedInput) {
		t.Fatalf("expected malformed input, got %v", err)
	}
}
