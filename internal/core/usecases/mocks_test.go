package usecases_test

import (
	"context"
	"sync"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

// --- Mock CacheService ---

type mockCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMockCache() *mockCache { return &mockCache{data: map[string][]byte{}} }

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.data[key]; ok {
		return b, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.sets++
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// --- Mock ChartPublisher ---

type mockPublisher struct {
	publishFn  func(ctx context.Context, ev *domain.ChartEvent) error
	published  []*domain.ChartEvent
	broadcasts int
}

func (m *mockPublisher) PublishChart(ctx context.Context, ev *domain.ChartEvent) error {
	if m.publishFn != nil {
		if err := m.publishFn(ctx, ev); err != nil {
			return err
		}
	}
	m.published = append(m.published, ev)
	return nil
}

func (m *mockPublisher) PublishBroadcast(ctx context.Context, data []byte) error {
	m.broadcasts++
	return nil
}

// --- Mock ProfileRepository ---

type mockProfileRepo struct {
	createFn      func(ctx context.Context, p *domain.Profile) error
	createBatchFn func(ctx context.Context, ps []domain.Profile) error
	getByIDFn     func(ctx context.Context, id string) (*domain.Profile, error)
	updateFn      func(ctx context.Context, p *domain.Profile) error
	listFn        func(ctx context.Context, limit, offset int) ([]domain.ProfileSummary, error)
	countFn       func(ctx context.Context) (int, error)
}

func (m *mockProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func (m *mockProfileRepo) CreateBatch(ctx context.Context, ps []domain.Profile) error {
	if m.createBatchFn != nil {
		return m.createBatchFn(ctx, ps)
	}
	return nil
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

func (m *mockProfileRepo) Delete(ctx context.Context, id string) error { return nil }

func (m *mockProfileRepo) List(ctx context.Context, limit, offset int) ([]domain.ProfileSummary, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockProfileRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

// --- Mock VerticalScaleRepository ---

type mockScaleRepo struct {
	stored map[string]*domain.VerticalScale
}

func (m *mockScaleRepo) Create(ctx context.Context, vs *domain.VerticalScale) error {
	if m.stored == nil {
		m.stored = map[string]*domain.VerticalScale{}
	}
	m.stored[vs.ID] = vs
	return nil
}

func (m *mockScaleRepo) GetByID(ctx context.Context, id string) (*domain.VerticalScale, error) {
	if vs, ok := m.stored[id]; ok {
		return vs, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockScaleRepo) Delete(ctx context.Context, id string) error {
	delete(m.stored, id)
	return nil
}

func (m *mockScaleRepo) List(ctx context.Context) ([]domain.VerticalScale, error) {
	var out []domain.VerticalScale
	for _, vs := range m.stored {
		out = append(out, *vs)
	}
	return out, nil
}

func sampleConfig() domain.ProfileConfig {
	return domain.ProfileConfig{
		Runway: domain.RunwaySpec{Direction: "09/27", LengthM: 1800},
		Points: []domain.ProfilePoint{
			{DistanceNM: 0, AltitudeFT: 50, WaypointName: "THR"},
			{DistanceNM: 3, AltitudeFT: 1500, WaypointName: "MAPT"},
			{DistanceNM: 8, AltitudeFT: 4000, WaypointName: "FAF"},
		},
	}
}
