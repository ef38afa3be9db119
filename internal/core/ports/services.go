package ports

import (
	"context"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

// ChartPublisher hands generated geometry sets to the layer-insertion side.
type ChartPublisher interface {
	PublishChart(ctx context.Context, ev *domain.ChartEvent) error
	PublishBroadcast(ctx context.Context, data []byte) error
}

// ChartSubscriber consumes published geometry sets.
type ChartSubscriber interface {
	SubscribeCharts(ctx context.Context, handler func(ctx context.Context, ev *domain.ChartEvent) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
