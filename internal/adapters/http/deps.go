package http

import (
	"context"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/aeroprofile/internal/core/usecases"
)

// Pinger is a backing service the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Charts   *usecases.ChartService
	Profiles *usecases.ProfileService
	Scales   *usecases.VerticalScaleService
	NATS     *nats.Conn
	DB       Pinger
	Cache    Pinger

	// DefaultExaggeration is used for uploaded files that carry none.
	DefaultExaggeration float64
}
