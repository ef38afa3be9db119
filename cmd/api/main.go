package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/aeroprofile/internal/adapters/http"
	natsadapter "github.com/samirrijal/aeroprofile/internal/adapters/nats"
	"github.com/samirrijal/aeroprofile/internal/adapters/postgres"
	"github.com/samirrijal/aeroprofile/internal/adapters/valkey"
	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/core/ports"
	"github.com/samirrijal/aeroprofile/internal/core/usecases"
	"github.com/samirrijal/aeroprofile/internal/pkg/config"
	"github.com/samirrijal/aeroprofile/internal/pkg/logging"
	"github.com/samirrijal/aeroprofile/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("aeroprofile-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format, logging.WithFile(cfg.Log.File, cfg.Log.MaxSizeMB))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }()
		}
	}

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	go reportPoolStats(ctx, db)

	deps := &http.Dependencies{DB: db, DefaultExaggeration: cfg.Chart.VerticalExaggeration}

	// Cache and broker are optional: generation works without them.
	var cache ports.CacheService
	if c, err := valkey.New(cfg.Valkey.Addr, "aeroprofile:"); err != nil {
		slog.Warn("valkey unavailable, chart cache disabled", "error", err)
	} else {
		defer c.Close()
		cache, deps.Cache = c, c
	}

	var publisher ports.ChartPublisher
	if p, err := natsadapter.NewPublisher(cfg.NATS.URL); err != nil {
		slog.Warn("nats unavailable, chart hand-off disabled", "error", err)
	} else {
		defer p.Close()
		publisher = p
	}

	// Raw NATS connection for the WebSocket relay
	if nc, err := natsadapter.RawConn(cfg.NATS.URL); err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	} else {
		defer nc.Close()
		deps.NATS = nc
	}

	deps.Charts = usecases.NewChartService(cache, publisher, usecases.ChartOptions{
		CacheTTL: cfg.Chart.CacheTTL,
		Publish:  cfg.Chart.Publish,
		Defaults: domain.StyleConfig{
			TickHeightM:  cfg.Chart.TickHeightM,
			LabelGapM:    cfg.Chart.LabelGapM,
			KeyWaypoints: cfg.Chart.KeyWaypoints,
		},
	})
	deps.Profiles = usecases.NewProfileService(postgres.NewProfileRepo(db), deps.Charts)
	deps.Scales = usecases.NewVerticalScaleService(postgres.NewVerticalScaleRepo(db))

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    4 * 1024 * 1024, // bulk imports carry many profile files
		AppName:      "Aeroprofile API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "http://localhost:3000, http://localhost:5173",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, If-None-Match",
		ExposeHeaders: "Deprecation, Sunset, Link, Location, ETag, X-Request-ID",
		MaxAge:        3600,
	}))

	http.SetupRoutes(app, deps)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}

func reportPoolStats(ctx context.Context, db *postgres.DB) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			db.ReportPoolStats()
		case <-ctx.Done():
			return
		}
	}
}
