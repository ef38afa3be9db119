package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/samirrijal/aeroprofile/internal/adapters/export"
	natsadapter "github.com/samirrijal/aeroprofile/internal/adapters/nats"
	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/pkg/config"
	"github.com/samirrijal/aeroprofile/internal/pkg/logging"
)

// The exporter is the layer-insertion side of the hand-off: every chart
// published on the broker is written to export.dir as GeoJSON.
func main() {
	cfg, err := config.Load("aeroprofile-exporter")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format, logging.WithFile(cfg.Log.File, cfg.Log.MaxSizeMB))

	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		log.Fatalf("export dir: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL, "aeroprofile-exporter")
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer sub.Close()

	if err := sub.SubscribeCharts(ctx, func(ctx context.Context, ev *domain.ChartEvent) error {
		return writeChart(cfg.Export.Dir, ev)
	}); err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	slog.Info("exporter started", "dir", cfg.Export.Dir)
	<-ctx.Done()
	slog.Info("exporter stopped")
}

// writeChart stores one event as <profile>_<fingerprint prefix>.geojson.
// Ad-hoc generations have no profile id and are grouped under "adhoc".
func writeChart(dir string, ev *domain.ChartEvent) error {
	data, err := export.GeoJSON(ev.Geometry)
	if err != nil {
		return err
	}
	id := ev.ProfileID
	if id == "" {
		id = "adhoc"
	}
	fp := ev.Fingerprint
	if len(fp) > 12 {
		fp = fp[:12]
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.geojson", id, fp))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("chart exported", "profile_id", ev.ProfileID, "features", ev.Geometry.Len(), "path", path)
	return nil
}
