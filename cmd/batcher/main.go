package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/samirrijal/aeroprofile/internal/adapters/nats"
	"github.com/samirrijal/aeroprofile/internal/adapters/postgres"
	"github.com/samirrijal/aeroprofile/internal/core/ports"
	"github.com/samirrijal/aeroprofile/internal/core/usecases"
	"github.com/samirrijal/aeroprofile/internal/pkg/config"
	"github.com/samirrijal/aeroprofile/internal/pkg/logging"
	"github.com/samirrijal/aeroprofile/internal/workflows"
)

// batcher runs the render batch worker. With -submit it instead starts one
// RenderBatchWorkflow for the profile ids given as arguments and waits for it.
func main() {
	submit := flag.Bool("submit", false, "start a batch for the given profile ids instead of running the worker")
	format := flag.String("format", workflows.FormatGeoJSON, "export format for -submit: geojson, pdf or empty")
	flag.Parse()

	cfg, err := config.Load("aeroprofile-batcher")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format, logging.WithFile(cfg.Log.File, cfg.Log.MaxSizeMB))

	c, err := client.Dial(client.Options{HostPort: cfg.Temporal.HostPort})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	if *submit {
		submitBatch(c, cfg.Temporal.TaskQueue, flag.Args(), *format)
		return
	}

	ctx := context.Background()
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	var publisher ports.ChartPublisher
	if p, err := natsadapter.NewPublisher(cfg.NATS.URL); err != nil {
		slog.Warn("nats unavailable, batches render without hand-off", "error", err)
	} else {
		defer p.Close()
		publisher = p
	}

	charts := usecases.NewChartService(nil, publisher, usecases.ChartOptions{Publish: cfg.Chart.Publish})
	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})
	w.RegisterWorkflow(workflows.RenderBatchWorkflow)
	w.RegisterActivity(&workflows.RenderActivities{
		Profiles:  usecases.NewProfileService(postgres.NewProfileRepo(db), charts),
		Publisher: publisher,
		Dir:       cfg.Export.Dir,
	})

	slog.Info("batch worker started", "task_queue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}

func submitBatch(c client.Client, queue string, ids []string, format string) {
	if len(ids) == 0 {
		log.Fatal("usage: batcher -submit [-format geojson|pdf] profile_id...")
	}
	ctx := context.Background()
	run, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        "render-batch-" + time.Now().UTC().Format("20060102T150405"),
		TaskQueue: queue,
	}, workflows.RenderBatchWorkflow, workflows.RenderBatchInput{ProfileIDs: ids, Format: format})
	if err != nil {
		log.Fatalf("start batch: %v", err)
	}
	slog.Info("batch started", "workflow_id", run.GetID(), "run_id", run.GetRunID())

	var res workflows.RenderBatchResult
	if err := run.Get(ctx, &res); err != nil {
		log.Fatalf("batch failed: %v", err)
	}
	slog.Info("batch finished", "rendered", res.Rendered, "files", len(res.Files))
}
