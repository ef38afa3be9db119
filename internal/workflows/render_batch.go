package workflows

import (
	"encoding/json"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// RenderBatchInput is the input for RenderBatchWorkflow.
type RenderBatchInput struct {
	ProfileIDs []string
	Format     string // geojson or pdf; empty renders without exporting
}

// RenderBatchResult summarises a finished batch.
type RenderBatchResult struct {
	Rendered     int
	Files        []string
	Fingerprints map[string]string // profile id -> set fingerprint
}

func (r RenderBatchResult) summary() []byte {
	data, _ := json.Marshal(map[string]any{
		"type":     "batch",
		"rendered": r.Rendered,
		"files":    len(r.Files),
	})
	return data
}

// RenderBatchWorkflow renders every profile, then exports each one. If any
// step fails the files written so far are removed, newest first (saga
// compensation), and the batch fails as a whole.
func RenderBatchWorkflow(ctx workflow.Context, input RenderBatchInput) (RenderBatchResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting render batch", "profiles", len(input.ProfileIDs), "format", input.Format)

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	})

	res := RenderBatchResult{Fingerprints: make(map[string]string, len(input.ProfileIDs))}
	compensate := func(cause error) (RenderBatchResult, error) {
		logger.Warn("render batch failed, compensating", "error", cause, "files", len(res.Files))
		for i := len(res.Files) - 1; i >= 0; i-- {
			_ = workflow.ExecuteActivity(ctx, "RemoveExport", res.Files[i]).Get(ctx, nil)
		}
		return RenderBatchResult{}, cause
	}

	for _, id := range input.ProfileIDs {
		var fp string
		if err := workflow.ExecuteActivity(ctx, "RenderProfile", id).Get(ctx, &fp); err != nil {
			return compensate(err)
		}
		res.Fingerprints[id] = fp
		res.Rendered++

		if input.Format == "" {
			continue
		}
		var path string
		if err := workflow.ExecuteActivity(ctx, "ExportProfile", id, input.Format).Get(ctx, &path); err != nil {
			return compensate(err)
		}
		res.Files = append(res.Files, path)
	}

	if err := workflow.ExecuteActivity(ctx, "AnnounceBatch", res).Get(ctx, nil); err != nil {
		logger.Warn("batch announcement failed", "error", err)
	}
	logger.Info("Render batch finished", "rendered", res.Rendered, "files", len(res.Files))
	return res, nil
}
