package workflows

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.temporal.io/sdk/temporal"

	"github.com/samirrijal/aeroprofile/internal/adapters/export"
	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/core/ports"
	"github.com/samirrijal/aeroprofile/internal/core/usecases"
)

// Export formats understood by ExportProfile.
const (
	FormatGeoJSON = "geojson"
	FormatPDF     = "pdf"
)

// RenderActivities holds the activity implementations for RenderBatchWorkflow.
type RenderActivities struct {
	Profiles  *usecases.ProfileService
	Publisher ports.ChartPublisher // optional
	Dir       string
}

// RenderProfile generates a stored profile and hands it to the broker. It
// returns the set fingerprint.
func (a *RenderActivities) RenderProfile(ctx context.Context, profileID string) (string, error) {
	ev, err := a.Profiles.Render(ctx, profileID)
	if err != nil {
		return "", permanent(fmt.Errorf("render %s: %w", profileID, err))
	}
	return ev.Fingerprint, nil
}

// ExportProfile writes a stored profile to Dir as GeoJSON or PDF and returns
// the file path.
func (a *RenderActivities) ExportProfile(ctx context.Context, profileID, format string) (string, error) {
	p, set, err := a.Profiles.Geometry(ctx, profileID)
	if err != nil {
		return "", permanent(fmt.Errorf("export %s: %w", profileID, err))
	}

	var buf bytes.Buffer
	switch format {
	case FormatGeoJSON:
		data, err := export.GeoJSON(set)
		if err != nil {
			return "", err
		}
		buf.Write(data)
	case FormatPDF:
		tbl, err := a.Profiles.Table(ctx, profileID)
		if err != nil {
			return "", err
		}
		if err := export.PDF(&buf, set, export.PDFOptions{Title: p.Name, Table: &tbl}); err != nil {
			return "", err
		}
	default:
		return "", temporal.NewNonRetryableApplicationError("unknown format "+format, "BadFormat", nil)
	}

	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(a.Dir, p.ID+"."+format)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// RemoveExport deletes a written file (saga compensation).
func (a *RenderActivities) RemoveExport(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	slog.InfoContext(ctx, "export removed (saga compensation)", "path", path)
	return nil
}

// AnnounceBatch broadcasts the batch summary to live clients.
func (a *RenderActivities) AnnounceBatch(ctx context.Context, res RenderBatchResult) error {
	if a.Publisher == nil {
		slog.InfoContext(ctx, "batch rendered (no publisher)", "rendered", res.Rendered, "files", len(res.Files))
		return nil
	}
	return a.Publisher.PublishBroadcast(ctx, res.summary())
}

// permanent marks validation and not-found failures as not worth retrying.
func permanent(err error) error {
	if errors.Is(err, domain.ErrNotFound) || domain.IsValidation(err) {
		return temporal.NewNonRetryableApplicationError(err.Error(), "Permanent", err)
	}
	return err
}
