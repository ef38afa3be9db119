package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/core/geometry"
	"github.com/samirrijal/aeroprofile/internal/core/ports"
	"github.com/samirrijal/aeroprofile/internal/pkg/metrics"
	"github.com/samirrijal/aeroprofile/internal/pkg/telemetry"
)

var tracer = otel.Tracer("github.com/samirrijal/aeroprofile/internal/core/usecases")

// ChartOptions tunes ChartService.
type ChartOptions struct {
	CacheTTL int  // seconds; 0 disables caching
	Publish  bool // hand generated sets to the broker

	// Defaults fill unset decoration sizes and key waypoints of incoming styles.
	// The vertical exaggeration and axis length are never taken from here.
	Defaults domain.StyleConfig
}

// ChartService runs the geometry pipeline with caching and hand-off.
type ChartService struct {
	cache     ports.CacheService
	publisher ports.ChartPublisher
	opts      ChartOptions
	now       func() time.Time
}

// NewChartService creates a new ChartService. cache and publisher may be nil.
func NewChartService(cache ports.CacheService, publisher ports.ChartPublisher, opts ChartOptions) *ChartService {
	return &ChartService{cache: cache, publisher: publisher, opts: opts, now: time.Now}
}

// Fingerprint identifies a (profile, style) pair. Equal inputs give equal
// geometry, so the fingerprint doubles as cache key and broker dedup id.
// Inputs that cannot be encoded, such as NaN values, have no fingerprint.
func Fingerprint(cfg domain.ProfileConfig, style domain.StyleConfig) (string, error) {
	data, err := json.Marshal(struct {
		Config domain.ProfileConfig `json:"c"`
		Style  domain.StyleConfig   `json:"s"`
	}{cfg, style})
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Fingerprint is the fingerprint Generate and Render use for cfg and style,
// after style defaults are applied.
func (s *ChartService) Fingerprint(cfg domain.ProfileConfig, style domain.StyleConfig) (string, error) {
	return Fingerprint(cfg, s.withDefaults(style))
}

// Generate returns the geometry set for cfg and style.
func (s *ChartService) Generate(ctx context.Context, cfg domain.ProfileConfig, style domain.StyleConfig) (*domain.GeometrySet, error) {
	set, _, err := s.generate(ctx, cfg, s.withDefaults(style))
	return set, err
}

// Render generates a set and, when publishing is enabled, hands it off as one
// ChartEvent. A failed hand-off is logged and does not fail the call.
func (s *ChartService) Render(ctx context.Context, profileID, name string, cfg domain.ProfileConfig, style domain.StyleConfig) (*domain.ChartEvent, error) {
	set, fp, err := s.generate(ctx, cfg, s.withDefaults(style))
	if err != nil {
		return nil, err
	}
	ev := &domain.ChartEvent{
		ProfileID:   profileID,
		ProfileName: name,
		Fingerprint: fp,
		GeneratedAt: s.now().UTC(),
		Geometry:    set,
	}
	// sets without a fingerprint cannot be deduplicated downstream
	if s.opts.Publish && s.publisher != nil && fp != "" {
		if err := s.publisher.PublishChart(ctx, ev); err != nil {
			metrics.ChartsPublished.WithLabelValues("error").Inc()
			slog.ErrorContext(ctx, "publish chart", "profile_id", profileID, "error", err)
		} else {
			metrics.ChartsPublished.WithLabelValues("ok").Inc()
			if data, err := json.Marshal(map[string]any{"profile_id": profileID, "fingerprint": fp, "features": set.Len()}); err == nil {
				_ = s.publisher.PublishBroadcast(ctx, data)
			}
		}
	}
	return ev, nil
}

func (s *ChartService) generate(ctx context.Context, cfg domain.ProfileConfig, style domain.StyleConfig) (*domain.GeometrySet, string, error) {
	ctx, span := tracer.Start(ctx, "ChartService.Generate")
	defer span.End()

	fp, err := Fingerprint(cfg, style)
	if err != nil {
		slog.WarnContext(ctx, "chart not cacheable", "error", err)
	}
	span.SetAttributes(telemetry.AttrFingerprint.String(fp))
	cacheKey := "chart:" + fp
	cacheable := fp != "" && s.cache != nil && s.opts.CacheTTL > 0

	if cacheable {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var set domain.GeometrySet
			if err := json.Unmarshal(data, &set); err == nil {
				metrics.CacheHits.WithLabelValues("chart").Inc()
				span.SetAttributes(telemetry.AttrCacheHit.Bool(true))
				return &set, fp, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("chart").Inc()
	}

	start := time.Now()
	set, err := geometry.Generate(cfg, style)
	metrics.ChartGenerateDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ChartsGenerated.WithLabelValues("invalid").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fp, err
	}

	metrics.ChartsGenerated.WithLabelValues("ok").Inc()
	metrics.ChartFeatures.Observe(float64(set.Len()))
	span.SetAttributes(
		telemetry.AttrCacheHit.Bool(false),
		telemetry.AttrFeatures.Int(set.Len()),
		telemetry.AttrWarnings.Int(len(set.Warnings)),
	)
	for _, w := range set.Warnings {
		metrics.ChartWarnings.WithLabelValues(w.Code).Inc()
		span.AddEvent("warning", trace.WithAttributes(
			attribute.String("code", w.Code),
			attribute.String("message", w.Message),
		))
		slog.WarnContext(ctx, "chart generated with warning", "code", w.Code, "message", w.Message)
	}

	if cacheable {
		if data, err := json.Marshal(set); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.opts.CacheTTL)
		}
	}
	return set, fp, nil
}

func (s *ChartService) withDefaults(style domain.StyleConfig) domain.StyleConfig {
	d := s.opts.Defaults
	if style.TickHeightM == 0 {
		style.TickHeightM = d.TickHeightM
	}
	if style.LabelGapM == 0 {
		style.LabelGapM = d.LabelGapM
	}
	if style.GridHeightM == 0 {
		style.GridHeightM = d.GridHeightM
	}
	if style.KeyVerticalHeightM == 0 {
		style.KeyVerticalHeightM = d.KeyVerticalHeightM
	}
	if len(style.KeyWaypoints) == 0 {
		style.KeyWaypoints = d.KeyWaypoints
	}
	return style
}
