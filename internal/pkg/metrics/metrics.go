package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aeroprofile",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "aeroprofile",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "aeroprofile",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Chart generation metrics
	ChartsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aeroprofile",
		Subsystem: "chart",
		Name:      "generated_total",
		Help:      "Total geometry sets generated, by outcome",
	}, []string{"outcome"})

	ChartWarnings = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aeroprofile",
		Subsystem: "chart",
		Name:      "warnings_total",
		Help:      "Recoverable generation warnings, by code",
	}, []string{"code"})

	ChartFeatures = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "aeroprofile",
		Subsystem: "chart",
		Name:      "features",
		Help:      "Number of features per generated set",
		Buckets:   prometheus.ExponentialBuckets(8, 2, 8),
	})

	ChartGenerateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "aeroprofile",
		Subsystem: "chart",
		Name:      "generate_duration_seconds",
		Help:      "Duration of a single generation call",
		Buckets:   []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})

	ChartsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aeroprofile",
		Subsystem: "chart",
		Name:      "published_total",
		Help:      "Geometry sets handed off to the broker, by outcome",
	}, []string{"outcome"})

	ChartsExported = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aeroprofile",
		Subsystem: "export",
		Name:      "files_total",
		Help:      "Exported chart files, by format",
	}, []string{"format"})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "aeroprofile",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket connections",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aeroprofile",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aeroprofile",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})

	// Database pool metrics
	DBPoolConnsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "aeroprofile",
		Subsystem: "db",
		Name:      "pool_conns_open",
		Help:      "Total connections open in the database pool",
	})

	DBPoolConnsAcquired = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "aeroprofile",
		Subsystem: "db",
		Name:      "pool_conns_acquired",
		Help:      "Connections currently acquired from the database pool",
	})

	DBPoolConnsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "aeroprofile",
		Subsystem: "db",
		Name:      "pool_conns_idle",
		Help:      "Idle connections in the database pool",
	})
)

// normalizePath reduces path cardinality by collapsing stored ids to :id.
func normalizePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if strings.HasPrefix(p, "profile_") || strings.HasPrefix(p, "vscale_") {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

// Middleware records request count, latency and response size per route.
// Unmatched paths fall back to the normalized URL.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		if route == "" || route == "/" {
			route = normalizePath(c.Path())
		}
		method := c.Method()
		httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().StatusCode())).Inc()
		httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		httpResponseSize.WithLabelValues(method, route).Observe(float64(len(c.Response().Body())))
		return err
	}
}

// Handler serves the Prometheus registry through fiber.
func Handler() fiber.Handler {
	serve := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		serve(c.Context())
		return nil
	}
}

// PoolStat is the subset of pgxpool.Stat the pool gauges read.
type PoolStat interface {
	AcquiredConns() int32
	IdleConns() int32
	TotalConns() int32
}

// UpdateDBPoolMetrics copies a pool snapshot into the db gauges.
func UpdateDBPoolMetrics(s PoolStat) {
	DBPoolConnsAcquired.Set(float64(s.AcquiredConns()))
	DBPoolConnsIdle.Set(float64(s.IdleConns()))
	DBPoolConnsOpen.Set(float64(s.TotalConns()))
}
