package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/aeroprofile/internal/pkg/metrics"
)

// requestTimeout bounds every /v1 handler. PDF rendering of a long profile is
// the slowest path.
const requestTimeout = 15 * time.Second

// deprecatedRoutes are aliases kept for older plugin builds.
var deprecatedRoutes = []DeprecatedRoute{
	{Path: "/v1/charts", SunsetDate: time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC), Alternative: "/v1/generate"},
	{Path: "/v1/profiles/:id/chart", SunsetDate: time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC), Alternative: "/v1/profiles/:id/render"},
}

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	// Generation is CPU bound; 120 requests per minute per IP.
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
	}))

	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	app.Use(DeprecationMiddleware(deprecatedRoutes))
	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	v1 := app.Group("/v1")
	with := func(h fiber.Handler) fiber.Handler {
		return timeout.NewWithContext(h, requestTimeout)
	}

	// Ad-hoc generation from an uploaded configuration file
	v1.Post("/generate", with(GenerateHandler(deps)))
	v1.Post("/validate", with(ValidateHandler(deps)))
	v1.Post("/charts", with(GenerateHandler(deps)))

	// Stored profiles
	v1.Get("/profiles", with(ListProfilesHandler(deps)))
	v1.Post("/profiles", with(CreateProfileHandler(deps)))
	v1.Post("/profiles/import", with(ImportProfilesHandler(deps)))
	v1.Get("/profiles/:id", with(GetProfileHandler(deps)))
	v1.Put("/profiles/:id", with(UpdateProfileHandler(deps)))
	v1.Delete("/profiles/:id", with(DeleteProfileHandler(deps)))
	v1.Get("/profiles/:id/file", with(ProfileFileHandler(deps)))
	v1.Get("/profiles/:id/table", with(ProfileTableHandler(deps)))
	v1.Get("/profiles/:id/geojson", with(ProfileGeoJSONHandler(deps)))
	v1.Get("/profiles/:id/pdf", with(ProfilePDFHandler(deps)))
	v1.Post("/profiles/:id/render", with(RenderProfileHandler(deps)))
	v1.Post("/profiles/:id/chart", with(RenderProfileHandler(deps)))

	// Vertical scale bars
	v1.Get("/vertical-scales", with(ListScalesHandler(deps)))
	v1.Post("/vertical-scales", with(CreateScaleHandler(deps)))
	v1.Post("/vertical-scales/preview", with(PreviewScaleHandler(deps)))
	v1.Get("/vertical-scales/:id", with(GetScaleHandler(deps)))
	v1.Delete("/vertical-scales/:id", with(DeleteScaleHandler(deps)))
	v1.Get("/vertical-scales/:id/geometry", with(ScaleGeometryHandler(deps)))

	app.Post("/graphql", GraphQLHandler(deps))

	SetupDocs(app)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
