package http

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/aeroprofile/internal/adapters/profilejson"
	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

// OpenAPIPath is where SetupDocs looks for the API contract.
var OpenAPIPath = "api/openapi.yaml"

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Aeroprofile Chart API - Swagger UI</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body style="margin:0">
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({url: '/docs/openapi.yaml', dom_id: '#swagger-ui', deepLinking: true});
  </script>
</body>
</html>`

// templateProfile is the starter document offered at /docs/template.json:
// a runway, its threshold and a final approach fix.
func templateProfile() domain.ProfileConfig {
	return domain.ProfileConfig{
		Runway: domain.RunwaySpec{Direction: "09/27", LengthM: 2500},
		Points: []domain.ProfilePoint{
			{DistanceNM: 0, AltitudeFT: 50, Label: "THR"},
			{DistanceNM: 5, AltitudeFT: 1600, Label: "FAF"},
		},
	}
}

// SetupDocs registers Swagger UI at /docs, the OpenAPI contract at
// /docs/openapi.yaml and a starter profile file at /docs/template.json.
// The contract is read once; a missing file turns the route into a 404.
func SetupDocs(app *fiber.App) {
	spec, err := os.ReadFile(OpenAPIPath)
	if err != nil {
		slog.Warn("openapi contract unavailable", "path", OpenAPIPath, "error", err)
	}

	app.Get("/docs", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(swaggerUIHTML)
	})

	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		if spec == nil {
			return newError(c, fiber.StatusNotFound, "not_found", "openapi contract not available")
		}
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(spec)
	})

	app.Get("/docs/template.json", func(c *fiber.Ctx) error {
		cfg := templateProfile()
		data, err := profilejson.Encode(cfg, domain.DefaultStyle(cfg.MaxDistanceNM()), nil, time.Now())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+profilejson.DefaultFilename(cfg.Runway.Direction, time.Now())+`"`)
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(data)
	})
}
