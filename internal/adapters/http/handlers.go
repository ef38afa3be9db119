package http

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/aeroprofile/internal/adapters/export"
	"github.com/samirrijal/aeroprofile/internal/adapters/profilejson"
	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/core/geometry"
)

// legacyOriginSunset is when files keyed by reference_point stop being accepted.
var legacyOriginSunset = time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)

// GenerateResponse is the result of an ad-hoc generation.
type GenerateResponse struct {
	*domain.ChartEvent
	Notices []profilejson.Notice `json:"notices,omitempty"`
}

// ValidateResponse reports every problem found in an uploaded file.
type ValidateResponse struct {
	Valid    bool                     `json:"valid"`
	Fields   []profilejson.FieldError `json:"fields,omitempty"`
	Error    string                   `json:"error,omitempty"`
	Warnings []domain.Warning         `json:"warnings,omitempty"`
	Notices  []profilejson.Notice     `json:"notices,omitempty"`
}

// decodeDocument reads a profile configuration file. With ?strict=true the
// form-level range checks are applied as well.
func decodeDocument(c *fiber.Ctx, deps *Dependencies, data []byte) (*profilejson.Result, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, domain.Malformed("body", "a profile configuration is required")
	}
	res, err := profilejson.Decode(data, profilejson.WithDefaultExaggeration(deps.DefaultExaggeration))
	if err != nil {
		return nil, err
	}
	if res.HasNotice(profilejson.NoticeLegacyOrigin) {
		markDeprecated(c, legacyOriginSunset, "origin_point")
	}
	if c.QueryBool("strict", false) {
		if err := profilejson.ValidateDocument(res.Config); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// GenerateHandler builds the geometry of an uploaded profile. The format query
// selects json (default, also handed off to the broker), geojson or pdf.
func GenerateHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := decodeDocument(c, deps, c.Body())
		if err != nil {
			return writeError(c, err)
		}
		ctx := c.UserContext()

		switch format := strings.ToLower(c.Query("format", "json")); format {
		case "json":
			ev, err := deps.Charts.Render(ctx, "", "", res.Config, res.Style)
			if err != nil {
				return writeError(c, err)
			}
			return c.JSON(GenerateResponse{ChartEvent: ev, Notices: res.Notices})
		case "geojson", "pdf":
			set, err := deps.Charts.Generate(ctx, res.Config, res.Style)
			if err != nil {
				return writeError(c, err)
			}
			if format == "geojson" {
				return sendGeoJSON(c, set)
			}
			tbl := geometry.DistanceAltitudeTable(res.Config.Runway, res.Config.Points, geometry.DefaultTableLayout)
			return sendPDF(c, set, "RWY "+res.Config.Runway.Direction, &tbl, "")
		default:
			return errBadRequest(c, "format must be json, geojson or pdf")
		}
	}
}

// ValidateHandler checks an uploaded profile without generating output.
func ValidateHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := decodeDocument(c, deps, c.Body())
		if err != nil {
			return writeError(c, err)
		}
		out := ValidateResponse{Valid: true, Notices: res.Notices}
		if err := profilejson.ValidateDocument(res.Config); err != nil {
			if verrs, ok := err.(profilejson.ValidationErrors); ok {
				out.Fields = verrs
			}
			out.Valid = false
		}
		set, err := geometry.Generate(res.Config, res.Style)
		if err != nil {
			out.Valid = false
			out.Error = err.Error()
		} else {
			out.Warnings = set.Warnings
		}
		return c.JSON(out)
	}
}

func sendGeoJSON(c *fiber.Ctx, set *domain.GeometrySet) error {
	data, err := export.GeoJSON(set)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(data)
}

func sendPDF(c *fiber.Ctx, set *domain.GeometrySet, title string, tbl *domain.Table, filename string) error {
	var buf bytes.Buffer
	if err := export.PDF(&buf, set, export.PDFOptions{Title: title, Table: tbl}); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	if filename != "" {
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	}
	return c.Send(buf.Bytes())
}
