package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

// ScaleRequest is the body of a vertical scale create call.
type ScaleRequest struct {
	Name string                   `json:"name"`
	Spec domain.VerticalScaleSpec `json:"spec"`
}

// ListScalesHandler returns every stored scale bar.
func ListScalesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scales, err := deps.Scales.List(c.UserContext())
		if err != nil {
			return writeError(c, err)
		}
		if scales == nil {
			scales = []domain.VerticalScale{}
		}
		return c.JSON(scales)
	}
}

// CreateScaleHandler stores a new scale bar.
func CreateScaleHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ScaleRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return errBadRequest(c, "invalid JSON: "+err.Error())
		}
		vs := &domain.VerticalScale{Name: req.Name, Spec: req.Spec}
		if err := deps.Scales.Create(c.UserContext(), vs); err != nil {
			return writeError(c, err)
		}
		c.Location("/v1/vertical-scales/" + vs.ID)
		return c.Status(fiber.StatusCreated).JSON(vs)
	}
}

// GetScaleHandler returns one stored scale bar.
func GetScaleHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vs, err := deps.Scales.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(vs)
	}
}

// DeleteScaleHandler removes a stored scale bar.
func DeleteScaleHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Scales.Delete(c.UserContext(), c.Params("id")); err != nil {
			return writeError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ScaleGeometryHandler builds a stored scale bar, as JSON or with
// ?format=geojson.
func ScaleGeometryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		set, err := deps.Scales.Build(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		if c.Query("format") == "geojson" {
			return sendGeoJSON(c, set)
		}
		return c.JSON(set)
	}
}

// PreviewScaleHandler builds a scale bar from the posted spec without storing it.
func PreviewScaleHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var spec domain.VerticalScaleSpec
		if err := json.Unmarshal(c.Body(), &spec); err != nil {
			return errBadRequest(c, "invalid JSON: "+err.Error())
		}
		set, err := deps.Scales.Preview(spec)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(set)
	}
}
