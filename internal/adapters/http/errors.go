package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/aeroprofile/internal/adapters/profilejson"
	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int                      `json:"status"`
	Code      string                   `json:"code"`    // bad_request, invalid_input, not_found, internal_error
	Message   string                   `json:"message"` // Human-readable message
	Fields    []profilejson.FieldError `json:"fields,omitempty"`
	RequestID string                   `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: requestID(c),
	})
}

func requestID(c *fiber.Ctx) string {
	reqID, _ := c.Locals("requestid").(string)
	return reqID
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// writeError maps a service error to its HTTP response. Malformed input is a
// 400, a well-formed but unusable profile a 422.
func writeError(c *fiber.Ctx, err error) error {
	var verrs profilejson.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(APIError{
			Status:    fiber.StatusUnprocessableEntity,
			Code:      "invalid_input",
			Message:   "validation failed",
			Fields:    verrs,
			RequestID: requestID(c),
		})
	case errors.Is(err, domain.ErrMalformedInput):
		return newError(c, fiber.StatusBadRequest, "invalid_input", err.Error())
	case domain.IsValidation(err):
		return newError(c, fiber.StatusUnprocessableEntity, "invalid_input", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return errNotFound(c, err.Error())
	}
	LoggerFromCtx(c.UserContext()).Error("request failed", "path", c.Path(), "error", err)
	return errInternal(c, "internal error")
}
