package http

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/aeroprofile/internal/adapters/profilejson"
	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

// ProfileRequest is the body of profile create and update calls.
type ProfileRequest struct {
	Name    string          `json:"name"`
	Profile json.RawMessage `json:"profile"` // a profile configuration file
}

// ImportRequest is the body of a bulk import.
type ImportRequest struct {
	Profiles []ProfileRequest `json:"profiles"`
}

func (r ProfileRequest) toProfile(c *fiber.Ctx, deps *Dependencies) (*domain.Profile, []profilejson.Notice, error) {
	res, err := decodeDocument(c, deps, r.Profile)
	if err != nil {
		return nil, nil, err
	}
	return &domain.Profile{Name: r.Name, Config: res.Config, Style: res.Style}, res.Notices, nil
}

func parseProfileRequest(c *fiber.Ctx) (ProfileRequest, error) {
	var req ProfileRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return req, domain.Malformed("body", "invalid JSON: %v", err)
	}
	return req, nil
}

// ListProfilesHandler returns stored profile summaries, newest first.
func ListProfilesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pg := pageFromQuery(c)
		ctx := c.UserContext()
		items, err := deps.Profiles.List(ctx, pg.Limit, pg.Offset)
		if err != nil {
			return writeError(c, err)
		}
		pg.Total, err = deps.Profiles.Count(ctx)
		if err != nil {
			return writeError(c, err)
		}
		if items == nil {
			items = []domain.ProfileSummary{}
		}

		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: items, Pagination: pg})
	}
}

// CreateProfileHandler stores a new named profile.
func CreateProfileHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := parseProfileRequest(c)
		if err != nil {
			return writeError(c, err)
		}
		p, _, err := req.toProfile(c, deps)
		if err != nil {
			return writeError(c, err)
		}
		if err := deps.Profiles.Create(c.UserContext(), p); err != nil {
			return writeError(c, err)
		}
		c.Location("/v1/profiles/" + p.ID)
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// ImportProfilesHandler stores many profiles at once; none are stored if one fails.
func ImportProfilesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ImportRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return errBadRequest(c, "invalid JSON: "+err.Error())
		}
		if len(req.Profiles) == 0 {
			return errBadRequest(c, "profiles must not be empty")
		}
		ps := make([]domain.Profile, 0, len(req.Profiles))
		for i, r := range req.Profiles {
			p, _, err := r.toProfile(c, deps)
			if err != nil {
				return writeError(c, fmt.Errorf("profiles[%d]: %w", i, err))
			}
			ps = append(ps, *p)
		}
		ids, err := deps.Profiles.Import(c.UserContext(), ps)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ids": ids})
	}
}

// GetProfileHandler returns one stored profile.
func GetProfileHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := deps.Profiles.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(p)
	}
}

// ProfileFileHandler downloads a stored profile as a configuration file.
func ProfileFileHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := deps.Profiles.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		meta := &profilejson.Metadata{Created: p.CreatedAt.Format(profilejson.TimeLayout)}
		data, err := profilejson.Encode(p.Config, p.Style, meta, p.UpdatedAt)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		c.Attachment(profilejson.DefaultFilename(p.Config.Runway.Direction, p.UpdatedAt))
		return c.Send(data)
	}
}

// UpdateProfileHandler replaces a stored profile.
func UpdateProfileHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := parseProfileRequest(c)
		if err != nil {
			return writeError(c, err)
		}
		p, _, err := req.toProfile(c, deps)
		if err != nil {
			return writeError(c, err)
		}
		p.ID = c.Params("id")
		if err := deps.Profiles.Update(c.UserContext(), p); err != nil {
			return writeError(c, err)
		}
		return c.JSON(p)
	}
}

// DeleteProfileHandler removes a stored profile.
func DeleteProfileHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Profiles.Delete(c.UserContext(), c.Params("id")); err != nil {
			return writeError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RenderProfileHandler generates a stored profile and hands it off.
func RenderProfileHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ev, err := deps.Profiles.Render(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(ev)
	}
}

// ProfileTableHandler returns the distance/altitude table of a stored profile.
func ProfileTableHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tbl, err := deps.Profiles.Table(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(tbl)
	}
}

// ProfileGeoJSONHandler exports a stored profile as GeoJSON.
func ProfileGeoJSONHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, set, err := deps.Profiles.Geometry(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return sendGeoJSON(c, set)
	}
}

// ProfilePDFHandler renders a stored profile as a PDF preview with its table.
func ProfilePDFHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		p, set, err := deps.Profiles.Geometry(ctx, c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		tbl, err := deps.Profiles.Table(ctx, p.ID)
		if err != nil {
			return writeError(c, err)
		}
		return sendPDF(c, set, p.Name, &tbl, p.ID+".pdf")
	}
}
