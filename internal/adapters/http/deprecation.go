package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DeprecatedRoute marks an endpoint as deprecated with sunset date.
type DeprecatedRoute struct {
	Path        string    // Route pattern, ":name" segments match anything
	SunsetDate  time.Time // Date when endpoint will be removed
	Alternative string    // Recommended alternative endpoint (optional)
}

// DeprecationMiddleware adds Deprecation, Sunset, and Link headers to deprecated endpoints.
func DeprecationMiddleware(deprecated []DeprecatedRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, d := range deprecated {
			if matchPattern(c.Path(), d.Path) {
				markDeprecated(c, d.SunsetDate, d.Alternative)
				break
			}
		}
		return c.Next()
	}
}

// markDeprecated sets the RFC 8594 headers on the current response. Input
// features (not only routes) use it too, e.g. legacy file keys.
func markDeprecated(c *fiber.Ctx, sunset time.Time, alternative string) {
	c.Set("Deprecation", "true")
	c.Set("Sunset", sunset.UTC().Format(time.RFC1123))
	if alternative != "" {
		c.Set("Link", fmt.Sprintf(`<%s>; rel="successor-version"`, alternative))
	}
	days := time.Until(sunset).Hours() / 24
	c.Set("Warning", fmt.Sprintf(`299 - "Deprecated, will sunset in %.0f days"`, days))
}

// matchPattern reports whether path matches a route pattern such as
// "/v1/profiles/:id/chart".
func matchPattern(path, pattern string) bool {
	if path == pattern {
		return true
	}
	ps := strings.Split(strings.Trim(path, "/"), "/")
	qs := strings.Split(strings.Trim(pattern, "/"), "/")
	if len(ps) != len(qs) {
		return false
	}
	for i, q := range qs {
		if strings.HasPrefix(q, ":") {
			if ps[i] == "" {
				return false
			}
			continue
		}
		if q != ps[i] {
			return false
		}
	}
	return true
}
