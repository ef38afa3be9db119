package geometry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

// KeyVerticals returns a vertical at every point named after one of the style's
// key waypoints, built exactly like a grid vertical. Ids carry the point's
// position in distance order, so repeated names stay distinct. s must come
// from ResolveStyle.
func KeyVerticals(m Mapper, pts []domain.ProfilePoint, s domain.StyleConfig) []domain.Feature {
	var out []domain.Feature
	for i, p := range SortedPoints(pts) {
		name := strings.ToUpper(strings.TrimSpace(p.Name()))
		if name == "" || !slices.Contains(s.KeyWaypoints, name) {
			continue
		}
		foot := domain.Coord{X: m.X(p.DistanceNM), Y: m.Baseline()}
		f := vertical(m, foot, s.KeyVerticalHeightM, fmt.Sprintf("key_%d_%s", i+1, name), "key", name, domain.LayerKeyVerticals)
		f.Remarks = strings.TrimSpace(p.Name())
		out = append(out, f)
	}
	return out
}
