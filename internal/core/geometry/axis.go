package geometry

import (
	"fmt"
	"math"
	"strconv"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

const axisLabelSize = 9

// Axis returns the baseline, one tick per whole NM, the optional grid verticals and
// the axis labels. s must come from ResolveStyle.
//
// Ticks hang below the baseline. Grid verticals rise above it, built like key
// verticals. Tick, grid and label offsets are raw sizes divided by the vertical
// exaggeration.
func Axis(m Mapper, s domain.StyleConfig) []domain.Feature {
	base := m.Baseline()
	n := int(math.Floor(s.AxisMaxNM))

	out := make([]domain.Feature, 0, 2+3*(n+1))
	out = append(out, domain.Feature{
		Kind: domain.KindLine,
		Coords: []domain.Coord{
			{X: m.X(0), Y: base},
			{X: m.X(s.AxisMaxNM), Y: base},
		},
		ID:      "baseline",
		Symbol:  "baseline",
		Remarks: "Baseline",
		Layer:   domain.LayerBaseline,
	})

	for i := 0; i <= n; i++ {
		foot := domain.Coord{X: m.X(float64(i)), Y: base}
		out = append(out, domain.Feature{
			Kind:     domain.KindLine,
			Coords:   []domain.Coord{foot, m.Lift(foot, -s.TickHeightM)},
			ID:       fmt.Sprintf("tick_%d", i),
			Symbol:   "tick",
			TxtLabel: strconv.Itoa(i),
			Remarks:  "Origin",
			Layer:    domain.LayerDist,
		})
		if s.ShowGrid {
			out = append(out, vertical(m, foot, s.GridHeightM, fmt.Sprintf("grid_%d", i), "grid", strconv.Itoa(i), domain.LayerDist))
		}
	}

	for i := 0; i <= n; i++ {
		out = append(out, domain.Feature{
			Kind:     domain.KindPoint,
			Coords:   []domain.Coord{m.Lift(domain.Coord{X: m.X(float64(i)), Y: base}, -(s.TickHeightM + s.LabelGapM))},
			ID:       fmt.Sprintf("axis_%d", i),
			Symbol:   "axis",
			TxtLabel: AxisLabelText(i, s.AxisMaxNM, s.AxisReverseLabels),
			Layer:    domain.LayerCartoLabel,
			Size:     axisLabelSize,
		})
	}
	return out
}

// AxisLabelText is the displayed text of the label at whole NM i. Reverse mode
// counts down from the axis end; it never moves the label.
func AxisLabelText(i int, axisMaxNM float64, reverse bool) string {
	if reverse {
		return fmtNM(axisMaxNM - float64(i))
	}
	return strconv.Itoa(i)
}

// vertical builds a segment rising from foot by a nominal raw height.
func vertical(m Mapper, foot domain.Coord, rawHeightM float64, id, symbol, label, layer string) domain.Feature {
	return domain.Feature{
		Kind:     domain.KindLine,
		Coords:   []domain.Coord{foot, m.Lift(foot, rawHeightM)},
		ID:       id,
		Symbol:   symbol,
		TxtLabel: label,
		Layer:    layer,
	}
}
