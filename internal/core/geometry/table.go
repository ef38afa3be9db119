package geometry

import (
	"strconv"
	"strings"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

// TableLayout sizes a distance/altitude table in layout millimetres.
type TableLayout struct {
	TotalWidth    float64
	FirstColWidth float64
	Stroke        float64
	CellMargin    float64
}

// DefaultTableLayout matches the standard chart table frame.
var DefaultTableLayout = TableLayout{TotalWidth: 180.2, FirstColWidth: 36.2, Stroke: 0.25, CellMargin: 2}

// DistanceAltitudeTable builds the two-row table printed under the profile:
// distances to the threshold and the altitude at each point, in distance order.
func DistanceAltitudeTable(rw domain.RunwaySpec, pts []domain.ProfilePoint, layout TableLayout) domain.Table {
	sorted := SortedPoints(pts)
	dist := make([]string, 0, len(sorted)+1)
	alt := make([]string, 0, len(sorted)+1)
	dist = append(dist, "NM TO RWY"+thresholdDesignator(rw.Direction))
	alt = append(alt, "ALTITUDE")
	for _, p := range sorted {
		dist = append(dist, fmtNM(p.DistanceNM))
		alt = append(alt, strconv.FormatFloat(p.AltitudeFT, 'f', -1, 64))
	}
	return domain.Table{
		Rows:         [][]string{dist, alt},
		ColumnWidths: ColumnWidths(layout, len(dist)),
	}
}

// ColumnWidths gives the first column its fixed width and shares what is left,
// after strokes and cell margins, evenly among the others. When nothing is left
// every column gets an even share of the total.
func ColumnWidths(l TableLayout, columns int) []float64 {
	switch {
	case columns < 1:
		return nil
	case columns == 1:
		return []float64{l.TotalWidth}
	}
	extra := float64(columns-1)*l.Stroke + 2*l.CellMargin*float64(columns)
	remaining := l.TotalWidth - l.FirstColWidth - extra
	out := make([]float64, columns)
	if remaining <= 0 {
		for i := range out {
			out[i] = l.TotalWidth / float64(columns)
		}
		return out
	}
	out[0] = l.FirstColWidth
	for i := 1; i < columns; i++ {
		out[i] = remaining / float64(columns-1)
	}
	return out
}

// thresholdDesignator returns the landing end of a "09/27" direction, "00" when unset.
func thresholdDesignator(direction string) string {
	d, _, _ := strings.Cut(strings.TrimSpace(direction), "/")
	if d == "" {
		return "00"
	}
	return d
}
