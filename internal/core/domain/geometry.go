package domain

import "time"

// Kind is the geometry type of a Feature.
type Kind string

const (
	KindPoint   Kind = "point"
	KindLine    Kind = "line"
	KindPolygon Kind = "polygon"
)

// Target layers understood by the layer-insertion side.
const (
	LayerPointSymbol  = "profile_point_symbol"
	LayerCartoLabel   = "profile_carto_label"
	LayerLine         = "profile_line"
	LayerDist         = "profile_dist"
	LayerMOCA         = "profile_MOCA"
	LayerBaseline     = "profile_baseline"
	LayerKeyVerticals = "profile_key_verticals"
	LayerScaleLines   = "vertical_scale"
	LayerScaleLabels  = "carto_vertical_scale_label"
)

// Feature is one output geometry with its attributes.
type Feature struct {
	Kind     Kind    `json:"kind"`
	Coords   []Coord `json:"coordinates"`
	ID       string  `json:"id"`
	Symbol   string  `json:"symbol"`
	TxtLabel string  `json:"txt_label"`
	Remarks  string  `json:"remarks"`
	Layer    string  `json:"layer"`
	Rotation float64 `json:"rotation,omitempty"`
	Size     int     `json:"size,omitempty"`
}

// Warning is a recoverable condition reported alongside a GeometrySet.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Warning codes.
const (
	WarnAxisMaxBelowProfile = "axis_max_below_profile"
	WarnProfileLineSkipped  = "profile_line_skipped"
	WarnRunwayZeroLength    = "runway_zero_length"
	WarnTCHIgnored          = "tch_ignored"
)

// GeometrySet is the complete output of one generation call.
type GeometrySet struct {
	Points   []Feature `json:"point"`
	Lines    []Feature `json:"line"`
	Polygons []Feature `json:"polygon"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Add appends f to the list matching its kind.
func (g *GeometrySet) Add(fs ...Feature) {
	for _, f := range fs {
		switch f.Kind {
		case KindPoint:
			g.Points = append(g.Points, f)
		case KindLine:
			g.Lines = append(g.Lines, f)
		case KindPolygon:
			g.Polygons = append(g.Polygons, f)
		}
	}
}

// Warn records a recoverable condition.
func (g *GeometrySet) Warn(code, msg string) {
	g.Warnings = append(g.Warnings, Warning{Code: code, Message: msg})
}

// ByKind returns the features of one kind.
func (g *GeometrySet) ByKind(k Kind) []Feature {
	switch k {
	case KindPoint:
		return g.Points
	case KindLine:
		return g.Lines
	case KindPolygon:
		return g.Polygons
	}
	return nil
}

// Features returns all features in point, line, polygon order.
func (g *GeometrySet) Features() []Feature {
	out := make([]Feature, 0, g.Len())
	out = append(out, g.Points...)
	out = append(out, g.Lines...)
	return append(out, g.Polygons...)
}

// Len returns the total feature count.
func (g *GeometrySet) Len() int {
	return len(g.Points) + len(g.Lines) + len(g.Polygons)
}

// WithSymbol returns the features carrying the given symbol, in output order.
func (g *GeometrySet) WithSymbol(symbol string) []Feature {
	var out []Feature
	for _, f := range g.Features() {
		if f.Symbol == symbol {
			out = append(out, f)
		}
	}
	return out
}

// ChartEvent is the bulk hand-off message for one generated set.
type ChartEvent struct {
	ProfileID   string       `json:"profile_id,omitempty"`
	ProfileName string       `json:"profile_name,omitempty"`
	Fingerprint string       `json:"fingerprint"`
	GeneratedAt time.Time    `json:"generated_at"`
	Geometry    *GeometrySet `json:"geometry"`
}

// Table is a rendered distance/altitude table.
type Table struct {
	Rows         [][]string `json:"rows"`
	ColumnWidths []float64  `json:"column_widths,omitempty"`
}
