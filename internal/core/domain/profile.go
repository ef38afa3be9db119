package domain

import "time"

// Coord is a planar coordinate in project linear units (metres).
type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ProfilePoint is one distance/altitude fix of the approach profile.
type ProfilePoint struct {
	DistanceNM   float64  `json:"distance_nm"`
	AltitudeFT   float64  `json:"altitude_ft"`
	Label        string   `json:"label,omitempty"`
	WaypointName string   `json:"waypoint_name,omitempty"`
	MOCAFT       *float64 `json:"moca_ft,omitempty"` // legacy per-point clearance to the next point
	Notes        string   `json:"notes,omitempty"`
}

// Name returns the waypoint name, falling back to the label.
func (p ProfilePoint) Name() string {
	if p.WaypointName != "" {
		return p.WaypointName
	}
	return p.Label
}

// RunwaySpec describes the runway drawn behind the threshold.
type RunwaySpec struct {
	Direction            string  `json:"direction,omitempty"`
	LengthM              float64 `json:"length_m"`
	ThresholdElevationFT float64 `json:"thr_elevation_ft,omitempty"`

	// Deprecated: TCHM has no geometric effect and is kept for older configurations.
	TCHM float64 `json:"tch_rdh_m,omitempty"`
}

// Span is an obstacle clearance interval (OCA or MOCA) along the profile axis.
type Span struct {
	FromNM   float64 `json:"from_nm"`
	ToNM     float64 `json:"to_nm"`
	HeightFT float64 `json:"height_ft"`
}

// Normalized returns the span with FromNM <= ToNM.
func (s Span) Normalized() Span {
	if s.FromNM > s.ToNM {
		s.FromNM, s.ToNM = s.ToNM, s.FromNM
	}
	return s
}

// ProfileConfig is the canonical semantic input of a chart.
type ProfileConfig struct {
	Origin       Coord          `json:"origin"`
	Runway       RunwaySpec     `json:"runway"`
	Points       []ProfilePoint `json:"profile_points"`
	OCA          *Span          `json:"oca,omitempty"`
	OCASegments  []Span         `json:"oca_segments,omitempty"`
	MOCASegments []Span         `json:"moca_segments,omitempty"`
}

// MaxDistanceNM returns the largest point distance, 0 for an empty profile.
func (c ProfileConfig) MaxDistanceNM() float64 {
	var max float64
	for _, p := range c.Points {
		if p.DistanceNM > max {
			max = p.DistanceNM
		}
	}
	return max
}

// Style defaults.
const (
	DefaultVerticalExaggeration = 10.0
	DefaultTickHeightM          = 200.0
	DefaultLabelGapM            = 50.0
	DefaultGridHeightM          = 3000.0
	DefaultKeyVerticalHeightM   = 3000.0
	DefaultSlopeLabelLiftM      = 80.0
)

// MaxAxisNM is the longest distance axis a chart may draw.
const MaxAxisNM = 999.0

// DefaultKeyWaypoints are the procedure fixes that get a key vertical.
var DefaultKeyWaypoints = []string{"FAF", "IF", "MAPT", "MAP"}

// StyleConfig is the immutable presentation input of a chart. Zero values of the
// optional sizes mean "use the default"; VerticalExaggeration is never defaulted here.
type StyleConfig struct {
	VerticalExaggeration float64  `json:"vertical_exaggeration"`
	AxisMaxNM            float64  `json:"axis_max_nm"`
	HorizontalScale      float64  `json:"horizontal_scale,omitempty"`
	AxisReverseLabels    bool     `json:"axis_reverse_labels,omitempty"`
	TickHeightM          float64  `json:"tick_height_m,omitempty"`
	LabelGapM            float64  `json:"label_gap_m,omitempty"`
	ShowGrid             bool     `json:"show_grid,omitempty"`
	GridHeightM          float64  `json:"grid_height_m,omitempty"`
	KeyVerticalHeightM   float64  `json:"key_vertical_height_m,omitempty"`
	KeyWaypoints         []string `json:"key_waypoints,omitempty"`
	HideSlopeLabels      bool     `json:"hide_slope_labels,omitempty"`
}

// DefaultStyle returns the historical chart style for the given axis length.
func DefaultStyle(axisMaxNM float64) StyleConfig {
	return StyleConfig{
		VerticalExaggeration: DefaultVerticalExaggeration,
		AxisMaxNM:            axisMaxNM,
		HorizontalScale:      1.0,
		TickHeightM:          DefaultTickHeightM,
		LabelGapM:            DefaultLabelGapM,
		GridHeightM:          DefaultGridHeightM,
		KeyVerticalHeightM:   DefaultKeyVerticalHeightM,
		KeyWaypoints:         DefaultKeyWaypoints,
	}
}

// Profile is a named, stored profile configuration.
type Profile struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Config    ProfileConfig `json:"config"`
	Style     StyleConfig   `json:"style"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ProfileSummary is the list view of a stored profile.
type ProfileSummary struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	RunwayDirection string    `json:"runway_direction"`
	PointCount      int       `json:"point_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// VerticalScaleSpec describes a metres/feet scale bar laid along a guide line.
type VerticalScaleSpec struct {
	GuideStart  Coord   `json:"guide_start"`
	GuideEnd    Coord   `json:"guide_end"`
	Denominator float64 `json:"denominator"`
	Offset      float64 `json:"offset"`
	TickLength  float64 `json:"tick_length"`
	MetersMax   int     `json:"meters_max"`
	MetersStep  int     `json:"meters_step"`
	FeetMax     int     `json:"feet_max"`
	FeetStep    int     `json:"feet_step"`
}

// DefaultVerticalScaleSpec returns the 1:10 000 scale bar along the given guide.
func DefaultVerticalScaleSpec(start, end Coord) VerticalScaleSpec {
	return VerticalScaleSpec{
		GuideStart:  start,
		GuideEnd:    end,
		Denominator: 10000,
		Offset:      -50,
		TickLength:  15,
		MetersMax:   100,
		MetersStep:  25,
		FeetMax:     300,
		FeetStep:    50,
	}
}

// VerticalScale is a named, stored scale bar.
type VerticalScale struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Spec      VerticalScaleSpec `json:"spec"`
	CreatedAt time.Time         `json:"created_at"`
}
