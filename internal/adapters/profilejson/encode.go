package profilejson

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

type fileCoord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type fileRunway struct {
	Direction    string  `json:"direction"`
	Length       float64 `json:"length"`
	ThrElevation float64 `json:"thr_elevation"`
	TCHRDH       float64 `json:"tch_rdh"`
}

type filePoint struct {
	PointName    string   `json:"point_name"`
	WaypointName string   `json:"waypoint_name,omitempty"`
	DistanceNM   float64  `json:"distance_nm"`
	ElevationFT  float64  `json:"elevation_ft"`
	MOCAFT       *float64 `json:"moca_ft,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

type fileSpan struct {
	FromNM float64  `json:"from_nm"`
	ToNM   float64  `json:"to_nm"`
	OCAFT  *float64 `json:"oca_ft,omitempty"`
	MOCAFT *float64 `json:"moca_ft,omitempty"`
}

type fileStyle struct {
	VerticalExaggeration float64  `json:"vertical_exaggeration"`
	AxisMaxNM            float64  `json:"axis_max_nm"`
	HorizontalScale      float64  `json:"horizontal_scale,omitempty"`
	AxisReverseLabels    bool     `json:"axis_reverse_labels"`
	ShowGrid             bool     `json:"show_grid"`
	ShowSlopeLabels      bool     `json:"show_slope_labels"`
	TickHeightM          float64  `json:"tick_height_m,omitempty"`
	LabelGapM            float64  `json:"label_gap_m,omitempty"`
	GridHeightM          float64  `json:"grid_height_m,omitempty"`
	KeyVerticalHeightM   float64  `json:"key_vertical_height_m,omitempty"`
	KeyWaypoints         []string `json:"key_waypoints,omitempty"`
}

type fileDocument struct {
	Metadata       Metadata    `json:"metadata"`
	OriginPoint    fileCoord   `json:"origin_point"`
	ReferencePoint fileCoord   `json:"reference_point"`
	Runway         fileRunway  `json:"runway"`
	ProfilePoints  []filePoint `json:"profile_points"`
	Style          fileStyle   `json:"style"`
	MOCASegments   []fileSpan  `json:"moca_segments"`
	OCA            *fileSpan   `json:"oca,omitempty"`
	OCASegments    []fileSpan  `json:"oca_segments"`
}

// Encode writes cfg and style as a current-version file. The origin is written
// under both origin_point and reference_point so older readers still load it.
// meta may be nil; its creation time is kept when present.
func Encode(cfg domain.ProfileConfig, style domain.StyleConfig, meta *Metadata, now time.Time) ([]byte, error) {
	stamp := now.Format(TimeLayout)
	md := Metadata{Version: ConfigVersion, Created: stamp, Modified: stamp, PluginVersion: WriterVersion}
	if meta != nil && meta.Created != "" {
		md.Created = meta.Created
	}

	origin := fileCoord{X: cfg.Origin.X, Y: cfg.Origin.Y}
	doc := fileDocument{
		Metadata:       md,
		OriginPoint:    origin,
		ReferencePoint: origin,
		Runway: fileRunway{
			Direction:    cfg.Runway.Direction,
			Length:       cfg.Runway.LengthM,
			ThrElevation: cfg.Runway.ThresholdElevationFT,
			TCHRDH:       cfg.Runway.TCHM,
		},
		ProfilePoints: make([]filePoint, 0, len(cfg.Points)),
		Style: fileStyle{
			VerticalExaggeration: style.VerticalExaggeration,
			AxisMaxNM:            style.AxisMaxNM,
			HorizontalScale:      style.HorizontalScale,
			AxisReverseLabels:    style.AxisReverseLabels,
			ShowGrid:             style.ShowGrid,
			ShowSlopeLabels:      !style.HideSlopeLabels,
			TickHeightM:          style.TickHeightM,
			LabelGapM:            style.LabelGapM,
			GridHeightM:          style.GridHeightM,
			KeyVerticalHeightM:   style.KeyVerticalHeightM,
			KeyWaypoints:         style.KeyWaypoints,
		},
		MOCASegments: make([]fileSpan, 0, len(cfg.MOCASegments)),
		OCASegments:  make([]fileSpan, 0, len(cfg.OCASegments)),
	}
	for _, p := range cfg.Points {
		doc.ProfilePoints = append(doc.ProfilePoints, filePoint{
			PointName:    p.Label,
			WaypointName: p.WaypointName,
			DistanceNM:   p.DistanceNM,
			ElevationFT:  p.AltitudeFT,
			MOCAFT:       p.MOCAFT,
			Notes:        p.Notes,
		})
	}
	for _, s := range cfg.MOCASegments {
		h := s.HeightFT
		doc.MOCASegments = append(doc.MOCASegments, fileSpan{FromNM: s.FromNM, ToNM: s.ToNM, MOCAFT: &h})
	}
	for _, s := range cfg.OCASegments {
		h := s.HeightFT
		doc.OCASegments = append(doc.OCASegments, fileSpan{FromNM: s.FromNM, ToNM: s.ToNM, OCAFT: &h})
	}
	if cfg.OCA != nil {
		h := cfg.OCA.HeightFT
		doc.OCA = &fileSpan{FromNM: cfg.OCA.FromNM, ToNM: cfg.OCA.ToNM, OCAFT: &h}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return data, nil
}

// DefaultFilename is the suggested name for a saved configuration.
func DefaultFilename(direction string, now time.Time) string {
	dir := strings.ReplaceAll(strings.TrimSpace(direction), "/", "-")
	if dir == "" {
		dir = "profile"
	}
	return fmt.Sprintf("profile_%s_%s.json", dir, now.Format("20060102_150405"))
}
