// Package profilejson reads and writes the versioned profile configuration
// files exchanged with the charting host. It is the only place that knows
// about legacy key spellings; everything it returns is canonical.
package profilejson

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

const (
	ConfigVersion = "2.0"
	WriterVersion = "0.1.0"
)

// TimeLayout is the local ISO timestamp form used in metadata.
const TimeLayout = "2006-01-02T15:04:05"

// Metadata is the file header. Timestamps are kept as written.
type Metadata struct {
	Version       string `json:"version"`
	Created       string `json:"created"`
	Modified      string `json:"modified"`
	PluginVersion string `json:"plugin_version"`
}

// Notice codes.
const (
	NoticeLegacyOrigin    = "legacy_reference_point"
	NoticeVersionMismatch = "version_mismatch"
	NoticeNoMetadata      = "missing_metadata"
)

// Notice is a non-fatal remark about how a file was read.
type Notice struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result is a decoded configuration file.
type Result struct {
	Metadata *Metadata
	Config   domain.ProfileConfig
	Style    domain.StyleConfig
	Notices  []Notice
}

type options struct {
	defaultVE float64
}

// Option customises Decode.
type Option func(*options)

// WithDefaultExaggeration sets the vertical exaggeration used when a file has none.
func WithDefaultExaggeration(ve float64) Option {
	return func(o *options) {
		if ve > 0 {
			o.defaultVE = ve
		}
	}
}

// Decode parses a configuration file. It resolves key aliases and fills the
// vertical exaggeration and axis length when absent; it does not validate ranges.
func Decode(data []byte, opts ...Option) (*Result, error) {
	o := &options{defaultVE: domain.DefaultVerticalExaggeration}
	for _, fn := range opts {
		fn(o)
	}

	var doc object
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, domain.Malformed("document", "invalid JSON: %v", err)
	}
	res := &Result{}

	if raw, _, ok := doc.raw("metadata"); ok {
		var m Metadata
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, domain.Malformed("metadata", "%v", err)
		}
		res.Metadata = &m
		if m.Version != ConfigVersion {
			res.notice(NoticeVersionMismatch, fmt.Sprintf("file version %q, expected %q", m.Version, ConfigVersion))
		}
	} else {
		res.notice(NoticeNoMetadata, "file has no metadata block")
	}

	origin, err := decodeOrigin(doc, res)
	if err != nil {
		return nil, err
	}
	res.Config.Origin = origin

	rawRunway, _, ok := doc.raw("runway")
	if !ok {
		return nil, domain.Malformed("runway", "is required")
	}
	if res.Config.Runway, err = decodeRunway(rawRunway); err != nil {
		return nil, err
	}

	rawPoints, _, ok := doc.raw("profile_points")
	if !ok {
		return nil, domain.Malformed("profile_points", "is required")
	}
	if res.Config.Points, err = decodePoints(rawPoints); err != nil {
		return nil, err
	}

	if raw, _, ok := doc.raw("oca"); ok && !isEmptyObject(raw) {
		s, err := decodeSpan("oca", raw, "oca_ft", "height_ft")
		if err != nil {
			return nil, err
		}
		res.Config.OCA = &s
	}
	if res.Config.OCASegments, err = decodeSpans(doc, "oca_segments", "oca_ft", "height_ft"); err != nil {
		return nil, err
	}
	if res.Config.MOCASegments, err = decodeSpans(doc, "moca_segments", "moca_ft", "height_ft"); err != nil {
		return nil, err
	}

	if res.Style, err = decodeStyle(doc, o, res.Config); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Result) notice(code, msg string) {
	r.Notices = append(r.Notices, Notice{Code: code, Message: msg})
}

// HasNotice reports whether a notice with the given code was raised.
func (r *Result) HasNotice(code string) bool {
	for _, n := range r.Notices {
		if n.Code == code {
			return true
		}
	}
	return false
}

func decodeOrigin(doc object, res *Result) (domain.Coord, error) {
	raw, key, ok := doc.raw("origin_point", "reference_point")
	if !ok {
		return domain.Coord{}, domain.Malformed("origin_point", "is required")
	}
	if key == "reference_point" {
		res.notice(NoticeLegacyOrigin, "reference_point is deprecated, use origin_point")
	}
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return domain.Coord{}, domain.Malformed(key, "must be an object with x and y")
	}
	x, err := obj.number("x")
	if err != nil {
		return domain.Coord{}, domain.Malformed(key+".x", "%v", err)
	}
	y, err := obj.number("y")
	if err != nil {
		return domain.Coord{}, domain.Malformed(key+".y", "%v", err)
	}
	if !x.Set || !y.Set {
		return domain.Coord{}, domain.Malformed(key, "x and y are required")
	}
	return domain.Coord{X: x.Value, Y: y.Value}, nil
}

func decodeRunway(raw json.RawMessage) (domain.RunwaySpec, error) {
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return domain.RunwaySpec{}, domain.Malformed("runway", "must be an object")
	}
	length, err := obj.number("length", "length_m")
	if err != nil {
		return domain.RunwaySpec{}, domain.Malformed("runway.length", "%v", err)
	}
	if !length.Set {
		return domain.RunwaySpec{}, domain.Malformed("runway.length", "is required")
	}
	thr, err := obj.number("thr_elevation", "thr_elevation_ft")
	if err != nil {
		return domain.RunwaySpec{}, domain.Malformed("runway.thr_elevation", "%v", err)
	}
	tch, err := obj.number("tch_rdh", "tch_rdh_m")
	if err != nil {
		return domain.RunwaySpec{}, domain.Malformed("runway.tch_rdh", "%v", err)
	}
	return domain.RunwaySpec{
		Direction:            obj.str("direction"),
		LengthM:              length.Value,
		ThresholdElevationFT: thr.Value,
		TCHM:                 tch.Value,
	}, nil
}

func decodePoints(raw json.RawMessage) ([]domain.ProfilePoint, error) {
	var objs []object
	if err := json.Unmarshal(raw, &objs); err != nil {
		return nil, domain.Malformed("profile_points", "must be a list")
	}
	pts := make([]domain.ProfilePoint, 0, len(objs))
	for i, obj := range objs {
		field := fmt.Sprintf("profile_points[%d]", i)
		d, err := obj.number("distance_nm", "distance")
		if err != nil {
			return nil, domain.Malformed(field+".distance_nm", "%v", err)
		}
		if !d.Set {
			return nil, domain.Malformed(field+".distance_nm", "is required")
		}
		a, err := obj.number("elevation_ft", "altitude_ft", "elevation")
		if err != nil {
			return nil, domain.Malformed(field+".elevation_ft", "%v", err)
		}
		if !a.Set {
			return nil, domain.Malformed(field+".elevation_ft", "is required")
		}
		moca, err := obj.number("moca_ft", "moca")
		if err != nil {
			return nil, domain.Malformed(field+".moca_ft", "%v", err)
		}
		p := domain.ProfilePoint{
			DistanceNM:   d.Value,
			AltitudeFT:   a.Value,
			Label:        obj.str("point_name", "name", "label"),
			WaypointName: obj.str("waypoint_name"),
			Notes:        obj.str("notes"),
		}
		if moca.Set {
			v := moca.Value
			p.MOCAFT = &v
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func decodeSpans(doc object, key string, heightKeys ...string) ([]domain.Span, error) {
	raw, _, ok := doc.raw(key)
	if !ok {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, domain.Malformed(key, "must be a list")
	}
	out := make([]domain.Span, 0, len(items))
	for i, item := range items {
		s, err := decodeSpan(fmt.Sprintf("%s[%d]", key, i), item, heightKeys...)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeSpan(field string, raw json.RawMessage, heightKeys ...string) (domain.Span, error) {
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return domain.Span{}, domain.Malformed(field, "must be an object")
	}
	from, err := obj.number("from_nm", "from")
	if err != nil {
		return domain.Span{}, domain.Malformed(field+".from_nm", "%v", err)
	}
	to, err := obj.number("to_nm", "to")
	if err != nil {
		return domain.Span{}, domain.Malformed(field+".to_nm", "%v", err)
	}
	h, err := obj.number(heightKeys...)
	if err != nil {
		return domain.Span{}, domain.Malformed(field+".height_ft", "%v", err)
	}
	if !from.Set || !to.Set || !h.Set {
		return domain.Span{}, domain.Malformed(field, "from_nm, to_nm and %s are required", strings.Join(heightKeys, "|"))
	}
	return domain.Span{FromNM: from.Value, ToNM: to.Value, HeightFT: h.Value}, nil
}

func decodeStyle(doc object, o *options, cfg domain.ProfileConfig) (domain.StyleConfig, error) {
	s := domain.StyleConfig{VerticalExaggeration: o.defaultVE, AxisMaxNM: cfg.MaxDistanceNM()}

	raw, _, ok := doc.raw("style")
	if !ok {
		return s, nil
	}
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return s, domain.Malformed("style", "must be an object")
	}

	nums := []struct {
		key string
		dst *float64
	}{
		{"vertical_exaggeration", &s.VerticalExaggeration},
		{"axis_max_nm", &s.AxisMaxNM},
		{"horizontal_scale", &s.HorizontalScale},
		{"tick_height_m", &s.TickHeightM},
		{"label_gap_m", &s.LabelGapM},
		{"grid_height_m", &s.GridHeightM},
		{"key_vertical_height_m", &s.KeyVerticalHeightM},
	}
	for _, n := range nums {
		v, err := obj.number(n.key)
		if err != nil {
			return s, domain.Malformed("style."+n.key, "%v", err)
		}
		if v.Set {
			*n.dst = v.Value
		}
	}

	flags := []struct {
		key string
		dst *bool
	}{
		{"axis_reverse_labels", &s.AxisReverseLabels},
		{"show_grid", &s.ShowGrid},
	}
	for _, f := range flags {
		b, err := obj.boolean(f.key)
		if err != nil {
			return s, domain.Malformed("style."+f.key, "%v", err)
		}
		if b != nil {
			*f.dst = *b
		}
	}
	show, err := obj.boolean("show_slope_labels")
	if err != nil {
		return s, domain.Malformed("style.show_slope_labels", "%v", err)
	}
	s.HideSlopeLabels = show != nil && !*show

	if raw, _, ok := obj.raw("key_waypoints"); ok {
		if err := json.Unmarshal(raw, &s.KeyWaypoints); err != nil {
			return s, domain.Malformed("style.key_waypoints", "must be a list of names")
		}
	}
	return s, nil
}

func isEmptyObject(raw json.RawMessage) bool {
	var obj object
	return json.Unmarshal(raw, &obj) == nil && len(obj) == 0
}
