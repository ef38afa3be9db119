package profilejson_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/samirrijal/aeroprofile/internal/adapters/profilejson"
	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

const legacyFile = `{
  "reference_point": {"x": "500000.5", "y": 4000000},
  "runway": {"direction": "09/27", "length": "2500", "thr_elevation": 45, "tch_rdh": ""},
  "profile_points": [
    {"name": "THR", "distance": 0, "altitude_ft": "95"},
    {"point_name": "FAF", "distance_nm": "5.2", "elevation": 1600, "moca": 1200, "notes": "final fix"}
  ],
  "oca": {},
  "moca_segments": [{"from": 1, "to": 4, "height_ft": 900}]
}`

func TestDecode_LegacyAliases(t *testing.T) {
	res, err := profilejson.Decode([]byte(legacyFile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.HasNotice(profilejson.NoticeLegacyOrigin) || !res.HasNotice(profilejson.NoticeNoMetadata) {
		t.Errorf("expected legacy and metadata notices, got %+v", res.Notices)
	}
	cfg := res.Config
	if cfg.Origin != (domain.Coord{X: 500000.5, Y: 4000000}) {
		t.Errorf("unexpected origin %+v", cfg.Origin)
	}
	if cfg.Runway.LengthM != 2500 || cfg.Runway.ThresholdElevationFT != 45 || cfg.Runway.TCHM != 0 {
		t.Errorf("unexpected runway %+v", cfg.Runway)
	}
	if len(cfg.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(cfg.Points))
	}
	if cfg.Points[0].Label != "THR" || cfg.Points[0].AltitudeFT != 95 {
		t.Errorf("unexpected first point %+v", cfg.Points[0])
	}
	p := cfg.Points[1]
	if p.DistanceNM != 5.2 || p.AltitudeFT != 1600 || p.MOCAFT == nil || *p.MOCAFT != 1200 || p.Notes != "final fix" {
		t.Errorf("unexpected second point %+v", p)
	}
	if cfg.OCA != nil {
		t.Errorf("empty oca object should be ignored, got %+v", cfg.OCA)
	}
	if want := []domain.Span{{FromNM: 1, ToNM: 4, HeightFT: 900}}; !reflect.DeepEqual(cfg.MOCASegments, want) {
		t.Errorf("expected %v, got %v", want, cfg.MOCASegments)
	}
}

func TestDecode_StyleDefaults(t *testing.T) {
	res, err := profilejson.Decode([]byte(legacyFile), profilejson.WithDefaultExaggeration(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Style.VerticalExaggeration != 5 {
		t.Errorf("expected default exaggeration 5, got %g", res.Style.VerticalExaggeration)
	}
	if res.Style.AxisMaxNM != 5.2 {
		t.Errorf("axis should default to the furthest point, got %g", res.Style.AxisMaxNM)
	}
	if res.Style.HideSlopeLabels {
		t.Error("slope labels should be shown by default")
	}
}

func TestDecode_Style(t *testing.T) {
	doc := `{
	  "metadata": {"version": "1.0"},
	  "origin_point": {"x": 0, "y": 0},
	  "runway": {"length": 3000},
	  "profile_points": [{"distance_nm": 0, "elevation_ft": 0}, {"distance_nm": 3, "elevation_ft": 1000}],
	  "style": {"vertical_exaggeration": "20", "axis_max_nm": 8, "axis_reverse_labels": "true",
	            "show_grid": true, "show_slope_labels": false, "key_waypoints": ["IF"]}
	}`
	res, err := profilejson.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.HasNotice(profilejson.NoticeVersionMismatch) {
		t.Error("expected version mismatch notice")
	}
	s := res.Style
	if s.VerticalExaggeration != 20 || s.AxisMaxNM != 8 || !s.AxisReverseLabels || !s.ShowGrid || !s.HideSlopeLabels {
		t.Errorf("unexpected style %+v", s)
	}
	if !reflect.DeepEqual(s.KeyWaypoints, []string{"IF"}) {
		t.Errorf("unexpected key waypoints %v", s.KeyWaypoints)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"not json", `{`, "document"},
		{"no origin", `{"runway": {"length": 1}, "profile_points": []}`, "origin_point"},
		{"no runway", `{"origin_point": {"x": 0, "y": 0}, "profile_points": []}`, "runway"},
		{"runway length text", `{"origin_point": {"x": 0, "y": 0}, "runway": {"length": "long"}, "profile_points": []}`, "runway.length"},
		{"threshold elevation nan", `{"origin_point": {"x": 0, "y": 0}, "runway": {"length": 1, "thr_elevation": "NaN"}, "profile_points": []}`, "runway.thr_elevation"},
		{"distance inf", `{"origin_point": {"x": 0, "y": 0}, "runway": {"length": 1}, "profile_points": [{"distance_nm": "Inf", "elevation_ft": 3}]}`, "profile_points[0].distance_nm"},
		{"points not list", `{"origin_point": {"x": 0, "y": 0}, "runway": {"length": 1}, "profile_points": {}}`, "profile_points"},
		{"point missing distance", `{"origin_point": {"x": 0, "y": 0}, "runway": {"length": 1}, "profile_points": [{"elevation_ft": 3}]}`, "profile_points[0].distance_nm"},
		{"span missing height", `{"origin_point": {"x": 0, "y": 0}, "runway": {"length": 1}, "profile_points": [], "oca_segments": [{"from_nm": 0, "to_nm": 1}]}`, "oca_segments[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := profilejson.Decode([]byte(tt.doc))
			if !errors.Is(err, domain.ErrMalformedInput) {
				t.Fatalf("expected malformed input, got %v", err)
			}
			var me *domain.MalformedInputError
			if !errors.As(err, &me) || me.Field != tt.field {
				t.Errorf("expected field %q, got %v", tt.field, err)
			}
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	moca := 1500.0
	cfg := domain.ProfileConfig{
		Origin: domain.Coord{X: 10, Y: 20},
		Runway: domain.RunwaySpec{Direction: "27/09", LengthM: 2800, ThresholdElevationFT: 30},
		Points: []domain.ProfilePoint{
			{DistanceNM: 0, AltitudeFT: 80, Label: "THR"},
			{DistanceNM: 6, AltitudeFT: 2000, Label: "D6", WaypointName: "FAF", MOCAFT: &moca},
		},
		OCA:          &domain.Span{FromNM: 0, ToNM: 2, HeightFT: 400},
		OCASegments:  []domain.Span{{FromNM: 2, ToNM: 3, HeightFT: 600}},
		MOCASegments: []domain.Span{{FromNM: 3, ToNM: 6, HeightFT: 1400}},
	}
	style := domain.StyleConfig{VerticalExaggeration: 15, AxisMaxNM: 7, ShowGrid: true, HideSlopeLabels: true}
	created := "2025-01-02T03:04:05"
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	data, err := profilejson.Encode(cfg, style, &profilejson.Metadata{Created: created}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw["origin_point"]) == "" || string(raw["origin_point"]) != string(raw["reference_point"]) {
		t.Errorf("origin should be written under both keys")
	}

	res, err := profilejson.Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Notices) != 0 {
		t.Errorf("current files should decode without notices, got %+v", res.Notices)
	}
	if !reflect.DeepEqual(res.Config, cfg) {
		t.Errorf("config changed in round trip:\nwant %+v\ngot  %+v", cfg, res.Config)
	}
	if res.Style.VerticalExaggeration != 15 || res.Style.AxisMaxNM != 7 || !res.Style.ShowGrid || !res.Style.HideSlopeLabels {
		t.Errorf("style changed in round trip: %+v", res.Style)
	}
	md := res.Metadata
	if md.Version != profilejson.ConfigVersion || md.Created != created || md.Modified != "2026-03-04T05:06:07" || md.PluginVersion != profilejson.WriterVersion {
		t.Errorf("unexpected metadata %+v", md)
	}
}

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 5, 0, 0, time.UTC)
	if got := profilejson.DefaultFilename("09/27", now); got != "profile_09-27_20261018_090500.json" {
		t.Errorf("unexpected filename %q", got)
	}
	if got := profilejson.DefaultFilename("", now); !strings.HasPrefix(got, "profile_profile_") {
		t.Errorf("unexpected filename %q", got)
	}
}

func TestValidateRunwayDirection(t *testing.T) {
	tests := []struct {
		dir string
		ok  bool
	}{
		{"09/27", true},
		{"18/36", true},
		{"36/18", true},
		{"27/09", true},
		{"09/28", false},
		{"9/27", false},
		{"37/19", false},
		{"", false},
	}
	for _, tt := range tests {
		err := profilejson.ValidateRunwayDirection(tt.dir)
		if (err == nil) != tt.ok {
			t.Errorf("%q: expected ok=%v, got %v", tt.dir, tt.ok, err)
		}
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name string
		err  error
		ok   bool
	}{
		{"distance zero", profilejson.ValidateDistance(0), true},
		{"distance negative", profilejson.ValidateDistance(-0.1), false},
		{"distance too far", profilejson.ValidateDistance(999.5), false},
		{"elevation low", profilejson.ValidateElevation(-1500), true},
		{"elevation too low", profilejson.ValidateElevation(-1501), false},
		{"elevation too high", profilejson.ValidateElevation(60001), false},
		{"runway short", profilejson.ValidateRunwayLength(99), false},
		{"runway long", profilejson.ValidateRunwayLength(6000), true},
		{"moca negative", profilejson.ValidateMOCA(-1), false},
		{"moca ok", profilejson.ValidateMOCA(2500), true},
		{"name ok", profilejson.ValidatePointName("FAF 2_a-b"), true},
		{"name blank", profilejson.ValidatePointName("   "), false},
		{"name symbols", profilejson.ValidatePointName("D4.0"), false},
		{"name long", profilejson.ValidatePointName(strings.Repeat("A", 51)), false},
	}
	for _, tt := range tests {
		if (tt.err == nil) != tt.ok {
			t.Errorf("%s: expected ok=%v, got %v", tt.name, tt.ok, tt.err)
		}
	}
}

func TestValidateDocument(t *testing.T) {
	moca := -5.0
	cfg := domain.ProfileConfig{
		Runway: domain.RunwaySpec{Direction: "09/26", LengthM: 50},
		Points: []domain.ProfilePoint{
			{DistanceNM: 0, AltitudeFT: 50},
			{DistanceNM: 1200, AltitudeFT: 900, Label: "bad!", MOCAFT: &moca},
		},
	}
	err := profilejson.ValidateDocument(cfg)
	if !errors.Is(err, domain.ErrMalformedInput) {
		t.Fatalf("expected malformed input, got %v", err)
	}
	var verrs profilejson.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	var fields []string
	for _, e := range verrs {
		fields = append(fields, e.Field)
	}
	want := []string{
		"runway.direction",
		"runway.length",
		"profile_points[1].point_name",
		"profile_points[1].distance_nm",
		"profile_points[1].moca_ft",
	}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("expected %v, got %v", want, fields)
	}

	cfg.Runway = domain.RunwaySpec{Direction: "09/27", LengthM: 2500}
	cfg.Points = cfg.Points[:1]
	if err := profilejson.ValidateDocument(cfg); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
