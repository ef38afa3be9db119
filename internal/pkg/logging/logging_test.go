package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("debug", "json", WithWriter(&buf))
	logger.Debug("generated", "features", 42)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["msg"] != "generated" || rec["features"] != float64(42) {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestSetup_TextFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("warn", "text", WithWriter(&buf))
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestSetup_WithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aeroprofile.log")
	var buf bytes.Buffer
	logger := Setup("info", "json", WithWriter(&buf), WithFile(path, 1))
	logger.Info("rotated")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "rotated") || !strings.Contains(buf.String(), "rotated") {
		t.Errorf("expected the record in both outputs")
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("ERROR") != slog.LevelError || ParseLevel("bogus") != slog.LevelInfo {
		t.Error("unexpected level mapping")
	}
}
