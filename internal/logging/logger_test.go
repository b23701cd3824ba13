package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestSetupLevelFiltering(t *testing.T) {
	defer Setup(os.Stderr, LevelInfo, FormatText)

	var buf bytes.Buffer
	Setup(&buf, LevelInfo, FormatText)

	Debug("hidden", "key", "value")
	Info("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record logged at info level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info record missing at info level")
	}
}

func TestSetupDebugLevel(t *testing.T) {
	defer Setup(os.Stderr, LevelInfo, FormatText)

	var buf bytes.Buffer
	Setup(&buf, LevelDebug, FormatText)

	Debug("verbose detail")
	if !strings.Contains(buf.String(), "verbose detail") {
		t.Error("debug record missing at debug level")
	}
}

func TestSetupUnknownLevelDefaultsToInfo(t *testing.T) {
	defer Setup(os.Stderr, LevelInfo, FormatText)

	var buf bytes.Buffer
	Setup(&buf, "chatty", FormatText)

	Debug("hidden")
	Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output with fallback level: %q", out)
	}
}

func TestSetupJSONFormat(t *testing.T) {
	defer Setup(os.Stderr, LevelInfo, FormatText)

	var buf bytes.Buffer
	Setup(&buf, LevelInfo, FormatJSON)

	Info("structured", "item", 214)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if record["msg"] != "structured" {
		t.Errorf("msg = %v, want structured", record["msg"])
	}
	if record["item"] != float64(214) {
		t.Errorf("item = %v, want 214", record["item"])
	}
}

func TestWithCarriesAttributes(t *testing.T) {
	defer Setup(os.Stderr, LevelInfo, FormatText)

	var buf bytes.Buffer
	Setup(&buf, LevelInfo, FormatText)

	logger := With("run_id", "abc-123")
	logger.Info("first")
	logger.Info("second")

	out := buf.String()
	if strings.Count(out, "abc-123") != 2 {
		t.Errorf("run_id not attached to every record:\n%s", out)
	}
}

func TestMaskSensitive(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", "****"},
		{"short", "abc", "****"},
		{"boundary", "abcd", "****"},
		{"token", "ghp_1234567890", "ghp_****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskSensitive(tt.value); got != tt.want {
				t.Errorf("MaskSensitive(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
