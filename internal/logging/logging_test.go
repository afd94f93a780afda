package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/RowanDark/cipherlab/internal/config"
)

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LogConfig{Level: "info", Format: "text"}, &buf)

	log.Info("cipher registered", "algorithm", "caesar")
	if !strings.Contains(buf.String(), "cipher registered") {
		t.Errorf("missing message in output: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "algorithm=caesar") {
		t.Errorf("missing attribute in output: %q", buf.String())
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LogConfig{Level: "info", Format: "json"}, &buf)

	log.Info("cipher registered", "algorithm", "aes")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "cipher registered" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["algorithm"] != "aes" {
		t.Errorf("algorithm = %v", record["algorithm"])
	}
}

func TestNewLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LogConfig{Level: "warn", Format: "text"}, &buf)

	log.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info record emitted at warn level: %q", buf.String())
	}
	log.Warn("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("warn record missing: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"error", "ERROR"},
		{"bogus", "INFO"},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in).String(); got != tt.want {
			t.Errorf("parseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
