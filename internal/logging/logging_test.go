package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/redwireai/storefront/internal/config"
)

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LogConfig{Level: "debug", Format: "json"}, &buf)
	logger.Debug().Str("component", "test").Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if line["message"] != "hello" || line["component"] != "test" || line["level"] != "debug" {
		t.Errorf("line = %v", line)
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	logger.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Errorf("info written at warn level: %q", buf.String())
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LogConfig{Level: "", Format: "console"}, &buf)
	logger.Info().Msg("ready")
	if !strings.Contains(buf.String(), "ready") || strings.HasPrefix(buf.String(), "{") {
		t.Errorf("console output = %q", buf.String())
	}
}
