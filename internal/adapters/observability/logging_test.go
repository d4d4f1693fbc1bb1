package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestNewLoggerJSONOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "production", "warn")

	l.Info().Msg("dropped")
	l.Warn().Str("k", "v").Msg("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want 1 line, got %d: %q", len(lines), buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if ev["message"] != "kept" || ev["service"] != "easybooking" || ev["k"] != "v" {
		t.Fatalf("unexpected event: %v", ev)
	}
}

func TestNewLoggerConsoleInDevelopment(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "Development", "")
	l.Info().Msg("hello")
	out := buf.String()
	if !strings.Contains(out, "hello") || strings.HasPrefix(out, "{") {
		t.Fatalf("expected console output, got %q", out)
	}
}
