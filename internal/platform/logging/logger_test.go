package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNewJSON_WritesFieldsAndComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSON(LevelInfo, &buf).Named("billiardsapi")
	logger.Warn("request failed", "endpoint", "https://a.example", "error", errors.New("boom"))

	line := buf.String()
	for _, want := range []string{`"component":"billiardsapi"`, `"endpoint":"https://a.example"`, `"error":"boom"`, `"level":"WARN"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %s in log line, got %s", want, line)
		}
	}
}

func TestNewJSON_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSON(LevelWarn, &buf)
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %s", buf.String())
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	t.Parallel()

	var logger *Logger
	logger.Info("no panic")
}
