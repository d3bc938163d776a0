package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestConsole_WritesMessage(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	console := NewConsole(&buf)
	console.Notify(context.Background(), LevelSuccess, "network restored")
	console.Notify(context.Background(), LevelError, "")

	if got := strings.TrimSpace(buf.String()); got != "network restored" {
		t.Fatalf("unexpected console output: %q", got)
	}
}

func TestRecorder_Entries(t *testing.T) {
	t.Parallel()

	var rec Recorder
	rec.Notify(context.Background(), LevelError, "login expired")
	entries := rec.Entries()
	if len(entries) != 1 || entries[0].Level != LevelError || entries[0].Message != "login expired" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
