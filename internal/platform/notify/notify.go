package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notifier surfaces short user-facing messages, the CLI counterpart of a toast.
type Notifier interface {
	Notify(ctx context.Context, level Level, message string)
}

type Nop struct{}

func (Nop) Notify(context.Context, Level, string) {}

// Console prints coloured one-line notices.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	success *color.Color
	failure *color.Color
	info    *color.Color
}

// NewConsole writes to stderr when out is nil.
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stderr
	}
	return &Console{
		out:     out,
		success: color.New(color.FgGreen, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
		info:    color.New(color.FgCyan),
	}
}

func (c *Console) Notify(_ context.Context, level Level, message string) {
	if message == "" {
		return
	}

	painter := c.info
	switch level {
	case LevelSuccess:
		painter = c.success
	case LevelError:
		painter = c.failure
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, painter.Sprint(message))
}

// Recorder keeps notifications in memory for tests and scripted hosts.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

type Entry struct {
	Level   Level
	Message string
}

func (r *Recorder) Notify(_ context.Context, level Level, message string) {
	r.mu.Lock()
	r.entries = append(r.entries, Entry{Level: level, Message: message})
	r.mu.Unlock()
}

func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
