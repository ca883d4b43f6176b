package testutil

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// NopLogger returns a logger that discards all output.
// Use this in tests to avoid log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// LogCapture collects JSON log output for assertions. Safe for use from
// background goroutines.
type LogCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewLogCapture returns a capture and a debug-level logger writing to it
func NewLogCapture() (*LogCapture, *slog.Logger) {
	c := &LogCapture{}
	return c, slog.New(slog.NewJSONHandler(c, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Write implements io.Writer
func (c *LogCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// String returns everything logged so far
func (c *LogCapture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// Count returns how many log lines contain substr
func (c *LogCapture) Count(substr string) int {
	n := 0
	for _, line := range strings.Split(c.String(), "\n") {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}
