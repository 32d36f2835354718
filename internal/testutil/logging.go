// Package testutil holds helpers shared by package tests.
package testutil

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// syncBuffer lets background workers log while a test reads the output.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// LogBuffer is the captured slog output of a test.
type LogBuffer struct {
	sb *syncBuffer
}

func (l *LogBuffer) String() string {
	l.sb.mu.Lock()
	defer l.sb.mu.Unlock()
	return l.sb.buf.String()
}

// Contains reports whether any captured line contains substr.
func (l *LogBuffer) Contains(substr string) bool {
	return strings.Contains(l.String(), substr)
}

// CaptureLogBuffer redirects the default slog logger to an in-memory buffer and
// restores the original logger in t.Cleanup.
func CaptureLogBuffer(t *testing.T, level slog.Level) *LogBuffer {
	t.Helper()
	originalLogger := slog.Default()
	sb := &syncBuffer{}
	slog.SetDefault(slog.New(slog.NewTextHandler(sb, &slog.HandlerOptions{Level: level})))
	t.Cleanup(func() {
		slog.SetDefault(originalLogger)
	})
	return &LogBuffer{sb: sb}
}
