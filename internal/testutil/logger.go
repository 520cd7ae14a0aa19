// Package testutil provides helpers shared by tests.
package testutil

import (
	"log/slog"
	"strings"
	"testing"
)

// NewTestLogger logs at debug level through t.Log, so records are shown
// for failing tests and with -v only.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(tbWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type tbWriter struct{ tb testing.TB }

func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
