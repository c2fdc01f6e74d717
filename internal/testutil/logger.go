// Package testutil provides shared helpers for tests.
package testutil

import (
	"log/slog"
	"testing"
)

// NewTestLogger returns a debug-level logger that writes through t.Log,
// so output only shows for failing tests or with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(tbWriter{tb: t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type tbWriter struct {
	tb testing.TB
}

// Write logs p as one line. Writes that land after the test finished are
// dropped, since late goroutines may still log during cleanup.
func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	defer func() { _ = recover() }()
	w.tb.Log(string(p))
	return len(p), nil
}
