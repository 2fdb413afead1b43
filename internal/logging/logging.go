// Package logging sets up the diagnostic log. Notices meant for the user
// go through the ui package instead.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// DebugFile is where the debug log is appended when enabled.
const DebugFile = "tasks-debug.log"

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// New returns a debug-level logger writing to w.
func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Open returns the logger for this run. When debug is false the logger
// discards and the returned close func is a no-op.
func Open(debug bool) (*slog.Logger, func() error, error) {
	if !debug {
		return Discard(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(DebugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	return New(f), f.Close, nil
}
