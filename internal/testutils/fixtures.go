package testutils

import (
	"io"
	"log/slog"
	"time"
)

// FixedStart is the instant manual clocks start at in tests
var FixedStart = time.Date(2025, 7, 20, 18, 30, 0, 0, time.UTC)

// DiscardLogger returns a logger that drops everything
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
