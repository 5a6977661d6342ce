package logger

import (
	"io"
	"log/slog"

	"balance_ranker/internal/app/port"
)

// slogAdapter implements port.Logger on top of the package-level functions.
type slogAdapter struct{}

// NewSlogAdapter returns a port.Logger writing to the global logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

func (a *slogAdapter) Info(msg string, args ...any)  { Info(msg, args...) }
func (a *slogAdapter) Debug(msg string, args ...any) { Debug(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { Error(msg, args...) }

// NewNop returns a port.Logger that discards everything. Meant for tests.
func NewNop() port.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
