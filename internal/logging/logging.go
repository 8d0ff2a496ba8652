// Package logging builds the structured logger used by every command.
package logging

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Options selects the log level. Quiet wins over Verbose.
type Options struct {
	Verbose bool
	Quiet   bool
}

// Level returns the minimum level for opts: warn by default, debug when
// verbose, error when quiet.
func (o Options) Level() slog.Level {
	switch {
	case o.Quiet:
		return slog.LevelError
	case o.Verbose:
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

// New returns a text logger writing to w. Every record carries the
// invocation's run_id.
func New(w io.Writer, opts Options) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: opts.Level()})
	return slog.New(h).With("run_id", uuid.NewString())
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
