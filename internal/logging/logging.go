// Package logging configures the diagnostic logger carried on the command context.
package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/chainguard-dev/clog"
)

// Setup builds a clog logger writing to w in the given format ("text" or
// "json") at the given level, and returns ctx carrying it.
// Unknown levels fall back to warn so that routine runs stay quiet.
func Setup(ctx context.Context, w io.Writer, level, format string) context.Context {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return clog.WithLogger(ctx, clog.New(handler))
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
