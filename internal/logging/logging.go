// Package logging provides structured logging setup for the comments API.
package logging

import (
	"io"
	"log/slog"
)

// Options configures Setup.
type Options struct {
	// Dev selects human-readable text at debug level; otherwise JSON at info.
	Dev bool
	// Version and Env are attached to every record when set.
	Version string
	Env     string
}

// Setup installs and returns the default slog logger writing to w.
func Setup(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if opts.Dev {
		handlerOpts.Level = slog.LevelDebug
	}

	var handler slog.Handler = slog.NewJSONHandler(w, handlerOpts)
	if opts.Dev {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	var attrs []slog.Attr
	if opts.Version != "" {
		attrs = append(attrs, slog.String("version", opts.Version))
	}
	if opts.Env != "" {
		attrs = append(attrs, slog.String("env", opts.Env))
	}
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
