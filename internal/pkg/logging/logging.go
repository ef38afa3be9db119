package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type options struct {
	out io.Writer
}

// Option customises Setup.
type Option func(*options)

// WithFile duplicates log output into a size-rotated file. An empty path is a no-op.
func WithFile(path string, maxSizeMB int) Option {
	return func(o *options) {
		if path == "" {
			return
		}
		if maxSizeMB <= 0 {
			maxSizeMB = 64
		}
		o.out = io.MultiWriter(o.out, &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: 3,
			MaxAge:     14,
			Compress:   true,
		})
	}
}

// WithWriter replaces stdout as the primary log destination.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// ParseLevel maps "debug", "info", "warn" or "error" to a slog level (default info).
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup initialises the global slog default logger.
// format may be "json" or "text" (default "json").
func Setup(level, format string, opts ...Option) *slog.Logger {
	o := &options{out: os.Stdout}
	for _, fn := range opts {
		fn(o)
	}

	hopts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.ToLower(format) == "text" {
		handler = slog.NewTextHandler(o.out, hopts)
	} else {
		handler = slog.NewJSONHandler(o.out, hopts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
