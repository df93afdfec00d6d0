// Package logger builds slog loggers from the log configuration. It does
// not open files, the writer comes from the caller.
package logger

import (
	"io"
	"log/slog"
	"strings"
	"time"

	charm "github.com/charmbracelet/log"
	"github.com/gnames/gngb/pkg/config"
)

// New creates a new slog.Logger based on the provided configuration.
// It respects the logging level and format from the config.
// Invalid values default to Info level and JSON format.
func New(w io.Writer, cfg config.LogConfig) *slog.Logger {
	return slog.New(NewHandler(w, cfg))
}

// NewHandler creates a slog.Handler for the format of the config.
// The "tint" format is a colored human friendly output for terminals.
func NewHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	level := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch strings.ToLower(cfg.Format) {
	case "text":
		return slog.NewTextHandler(w, opts)
	case "tint":
		return charm.NewWithOptions(w, charm.Options{
			Level:           charm.Level(level),
			ReportTimestamp: true,
			TimeFormat:      time.TimeOnly,
		})
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

// ParseLevel converts a string log level to slog.Level.
// Valid levels: "debug", "info", "warn", "error" (case-insensitive).
// Invalid levels default to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
