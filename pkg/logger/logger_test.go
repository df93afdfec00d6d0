package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/gnames/gngb/pkg/config"
	"github.com/gnames/gngb/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.LogConfig{Level: "info", Format: "text"}

	log := logger.New(&buf, cfg)
	log.Info("test message", "key", "value")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "key=value")
	assert.Contains(t, output, "level=INFO")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.LogConfig{Level: "info", Format: "json"}

	log := logger.New(&buf, cfg)
	log.Info("test message", "key", "value")

	var logEntry map[string]any
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	require.NoError(t, err, "Output should be valid JSON")

	assert.Equal(t, "test message", logEntry["msg"])
	assert.Equal(t, "value", logEntry["key"])
	assert.Equal(t, "INFO", logEntry["level"])
	assert.Contains(t, logEntry, "time")
}

func TestNew_TintFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.LogConfig{Level: "debug", Format: "tint"}

	log := logger.New(&buf, cfg)
	log.Debug("debug message")
	log.Info("record parsed", "features", 5)

	output := buf.String()
	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, "record parsed")
	assert.Contains(t, output, "features")
	assert.NotContains(t, output, `"msg"`)
}

func TestNew_LogLevelFiltering(t *testing.T) {
	tests := []struct {
		name          string
		configLevel   string
		format        string
		logFunc       func(*slog.Logger)
		shouldContain string
		shouldLog     bool
	}{
		{
			name:          "info level shows info messages",
			configLevel:   "info",
			format:        "text",
			logFunc:       func(l *slog.Logger) { l.Info("info message") },
			shouldContain: "info message",
			shouldLog:     true,
		},
		{
			name:          "info level hides debug messages",
			configLevel:   "info",
			format:        "json",
			logFunc:       func(l *slog.Logger) { l.Debug("debug message") },
			shouldContain: "debug message",
			shouldLog:     false,
		},
		{
			name:          "debug level shows debug messages",
			configLevel:   "debug",
			format:        "text",
			logFunc:       func(l *slog.Logger) { l.Debug("debug message") },
			shouldContain: "debug message",
			shouldLog:     true,
		},
		{
			name:          "warn level hides info messages in tint",
			configLevel:   "warn",
			format:        "tint",
			logFunc:       func(l *slog.Logger) { l.Info("info message") },
			shouldContain: "info message",
			shouldLog:     false,
		},
		{
			name:          "error level only shows errors",
			configLevel:   "error",
			format:        "text",
			logFunc:       func(l *slog.Logger) { l.Warn("warn message") },
			shouldContain: "warn message",
			shouldLog:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := config.LogConfig{Level: tt.configLevel, Format: tt.format}

			log := logger.New(&buf, cfg)
			tt.logFunc(log)

			if tt.shouldLog {
				assert.Contains(t, buf.String(), tt.shouldContain)
			} else {
				assert.NotContains(t, buf.String(), tt.shouldContain)
			}
		})
	}
}

func TestNew_InvalidFormatDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.LogConfig{Level: "invalid", Format: "invalid"}

	log := logger.New(&buf, cfg)
	log.Debug("debug message")
	log.Info("info message")

	assert.NotContains(t, buf.String(), "debug message",
		"Debug should be hidden at default Info level")
	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "info message", logEntry["msg"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"trace", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, logger.ParseLevel(tt.input), tt.input)
	}
}
