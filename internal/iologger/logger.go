// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gngb/pkg/config"
	"github.com/gnames/gngb/pkg/logger"
)

// LogFile is the name of the log file inside of the log directory.
const LogFile = "gngb.log"

// Init initializes the global slog logger with the given configuration.
// Creates log file in logDir if destination is "file".
// If append is true, appends to existing log file; otherwise creates fresh file.
// The returned closer releases the log file, it is a no-op for standard
// streams.
func Init(logDir string, cfg config.LogConfig, append bool) (io.Closer, error) {
	var writer io.Writer
	var closer io.Closer = nopCloser{}

	switch cfg.Destination {
	case "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		var file *os.File
		var err error

		if append {
			file, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		} else {
			file, err = os.Create(logPath)
		}

		if err != nil {
			return nil, CreateLogFileError(logPath, err)
		}
		writer = file
		closer = file
	default:
		writer = os.Stderr
	}

	slog.SetDefault(logger.New(writer, cfg))
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
