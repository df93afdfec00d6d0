// Package gngb defines the contract between the CLI and the
// implementation that reads GenBank files and translates their coding
// features.
package gngb

import (
	"context"

	"github.com/gnames/gngb/pkg/report"
)

// Processor reads GenBank files and builds reports about them.
// Configuration is provided during construction.
type Processor interface {
	// Process parses a GenBank file, translates features of the
	// configured coding kinds and returns the report. Fatal problems,
	// like a missing file or malformed GenBank structure, are returned
	// as errors. Dropped features and untranslatable regions become
	// diagnostics of the report.
	Process(ctx context.Context, path string) (*report.Report, error)

	// List parses a GenBank file and returns a report with all its
	// features and without translations.
	List(ctx context.Context, path string) (*report.Report, error)

	// CleanCache removes all stored translations.
	CleanCache() error

	// Close releases the parser pool and the cache.
	Close() error
}
