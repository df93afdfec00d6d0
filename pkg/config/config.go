// Package config provides configuration management for GNgb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Translate: one_letter, feature_kinds, format, nom_code, with_cache
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Translate.Select, WithNucleotides, WithProgress
//   - Input (positional argument)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNGB_ prefix with underscores for nesting:
//
//	GNGB_TRANSLATE_ONE_LETTER=true
//	GNGB_TRANSLATE_FORMAT=json
//	GNGB_LOG_LEVEL=info
//	GNGB_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete GNgb configuration.
type Config struct {
	// Translate contains settings of feature selection and translation
	// output.
	Translate TranslateConfig `mapstructure:"translate" yaml:"translate"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent translation workers.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// Input is the path to a GenBank file.
	Input string `mapstructure:"-" yaml:"-"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// TranslateConfig contains settings of the translation run.
type TranslateConfig struct {
	// OneLetter switches output to one letter amino acid codes.
	// Three letter codes ("Met-Ala") are used by default.
	OneLetter bool `mapstructure:"one_letter" yaml:"one_letter"`

	// FeatureKinds are feature keys that are treated as coding.
	FeatureKinds []string `mapstructure:"feature_kinds" yaml:"feature_kinds"`

	// Format of the report: 'text', 'json', 'pretty', 'csv', 'tsv', 'yaml'.
	Format string `mapstructure:"format" yaml:"format"`

	// NomCode is the nomenclatural code used to parse organism names.
	// Valid values: 'bacterial', 'botanical', 'zoological', 'viral',
	// 'cultivars', 'any'.
	NomCode string `mapstructure:"nom_code" yaml:"nom_code"`

	// WithCache keeps translations in a persistent key-value store under
	// the cache directory.
	WithCache bool `mapstructure:"with_cache" yaml:"with_cache"`

	// Select keeps only features with a matching protein_id, gene or
	// locus_tag. Empty means all coding features.
	Select []string `mapstructure:"-" yaml:"-"`

	// WithNucleotides adds resolved nucleotide regions to the report.
	WithNucleotides bool `mapstructure:"-" yaml:"-"`

	// WithProgress shows a progress bar on STDERR.
	WithProgress bool `mapstructure:"-" yaml:"-"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Translate: TranslateConfig{
			FeatureKinds: []string{"CDS"},
			Format:       "text",
			NomCode:      "bacterial",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
		Input:      DefaultInput,
	}

	return res
}
