package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptOneLetter switches between one letter and three letter amino acid
// codes.
func OptOneLetter(b bool) Option {
	return func(c *Config) {
		c.Translate.OneLetter = b
	}
}

// OptFeatureKinds sets feature keys that are translated, for example
// "CDS". Empty entries are removed, an empty list is ignored.
func OptFeatureKinds(ss []string) Option {
	kinds := cleanList(ss)
	return func(c *Config) {
		if len(kinds) == 0 {
			isValidString("Translate Feature Kinds", "")
			return
		}
		c.Translate.FeatureKinds = kinds
	}
}

// OptFormat sets the report format.
// Valid values: "text", "json", "pretty", "csv", "tsv", "yaml".
func OptFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Translate.Format", s) {
			c.Translate.Format = s
		}
	}
}

// OptNomCode sets the nomenclatural code for organism name parsing.
func OptNomCode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Translate.NomCode", s) {
			c.Translate.NomCode = s
		}
	}
}

// OptWithCache enables the persistent translation cache.
func OptWithCache(b bool) Option {
	return func(c *Config) {
		c.Translate.WithCache = b
	}
}

// OptSelect keeps only features with matching protein_id, gene or
// locus_tag.
// Runtime-only field - not in ToOptions().
func OptSelect(ss []string) Option {
	sel := cleanList(ss)
	return func(c *Config) {
		c.Translate.Select = sel
	}
}

// OptWithNucleotides adds nucleotide regions to the report.
// Runtime-only field - not in ToOptions().
func OptWithNucleotides(b bool) Option {
	return func(c *Config) {
		c.Translate.WithNucleotides = b
	}
}

// OptWithProgress shows a progress bar during translation.
// Runtime-only field - not in ToOptions().
func OptWithProgress(b bool) Option {
	return func(c *Config) {
		c.Translate.WithProgress = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent translation workers.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptInput sets the path of the GenBank file.
// Runtime-only field - not in ToOptions().
func OptInput(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Input", s) {
			c.Input = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

// cleanList splits comma separated entries and drops empty ones.
func cleanList(ss []string) []string {
	var res []string
	for _, s := range ss {
		for v := range strings.SplitSeq(s, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				res = append(res, v)
			}
		}
	}
	return res
}
