package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gngb"

	// DefaultInput is read when no file is given on the command line.
	DefaultInput = "nc_005816.gb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gngb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gngb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// TranslationCacheDir returns the directory of the translation store.
func TranslationCacheDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "translations")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gngb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gngb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
