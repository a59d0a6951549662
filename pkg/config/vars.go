package config

import (
	"path/filepath"
)

var (
	// MinVersionTaxonomy is the oldest taxonomy export format that can
	// still be imported. Newer versions are all supported.
	MinVersionTaxonomy = "v0.1.0"
	// AppName is used in generating file system paths.
	AppName = "gntag"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gntag by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for local data such as the
// SQLite database file.
// Returns ~/.local/share/gntag by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gntag/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gntag/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SQLitePath returns the database file of the sqlite backend.
func (c *Config) SQLitePath() string {
	if c.Database.SQLitePath != "" {
		return c.Database.SQLitePath
	}
	return filepath.Join(DataDir(c.HomeDir), "gntag.sqlite")
}
