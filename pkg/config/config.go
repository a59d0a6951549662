// Package config provides configuration management for gntag.
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
//   - Database: backend, host, port, user, password, database, ssl_mode,
//     sqlite_path
//   - Detect: parent_threshold, child_threshold, max_parent_names,
//     min_children, max_children, max_child_pairs
//   - Curate: default_scope, creator
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNTAG_ prefix with underscores for nesting:
//
//	GNTAG_DATABASE_BACKEND=sqlite
//	GNTAG_DATABASE_HOST=localhost
//	GNTAG_DETECT_PARENT_THRESHOLD=70
//	GNTAG_CURATE_DEFAULT_SCOPE=assistant
//	GNTAG_LOG_LEVEL=info
package config

import (
	"runtime"
)

// Config represents the complete gntag configuration.
type Config struct {
	// Database contains connection settings for the tag store.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Detect contains thresholds and cost caps of the duplicate detector.
	Detect DetectConfig `mapstructure:"detect" yaml:"detect"`

	// Curate contains defaults used by merge, delete and import operations.
	Curate CurateConfig `mapstructure:"curate" yaml:"curate"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for the child
	// duplicates scan. Default value is set according to the number of
	// available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains tag store connection parameters.
type DatabaseConfig struct {
	// Backend selects the store implementation.
	// Valid values: "postgres", "sqlite".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// SQLitePath is the database file used by the "sqlite" backend.
	// Empty value means DataDir(HomeDir)/gntag.sqlite.
	// The special value ":memory:" keeps the database in memory.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

// DetectConfig contains similarity thresholds (percents) and the cost caps
// of the semantic duplicate scans.
type DetectConfig struct {
	// ParentThreshold is the lowest similarity score of a parent pair.
	ParentThreshold int `mapstructure:"parent_threshold" yaml:"parent_threshold"`

	// ChildThreshold is the lowest similarity score of a child pair.
	ChildThreshold int `mapstructure:"child_threshold" yaml:"child_threshold"`

	// MaxParentNames caps the number of unique parent names that take part
	// in the pairwise parent scan. Names beyond the cap are not compared
	// and the report says so.
	MaxParentNames int `mapstructure:"max_parent_names" yaml:"max_parent_names"`

	// MinChildren is the smallest number of children a parent needs
	// for its children to be compared.
	MinChildren int `mapstructure:"min_children" yaml:"min_children"`

	// MaxChildren is the largest number of children a parent can have
	// for its children to be compared.
	MaxChildren int `mapstructure:"max_children" yaml:"max_children"`

	// MaxChildPairs keeps only the best pairs for every parent.
	MaxChildPairs int `mapstructure:"max_child_pairs" yaml:"max_child_pairs"`
}

// CurateConfig contains defaults for curation operations.
type CurateConfig struct {
	// DefaultScope is used for learned merge rules when a merge does
	// not provide a scope.
	DefaultScope string `mapstructure:"default_scope" yaml:"default_scope"`

	// Creator is recorded as the author of learned merge rules.
	Creator string `mapstructure:"creator" yaml:"creator"`
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
		Database: DatabaseConfig{
			Backend:  "postgres",
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "gntag",
			SSLMode:  "disable",
		},
		Detect: DetectConfig{
			ParentThreshold: 70,
			ChildThreshold:  60,
			MaxParentNames:  100,
			MinChildren:     2,
			MaxChildren:     50,
			MaxChildPairs:   10,
		},
		Curate: CurateConfig{
			DefaultScope: "default",
			Creator:      "gntag",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
