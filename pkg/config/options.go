package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseBackend sets the store implementation.
// Valid values: "postgres", "sqlite".
func OptDatabaseBackend(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.Backend", s) {
			c.Database.Backend = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseSQLitePath sets the database file of the sqlite backend.
func OptDatabaseSQLitePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database SQLite Path", s) {
			c.Database.SQLitePath = s
		}
	}
}

// OptDetectParentThreshold sets the lowest score of a parent pair.
func OptDetectParentThreshold(i int) Option {
	return func(c *Config) {
		if isValidPercent("Detect Parent Threshold", i) {
			c.Detect.ParentThreshold = i
		}
	}
}

// OptDetectChildThreshold sets the lowest score of a child pair.
func OptDetectChildThreshold(i int) Option {
	return func(c *Config) {
		if isValidPercent("Detect Child Threshold", i) {
			c.Detect.ChildThreshold = i
		}
	}
}

// OptDetectMaxParentNames caps unique parent names of the pairwise scan.
func OptDetectMaxParentNames(i int) Option {
	return func(c *Config) {
		if isValidInt("Detect Max Parent Names", i) {
			c.Detect.MaxParentNames = i
		}
	}
}

// OptDetectMinChildren sets the smallest number of children to compare.
func OptDetectMinChildren(i int) Option {
	return func(c *Config) {
		if isValidInt("Detect Min Children", i) {
			c.Detect.MinChildren = i
		}
	}
}

// OptDetectMaxChildren sets the largest number of children to compare.
func OptDetectMaxChildren(i int) Option {
	return func(c *Config) {
		if isValidInt("Detect Max Children", i) {
			c.Detect.MaxChildren = i
		}
	}
}

// OptDetectMaxChildPairs limits child pairs kept for every parent.
func OptDetectMaxChildPairs(i int) Option {
	return func(c *Config) {
		if isValidInt("Detect Max Child Pairs", i) {
			c.Detect.MaxChildPairs = i
		}
	}
}

// OptCurateDefaultScope sets the scope of learned merge rules.
func OptCurateDefaultScope(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Curate Default Scope", s) {
			c.Curate.DefaultScope = s
		}
	}
}

// OptCurateCreator sets the author of learned merge rules.
func OptCurateCreator(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Curate Creator", s) {
			c.Curate.Creator = s
		}
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

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, data, and log locations.
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
