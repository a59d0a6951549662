package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gnames/gntag/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gntag"),
		},
		{
			msg: "data dir",
			fn:  config.DataDir,
			res: filepath.Join(tempHome, ".local", "share", "gntag"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gntag", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "gntag", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestSQLitePath(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/user")})
	assert.Equal(t,
		filepath.Join("/home/user", ".local", "share", "gntag", "gntag.sqlite"),
		cfg.SQLitePath(),
	)

	cfg.Update([]config.Option{config.OptDatabaseSQLitePath(":memory:")})
	assert.Equal(t, ":memory:", cfg.SQLitePath())
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Database defaults
		assert.Equal(t, "postgres", cfg.Database.Backend)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "postgres", cfg.Database.Password)
		assert.Equal(t, "gntag", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, "", cfg.Database.SQLitePath)

		// Detect defaults
		assert.Equal(t, 70, cfg.Detect.ParentThreshold)
		assert.Equal(t, 60, cfg.Detect.ChildThreshold)
		assert.Equal(t, 100, cfg.Detect.MaxParentNames)
		assert.Equal(t, 2, cfg.Detect.MinChildren)
		assert.Equal(t, 50, cfg.Detect.MaxChildren)
		assert.Equal(t, 10, cfg.Detect.MaxChildPairs)

		// Curate defaults
		assert.Equal(t, "default", cfg.Curate.DefaultScope)
		assert.Equal(t, "gntag", cfg.Curate.Creator)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		// JobsNumber defaults to CPU count
		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})
}

func TestOptionDatabaseBackend(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets sqlite",
			input:    "sqlite",
			expected: "sqlite",
		},
		{
			name:     "normalizes to lowercase",
			input:    " SQLite ",
			expected: "sqlite",
		},
		{
			name:     "ignores unknown backend",
			input:    "mysql",
			expected: "postgres", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseBackend(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Backend)
		})
	}
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost", // Should keep default
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "localhost", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseHost(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionDatabasePort(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "sets valid port",
			input:    5433,
			expected: 5433,
		},
		{
			name:     "ignores zero",
			input:    0,
			expected: 5432, // Should keep default
		},
		{
			name:     "ignores negative",
			input:    -100,
			expected: 5432, // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabasePort(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Port)
		})
	}
}

func TestOptionDatabaseSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid ssl mode - require",
			input:    "require",
			expected: "require",
		},
		{
			name:     "sets valid ssl mode - verify-full",
			input:    "verify-full",
			expected: "verify-full",
		},
		{
			name:     "normalizes to lowercase",
			input:    "REQUIRE",
			expected: "require",
		},
		{
			name:     "ignores invalid value",
			input:    "invalid",
			expected: "disable", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseSSLMode(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.SSLMode)
		})
	}
}

func TestOptionDetectThresholds(t *testing.T) {
	tests := []struct {
		name      string
		input     int
		expParent int
		expChild  int
	}{
		{
			name:      "sets valid percent",
			input:     85,
			expParent: 85,
			expChild:  85,
		},
		{
			name:      "accepts 100",
			input:     100,
			expParent: 100,
			expChild:  100,
		},
		{
			name:      "ignores zero",
			input:     0,
			expParent: 70,
			expChild:  60,
		},
		{
			name:      "ignores values above 100",
			input:     101,
			expParent: 70,
			expChild:  60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{
				config.OptDetectParentThreshold(tt.input),
				config.OptDetectChildThreshold(tt.input),
			})
			assert.Equal(t, tt.expParent, cfg.Detect.ParentThreshold)
			assert.Equal(t, tt.expChild, cfg.Detect.ChildThreshold)
		})
	}
}

func TestOptionDetectCaps(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDetectMaxParentNames(20),
		config.OptDetectMinChildren(3),
		config.OptDetectMaxChildren(0),
		config.OptDetectMaxChildPairs(-1),
	})
	assert.Equal(t, 20, cfg.Detect.MaxParentNames)
	assert.Equal(t, 3, cfg.Detect.MinChildren)
	assert.Equal(t, 50, cfg.Detect.MaxChildren)
	assert.Equal(t, 10, cfg.Detect.MaxChildPairs)
}

func TestOptionCurate(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptCurateDefaultScope(" assistant "),
		config.OptCurateCreator(""),
	})
	assert.Equal(t, "assistant", cfg.Curate.DefaultScope)
	assert.Equal(t, "gntag", cfg.Curate.Creator)
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid log level - debug",
			input:    "debug",
			expected: "debug",
		},
		{
			name:     "sets valid log level - error",
			input:    "error",
			expected: "error",
		},
		{
			name:     "normalizes to lowercase",
			input:    "WARN",
			expected: "warn",
		},
		{
			name:     "ignores invalid value",
			input:    "trace",
			expected: "info", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptLogLevel(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionLogFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid format - text",
			input:    "text",
			expected: "text",
		},
		{
			name:     "sets valid format - tint",
			input:    "tint",
			expected: "tint",
		},
		{
			name:     "ignores invalid value",
			input:    "xml",
			expected: "json", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptLogFormat(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Log.Format)
		})
	}
}

func TestOptionLogDestination(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptLogDestination("STDERR")})
	assert.Equal(t, "stderr", cfg.Log.Destination)

	cfg.Update([]config.Option{config.OptLogDestination("stdin")})
	assert.Equal(t, "stderr", cfg.Log.Destination)
}

func TestOptionJobsNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "sets valid jobs number",
			input:    8,
			expected: 8,
		},
		{
			name:     "ignores zero",
			input:    0,
			expected: runtime.NumCPU(), // Should keep default
		},
		{
			name:     "ignores negative",
			input:    -5,
			expected: runtime.NumCPU(), // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptJobsNumber(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.JobsNumber)
		})
	}
}

func TestMultipleOptions(t *testing.T) {
	t.Run("applies multiple options in order", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptDatabaseBackend("sqlite"),
			config.OptDatabaseSQLitePath("/tmp/tags.sqlite"),
			config.OptDetectParentThreshold(80),
			config.OptLogLevel("debug"),
			config.OptJobsNumber(16),
		}

		cfg.Update(opts)

		assert.Equal(t, "sqlite", cfg.Database.Backend)
		assert.Equal(t, "/tmp/tags.sqlite", cfg.Database.SQLitePath)
		assert.Equal(t, 80, cfg.Detect.ParentThreshold)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 16, cfg.JobsNumber)

		// Unchanged fields keep defaults
		assert.Equal(t, "postgres", cfg.Database.Password)
		assert.Equal(t, 60, cfg.Detect.ChildThreshold)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptDatabaseHost("first.host.com"),
			config.OptDatabaseHost("second.host.com"),
		}

		cfg.Update(opts)

		assert.Equal(t, "second.host.com", cfg.Database.Host)
	})
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		original := config.New()
		opts := []config.Option{
			config.OptDatabaseBackend("sqlite"),
			config.OptDatabaseHost("test.host.com"),
			config.OptDatabasePort(5433),
			config.OptDatabaseUser("testuser"),
			config.OptDatabasePassword("testpass"),
			config.OptDatabaseDatabase("testdb"),
			config.OptDatabaseSSLMode("require"),
			config.OptDatabaseSQLitePath("/data/tags.sqlite"),
			config.OptDetectParentThreshold(75),
			config.OptDetectChildThreshold(65),
			config.OptDetectMaxParentNames(200),
			config.OptDetectMinChildren(3),
			config.OptDetectMaxChildren(40),
			config.OptDetectMaxChildPairs(5),
			config.OptCurateDefaultScope("assistant"),
			config.OptCurateCreator("curator"),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptJobsNumber(8),
		}
		original.Update(opts)

		convertedOpts := original.ToOptions()
		newCfg := config.New()
		newCfg.Update(convertedOpts)

		assert.Equal(t, original.Database, newCfg.Database)
		assert.Equal(t, original.Detect, newCfg.Detect)
		assert.Equal(t, original.Curate, newCfg.Curate)
		assert.Equal(t, original.Log, newCfg.Log)
		assert.Equal(t, original.JobsNumber, newCfg.JobsNumber)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
		})

		opts := cfg.ToOptions()
		newCfg := config.New()
		newCfg.Update(opts)

		assert.Equal(t, "", newCfg.HomeDir)
	})
}
