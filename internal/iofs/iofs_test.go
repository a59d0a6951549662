package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gntag/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestEnsureDirs_CreatesDirectories verifies all required
// directories are created.
func TestEnsureDirs_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	err := EnsureDirs(tmpDir)
	require.NoError(t, err)

	dirs := []string{
		filepath.Join(tmpDir, ".config", "gntag"),
		filepath.Join(tmpDir, ".local", "share", "gntag"),
		filepath.Join(tmpDir, ".local", "share", "gntag", "logs"),
	}
	for _, v := range dirs {
		info, err := os.Stat(v)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), v)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), v)
	}

	// second call is a no-op
	require.NoError(t, EnsureDirs(tmpDir))
}

func TestTouchDir_ExistingFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	err := touchDir(filepath.Join(path, "sub"))
	assert.Error(t, err)
}

func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))

	require.NoError(t, EnsureConfigFile(tmpDir))
	path := config.ConfigFilePath(tmpDir)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(data))

	// user edits survive
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0644))
	require.NoError(t, EnsureConfigFile(tmpDir))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug")
}

// TestConfigYAML_Defaults verifies the embedded file agrees with
// config.New().
func TestConfigYAML_Defaults(t *testing.T) {
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(ConfigYAML), &cfg))

	def := config.New()
	assert.Equal(t, def.Database, cfg.Database)
	assert.Equal(t, def.Detect, cfg.Detect)
	assert.Equal(t, def.Curate, cfg.Curate)
	assert.Equal(t, def.Log, cfg.Log)
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	require.NoError(t, WriteFile(path, []byte("version: v0.1.0\n")))

	data, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "version: v0.1.0\n", string(data))

	_, err = ReadFile(path + ".missing")
	assert.Error(t, err)
}
