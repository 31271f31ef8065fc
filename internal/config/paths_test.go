package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "absolute path", input: "/absolute/path", expected: "/absolute/path"},
		{name: "relative path", input: "relative/path", expected: "relative/path"},
		{name: "tilde only", input: "~", expected: homeDir},
		{name: "tilde with path", input: "~/.config/create-express", expected: filepath.Join(homeDir, ".config", "create-express")},
		{name: "tilde username pattern (not expanded)", input: "~username/file", expected: "~username/file"},
		{name: "tilde in middle (not expanded)", input: "/path/~/file", expected: "/path/~/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Run("xdg config home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		paths, err := DefaultPaths()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/xdg", "create-express", "config.yaml"), paths.ConfigFile)
		assert.Equal(t, filepath.Join("/xdg", "create-express"), paths.HomeDir)
	})

	t.Run("home fallback", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", home)
		paths, err := DefaultPaths()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "create-express", "config.yaml"), paths.ConfigFile)
	})
}

func TestGetConfigFile_EnvOverride(t *testing.T) {
	t.Setenv(ConfigEnvVar, "/etc/create-express.yaml")
	got, err := GetConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "/etc/create-express.yaml", got)
}

func TestConfigFileExists(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(existing, nil, 0o644))

	ok, err := ConfigFileExists(existing)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ConfigFileExists(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.False(t, ok)
}
