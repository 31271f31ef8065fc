package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "npm", cfg.PackageManager)
	require.NotNil(t, cfg.Git)
	assert.True(t, *cfg.Git)
	require.NotNil(t, cfg.Install)
	assert.True(t, *cfg.Install)
	assert.Empty(t, cfg.TemplatesDir)
	assert.Equal(t, "npx -y neondb --yes", cfg.Provision.Command)
	require.NotNil(t, cfg.Log.Timestamps)
	assert.True(t, *cfg.Log.Timestamps)
}

func TestDefaultConfig_YAMLKeys(t *testing.T) {
	data, err := yaml.Marshal(DefaultConfig())
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &raw))

	assert.Equal(t, "npm", raw["packageManager"])
	assert.Equal(t, true, raw["git"])
	assert.Equal(t, true, raw["install"])
	assert.NotContains(t, raw, "templatesDir")
	assert.Equal(t, map[string]interface{}{"command": "npx -y neondb --yes"}, raw["provision"])
	assert.Equal(t, map[string]interface{}{"timestamps": true}, raw["log"])
}
