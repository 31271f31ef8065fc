package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitforge/create-express/internal/config"
)

func TestConfigShow(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	resolved, err := config.ResolveAll(config.ResolveAllOptions{
		PackageManagerFlag: config.StringFlag("pnpm"),
		Config:             &config.Config{PackageManager: "bun"},
		LookupEnv: func(key string) (string, bool) {
			if key == config.KeyPackageManager {
				return "yarn", true
			}
			return "", false
		},
	})
	require.NoError(t, err)

	out, err := run(t, NewConfigShowCmd(&config.GlobalConfig{Resolved: resolved}))
	require.NoError(t, err)

	assert.Regexp(t, `packageManager\s+pnpm\s+\(flag\)`, out)
	assert.Regexp(t, `shadowed config: bun`, out)
	assert.Regexp(t, `shadowed env: yarn`, out)
	assert.Regexp(t, `templatesDir\s+\(unset\)\s+\(default\)`, out)
	assert.Regexp(t, `provision\.command\s+npx -y neondb --yes\s+\(default\)`, out)
}

func TestRenderResolved_SortsShadowedSources(t *testing.T) {
	out := renderResolved([]config.ResolvedValue{{
		Key:    "git",
		Value:  "false",
		Source: config.SourceFlag,
		Shadowed: map[config.ConfigSource]string{
			config.SourceEnv:    "true",
			config.SourceConfig: "true",
		},
	}})

	assert.Less(t, strings.Index(out, "shadowed config"), strings.Index(out, "shadowed env"))
}
