package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/kitforge/create-express/internal/errors"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func boolp(b bool) *bool { return &b }

func TestResolveAll_Defaults(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")

	r, err := ResolveAll(ResolveAllOptions{LookupEnv: envMap(nil)})
	require.NoError(t, err)

	assert.Equal(t, "npm", r.PackageManager.Value)
	assert.Equal(t, SourceDefault, r.PackageManager.Source)
	assert.True(t, r.Git.Bool())
	assert.True(t, r.Install.Bool())
	assert.Empty(t, r.TemplatesDir.Value)
	assert.Equal(t, "npx -y neondb --yes", r.ProvisionCommand.Value)
	assert.True(t, r.Timestamps.Bool())
	assert.Equal(t, SourceDefault, r.ConfigPath.Source)
	assert.Empty(t, r.PackageManager.Shadowed)
}

func TestResolveAll_Precedence(t *testing.T) {
	cfg := &Config{
		PackageManager: "yarn",
		Git:            boolp(true),
		Install:        boolp(false),
		TemplatesDir:   "/config/templates",
		Provision:      ProvisionConfig{Command: "config-provision"},
		Log:            LogConfig{Timestamps: boolp(false)},
	}

	tests := []struct {
		name       string
		opts       ResolveAllOptions
		wantPM     string
		wantSource ConfigSource
		wantShadow map[ConfigSource]string
	}{
		{
			name: "flag overrides all",
			opts: ResolveAllOptions{
				PackageManagerFlag: StringFlag("pnpm"),
				LookupEnv:          envMap(map[string]string{KeyPackageManager: "bun"}),
			},
			wantPM:     "pnpm",
			wantSource: SourceFlag,
			wantShadow: map[ConfigSource]string{SourceEnv: "bun", SourceConfig: "yarn"},
		},
		{
			name: "env overrides config",
			opts: ResolveAllOptions{
				LookupEnv: envMap(map[string]string{KeyPackageManager: "bun"}),
			},
			wantPM:     "bun",
			wantSource: SourceEnv,
			wantShadow: map[ConfigSource]string{SourceConfig: "yarn"},
		},
		{
			name:       "config overrides default",
			opts:       ResolveAllOptions{LookupEnv: envMap(nil)},
			wantPM:     "yarn",
			wantSource: SourceConfig,
			wantShadow: map[ConfigSource]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Config = cfg
			r, err := ResolveAll(tt.opts)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPM, r.PackageManager.Value)
			assert.Equal(t, tt.wantSource, r.PackageManager.Source)
			assert.Equal(t, tt.wantShadow, r.PackageManager.Shadowed)
		})
	}
}

func TestResolveAll_Booleans(t *testing.T) {
	cfg := &Config{Git: boolp(true), Install: boolp(true), Log: LogConfig{Timestamps: boolp(true)}}

	r, err := ResolveAll(ResolveAllOptions{
		GitFlag:        BoolFlag(false, true),
		InstallFlag:    BoolFlag(true, false),
		TimestampsFlag: BoolFlag(true, false),
		Config:         cfg,
		LookupEnv:      envMap(map[string]string{KeyInstall: "false"}),
	})
	require.NoError(t, err)

	assert.False(t, r.Git.Bool())
	assert.Equal(t, SourceFlag, r.Git.Source)
	assert.Equal(t, "true", r.Git.Shadowed[SourceConfig])

	assert.False(t, r.Install.Bool(), "unset flag does not shadow env")
	assert.Equal(t, SourceEnv, r.Install.Source)

	assert.True(t, r.Timestamps.Bool())
	assert.Equal(t, SourceConfig, r.Timestamps.Source)
}

func TestResolveAll_ProvisionCommandHasNoFlag(t *testing.T) {
	r, err := ResolveAll(ResolveAllOptions{
		Config:    &Config{Provision: ProvisionConfig{Command: "from-config"}},
		LookupEnv: envMap(map[string]string{KeyProvisionCommand: "from-env"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "from-env", r.ProvisionCommand.Value)
	assert.Equal(t, "from-config", r.ProvisionCommand.Shadowed[SourceConfig])
}

func TestResolveAll_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		opts ResolveAllOptions
		want string
	}{
		{
			name: "unknown package manager in config",
			opts: ResolveAllOptions{Config: &Config{PackageManager: "deno"}, LookupEnv: envMap(nil)},
			want: "packageManager",
		},
		{
			name: "non-boolean env",
			opts: ResolveAllOptions{LookupEnv: envMap(map[string]string{KeyGit: "maybe"})},
			want: "CREATE_EXPRESS_GIT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveAll(tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrValidation))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Run("flag precedence", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "/env/config.yaml")
		result, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: "/flag/config.yaml"})
		require.NoError(t, err)

		assert.Equal(t, "/flag/config.yaml", result.ConfigPath)
		assert.Equal(t, SourceFlag, result.Source)
		assert.Equal(t, "/env/config.yaml", result.Shadowed[SourceEnv])
		assert.NotEmpty(t, result.Shadowed[SourceDefault])
	})

	t.Run("env precedence", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "/env/config.yaml")
		result, err := ResolveConfigPath(ResolveConfigPathOptions{})
		require.NoError(t, err)

		assert.Equal(t, "/env/config.yaml", result.ConfigPath)
		assert.Equal(t, SourceEnv, result.Source)
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "")
		result, err := ResolveConfigPath(ResolveConfigPathOptions{})
		require.NoError(t, err)

		assert.Contains(t, result.ConfigPath, "create-express")
		assert.Contains(t, result.ConfigPath, "config.yaml")
		assert.Equal(t, SourceDefault, result.Source)
		assert.Empty(t, result.Shadowed)
	})
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "flag", string(SourceFlag))
	assert.Equal(t, "env", string(SourceEnv))
	assert.Equal(t, "config", string(SourceConfig))
	assert.Equal(t, "default", string(SourceDefault))
}
