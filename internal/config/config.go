// Package config loads the user configuration file and resolves every
// setting against flags and environment variables.
package config

import (
	"github.com/kitforge/create-express/internal/postinit"
)

// ProvisionConfig contains database provisioning settings.
type ProvisionConfig struct {
	// Command provisions a Neon database inside the new project.
	// Env: CREATE_EXPRESS_PROVISION_COMMAND, Default: "npx -y neondb --yes"
	Command string `yaml:"command,omitempty" mapstructure:"command"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `yaml:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the create-express configuration file.
// Loaded from ~/.config/create-express/config.yaml.
type Config struct {
	// PackageManager installs dependencies: npm, pnpm, yarn, or bun.
	// Env: CREATE_EXPRESS_PACKAGE_MANAGER, Default: npm
	PackageManager string `yaml:"packageManager,omitempty" mapstructure:"packageManager"`

	// Git controls whether a repository is initialized.
	// Env: CREATE_EXPRESS_GIT, Default: true
	Git *bool `yaml:"git,omitempty" mapstructure:"git"`

	// Install controls whether dependencies are installed.
	// Env: CREATE_EXPRESS_INSTALL, Default: true
	Install *bool `yaml:"install,omitempty" mapstructure:"install"`

	// TemplatesDir replaces the packaged templates with a local directory.
	// Env: CREATE_EXPRESS_TEMPLATES_DIR
	TemplatesDir string `yaml:"templatesDir,omitempty" mapstructure:"templatesDir"`

	Provision ProvisionConfig `yaml:"provision,omitempty" mapstructure:"provision"`

	Log LogConfig `yaml:"log,omitempty" mapstructure:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `create-express config init` to generate the initial file.
func DefaultConfig() *Config {
	return &Config{
		PackageManager: string(postinit.DefaultPackageManager),
		Git:            boolPtr(true),
		Install:        boolPtr(true),
		Provision: ProvisionConfig{
			Command: postinit.DefaultProvisionCommand,
		},
		Log: LogConfig{
			Timestamps: boolPtr(true),
		},
	}
}

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every command
// constructor.
type GlobalConfig struct {
	// Config is the parsed configuration file (empty when none exists).
	Config *Config

	// Resolved holds every setting after applying precedence.
	Resolved *ResolvedConfig

	Verbose bool
}

func boolPtr(b bool) *bool {
	return &b
}
