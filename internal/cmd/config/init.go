package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kitforge/create-express/internal/config"
	oerrors "github.com/kitforge/create-express/internal/errors"
	"github.com/kitforge/create-express/internal/output"
)

const configHeader = `# create-express configuration
# Values here are overridden by CREATE_EXPRESS_* environment variables and
# by command-line flags.

`

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *config.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file with default values",
		Long: heredoc.Doc(`
			Create a configuration file with default values.

			The file is created at ~/.config/create-express/config.yaml by default
			($XDG_CONFIG_HOME is honored). Use --config or CREATE_EXPRESS_CONFIG
			to choose a different location.
		`),
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	return c
}

func runInit(cfg *config.GlobalConfig, force bool) error {
	configFile := cfg.Resolved.ConfigPath.Value
	if configFile == "" {
		var err error
		configFile, err = config.GetConfigFile()
		if err != nil {
			return fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := config.ExpandPath(configFile)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := config.ConfigFileExists(expandedPath)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if exists && !force {
		return oerrors.NewExitError(
			fmt.Errorf("config file already exists at %s (use --force to overwrite)", expandedPath),
			oerrors.ExitGeneralError,
		)
	}

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append([]byte(configHeader), data...)

	if err := os.WriteFile(expandedPath, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	output.Println(output.FormatCheckmark("Created config file at " + expandedPath))
	return nil
}
