package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kitforge/create-express/internal/config"
	"github.com/kitforge/create-express/internal/exec"
	"github.com/kitforge/create-express/internal/output"
	"github.com/kitforge/create-express/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *config.GlobalConfig, runner exec.Runner) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show create-express version information.

Displays:
  - create-express version, commit, and build date
  - versions of node, git, and the supported package managers on PATH`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			tools := version.DetectTools(ctx, runner, version.Tools)
			output.Println(version.FullVersionString(version.Get(), tools))
			return nil
		},
	}
}
