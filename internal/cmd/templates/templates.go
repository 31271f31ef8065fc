// Package templates provides CLI command implementations for the templates
// command group.
package templates

import (
	"github.com/spf13/cobra"

	"github.com/kitforge/create-express/internal/config"
)

// NewTemplatesCmd creates the templates command group.
func NewTemplatesCmd(cfg *config.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "templates",
		Short: "Inspect the packaged project templates",
	}

	c.AddCommand(NewListCmd(cfg))
	c.AddCommand(NewShowCmd(cfg))

	return c
}
