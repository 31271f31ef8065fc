package templates

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kitforge/create-express/internal/config"
	"github.com/kitforge/create-express/internal/output"
	"github.com/kitforge/create-express/internal/templates"
)

// NewListCmd creates the templates list command.
func NewListCmd(_ *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			output.Print(renderList(templates.List(), output.GetStyles()))
			return nil
		},
	}
}

func renderList(list []templates.Template, styles *output.Styles) string {
	var sb strings.Builder
	for _, t := range list {
		name := t.Name()
		if t.Default {
			name += " (default)"
		}
		sb.WriteString(styles.Bold.Render(name))
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  %s\n", t.Description)
		sb.WriteString(styles.Muted.Render("  Use for: " + t.UseCase))
		sb.WriteString("\n")
		if t.Kind == templates.Advanced {
			sb.WriteString(styles.Muted.Render("  Databases: " + strings.Join(templates.DatabaseNames(), ", ")))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
