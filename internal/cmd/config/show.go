package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kitforge/create-express/internal/config"
	"github.com/kitforge/create-express/internal/output"
)

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show resolved configuration values and where they came from",
		Long: `Show every setting after applying flag > environment > config file >
default precedence. Values overridden by a higher source are listed below
the winning value.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			output.Print(renderResolved(cfg.Resolved.Values()))
			return nil
		},
	}
}

func renderResolved(values []config.ResolvedValue) string {
	styles := output.GetStyles()

	width := 0
	for _, v := range values {
		width = max(width, len(v.Key))
	}

	var sb strings.Builder
	for _, v := range values {
		value := v.Value
		if value == "" {
			value = "(unset)"
		}
		fmt.Fprintf(&sb, "%-*s  %s  %s\n", width, v.Key, value, styles.Muted.Render("("+string(v.Source)+")"))

		sources := make([]string, 0, len(v.Shadowed))
		for source := range v.Shadowed {
			sources = append(sources, string(source))
		}
		sort.Strings(sources)
		for _, source := range sources {
			line := fmt.Sprintf("%-*s    shadowed %s: %s", width, "", source, v.Shadowed[config.ConfigSource(source)])
			sb.WriteString(styles.Muted.Render(line))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
