package templates

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/kitforge/create-express/internal/config"
	oerrors "github.com/kitforge/create-express/internal/errors"
	"github.com/kitforge/create-express/internal/output"
	"github.com/kitforge/create-express/internal/scaffold"
	"github.com/kitforge/create-express/internal/templates"
)

// NewShowCmd creates the templates show command.
func NewShowCmd(cfg *config.GlobalConfig) *cobra.Command {
	var database string

	c := &cobra.Command{
		Use:   "show <template>",
		Short: "Show the files a template produces and how they are rewritten",
		Long: heredoc.Doc(`
			Resolve a template for a database choice and print the resulting plan
			without writing anything: the files the template contains, the
			variant files added and removed, and a unified diff of every rewrite.
		`),
		Example: heredoc.Doc(`
			create-express templates show basic
			create-express templates show advance --database neon
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runShow(cfg, args[0], database)
		},
	}

	c.Flags().StringVarP(&database, "database", "d", templates.SQLite.String(),
		fmt.Sprintf("Database to resolve for (%s)", strings.Join(templates.DatabaseNames(), ", ")))

	return c
}

func runShow(cfg *config.GlobalConfig, kindName, dbName string) error {
	kind, err := templates.ParseKind(kindName)
	if err != nil {
		return oerrors.NewValidationError(err.Error(), kindName,
			"Run 'create-express templates list' to see available templates.")
	}
	db, err := templates.ParseDatabase(dbName)
	if err != nil {
		return oerrors.NewValidationError(err.Error(), "--database", "")
	}
	spec := templates.NewSpec(kind, db)

	source, err := templates.Open(cfg.Resolved.TemplatesDir.Value)
	if err != nil {
		return err
	}

	plan, err := scaffold.Resolve(spec, source)
	if err != nil {
		return err
	}
	preview, err := scaffold.PreviewPlan(plan)
	if err != nil {
		return fmt.Errorf("previewing %s: %w", spec, err)
	}

	files, err := templates.ListFiles(source, kind)
	if err != nil {
		return err
	}

	styles := output.GetStyles()
	output.Println(styles.Bold.Render("Template: " + spec.String()))
	output.Println("")
	output.Print(output.RenderSimpleTree(plan.SourceRoot, copied(plan, files), styles))
	output.Println("")
	output.Print(output.RenderDiff(preview.Added, preview.Removed, modified(preview), styles))
	return nil
}

// copied filters the template's files through the plan's exclude rules.
func copied(plan *scaffold.Plan, files []string) []string {
	var out []string
	for _, f := range files {
		if excluded(plan.Exclude, f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func excluded(ex scaffold.Excludes, rel string) bool {
	parts := strings.Split(rel, "/")
	for i, part := range parts {
		if ex.Match(part, i < len(parts)-1) {
			return true
		}
	}
	return false
}

func modified(p *scaffold.Preview) []output.ModifiedItem {
	items := make([]output.ModifiedItem, 0, len(p.Rewrites))
	for _, rw := range p.Rewrites {
		name := rw.Path + " (" + rw.Name + ")"
		if rw.Skipped {
			items = append(items, output.ModifiedItem{Name: name + " skipped: not in template"})
			continue
		}
		items = append(items, output.ModifiedItem{
			Name: name,
			Diff: output.UnifiedDiff(rw.Path, rw.Before, rw.After),
		})
	}
	return items
}
