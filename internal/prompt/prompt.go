// Package prompt collects the project choices interactively.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	oerrors "github.com/kitforge/create-express/internal/errors"
	"github.com/kitforge/create-express/internal/templates"
)

// DefaultDirectory is offered when no project directory is given.
const DefaultDirectory = "my-express-app"

// Fields is a set of answers already fixed on the command line.
type Fields uint8

const (
	FieldDirectory Fields = 1 << iota
	FieldTemplate
	FieldDatabase
	FieldGit
	FieldInstall
)

// Has reports whether every field in f2 is set in f.
func (f Fields) Has(f2 Fields) bool {
	return f&f2 == f2
}

// Answers are the choices that drive one invocation.
type Answers struct {
	Directory string
	Spec      templates.Spec
	Git       bool
	Install   bool

	// Set lists the answers fixed by flags; they are not asked again.
	Set Fields
}

// Prompter completes a set of answers.
type Prompter interface {
	Prompt(ctx context.Context, a Answers) (Answers, error)
}

// Static returns answers unchanged apart from defaults. It is used with
// --yes and whenever no terminal is attached.
type Static struct{}

// Prompt implements Prompter.
func (Static) Prompt(_ context.Context, a Answers) (Answers, error) {
	if strings.TrimSpace(a.Directory) == "" {
		a.Directory = DefaultDirectory
	}
	a.Spec = a.Spec.Normalize()
	return a, nil
}

// Form asks for every unanswered field with a huh form.
type Form struct {
	// Accessible switches huh to plain line-based prompts.
	Accessible bool
}

// Prompt implements Prompter. Aborting the form returns ErrInterrupted.
func (f *Form) Prompt(ctx context.Context, a Answers) (Answers, error) {
	c := newChoices(a)

	groups := c.groups(a.Set)
	if len(groups) == 0 {
		return Static{}.Prompt(ctx, a)
	}

	form := huh.NewForm(groups...).WithAccessible(f.Accessible)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			return a, oerrors.Wrap(oerrors.ErrInterrupted, "prompt aborted")
		}
		return a, fmt.Errorf("running prompt: %w", err)
	}

	return c.apply(a)
}

// choices holds the form's bound values in their string form.
type choices struct {
	directory string
	kind      string
	database  string
	git       bool
	install   bool
}

func newChoices(a Answers) *choices {
	return &choices{
		directory: a.Directory,
		kind:      a.Spec.Kind.String(),
		database:  a.Spec.Database.String(),
		git:       a.Git,
		install:   a.Install,
	}
}

func (c *choices) groups(set Fields) []*huh.Group {
	var groups []*huh.Group

	if !set.Has(FieldDirectory) {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Project directory").
				Placeholder(DefaultDirectory).
				Validate(validateDirectory).
				Value(&c.directory),
		))
	}

	if !set.Has(FieldTemplate) {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Template").
				Options(templateOptions()...).
				Value(&c.kind),
		))
	}

	if !set.Has(FieldDatabase) {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Database").
				Options(databaseOptions()...).
				Value(&c.database),
		).WithHideFunc(func() bool {
			kind, err := templates.ParseKind(c.kind)
			return err != nil || kind != templates.Advanced
		}))
	}

	var confirms []huh.Field
	if !set.Has(FieldGit) {
		confirms = append(confirms, huh.NewConfirm().
			Title("Initialize a git repository?").
			Value(&c.git))
	}
	if !set.Has(FieldInstall) {
		confirms = append(confirms, huh.NewConfirm().
			Title("Install dependencies?").
			Value(&c.install))
	}
	if len(confirms) > 0 {
		groups = append(groups, huh.NewGroup(confirms...))
	}

	return groups
}

// apply parses the bound values back into a.
func (c *choices) apply(a Answers) (Answers, error) {
	kind, err := templates.ParseKind(c.kind)
	if err != nil {
		return a, err
	}
	db, err := templates.ParseDatabase(c.database)
	if err != nil {
		return a, err
	}

	a.Directory = strings.TrimSpace(c.directory)
	a.Spec = templates.NewSpec(kind, db)
	a.Git = c.git
	a.Install = c.install
	return Static{}.Prompt(context.Background(), a)
}

func templateOptions() []huh.Option[string] {
	var opts []huh.Option[string]
	for _, t := range templates.List() {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s - %s", t.Name(), t.Description), t.Name()))
	}
	return opts
}

func databaseOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("SQLite (local libSQL file)", templates.SQLite.String()),
		huh.NewOption("Neon (serverless Postgres)", templates.Postgres.String()),
	}
}

func validateDirectory(s string) error {
	if strings.ContainsRune(s, 0) {
		return errors.New("directory name contains a NUL byte")
	}
	return nil
}
