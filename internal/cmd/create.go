package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kitforge/create-express/internal/config"
	oerrors "github.com/kitforge/create-express/internal/errors"
	"github.com/kitforge/create-express/internal/exec"
	"github.com/kitforge/create-express/internal/output"
	"github.com/kitforge/create-express/internal/postinit"
	"github.com/kitforge/create-express/internal/prompt"
	"github.com/kitforge/create-express/internal/scaffold"
	"github.com/kitforge/create-express/internal/templates"
)

// createFlags are the root command's local flags.
type createFlags struct {
	template       string
	database       string
	packageManager string
	git            bool
	noGit          bool
	install        bool
	noInstall      bool
	yes            bool
}

func (f *createFlags) register(c *cobra.Command) {
	flags := c.Flags()
	flags.StringVarP(&f.template, "template", "t", "",
		fmt.Sprintf("Template to use (%s)", strings.Join(templates.Names(), ", ")))
	flags.StringVarP(&f.database, "database", "d", "",
		fmt.Sprintf("Database for the advance template (%s)", strings.Join(templates.DatabaseNames(), ", ")))
	flags.StringVar(&f.packageManager, "package-manager", "",
		fmt.Sprintf("Package manager used to install dependencies (%s)", strings.Join(postinit.PackageManagerNames(), ", ")))
	flags.BoolVar(&f.git, "git", true, "Initialize a git repository")
	flags.BoolVar(&f.noGit, "no-git", false, "Skip git repository initialization")
	flags.BoolVar(&f.install, "install", true, "Install dependencies")
	flags.BoolVar(&f.noInstall, "no-install", false, "Skip dependency installation")
	flags.BoolVarP(&f.yes, "yes", "y", false, "Accept defaults for every unanswered choice")

	c.MarkFlagsMutuallyExclusive("git", "no-git")
	c.MarkFlagsMutuallyExclusive("install", "no-install")
}

// gitFlag folds --git and --no-git into one resolvable flag.
func (f *createFlags) gitFlag(flags *pflag.FlagSet) config.Flag {
	return negatable(flags, "git", f.git, f.noGit)
}

func (f *createFlags) installFlag(flags *pflag.FlagSet) config.Flag {
	return negatable(flags, "install", f.install, f.noInstall)
}

func negatable(flags *pflag.FlagSet, name string, value, negated bool) config.Flag {
	switch {
	case flags.Changed("no-" + name):
		return config.BoolFlag(!negated, true)
	case flags.Changed(name):
		return config.BoolFlag(value, true)
	default:
		return config.BoolFlag(value, false)
	}
}

// answers builds the prompt input from arguments, flags, and resolved config.
func (f *createFlags) answers(flags *pflag.FlagSet, args []string, resolved *config.ResolvedConfig) (prompt.Answers, error) {
	a := prompt.Answers{
		Spec:    templates.NewSpec(templates.GetDefault().Kind, templates.SQLite),
		Git:     resolved.Git.Bool(),
		Install: resolved.Install.Bool(),
	}

	if len(args) > 0 && args[0] != "" {
		a.Directory = args[0]
		a.Set |= prompt.FieldDirectory
	}

	if f.template != "" {
		kind, err := templates.ParseKind(f.template)
		if err != nil {
			return a, oerrors.NewValidationError(err.Error(), "--template",
				"Run 'create-express templates list' to see available templates.")
		}
		a.Spec.Kind = kind
		a.Set |= prompt.FieldTemplate
	}

	if f.database != "" {
		db, err := templates.ParseDatabase(f.database)
		if err != nil {
			return a, oerrors.NewValidationError(err.Error(), "--database", "")
		}
		a.Spec.Database = db
		a.Set |= prompt.FieldDatabase
	}

	if flags.Changed("git") || flags.Changed("no-git") {
		a.Set |= prompt.FieldGit
	}
	if flags.Changed("install") || flags.Changed("no-install") {
		a.Set |= prompt.FieldInstall
	}

	if a.Set.Has(prompt.FieldTemplate) && a.Spec.Kind == templates.Basic {
		a.Set |= prompt.FieldDatabase
	}

	return a, nil
}

// databaseIgnored reports whether --database was given but the chosen
// template has no database, including when the template came from a default.
func (f *createFlags) databaseIgnored(a prompt.Answers) bool {
	return f.database != "" && a.Spec.Kind != templates.Advanced
}

// prompter picks the interactive form only when a terminal is attached and
// --yes was not given.
func (f *createFlags) prompter(d deps) prompt.Prompter {
	switch {
	case f.yes:
		return prompt.Static{}
	case d.prompter != nil:
		return d.prompter
	case !output.IsTTY():
		return prompt.Static{}
	default:
		return &prompt.Form{}
	}
}

func runCreate(c *cobra.Command, args []string, f *createFlags, cfg *config.GlobalConfig, d deps) error {
	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	resolved := cfg.Resolved

	a, err := f.answers(c.Flags(), args, resolved)
	if err != nil {
		return err
	}

	a, err = f.prompter(d).Prompt(ctx, a)
	if err != nil {
		return err
	}
	if f.databaseIgnored(a) {
		output.Warn("--database is ignored for the basic template", "database", f.database)
	}

	dest, err := filepath.Abs(a.Directory)
	if err != nil {
		return fmt.Errorf("resolving destination: %w", err)
	}

	if err := scaffold.CheckDestination(scaffold.OSFS{}, dest); err != nil {
		return destinationError(dest, err)
	}

	source, err := templates.Open(resolved.TemplatesDir.Value)
	if err != nil {
		return oerrors.NewNotFoundError(err.Error(), resolved.TemplatesDir.Value,
			"Check the templatesDir setting or unset "+config.EnvVar(config.KeyTemplatesDir)+".")
	}

	plan, err := scaffold.Resolve(a.Spec, source)
	if err != nil {
		if errors.Is(err, scaffold.ErrUnknownTemplate) {
			return oerrors.NewValidationError(err.Error(), "--template",
				"Run 'create-express templates list' to see available templates.")
		}
		return err
	}

	output.Info("creating project", "template", a.Spec.String(), "dir", dest)

	result, err := scaffold.Materialize(plan, dest)
	if err != nil {
		return materializeError(dest, err)
	}
	for _, rel := range result.SkippedRewrites {
		output.Debug("rewrite target not in template", "path", rel)
	}

	if err := scaffold.Validate(dest, a.Spec); err != nil {
		warnViolations(err)
	}

	pm, err := postinit.ParsePackageManager(resolved.PackageManager.Value)
	if err != nil {
		return err
	}

	steps := &postinit.Steps{
		Runner:           d.runner,
		Dir:              dest,
		PackageManager:   pm,
		ProvisionCommand: resolved.ProvisionCommand.Value,
	}
	manual := runSteps(ctx, steps, a)

	printSummary(a, dest, result, pm, manual)
	return nil
}

// pendingCommands are commands the user still has to run, keyed by step.
type pendingCommands map[postinit.Step]string

// runSteps runs git, provisioning, and install in order. Failures are logged
// as warnings and returned as commands to run by hand.
func runSteps(ctx context.Context, steps *postinit.Steps, a prompt.Answers) pendingCommands {
	pending := pendingCommands{}

	record := func(err error) {
		if err == nil {
			return
		}
		var stepErr *postinit.StepError
		if !errors.As(err, &stepErr) {
			output.Warn("post-setup step failed", "error", err)
			return
		}
		output.StepLogger(string(stepErr.Step)).Warn("step failed, run it manually",
			"command", stepErr.Command, "error", stepErr.Err)
		if stepErr.Output != "" {
			output.Debug("step output", "step", string(stepErr.Step), "stderr", stepErr.Output)
		}
		pending[stepErr.Step] = stepErr.Command
	}

	if a.Git {
		record(steps.InitGit(ctx))
	}
	if a.Spec.Kind == templates.Advanced && a.Spec.Database == templates.Postgres {
		record(steps.ProvisionDatabase(ctx))
	}
	if a.Install {
		record(steps.Install(ctx))
	} else {
		pending[postinit.StepInstall] = exec.CommandLine(steps.PackageManager.InstallCommand())
	}

	return pending
}

// destinationError reports a destination that cannot be scaffolded into.
// It is a setup failure, not invalid input, so it exits 1.
func destinationError(dest string, err error) error {
	if errors.Is(err, scaffold.ErrDestinationNotEmpty) {
		return oerrors.NewExitError(&oerrors.DetailError{
			Type:     "destination not empty",
			Message:  err.Error(),
			Location: dest,
			Hint:     "Choose a new directory name or empty the existing one.",
			Cause:    err,
		}, oerrors.ExitGeneralError)
	}
	return fmt.Errorf("checking destination: %w", err)
}

func materializeError(dest string, err error) error {
	var merr *scaffold.MaterializeError
	if !errors.As(err, &merr) {
		return err
	}
	if errors.Is(err, scaffold.ErrDestinationNotEmpty) {
		return destinationError(dest, err)
	}

	detail := &oerrors.DetailError{
		Type:     "scaffolding failed",
		Message:  merr.Err.Error(),
		Location: dest,
		Context:  map[string]string{"step": string(merr.Step)},
		Hint:     "Files written so far were left in place. Remove " + dest + " before retrying.",
		Cause:    err,
	}
	if merr.Path != "" {
		detail.Context["path"] = merr.Path
	}
	if errors.Is(err, scaffold.ErrRewriteNoMatch) {
		detail.Hint = "The template no longer matches the expected layout. " + detail.Hint
	}
	return detail
}

func warnViolations(err error) {
	var verr *scaffold.ValidationError
	if !errors.As(err, &verr) {
		output.Warn("validating project", "error", err)
		return
	}
	for _, v := range verr.Violations {
		output.Warn(v.Message, "check", v.Check, "path", v.Path)
	}
}

// fileDescriptions annotates the well-known files in the summary tree.
var fileDescriptions = map[string]string{
	"package.json":             "dependencies and scripts",
	"src/index.ts":             "server entry point",
	scaffold.GitignoreFile:     "ignored files",
	scaffold.EnvFile:           "local environment",
	scaffold.DrizzleConfigPath: "Drizzle Kit config",
	scaffold.DBConnectorPath:   "database client",
	scaffold.AuthConfigPath:    "Better Auth config",
	scaffold.AuthSchemaPath:    "auth tables",
}

func printSummary(a prompt.Answers, dest string, result *scaffold.Result, pm postinit.PackageManager, pending pendingCommands) {
	files := make(map[string]string, len(result.Files))
	for _, rel := range result.Files {
		files[rel] = fileDescriptions[rel]
	}

	output.Println("")
	output.Println(output.FormatCheckmark(fmt.Sprintf("Created %s from the %s template", a.Directory, a.Spec)))
	output.Println("")
	output.Print(output.RenderFileTree(filepath.Base(dest), files, output.GetStyles()))
	output.Println("")

	if len(result.Rewritten)+len(result.SkippedRewrites) > 0 {
		for _, rel := range result.Rewritten {
			output.Println(output.FormatFileLine(rel, output.StatusRewritten))
		}
		for _, rel := range result.SkippedRewrites {
			output.Println(output.FormatFileLine(rel, output.StatusSkipped))
		}
		output.Println("")
	}
	output.Print(output.FormatNextSteps(nextSteps(a, pm, pending)))
}

// nextSteps lists the commands that take the new project to a running
// server, starting with any failed or skipped post-setup step.
func nextSteps(a prompt.Answers, pm postinit.PackageManager, pending pendingCommands) []string {
	steps := []string{"cd " + a.Directory}

	for _, step := range []postinit.Step{postinit.StepGit, postinit.StepProvision, postinit.StepInstall} {
		if cmd, ok := pending[step]; ok {
			steps = append(steps, cmd)
		}
	}

	if a.Spec.Kind == templates.Advanced {
		steps = append(steps, pm.RunScript("db:push"))
	}
	return append(steps, pm.RunScript("dev"))
}
