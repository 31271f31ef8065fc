// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	cmdconfig "github.com/kitforge/create-express/internal/cmd/config"
	cmdtemplates "github.com/kitforge/create-express/internal/cmd/templates"
	"github.com/kitforge/create-express/internal/config"
	"github.com/kitforge/create-express/internal/exec"
	"github.com/kitforge/create-express/internal/output"
	"github.com/kitforge/create-express/internal/prompt"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	config       string
	verbose      bool
	timestamps   bool
	templatesDir string
}

// deps are the collaborators the create flow talks to.
type deps struct {
	runner exec.Runner

	// prompter overrides the TTY-based choice between Form and Static.
	prompter prompt.Prompter
}

// NewRootCmd creates the root command. Running it without a subcommand
// scaffolds a new project.
func NewRootCmd() *cobra.Command {
	return newRootCmd(deps{runner: exec.NewOSRunner()})
}

func newRootCmd(d deps) *cobra.Command {
	var gf globalFlags
	var cf createFlags
	cfg := &config.GlobalConfig{}

	c := &cobra.Command{
		Use:   "create-express [directory]",
		Short: "Scaffold a new Express + TypeScript project",
		Long: heredoc.Doc(`
			Scaffold a new Express + TypeScript project from a packaged template.

			Templates:
			  basic     Express server with a health route (default)
			  advance   Adds Drizzle ORM and Better Auth on SQLite or Neon Postgres

			The destination directory must be missing or empty. When a terminal is
			attached, unanswered choices are asked interactively; pass --yes to
			accept defaults instead.
		`),
		Example: heredoc.Doc(`
			# Ask for everything
			create-express

			# Basic project, no questions
			create-express my-api --yes

			# Advanced project on Neon, installed with pnpm
			create-express shop-api -t advance -d neon --package-manager pnpm
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, &gf, &cf, cfg)
		},
		RunE: func(c *cobra.Command, args []string) error {
			return runCreate(c, args, &cf, cfg, d)
		},
	}

	c.PersistentFlags().StringVar(&gf.config, "config", "",
		"Path to config file (env: "+config.ConfigEnvVar+")")
	c.PersistentFlags().BoolVarP(&gf.verbose, "verbose", "v", false, "Enable verbose output")
	c.PersistentFlags().BoolVar(&gf.timestamps, "timestamps", true, "Show timestamps in log output")
	c.PersistentFlags().StringVar(&gf.templatesDir, "templates-dir", "",
		"Use templates from a local directory (env: "+config.EnvVar(config.KeyTemplatesDir)+")")

	cf.register(c)

	c.AddCommand(cmdtemplates.NewTemplatesCmd(cfg))
	c.AddCommand(cmdconfig.NewConfigCmd(cfg))
	c.AddCommand(NewVersionCmd(cfg, d.runner))

	return c
}

// initializeGlobals loads the config file, resolves every setting, and sets
// up logging. The result is stored in cfg for the command constructors.
func initializeGlobals(c *cobra.Command, gf *globalFlags, cf *createFlags, cfg *config.GlobalConfig) error {
	flags := c.Flags()

	configPath, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{FlagValue: gf.config})
	if err != nil {
		return err
	}

	loader := config.NewLoader()
	loaded, err := loader.Load(configPath.ConfigPath)
	if err != nil {
		return err
	}

	resolved, err := config.ResolveAll(config.ResolveAllOptions{
		ConfigFlag:         config.StringFlag(gf.config),
		PackageManagerFlag: config.StringFlag(cf.packageManager),
		GitFlag:            cf.gitFlag(flags),
		InstallFlag:        cf.installFlag(flags),
		TemplatesDirFlag:   config.StringFlag(gf.templatesDir),
		TimestampsFlag:     config.BoolFlag(gf.timestamps, flags.Changed("timestamps")),
		Config:             loaded,
		LookupEnv:          loader.LookupEnv,
	})
	if err != nil {
		return err
	}

	cfg.Config = loaded
	cfg.Resolved = resolved
	cfg.Verbose = gf.verbose

	output.SetupLogging(output.LogConfig{
		Verbose:    gf.verbose,
		Timestamps: output.BoolPtr(resolved.Timestamps.Bool()),
	})

	if gf.verbose {
		config.LogResolvedValues(resolved.Values())
	}

	return nil
}
