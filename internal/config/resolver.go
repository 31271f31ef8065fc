package config

import (
	"fmt"
	"os"
	"strconv"

	oerrors "github.com/kitforge/create-express/internal/errors"
	"github.com/kitforge/create-express/internal/output"
	"github.com/kitforge/create-express/internal/postinit"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is one setting after precedence has been applied.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource

	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// Bool interprets the value as a boolean. Values are validated by
// ResolveAll, so an unparsable value only occurs for non-boolean keys.
func (v ResolvedValue) Bool() bool {
	b, _ := strconv.ParseBool(v.Value)
	return b
}

// ResolvedConfig holds every setting with its source.
type ResolvedConfig struct {
	ConfigPath       ResolvedValue
	PackageManager   ResolvedValue
	Git              ResolvedValue
	Install          ResolvedValue
	TemplatesDir     ResolvedValue
	ProvisionCommand ResolvedValue
	Timestamps       ResolvedValue
}

// Values returns the resolved settings in display order.
func (r *ResolvedConfig) Values() []ResolvedValue {
	return []ResolvedValue{
		r.ConfigPath,
		r.PackageManager,
		r.Git,
		r.Install,
		r.TemplatesDir,
		r.ProvisionCommand,
		r.Timestamps,
	}
}

// Flag is a command-line value and whether the user set it.
type Flag struct {
	Value string
	Set   bool
}

// StringFlag returns a Flag that counts as set when non-empty.
func StringFlag(v string) Flag {
	return Flag{Value: v, Set: v != ""}
}

// BoolFlag returns a Flag for a boolean flag; set reports whether the user
// passed it explicitly.
func BoolFlag(v, set bool) Flag {
	return Flag{Value: strconv.FormatBool(v), Set: set}
}

// ResolveAllOptions contains the inputs to ResolveAll.
type ResolveAllOptions struct {
	ConfigFlag         Flag
	PackageManagerFlag Flag
	GitFlag            Flag
	InstallFlag        Flag
	TemplatesDirFlag   Flag
	TimestampsFlag     Flag

	// Config is the loaded config file. Nil is treated as empty.
	Config *Config

	// LookupEnv returns bound environment values. Nil uses a fresh Loader.
	LookupEnv func(key string) (string, bool)
}

// ResolveAll resolves every setting using precedence:
// (1) flag, (2) CREATE_EXPRESS_* env, (3) config file, (4) default.
// Invalid values return an error wrapping ErrValidation.
func ResolveAll(opts ResolveAllOptions) (*ResolvedConfig, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = NewLoader().LookupEnv
	}
	defaults := DefaultConfig()

	configPath, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: opts.ConfigFlag.Value})
	if err != nil {
		return nil, err
	}

	env := func(key string) candidate {
		v, ok := lookup(key)
		return candidate{source: SourceEnv, value: v, set: ok}
	}
	flag := func(f Flag) candidate {
		return candidate{source: SourceFlag, value: f.Value, set: f.Set}
	}
	file := func(v string) candidate {
		return candidate{source: SourceConfig, value: v, set: v != ""}
	}
	fileBool := func(b *bool) candidate {
		if b == nil {
			return candidate{source: SourceConfig}
		}
		return file(strconv.FormatBool(*b))
	}
	def := func(v string) candidate {
		return candidate{source: SourceDefault, value: v, set: true}
	}

	r := &ResolvedConfig{
		ConfigPath: ResolvedValue{
			Key:      "config",
			Value:    configPath.ConfigPath,
			Source:   configPath.Source,
			Shadowed: configPath.Shadowed,
		},
		PackageManager: resolve(KeyPackageManager,
			flag(opts.PackageManagerFlag), env(KeyPackageManager),
			file(cfg.PackageManager), def(defaults.PackageManager)),
		Git: resolve(KeyGit,
			flag(opts.GitFlag), env(KeyGit),
			fileBool(cfg.Git), def("true")),
		Install: resolve(KeyInstall,
			flag(opts.InstallFlag), env(KeyInstall),
			fileBool(cfg.Install), def("true")),
		TemplatesDir: resolve(KeyTemplatesDir,
			flag(opts.TemplatesDirFlag), env(KeyTemplatesDir),
			file(cfg.TemplatesDir), def("")),
		ProvisionCommand: resolve(KeyProvisionCommand,
			env(KeyProvisionCommand),
			file(cfg.Provision.Command), def(defaults.Provision.Command)),
		Timestamps: resolve(KeyLogTimestamps,
			flag(opts.TimestampsFlag), env(KeyLogTimestamps),
			fileBool(cfg.Log.Timestamps), def("true")),
	}

	if _, err := postinit.ParsePackageManager(r.PackageManager.Value); err != nil {
		return nil, invalid(r.PackageManager, err)
	}
	for _, v := range []ResolvedValue{r.Git, r.Install, r.Timestamps} {
		if _, err := strconv.ParseBool(v.Value); err != nil {
			return nil, invalid(v, fmt.Errorf("%q is not a boolean", v.Value))
		}
	}

	return r, nil
}

func invalid(v ResolvedValue, err error) error {
	return &oerrors.DetailError{
		Type:    "invalid configuration",
		Message: fmt.Sprintf("%s: %v", v.Key, err),
		Context: map[string]string{"source": string(v.Source)},
		Hint:    "Fix the value in the " + sourceHint(v),
		Cause:   oerrors.ErrValidation,
	}
}

func sourceHint(v ResolvedValue) string {
	switch v.Source {
	case SourceFlag:
		return "command-line flag."
	case SourceEnv:
		return EnvVar(v.Key) + " environment variable."
	default:
		return "config file."
	}
}

type candidate struct {
	source ConfigSource
	value  string
	set    bool
}

// resolve picks the first set candidate; later set candidates are recorded
// as shadowed.
func resolve(key string, cands ...candidate) ResolvedValue {
	result := ResolvedValue{
		Key:      key,
		Shadowed: make(map[ConfigSource]string),
	}
	for _, c := range cands {
		if !c.set {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		if c.source != SourceDefault {
			result.Shadowed[c.source] = c.value
		}
	}
	return result
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) CREATE_EXPRESS_CONFIG env, (3) default path.
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(ConfigEnvVar)

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	switch {
	case opts.FlagValue != "":
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
