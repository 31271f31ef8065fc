package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for create-express configuration.
const envPrefix = "CREATE_EXPRESS"

// Configuration keys, as written in the config file.
const (
	KeyPackageManager   = "packageManager"
	KeyGit              = "git"
	KeyInstall          = "install"
	KeyTemplatesDir     = "templatesDir"
	KeyProvisionCommand = "provision.command"
	KeyLogTimestamps    = "log.timestamps"
)

// Keys lists every configuration key in display order.
var Keys = []string{
	KeyPackageManager,
	KeyGit,
	KeyInstall,
	KeyTemplatesDir,
	KeyProvisionCommand,
	KeyLogTimestamps,
}

// EnvVar returns the environment variable bound to a configuration key,
// e.g. "provision.command" -> "CREATE_EXPRESS_PROVISION_COMMAND".
func EnvVar(key string) string {
	var b strings.Builder
	b.WriteString(envPrefix)
	b.WriteByte('_')
	for i, r := range key {
		switch {
		case r == '.':
			b.WriteByte('_')
		case r >= 'A' && r <= 'Z':
			if i > 0 && key[i-1] != '.' {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteString(strings.ToUpper(string(r)))
		}
	}
	return b.String()
}

// Loader reads the config file and the bound environment variables. The two
// are kept apart so the resolver can report where each value came from.
type Loader struct {
	v   *viper.Viper
	env *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	env := viper.New()
	for _, key := range Keys {
		_ = env.BindEnv(key, EnvVar(key))
	}

	return &Loader{v: viper.New(), env: env}
}

// Load loads configuration from the given file path. If configFile is
// empty, the default path is used. A missing file yields an empty Config.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", expandedPath, err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LookupEnv returns the environment value bound to key, if set and non-empty.
func (l *Loader) LookupEnv(key string) (string, bool) {
	if !l.env.IsSet(key) {
		return "", false
	}
	v := l.env.GetString(key)
	return v, v != ""
}
