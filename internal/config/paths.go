package config

import (
	"os"
	"path/filepath"
)

// Environment variable overriding the config file location.
const ConfigEnvVar = envPrefix + "_CONFIG"

// Paths contains standard filesystem paths for create-express.
type Paths struct {
	// ConfigFile is the path to the config file.
	ConfigFile string

	// HomeDir is the create-express configuration directory.
	HomeDir string
}

// DefaultPaths returns the default paths. XDG_CONFIG_HOME is honored;
// otherwise ~/.config is used on every platform.
func DefaultPaths() (*Paths, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(homeDir, ".config")
	}

	home := filepath.Join(base, "create-express")

	return &Paths{
		ConfigFile: filepath.Join(home, "config.yaml"),
		HomeDir:    home,
	}, nil
}

// GetConfigFile returns the config file path.
// If CREATE_EXPRESS_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv(ConfigEnvVar); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
