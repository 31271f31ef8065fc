package postinit

import (
	"fmt"
	"strings"
)

// PackageManager is a supported JavaScript package manager.
type PackageManager string

const (
	NPM  PackageManager = "npm"
	PNPM PackageManager = "pnpm"
	Yarn PackageManager = "yarn"
	Bun  PackageManager = "bun"
)

// DefaultPackageManager is used when none is configured.
const DefaultPackageManager = NPM

var packageManagers = []PackageManager{NPM, PNPM, Yarn, Bun}

// PackageManagerNames returns the supported package manager names.
func PackageManagerNames() []string {
	names := make([]string, 0, len(packageManagers))
	for _, pm := range packageManagers {
		names = append(names, string(pm))
	}
	return names
}

// ParsePackageManager validates a package manager name.
func ParsePackageManager(s string) (PackageManager, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, pm := range packageManagers {
		if string(pm) == name {
			return pm, nil
		}
	}
	return "", fmt.Errorf("unknown package manager %q; valid package managers: %s",
		s, strings.Join(PackageManagerNames(), ", "))
}

// InstallCommand returns the dependency install command.
func (pm PackageManager) InstallCommand() (string, []string) {
	return string(pm), []string{"install"}
}

// RunScript returns the command line that runs a package.json script.
func (pm PackageManager) RunScript(script string) string {
	if pm == NPM {
		return "npm run " + script
	}
	return string(pm) + " " + script
}
