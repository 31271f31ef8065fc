package scaffold

import "strings"

// Excludes decides which template entries the bulk copy skips.
type Excludes struct {
	// Dirs are directory basenames skipped without descending.
	Dirs []string

	// Names are file basenames never copied.
	Names []string

	// Suffixes are file name suffixes never copied.
	Suffixes []string
}

// DefaultExcludes returns the rules shared by every template: install and
// build output, package-manager lockfiles, and the .gitignore seed.
func DefaultExcludes() Excludes {
	return Excludes{
		Dirs:     []string{"node_modules", "dist"},
		Names:    []string{GitignoreSeedPath},
		Suffixes: []string{".lock", "lock.json", "-lock.yaml"},
	}
}

// Match reports whether an entry with the given basename is excluded.
func (e Excludes) Match(name string, isDir bool) bool {
	if isDir {
		for _, d := range e.Dirs {
			if name == d {
				return true
			}
		}
		return false
	}

	for _, n := range e.Names {
		if name == n {
			return true
		}
	}
	for _, s := range e.Suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
