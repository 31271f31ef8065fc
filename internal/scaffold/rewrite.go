package scaffold

import "regexp"

// TransformFunc rewrites a file's text. The boolean reports whether the
// substitution point was found; a false result fails the rewrite step.
type TransformFunc func(text string) (string, bool)

// Rewrite is one documented substitution point applied after the copy.
type Rewrite struct {
	// Path is the slash-separated target path relative to the project root.
	Path string

	// Name identifies the substitution point in logs and previews.
	Name string

	Transform TransformFunc
}

// ReplaceToken returns a rewrite that replaces the single match of re in
// the target file with repl. Zero or several matches report no match.
func ReplaceToken(path, name string, re *regexp.Regexp, repl string) Rewrite {
	return Rewrite{
		Path: path,
		Name: name,
		Transform: func(text string) (string, bool) {
			if len(re.FindAllStringIndex(text, 2)) != 1 {
				return text, false
			}
			return re.ReplaceAllString(text, repl), true
		},
	}
}

// ReplaceFile returns a rewrite that substitutes the whole file content.
func ReplaceFile(path, name, content string) Rewrite {
	return Rewrite{
		Path: path,
		Name: name,
		Transform: func(string) (string, bool) {
			return content, true
		},
	}
}

var (
	sqliteDialectPattern = regexp.MustCompile(`dialect:\s*["']sqlite["']`)
	dialectTokenPattern  = regexp.MustCompile(`dialect:\s*["']([A-Za-z0-9_-]+)["']`)
	providerPattern      = regexp.MustCompile(`provider:\s*["'](?:sqlite|pg)["']`)
	databaseURLPattern   = regexp.MustCompile(`(?im)^DATABASE_URL=.*(?:\r?\n|$)`)
)

// DialectOf returns the first dialect token found in a drizzle config.
func DialectOf(text string) (string, bool) {
	m := dialectTokenPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// stripDatabaseURL removes every DATABASE_URL line, including its line
// break, so a provisioning step can append a fresh value.
func stripDatabaseURL(env string) string {
	return databaseURLPattern.ReplaceAllString(env, "")
}
