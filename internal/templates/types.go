// Package templates provides the packaged project templates and the
// configuration choices that select between them.
package templates

import (
	"fmt"
	"strings"
)

// Kind selects the top-level template directory.
type Kind int

const (
	// Basic is a minimal Express + TypeScript server.
	Basic Kind = iota

	// Advanced adds an ORM, database connector, and authentication.
	Advanced
)

// String returns the external name of the kind, which is also the name of
// its template directory.
func (k Kind) String() string {
	switch k {
	case Basic:
		return "basic"
	case Advanced:
		return "advance"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses an external kind name. "advanced" is accepted as an
// alias of "advance".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return Basic, nil
	case "advance", "advanced":
		return Advanced, nil
	default:
		return 0, fmt.Errorf("unknown template %q; valid templates: %s", s, strings.Join(Names(), ", "))
	}
}

// Database selects the database engine of an Advanced project.
type Database int

const (
	// SQLite uses a local libSQL database file.
	SQLite Database = iota

	// Postgres uses a serverless Postgres database provisioned on Neon.
	Postgres
)

// String returns the external name of the database choice.
func (d Database) String() string {
	switch d {
	case SQLite:
		return "sqlite"
	case Postgres:
		return "neon"
	default:
		return fmt.Sprintf("database(%d)", int(d))
	}
}

// Dialect returns the drizzle dialect token for the database.
func (d Database) Dialect() string {
	if d == Postgres {
		return "postgresql"
	}
	return "sqlite"
}

// Provider returns the auth adapter provider token for the database.
func (d Database) Provider() string {
	if d == Postgres {
		return "pg"
	}
	return "sqlite"
}

// ParseDatabase parses an external database name.
func ParseDatabase(s string) (Database, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sqlite", "libsql":
		return SQLite, nil
	case "neon", "postgres", "postgresql", "pg":
		return Postgres, nil
	default:
		return 0, fmt.Errorf("unknown database %q; valid databases: %s", s, strings.Join(DatabaseNames(), ", "))
	}
}

// DatabaseNames returns the external names of all database choices.
func DatabaseNames() []string {
	return []string{SQLite.String(), Postgres.String()}
}

// Spec identifies the template variant to materialize. It is built once per
// invocation and never mutated.
type Spec struct {
	Kind     Kind
	Database Database
}

// NewSpec returns a normalized Spec. The database is only meaningful for
// Advanced and is reset to its zero value for Basic.
func NewSpec(kind Kind, db Database) Spec {
	return Spec{Kind: kind, Database: db}.Normalize()
}

// Normalize clears the database choice when it does not apply.
func (s Spec) Normalize() Spec {
	if s.Kind != Advanced {
		s.Database = SQLite
	}
	return s
}

// String returns a short human-readable form, e.g. "advance/neon".
func (s Spec) String() string {
	if s.Kind == Advanced {
		return s.Kind.String() + "/" + s.Database.String()
	}
	return s.Kind.String()
}

// Template describes a packaged template.
type Template struct {
	// Kind is the template's kind.
	Kind Kind

	// Description explains the template's purpose.
	Description string

	// UseCase describes when to use this template.
	UseCase string

	// Default indicates if this is the default template when none is chosen.
	Default bool
}

// Name returns the template's external name.
func (t Template) Name() string {
	return t.Kind.String()
}
