// Package scaffold turns a template and a set of configuration choices into a
// project directory: Resolve derives a Plan, Materialize executes it against
// an empty destination, and Validate checks the result.
package scaffold

import (
	"io/fs"
	"path"

	"github.com/kitforge/create-express/internal/templates"
)

// Template layout. All paths are slash-separated and relative to the
// template root (and therefore to the project root after the copy).
const (
	GitignoreSeedPath = "gitignore"
	EnvExamplePath    = "env.example"
	GitignoreFile     = ".gitignore"
	EnvFile           = ".env"

	DrizzleConfigPath = "drizzle.config.ts"
	DBConnectorPath   = "src/db/index.ts"
	AuthConfigPath    = "src/lib/auth.ts"
	AuthSchemaPath    = "src/db/auth-schema.ts"
)

// AuthSchemaVariantPath returns the suffixed auth schema shipped for db.
func AuthSchemaVariantPath(db templates.Database) string {
	return path.Join(path.Dir(AuthSchemaPath), "auth-schema."+db.Provider()+".ts")
}

// FileSwap copies a variant file onto its canonical name in the destination.
type FileSwap struct {
	From string
	To   string
}

// Plan is the concrete list of file operations derived from a Spec.
// It is built once by Resolve and consumed once by Materialize.
type Plan struct {
	// Spec is the choice the plan was resolved from.
	Spec templates.Spec

	// Source holds the templates; SourceRoot is the template directory in it.
	Source     fs.FS
	SourceRoot string

	Exclude   Excludes
	Swaps     []FileSwap
	Deletions []string
	Rewrites  []Rewrite

	// GitignoreSeed is the seed path relative to SourceRoot. Empty disables
	// the .gitignore step.
	GitignoreSeed string

	// EnvSeed is the content of the generated .env. HasEnvSeed is false when
	// the template ships no env.example.
	EnvSeed    string
	HasEnvSeed bool
}
