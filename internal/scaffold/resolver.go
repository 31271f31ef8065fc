package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/kitforge/create-express/internal/output"
	"github.com/kitforge/create-express/internal/templates"
)

// Resolve derives the materialization plan for spec from the templates in
// source. It only reads source and never touches a destination. Rewrite
// targets are not checked here; a missing target is skipped at
// materialization time.
func Resolve(spec templates.Spec, source fs.FS) (*Plan, error) {
	spec = spec.Normalize()
	if _, err := templates.Get(spec.Kind); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, spec.Kind)
	}

	root := spec.Kind.String()
	info, err := fs.Stat(source, root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: no %q directory in template source", ErrUnknownTemplate, root)
	}

	plan := &Plan{
		Spec:          spec,
		Source:        source,
		SourceRoot:    root,
		Exclude:       DefaultExcludes(),
		GitignoreSeed: GitignoreSeedPath,
	}

	if spec.Kind == templates.Advanced {
		resolveDatabaseVariant(plan, spec.Database)
	}

	env, err := fs.ReadFile(source, path.Join(root, EnvExamplePath))
	switch {
	case err == nil:
		plan.EnvSeed = string(env)
		plan.HasEnvSeed = true
		if spec.Kind == templates.Advanced && spec.Database == templates.Postgres {
			plan.EnvSeed = stripDatabaseURL(plan.EnvSeed)
		}
	case errors.Is(err, fs.ErrNotExist):
		output.Debug("template has no env example", "template", root)
	default:
		return nil, fmt.Errorf("reading %s: %w", EnvExamplePath, err)
	}

	output.Debug("resolved plan",
		"spec", spec.String(),
		"swaps", len(plan.Swaps),
		"deletions", len(plan.Deletions),
		"rewrites", len(plan.Rewrites),
	)

	return plan, nil
}

// resolveDatabaseVariant adds the swaps, deletions, and rewrites that adapt
// the advance template to db.
func resolveDatabaseVariant(plan *Plan, db templates.Database) {
	plan.Swaps = append(plan.Swaps, FileSwap{
		From: AuthSchemaVariantPath(db),
		To:   AuthSchemaPath,
	})
	plan.Deletions = append(plan.Deletions,
		AuthSchemaVariantPath(templates.SQLite),
		AuthSchemaVariantPath(templates.Postgres),
	)

	// The template ships with the sqlite dialect.
	if db == templates.Postgres {
		plan.Rewrites = append(plan.Rewrites, ReplaceToken(
			DrizzleConfigPath, "dialect", sqliteDialectPattern, `dialect: "postgresql"`))
	}

	plan.Rewrites = append(plan.Rewrites,
		ReplaceFile(DBConnectorPath, "connector", connectorFor(db)),
		ReplaceToken(AuthConfigPath, "provider", providerPattern, `provider: "`+db.Provider()+`"`),
	)
}
