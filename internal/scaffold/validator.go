package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/kitforge/create-express/internal/templates"
)

// Validate checks a materialized destination on the host filesystem.
func Validate(dest string, spec templates.Spec) error {
	return ValidateFS(OSFS{}, dest, spec)
}

// ValidateFS checks that dest holds a consistent project for spec. Only
// advance projects have variant files to check. All failed checks are
// returned together in a *ValidationError; the result is advisory.
func ValidateFS(fsys FS, dest string, spec templates.Spec) error {
	spec = spec.Normalize()
	if spec.Kind != templates.Advanced {
		return nil
	}

	abs := func(rel string) string {
		return filepath.Join(dest, filepath.FromSlash(rel))
	}
	exists := func(rel string) (bool, error) {
		_, err := fsys.Stat(abs(rel))
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return err == nil, err
	}

	var violations []Violation
	add := func(check, path, format string, args ...interface{}) {
		violations = append(violations, Violation{Check: check, Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if ok, err := exists(AuthSchemaPath); err != nil {
		add("auth-schema", AuthSchemaPath, "cannot stat: %v", err)
	} else if !ok {
		add("auth-schema", AuthSchemaPath, "canonical auth schema is missing")
	}

	for _, db := range []templates.Database{templates.SQLite, templates.Postgres} {
		variant := AuthSchemaVariantPath(db)
		if ok, _ := exists(variant); ok {
			add("auth-schema-variants", variant, "variant file was not removed")
		}
	}

	cfg, err := fsys.ReadFile(abs(DrizzleConfigPath))
	switch {
	case err != nil:
		add("dialect", DrizzleConfigPath, "cannot read config: %v", err)
	default:
		got, found := DialectOf(string(cfg))
		want := spec.Database.Dialect()
		if !found {
			add("dialect", DrizzleConfigPath, "no dialect token, want %q", want)
		} else if got != want {
			add("dialect", DrizzleConfigPath, "dialect is %q, want %q", got, want)
		}
	}

	if ok, err := exists(EnvFile); err != nil {
		add("env", EnvFile, "cannot stat: %v", err)
	} else if !ok {
		add("env", EnvFile, ".env is missing")
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
