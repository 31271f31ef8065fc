package scaffold

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitforge/create-express/internal/templates"
	"github.com/kitforge/create-express/internal/testutil"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	return testutil.WriteTree(t, t.TempDir(), files)
}

func checks(err error) []string {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	out := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		out = append(out, v.Check)
	}
	return out
}

func TestValidate_BasicIsAlwaysValid(t *testing.T) {
	dest := t.TempDir()
	assert.NoError(t, Validate(dest, templates.NewSpec(templates.Basic, templates.SQLite)))
}

func TestValidate_ConsistentProject(t *testing.T) {
	dest := writeProject(t, map[string]string{
		AuthSchemaPath:    fixturePG,
		DrizzleConfigPath: `dialect: "postgresql"`,
		EnvFile:           "PORT=3000\n",
	})
	assert.NoError(t, Validate(dest, templates.NewSpec(templates.Advanced, templates.Postgres)))
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	dest := writeProject(t, map[string]string{
		"src/db/auth-schema.sqlite.ts": fixtureSQLite,
		"src/db/auth-schema.pg.ts":     fixturePG,
		DrizzleConfigPath:              `dialect: "sqlite"`,
	})

	err := Validate(dest, templates.NewSpec(templates.Advanced, templates.Postgres))
	require.Error(t, err)
	assert.Equal(t, []string{
		"auth-schema",
		"auth-schema-variants",
		"auth-schema-variants",
		"dialect",
		"env",
	}, checks(err))
	assert.Contains(t, err.Error(), "5 validation check(s) failed")
	assert.Contains(t, err.Error(), `dialect is "sqlite", want "postgresql"`)
}

func TestValidate_DialectChecks(t *testing.T) {
	tests := []struct {
		name    string
		config  *string
		db      templates.Database
		wantErr bool
	}{
		{name: "sqlite matches", config: strPtr(`dialect: "sqlite"`), db: templates.SQLite},
		{name: "postgres matches", config: strPtr(`dialect:'postgresql'`), db: templates.Postgres},
		{name: "mismatch", config: strPtr(`dialect: "postgresql"`), db: templates.SQLite, wantErr: true},
		{name: "no token", config: strPtr(`export default {}`), db: templates.SQLite, wantErr: true},
		{name: "missing config", db: templates.SQLite, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{
				AuthSchemaPath: "x",
				EnvFile:        "",
			}
			if tt.config != nil {
				files[DrizzleConfigPath] = *tt.config
			}
			dest := writeProject(t, files)

			err := Validate(dest, templates.NewSpec(templates.Advanced, tt.db))
			if tt.wantErr {
				assert.Equal(t, []string{"dialect"}, checks(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func strPtr(s string) *string {
	return &s
}
