package scaffold

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing/fstest"
)

const (
	fixtureDrizzle = "import { defineConfig } from \"drizzle-kit\";\n\nexport default defineConfig({\n  dialect:\"sqlite\",\n});\n"
	fixtureAuth    = "export const auth = betterAuth({\n  database: drizzleAdapter(db, { provider: \"sqlite\" }),\n});\n"
	fixtureEnv     = "PORT=3000\nDATABASE_URL=file:local.db\nBETTER_AUTH_SECRET=change-me\n"
	fixtureSQLite  = "export const flavor = \"sqlite\";\n"
	fixturePG      = "export const flavor = \"pg\";\n"
	fixtureIgnore  = "node_modules/\n.env\n"
)

func file(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}

// templateFixture returns a template source with both kinds, including
// lockfiles and build output that must never be copied.
func templateFixture() fstest.MapFS {
	return fstest.MapFS{
		"basic/package.json":                 file(`{"name":"basic"}`),
		"basic/src/index.ts":                 file("console.log('basic');\n"),
		"basic/env.example":                  file("PORT=3000\n"),
		"basic/gitignore":                    file(fixtureIgnore),
		"basic/package-lock.json":            file("{}"),
		"basic/node_modules/express/index.js": file("module.exports = {};"),

		"advance/package.json":                 file(`{"name":"advance"}`),
		"advance/drizzle.config.ts":            file(fixtureDrizzle),
		"advance/src/db/index.ts":              file("// template connector\n"),
		"advance/src/db/auth-schema.sqlite.ts": file(fixtureSQLite),
		"advance/src/db/auth-schema.pg.ts":     file(fixturePG),
		"advance/src/lib/auth.ts":              file(fixtureAuth),
		"advance/env.example":                  file(fixtureEnv),
		"advance/gitignore":                    file(fixtureIgnore),
		"advance/pnpm-lock.yaml":               file("lockfileVersion: 9"),
		"advance/yarn.lock":                    file("# yarn"),
		"advance/bun.lock":                     file("{}"),
		"advance/package-lock.json":            file("{}"),
		"advance/dist/index.js":                file("built"),
	}
}

// faultyFS fails every write for which fail returns true.
type faultyFS struct {
	OSFS
	fail func(name string, data []byte) bool
}

var errInjected = errors.New("injected write failure")

func (f faultyFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if f.fail(filepath.ToSlash(name), data) {
		return errInjected
	}
	return f.OSFS.WriteFile(name, data, perm)
}

// failPath fails writes to the project-relative path rel.
func failPath(rel string) func(string, []byte) bool {
	return func(name string, _ []byte) bool {
		return strings.HasSuffix(name, "/"+rel)
	}
}

// failContent fails writes whose data contains substr.
func failContent(substr string) func(string, []byte) bool {
	return func(_ string, data []byte) bool {
		return strings.Contains(string(data), substr)
	}
}
