// Package testutil provides filesystem helpers for tests that build
// template sources and inspect generated projects.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile creates a file with the given content at the slash-separated
// path rel under dir, creating parent directories. It returns the full path.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "creating parent dirs for %s", path)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "writing %s", path)
	return path
}

// WriteTree writes every entry of files under dir and returns dir.
func WriteTree(t *testing.T, dir string, files map[string]string) string {
	t.Helper()
	for rel, content := range files {
		WriteFile(t, dir, rel, content)
	}
	return dir
}

// ReadTree returns every file under dir keyed by slash-separated relative
// path.
func ReadTree(t *testing.T, dir string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err, "reading tree %s", dir)
	return out
}
