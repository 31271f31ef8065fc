package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

// packaged holds every template directory shipped with the binary.
//
//go:embed all:basic all:advance
var packaged embed.FS

// FS returns the packaged templates. Each template kind is a top-level
// directory named after Kind.String().
func FS() fs.FS {
	return packaged
}

// Open returns the template filesystem to materialize from. An empty dir
// selects the packaged templates; otherwise dir must be a directory laid out
// like the packaged tree (used when developing templates locally).
func Open(dir string) (fs.FS, error) {
	if dir == "" {
		return packaged, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening templates directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("templates directory %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

// ListFiles returns the slash-separated paths of all files in a template,
// relative to the template root.
func ListFiles(fsys fs.FS, kind Kind) ([]string, error) {
	root := kind.String()
	var files []string

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path[len(root)+1:])
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing template %s: %w", root, err)
	}

	return files, nil
}
