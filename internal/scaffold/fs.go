package scaffold

import (
	"io/fs"
	"os"
)

// FS is the set of destination filesystem primitives the materializer and
// validator use. OSFS is the production implementation; tests wrap it to
// inject failures.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Remove(name string) error
}

// OSFS implements FS on the host filesystem.
type OSFS struct{}

func (OSFS) Stat(name string) (fs.FileInfo, error)       { return os.Stat(name) }
func (OSFS) ReadDir(name string) ([]fs.DirEntry, error)  { return os.ReadDir(name) }
func (OSFS) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }
func (OSFS) ReadFile(name string) ([]byte, error)        { return os.ReadFile(name) }
func (OSFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}
func (OSFS) Remove(name string) error { return os.Remove(name) }

const (
	dirPerm    fs.FileMode = 0o755
	filePerm   fs.FileMode = 0o644
	execPerm   fs.FileMode = 0o755
	secretPerm fs.FileMode = 0o600
)
