package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kitforge/create-express/internal/output"
)

// Result summarizes a completed materialization.
type Result struct {
	// Files lists every file in the destination, slash-separated and sorted.
	Files []string

	// Rewritten lists rewrite targets that were changed.
	Rewritten []string

	// SkippedRewrites lists rewrite targets absent from the template.
	SkippedRewrites []string
}

// Materializer executes plans against a destination filesystem.
type Materializer struct {
	fs FS
}

// NewMaterializer returns a Materializer writing through fsys.
// A nil fsys selects OSFS.
func NewMaterializer(fsys FS) *Materializer {
	if fsys == nil {
		fsys = OSFS{}
	}
	return &Materializer{fs: fsys}
}

// Materialize executes plan against dest on the host filesystem.
func Materialize(plan *Plan, dest string) (*Result, error) {
	return NewMaterializer(nil).Materialize(plan, dest)
}

// CheckDestination verifies dest is missing or an empty directory. It
// returns ErrDestinationNotEmpty (wrapped) otherwise and never writes.
func CheckDestination(fsys FS, dest string) error {
	info, err := fsys.Stat(dest)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking destination: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is a file", ErrDestinationNotEmpty, dest)
	}

	entries, err := fsys.ReadDir(dest)
	if err != nil {
		return fmt.Errorf("reading destination: %w", err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s has %d entries", ErrDestinationNotEmpty, dest, len(entries))
	}
	return nil
}

// Materialize executes plan against dest. Steps run in order: bulk copy,
// variant swaps, variant deletions, rewrites, .gitignore, .env. The first
// failing step aborts the rest and is reported as a *MaterializeError;
// files already written are left in place.
func (m *Materializer) Materialize(plan *Plan, dest string) (*Result, error) {
	if err := CheckDestination(m.fs, dest); err != nil {
		return nil, &MaterializeError{Step: StepPrecheck, Path: dest, Err: err}
	}
	if err := m.fs.MkdirAll(dest, dirPerm); err != nil {
		return nil, &MaterializeError{Step: StepPrecheck, Path: dest, Err: err}
	}

	r := &run{fs: m.fs, plan: plan, dest: dest, files: make(map[string]bool)}

	steps := []func() error{
		r.copyTree,
		r.applySwaps,
		r.applyDeletions,
		r.applyRewrites,
		r.writeGitignore,
		r.writeEnv,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	return r.result(), nil
}

// run carries the state of one Materialize call.
type run struct {
	fs   FS
	plan *Plan
	dest string

	files     map[string]bool
	rewritten []string
	skipped   []string
}

func (r *run) abs(rel string) string {
	return filepath.Join(r.dest, filepath.FromSlash(rel))
}

func (r *run) write(step Step, rel string, data []byte, perm fs.FileMode) error {
	target := r.abs(rel)
	if err := r.fs.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return &MaterializeError{Step: step, Path: rel, Err: err}
	}
	if err := r.fs.WriteFile(target, data, perm); err != nil {
		return &MaterializeError{Step: step, Path: rel, Err: err}
	}
	r.files[rel] = true
	return nil
}

func (r *run) copyTree() error {
	root := r.plan.SourceRoot

	return fs.WalkDir(r.plan.Source, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return &MaterializeError{Step: StepCopy, Path: p, Err: err}
		}
		if p == root {
			return nil
		}

		rel := strings.TrimPrefix(p, root+"/")
		if r.plan.Exclude.Match(d.Name(), d.IsDir()) {
			output.Debug("excluded from copy", "path", rel)
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if err := r.fs.MkdirAll(r.abs(rel), dirPerm); err != nil {
				return &MaterializeError{Step: StepCopy, Path: rel, Err: err}
			}
			return nil
		}

		data, err := fs.ReadFile(r.plan.Source, p)
		if err != nil {
			return &MaterializeError{Step: StepCopy, Path: rel, Err: err}
		}

		perm := filePerm
		if info, err := d.Info(); err == nil && info.Mode()&0o111 != 0 {
			perm = execPerm
		}
		return r.write(StepCopy, rel, data, perm)
	})
}

func (r *run) applySwaps() error {
	for _, swap := range r.plan.Swaps {
		data, err := r.fs.ReadFile(r.abs(swap.From))
		if err != nil {
			return &MaterializeError{Step: StepSwap, Path: swap.From, Err: err}
		}
		if err := r.write(StepSwap, swap.To, data, filePerm); err != nil {
			return err
		}
		output.Debug("selected variant", "from", swap.From, "to", swap.To)
	}
	return nil
}

func (r *run) applyDeletions() error {
	for _, rel := range r.plan.Deletions {
		err := r.fs.Remove(r.abs(rel))
		switch {
		case err == nil:
			delete(r.files, rel)
		case errors.Is(err, fs.ErrNotExist):
			output.Debug("deletion skipped, file absent", "path", rel)
		default:
			return &MaterializeError{Step: StepDelete, Path: rel, Err: err}
		}
	}
	return nil
}

func (r *run) applyRewrites() error {
	for _, rw := range r.plan.Rewrites {
		target := r.abs(rw.Path)

		data, err := r.fs.ReadFile(target)
		if errors.Is(err, fs.ErrNotExist) {
			output.Debug("rewrite skipped, target absent", "path", rw.Path, "rewrite", rw.Name)
			r.skipped = append(r.skipped, rw.Path)
			continue
		}
		if err != nil {
			return &MaterializeError{Step: StepRewrite, Path: rw.Path, Err: err}
		}

		text, ok := rw.Transform(string(data))
		if !ok {
			return &MaterializeError{
				Step: StepRewrite,
				Path: rw.Path,
				Err:  fmt.Errorf("%w: %s", ErrRewriteNoMatch, rw.Name),
			}
		}

		perm := filePerm
		if info, err := r.fs.Stat(target); err == nil {
			perm = info.Mode().Perm()
		}
		if err := r.write(StepRewrite, rw.Path, []byte(text), perm); err != nil {
			return err
		}
		r.rewritten = append(r.rewritten, rw.Path)
	}
	return nil
}

func (r *run) writeGitignore() error {
	if r.plan.GitignoreSeed == "" {
		return nil
	}

	seed := path.Join(r.plan.SourceRoot, r.plan.GitignoreSeed)
	data, err := fs.ReadFile(r.plan.Source, seed)
	if errors.Is(err, fs.ErrNotExist) {
		output.Debug("no gitignore seed in template", "path", seed)
		return nil
	}
	if err != nil {
		return &MaterializeError{Step: StepGitignore, Path: r.plan.GitignoreSeed, Err: err}
	}

	return r.write(StepGitignore, GitignoreFile, data, filePerm)
}

func (r *run) writeEnv() error {
	if !r.plan.HasEnvSeed {
		return nil
	}
	return r.write(StepEnv, EnvFile, []byte(r.plan.EnvSeed), secretPerm)
}

func (r *run) result() *Result {
	files := make([]string, 0, len(r.files))
	for f := range r.files {
		files = append(files, f)
	}
	sort.Strings(files)

	return &Result{
		Files:           files,
		Rewritten:       r.rewritten,
		SkippedRewrites: r.skipped,
	}
}
