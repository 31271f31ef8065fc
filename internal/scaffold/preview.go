package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// RewritePreview is the effect of one rewrite on the template content.
type RewritePreview struct {
	Path    string
	Name    string
	Before  string
	After   string
	Skipped bool
}

// Preview describes what a plan changes relative to a plain copy of the
// template, without writing anything.
type Preview struct {
	Added    []string
	Removed  []string
	Rewrites []RewritePreview
}

// PreviewPlan computes the plan's effect by reading the template source.
// Rewrites apply to the template's copy of each target; a target missing
// from the template is marked skipped, mirroring Materialize.
func PreviewPlan(plan *Plan) (*Preview, error) {
	p := &Preview{}
	read := func(rel string) (string, bool, error) {
		data, err := fs.ReadFile(plan.Source, path.Join(plan.SourceRoot, rel))
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		return string(data), true, nil
	}

	for _, s := range plan.Swaps {
		p.Added = append(p.Added, s.To)
	}
	for _, d := range plan.Deletions {
		if _, ok, err := read(d); err != nil {
			return nil, err
		} else if ok {
			p.Removed = append(p.Removed, d)
		}
	}

	for _, rw := range plan.Rewrites {
		before, ok, err := read(rw.Path)
		if err != nil {
			return nil, err
		}
		if !ok {
			p.Rewrites = append(p.Rewrites, RewritePreview{Path: rw.Path, Name: rw.Name, Skipped: true})
			continue
		}
		after, matched := rw.Transform(before)
		if !matched {
			return nil, fmt.Errorf("%s: %w: %s", rw.Path, ErrRewriteNoMatch, rw.Name)
		}
		p.Rewrites = append(p.Rewrites, RewritePreview{Path: rw.Path, Name: rw.Name, Before: before, After: after})
	}

	if plan.GitignoreSeed != "" {
		if _, ok, err := read(plan.GitignoreSeed); err != nil {
			return nil, err
		} else if ok {
			p.Added = append(p.Added, GitignoreFile)
		}
	}
	if plan.HasEnvSeed {
		p.Added = append(p.Added, EnvFile)
	}

	return p, nil
}
