// Package icons resolves application classes to icon files.
package icons

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Searcher finds the icon file for a lowercase application class.
// An empty path means no match.
type Searcher interface {
	Search(class string) (string, error)
}

// SearchFunc adapts a function to a Searcher.
type SearchFunc func(class string) (string, error)

// Search calls f.
func (f SearchFunc) Search(class string) (string, error) { return f(class) }

// Index is the flattened list of candidate icon files gathered once from the
// configured search directories.
type Index struct {
	candidates []string
	byStem     map[string]string
}

// BuildIndex walks dirs in order and collects files whose extension is in
// exts. Missing directories are skipped; other failures are collected in the
// returned error while the partial index stays usable.
func BuildIndex(dirs, exts []string) (*Index, error) {
	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		allowed[e] = true
	}

	var result *multierror.Error
	var candidates []string
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == dir && errors.Is(err, fs.ErrNotExist) {
					return fs.SkipDir
				}
				if d != nil && d.IsDir() && path != dir {
					result = multierror.Append(result, fmt.Errorf("icon dir %s: %w", path, err))
					return fs.SkipDir
				}
				return err
			}
			if d.IsDir() {
				return nil
			}
			if allowed[strings.ToLower(filepath.Ext(path))] {
				candidates = append(candidates, path)
			}
			return nil
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			result = multierror.Append(result, fmt.Errorf("icon dir %s: %w", dir, err))
		}
	}

	return NewIndex(candidates), result.ErrorOrNil()
}

// NewIndex builds an Index over an explicit candidate list. When several files
// share a stem the first one wins, so earlier search directories take priority.
func NewIndex(candidates []string) *Index {
	idx := &Index{
		candidates: candidates,
		byStem:     make(map[string]string, len(candidates)),
	}
	for _, path := range candidates {
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		if _, exists := idx.byStem[stem]; !exists {
			idx.byStem[stem] = path
		}
	}
	return idx
}

// Search returns the candidate whose file name (without extension) equals class.
func (idx *Index) Search(class string) (string, error) {
	return idx.byStem[strings.ToLower(class)], nil
}

// Len returns the number of candidate files.
func (idx *Index) Len() int {
	return len(idx.candidates)
}

// Candidates returns the flattened candidate list.
func (idx *Index) Candidates() []string {
	return idx.candidates
}

