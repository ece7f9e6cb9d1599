package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"

	"go.trai.ch/zkc/internal/core/domain"
)

// Walker walks source trees, skipping VCS, workspace and library directories.
type Walker struct {
	skip []string
}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{skip: []string{".git", ".jj", domain.WorkDirName, domain.LibraryDirName}}
}

// WalkFiles yields files below root in lexical order. When extensions is
// non-empty only files with one of them are yielded. Unreadable entries are
// skipped.
func (w *Walker) WalkFiles(root string, extensions []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // best-effort walk
			}
			if d.IsDir() {
				if path != root && slices.Contains(w.skip, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if len(extensions) > 0 && !slices.Contains(extensions, filepath.Ext(path)) {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
