// Package fs provides filesystem adapters: the OS filesystem, an in-memory
// double, casing checks, hashing and directory walking.
package fs

import (
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/core/domain"
)

// OS implements ports.FileSystem and ports.FileReader on the host filesystem.
type OS struct{}

// NewOS creates an OS filesystem.
func NewOS() *OS {
	return &OS{}
}

// Exists reports whether path exists.
func (*OS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Stat returns file info for path.
func (*OS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadDir returns the sorted entry names of a directory.
func (*OS) ReadDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

// RealPath resolves symlinks in path.
func (*OS) RealPath(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// ReadFile returns the text of the file at path.
func (*OS) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // paths come from the resolver
	if err != nil {
		return "", zerr.With(domain.Wrap(domain.ErrSourceReadFailed, err), "path", path)
	}
	return string(data), nil
}
