package ports

import "io/fs"

// FileSystem is the small filesystem capability the resolver and caches need.
// It is injected so tests can run against an in-memory tree.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Exists reports whether path exists, without checking its casing.
	Exists(path string) bool

	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)

	// ReadDir returns the entry names of a directory, sorted.
	ReadDir(path string) ([]string, error)

	// RealPath resolves symlinks in path.
	RealPath(path string) (string, error)
}

// FileReader is the file-read provider. The resolver only reads sources
// through it, which allows virtual overlays.
type FileReader interface {
	// ReadFile returns the text of the file at an absolute path.
	ReadFile(path string) (string, error)
}

// Hasher computes content hashes.
type Hasher interface {
	// HashBytes returns the hex digest of data.
	HashBytes(data []byte) string

	// HashFile returns the hex digest of the file at path.
	HashFile(path string) (string, error)
}
