package fs

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/core/domain"
)

// MemFS is an in-memory filesystem with directory symlinks. Directories exist
// implicitly as parents of files. It implements ports.FileSystem and
// ports.FileReader.
type MemFS struct {
	mu      sync.RWMutex
	files   map[string]string
	links   map[string]string
	modTime time.Time
}

// NewMemFS creates an empty MemFS.
func NewMemFS() *MemFS {
	return &MemFS{
		files:   make(map[string]string),
		links:   make(map[string]string),
		modTime: time.Unix(1_700_000_000, 0),
	}
}

// WriteFile creates or replaces a file.
func (m *MemFS) WriteFile(path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Clean(path)] = content
}

// Remove deletes a file.
func (m *MemFS) Remove(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, filepath.Clean(path))
}

// Symlink makes link resolve to target.
func (m *MemFS) Symlink(link, target string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[filepath.Clean(link)] = filepath.Clean(target)
}

// resolve rewrites the longest symlinked prefix of p. Caller holds mu.
func (m *MemFS) resolve(p string) string {
	p = filepath.Clean(p)
	for range 16 {
		replaced := false
		for link, target := range m.links {
			if p == link {
				p, replaced = target, true
				break
			}
			if strings.HasPrefix(p, link+string(filepath.Separator)) {
				p, replaced = target+p[len(link):], true
				break
			}
		}
		if !replaced {
			return p
		}
	}
	return p
}

func (m *MemFS) isDir(p string) bool {
	prefix := p + string(filepath.Separator)
	if p == string(filepath.Separator) {
		prefix = p
	}
	for name := range m.files {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	for link := range m.links {
		if strings.HasPrefix(link, prefix) {
			return true
		}
	}
	return false
}

// Exists reports whether path is a file or directory.
func (m *MemFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p := m.resolve(path)
	_, ok := m.files[p]
	return ok || m.isDir(p)
}

// Stat returns file info for path.
func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p := m.resolve(path)
	if content, ok := m.files[p]; ok {
		return memInfo{name: filepath.Base(p), size: int64(len(content)), modTime: m.modTime}, nil
	}
	if m.isDir(p) {
		return memInfo{name: filepath.Base(p), dir: true, modTime: m.modTime}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

// ReadDir returns the sorted names directly below path.
func (m *MemFS) ReadDir(path string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p := m.resolve(path)
	if !m.isDir(p) {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: fs.ErrNotExist}
	}

	prefix := p + string(filepath.Separator)
	if p == string(filepath.Separator) {
		prefix = p
	}
	seen := make(map[string]struct{})
	collect := func(name string) {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			child, _, _ := strings.Cut(rest, string(filepath.Separator))
			seen[child] = struct{}{}
		}
	}
	for name := range m.files {
		collect(name)
	}
	for link := range m.links {
		collect(link)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// RealPath resolves symlinks in path.
func (m *MemFS) RealPath(path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resolve(path), nil
}

// ReadFile returns the content of the file at path.
func (m *MemFS) ReadFile(path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.files[m.resolve(path)]
	if !ok {
		return "", zerr.With(domain.Wrap(domain.ErrSourceReadFailed, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}), "path", path)
	}
	return content, nil
}

type memInfo struct {
	name    string
	size    int64
	dir     bool
	modTime time.Time
}

func (i memInfo) Name() string       { return i.name }
func (i memInfo) Size() int64        { return i.size }
func (i memInfo) ModTime() time.Time { return i.modTime }
func (i memInfo) IsDir() bool        { return i.dir }
func (i memInfo) Sys() any           { return nil }

func (i memInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}
