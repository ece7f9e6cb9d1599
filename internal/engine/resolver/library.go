package resolver

import (
	"encoding/json"
	"path/filepath"

	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/adapters/fs"
	"go.trai.ch/zkc/internal/core/domain"
)

type packageDescriptor struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// libraryDirs lists the directories searched for installed libraries:
// every install directory from the project root up to the filesystem root,
// then the configured extra search paths.
func (r *Resolver) libraryDirs() []string {
	var dirs []string
	for dir := r.root; ; {
		dirs = append(dirs, filepath.Join(dir, domain.LibraryDirName))
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return append(dirs, r.libraryPaths...)
}

// library finds and describes an installed library. Results are memoized.
func (r *Resolver) library(id string) (*domain.LibraryInfo, error) {
	r.mu.Lock()
	if lib, ok := r.libs[id]; ok {
		r.mu.Unlock()
		return lib, nil
	}
	r.mu.Unlock()

	for _, dir := range r.libraryDirs() {
		actual, found, err := fs.TrueCase(r.fs, dir, id)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to search libraries"), "path", dir)
		}
		if !found {
			continue
		}
		if actual != id {
			return nil, wrongCasing(id, actual)
		}

		descriptorPath := filepath.Join(dir, filepath.FromSlash(id), domain.PackageDescriptorFile)
		if !r.fs.Exists(descriptorPath) {
			continue
		}

		lib, err := r.readDescriptor(id, descriptorPath)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.libs[id] = lib
		r.mu.Unlock()
		return lib, nil
	}

	return nil, zerr.With(zerr.Wrap(domain.ErrLibraryNotInstalled, id), "library", id)
}

func (r *Resolver) readDescriptor(id, descriptorPath string) (*domain.LibraryInfo, error) {
	text, err := r.reader.ReadFile(descriptorPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidLibraryDescriptor, err.Error()), "path", descriptorPath)
	}

	var desc packageDescriptor
	if err := json.Unmarshal([]byte(text), &desc); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidLibraryDescriptor, err.Error()), "path", descriptorPath)
	}

	root, err := r.fs.RealPath(filepath.Dir(descriptorPath))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidLibraryDescriptor, err.Error()), "path", descriptorPath)
	}

	return &domain.LibraryInfo{ID: id, Version: desc.Version, Root: root}, nil
}
