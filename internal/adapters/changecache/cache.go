// Package changecache implements the persisted per-file change cache.
package changecache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.trai.ch/zerr"
	zfs "go.trai.ch/zkc/internal/adapters/fs"
	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/core/ports"
)

// flagOptions compares flag snapshots structurally. A nil and an empty slice
// are the same flags.
var flagOptions = cmp.Options{cmpopts.EquateEmpty()}

// Cache implements ports.ChangeCache.
type Cache struct {
	mu        sync.RWMutex
	fs        ports.FileSystem
	logger    ports.Logger
	validator *validator
	entries   map[string]domain.CacheEntry
}

// New creates an empty cache. fsys is used to prune entries of deleted files.
func New(fsys ports.FileSystem, logger ports.Logger) (*Cache, error) {
	v, err := newValidator()
	if err != nil {
		return nil, err
	}
	return &Cache{
		fs:        fsys,
		logger:    logger,
		validator: v,
		entries:   make(map[string]domain.CacheEntry),
	}, nil
}

// Load replaces the in-memory state with the document at path. A missing
// document gives an empty cache. An invalid one is discarded with a warning.
func (c *Cache) Load(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]domain.CacheEntry)

	//nolint:gosec // path is the workspace cache file
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		c.logger.Warn("change cache unreadable, starting empty: " + err.Error())
		return nil
	}

	if err := c.validator.validate(data); err != nil {
		c.logger.Warn("change cache invalid, starting empty: " + err.Error())
		return nil
	}

	var doc domain.ChangeCacheDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		c.logger.Warn("change cache invalid, starting empty: " + err.Error())
		return nil
	}

	for path, entry := range doc.Files {
		if c.fs.Exists(path) {
			c.entries[path] = entry
		}
	}
	return nil
}

// HasChanged reports whether absPath needs recompilation: no entry, a
// different content hash or different compile flags.
func (c *Cache) HasChanged(absPath, contentHash string, flags domain.CompileFlags) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[absPath]
	if !ok || entry.ContentHash != contentHash {
		return true
	}
	return !cmp.Equal(entry.CompileFlags, flags, flagOptions)
}

// Get returns the entry of a file.
func (c *Cache) Get(absPath string) (domain.CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[absPath]
	return entry, ok
}

// Add stores or replaces the entry of a file.
func (c *Cache) Add(absPath string, entry domain.CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[absPath] = entry
}

// Remove drops the entry of a file.
func (c *Cache) Remove(absPath string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, absPath)
}

// Persist writes the cache to path. The output is deterministic so an
// unchanged cache rewrites to identical bytes.
func (c *Cache) Persist(path string) error {
	c.mu.RLock()
	doc := domain.ChangeCacheDocument{
		FormatVersion: domain.ChangeCacheFormatVersion,
		Files:         make(map[string]domain.CacheEntry, len(c.entries)),
	}
	for k, v := range c.entries {
		doc.Files[k] = v
	}
	c.mu.RUnlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return domain.Wrap(domain.ErrCacheWriteFailed, err)
	}
	data = append(data, '\n')

	if err := zfs.WriteFileAtomic(path, data, domain.FilePerm); err != nil {
		return zerr.With(domain.Wrap(domain.ErrCacheWriteFailed, err), "path", path)
	}
	return nil
}
