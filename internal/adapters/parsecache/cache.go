// Package parsecache persists parse results keyed by source content hash.
package parsecache

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/zerr"
	zfs "go.trai.ch/zkc/internal/adapters/fs"
	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/core/ports"
)

// schemaVersion must be bumped whenever ParsedFileData changes shape.
const schemaVersion uint16 = 1

type payload struct {
	Schema uint16                 `json:"schema"`
	Hash   string                 `json:"hash"`
	Data   *domain.ParsedFileData `json:"data"`
}

// Cache implements ports.ParseCache with one msgpack file per content hash.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// New creates a cache rooted at dir.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(domain.Wrap(domain.ErrParseCacheFailed, err), "path", dir)
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(hash string) string {
	shard := "00"
	if len(hash) >= 2 {
		shard = hash[:2]
	}
	return filepath.Join(c.dir, shard, hash+".mp")
}

// Get returns the stored parse result. Entries of another schema version or
// undecodable entries are misses.
func (c *Cache) Get(hash string) (*domain.ParsedFileData, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(hash))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, domain.Wrap(domain.ErrParseCacheFailed, err)
	}
	defer func() { _ = f.Close() }()

	dec := msgpack.NewDecoder(f)
	dec.SetCustomStructTag("json")

	var p payload
	if err := dec.Decode(&p); err != nil {
		return nil, false, nil //nolint:nilerr // corrupt entries are misses
	}
	if p.Schema != schemaVersion || p.Hash != hash || p.Data == nil {
		return nil, false, nil
	}
	return p.Data, true, nil
}

// Put stores data under hash.
func (c *Cache) Put(hash string, data *domain.ParsedFileData) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := zfs.WriteAtomic(c.pathFor(hash), domain.FilePerm, func(w io.Writer) error {
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(payload{Schema: schemaVersion, Hash: hash, Data: data})
	})
	if err != nil {
		return zerr.With(domain.Wrap(domain.ErrParseCacheFailed, err), "hash", hash)
	}
	return nil
}

// Factory implements ports.ParseCacheFactory.
type Factory struct{}

// Open opens the parse cache in the project workspace.
func (Factory) Open(project *domain.Project) (ports.ParseCache, error) {
	return New(filepath.Join(project.Root, domain.DefaultParseCachePath()))
}
