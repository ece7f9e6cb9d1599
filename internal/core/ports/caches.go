package ports

import "go.trai.ch/zkc/internal/core/domain"

// ChangeCache records per-file content hashes and compile flags between runs.
//
//go:generate mockgen -source=caches.go -destination=mocks/mock_caches.go -package=mocks
type ChangeCache interface {
	// Load replaces the in-memory state with the document at path.
	// A missing or invalid document results in an empty cache.
	Load(path string) error

	// HasChanged reports whether a file needs recompilation.
	HasChanged(absPath, contentHash string, flags domain.CompileFlags) bool

	// Get returns the entry of a file.
	Get(absPath string) (domain.CacheEntry, bool)

	// Add stores or replaces the entry of a file.
	Add(absPath string, entry domain.CacheEntry)

	// Remove drops the entry of a file.
	Remove(absPath string)

	// Persist writes the cache to path.
	Persist(path string) error
}

// ParseCache persists parse results keyed by content hash.
type ParseCache interface {
	// Get returns the parse result for hash.
	// Returns nil, false, nil on a miss.
	Get(hash string) (*domain.ParsedFileData, bool, error)

	// Put stores the parse result for hash.
	Put(hash string, data *domain.ParsedFileData) error
}

// SourceParser turns source text into ParsedFileData.
type SourceParser interface {
	// Parse parses text. contentHash keys the parser's caches.
	Parse(text, absPath, contentHash string) (*domain.ParsedFileData, error)

	// Cached returns an in-memory parse result without parsing.
	Cached(contentHash string) (*domain.ParsedFileData, bool)

	// Remember seeds the in-memory cache with a result from a persisted layer.
	Remember(contentHash string, data *domain.ParsedFileData)
}

// ParseCacheFactory opens the persisted parse cache of a project.
type ParseCacheFactory interface {
	Open(project *domain.Project) (ParseCache, error)
}
