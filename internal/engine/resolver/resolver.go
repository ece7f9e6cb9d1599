// Package resolver maps logical source names and import literals to files,
// telling project files apart from installed library files.
package resolver

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/adapters/fs"
	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// Options configures a Resolver.
type Options struct {
	// Root is the absolute project root.
	Root string
	// PackageName is the project's own package name. Imports must not embed it.
	PackageName string
	// LibraryPaths are extra directories holding installed libraries.
	LibraryPaths []string
}

// Deps are the collaborators of a Resolver. ChangeCache, ParseCache and
// Logger may be nil.
type Deps struct {
	FS          ports.FileSystem
	Reader      ports.FileReader
	Hasher      ports.Hasher
	Parser      ports.SourceParser
	ChangeCache ports.ChangeCache
	ParseCache  ports.ParseCache
	Logger      ports.Logger
}

// Resolver resolves logical names for the lifetime of one run. Each logical
// name is resolved once and always yields the same *domain.ResolvedFile.
type Resolver struct {
	root         string
	packageName  string
	libraryPaths []string

	fs         ports.FileSystem
	reader     ports.FileReader
	hasher     ports.Hasher
	parser     ports.SourceParser
	changes    ports.ChangeCache
	parseCache ports.ParseCache
	logger     ports.Logger

	group singleflight.Group
	mu    sync.Mutex
	files map[string]*domain.ResolvedFile
	libs  map[string]*domain.LibraryInfo
}

// New creates a Resolver.
func New(opts Options, deps Deps) *Resolver {
	return &Resolver{
		root:         filepath.Clean(opts.Root),
		packageName:  opts.PackageName,
		libraryPaths: opts.LibraryPaths,
		fs:           deps.FS,
		reader:       deps.Reader,
		hasher:       deps.Hasher,
		parser:       deps.Parser,
		changes:      deps.ChangeCache,
		parseCache:   deps.ParseCache,
		logger:       deps.Logger,
		files:        make(map[string]*domain.ResolvedFile),
		libs:         make(map[string]*domain.LibraryInfo),
	}
}

// ResolveLogicalName resolves a slash-separated logical name. A name is
// local when its first segment exists below the project root and it does not
// pass through a library install directory; otherwise it names a library file.
func (r *Resolver) ResolveLogicalName(ctx context.Context, name string) (*domain.ResolvedFile, error) {
	if err := r.checkShape(name); err != nil {
		return nil, err
	}
	name = cleanName(name)

	if lib, ok := libraryRewrite(name); ok {
		return r.resolve(ctx, lib, true)
	}
	if escapes(name) {
		return nil, outsideRoot(name, "")
	}

	first, _, _ := strings.Cut(name, "/")
	_, local, err := fs.TrueCase(r.fs, r.root, first)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to classify source name"), "logical_name", name)
	}
	if !local && !strings.Contains(name, "/") {
		return nil, notFound(name)
	}
	return r.resolve(ctx, name, !local)
}

// ResolveImport resolves an import literal found in from.
func (r *Resolver) ResolveImport(ctx context.Context, from *domain.ResolvedFile, literal string) (*domain.ResolvedFile, error) {
	f, err := r.resolveImport(ctx, from, literal)
	if err != nil {
		return nil, zerr.With(err, "importer", from.Name())
	}
	return f, nil
}

func (r *Resolver) resolveImport(ctx context.Context, from *domain.ResolvedFile, literal string) (*domain.ResolvedFile, error) {
	if err := r.checkShape(literal); err != nil {
		return nil, err
	}

	if from.Kind() == domain.SourceLibrary {
		return r.resolveFromLibrary(ctx, from, literal)
	}

	joined := path.Join(path.Dir(from.Name()), literal)
	if isRelative(literal) {
		if lib, ok := libraryRewrite(joined); ok {
			return r.resolve(ctx, lib, true)
		}
		if escapes(joined) {
			return nil, outsideRoot(literal, from.Name())
		}
		return r.resolve(ctx, joined, false)
	}

	// Bare literals are tried next to the importing file first.
	if _, rewrite := libraryRewrite(joined); !rewrite && !escapes(joined) && r.existsExactly(r.root, joined) {
		return r.resolve(ctx, joined, false)
	}
	return r.ResolveLogicalName(ctx, literal)
}

func (r *Resolver) resolveFromLibrary(ctx context.Context, from *domain.ResolvedFile, literal string) (*domain.ResolvedFile, error) {
	id := from.Library.ID
	_, inner := splitLibrary(from.Name())
	joined := path.Join(path.Dir(inner), literal)

	if isRelative(literal) {
		if lib, ok := libraryRewrite(joined); ok {
			return r.resolve(ctx, lib, true)
		}
		if escapes(joined) {
			return nil, outsideRoot(literal, from.Name())
		}
		return r.resolve(ctx, id+"/"+joined, true)
	}

	if !escapes(joined) && r.existsExactly(from.Library.Root, joined) {
		return r.resolve(ctx, id+"/"+joined, true)
	}
	return r.ResolveLogicalName(ctx, literal)
}

func (r *Resolver) existsExactly(root, rel string) bool {
	actual, found, err := fs.TrueCase(r.fs, root, rel)
	return err == nil && found && actual == rel
}

// resolve returns the cached file for name or loads it. Concurrent callers
// for one name share a single load.
func (r *Resolver) resolve(ctx context.Context, name string, library bool) (*domain.ResolvedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if f, ok := r.cached(name); ok {
		return r.reconcile(f, name, library)
	}

	key := name
	if library {
		key = "library:" + name
	}
	v, err, _ := r.group.Do(key, func() (any, error) {
		if f, ok := r.cached(name); ok {
			return r.reconcile(f, name, library)
		}

		absPath, lib, err := r.locate(name, library)
		if err != nil {
			return nil, err
		}
		f, err := r.load(name, absPath, lib)
		if err != nil {
			return nil, err
		}
		return r.register(f)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.ResolvedFile), nil
}

func (r *Resolver) cached(name string) (*domain.ResolvedFile, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[name]
	return f, ok
}

// reconcile checks a cached file against the classification the caller
// asked for. A logical name that is both a project file and a library file
// at different paths is ambiguous.
func (r *Resolver) reconcile(cached *domain.ResolvedFile, name string, library bool) (*domain.ResolvedFile, error) {
	if (cached.Kind() == domain.SourceLibrary) == library {
		return cached, nil
	}
	other, _, err := r.locate(name, library)
	if err != nil {
		return cached, nil //nolint:nilerr // only one classification exists on disk
	}
	if other != cached.AbsolutePath {
		return nil, domain.NewAmbiguousNameError(name, cached.AbsolutePath, other)
	}
	return cached, nil
}

func (r *Resolver) register(f *domain.ResolvedFile) (*domain.ResolvedFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.files[f.Name()]; ok {
		if existing.AbsolutePath != f.AbsolutePath {
			return nil, domain.NewAmbiguousNameError(f.Name(), existing.AbsolutePath, f.AbsolutePath)
		}
		return existing, nil
	}
	r.files[f.Name()] = f
	return f, nil
}

// locate returns the absolute path name denotes under the given
// classification, checking existence and exact casing.
func (r *Resolver) locate(name string, library bool) (string, *domain.LibraryInfo, error) {
	if !library {
		if err := r.checkCasing(r.root, name, name); err != nil {
			return "", nil, err
		}
		return filepath.Join(r.root, filepath.FromSlash(name)), nil, nil
	}

	id, rest := splitLibrary(name)
	lib, err := r.library(id)
	if err != nil {
		return "", nil, zerr.With(err, "logical_name", name)
	}
	if rest == "" {
		return "", nil, notFound(name)
	}
	if err := r.checkCasing(lib.Root, rest, name); err != nil {
		return "", nil, err
	}
	return filepath.Join(lib.Root, filepath.FromSlash(rest)), lib, nil
}

// checkCasing verifies rel exists below root with exactly this spelling.
func (r *Resolver) checkCasing(root, rel, name string) error {
	actual, found, err := fs.TrueCase(r.fs, root, rel)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to check source name"), "logical_name", name)
	}
	if !found {
		return notFound(name)
	}
	if actual != rel {
		return wrongCasing(name, strings.TrimSuffix(name, rel)+actual)
	}
	return nil
}

func (r *Resolver) load(name, absPath string, lib *domain.LibraryInfo) (*domain.ResolvedFile, error) {
	info, err := r.fs.Stat(absPath)
	if err != nil {
		return nil, notFound(name)
	}
	if info.IsDir() {
		return nil, notFound(name)
	}

	text, err := r.reader.ReadFile(absPath)
	if err != nil {
		readErr := zerr.With(zerr.Wrap(domain.ErrSourceReadFailed, err.Error()), "logical_name", name)
		return nil, zerr.With(readErr, "path", absPath)
	}
	hash := r.hasher.HashBytes([]byte(text))

	parsed, err := r.parse(text, absPath, hash)
	if err != nil {
		return nil, zerr.With(err, "logical_name", name)
	}

	return &domain.ResolvedFile{
		LogicalName:  domain.NewInternedString(name),
		AbsolutePath: absPath,
		ContentHash:  hash,
		LastModified: info.ModTime(),
		Library:      lib,
		Parsed:       parsed,
	}, nil
}

// parse consults the in-memory parse cache, the change cache entry, the
// persisted parse cache and finally the parser.
func (r *Resolver) parse(text, absPath, hash string) (*domain.ParsedFileData, error) {
	if data, ok := r.parser.Cached(hash); ok {
		return data, nil
	}

	if r.changes != nil {
		if entry, ok := r.changes.Get(absPath); ok && entry.ContentHash == hash && entry.ParsedData != nil {
			r.parser.Remember(hash, entry.ParsedData)
			return entry.ParsedData, nil
		}
	}

	if r.parseCache != nil {
		data, ok, err := r.parseCache.Get(hash)
		if err != nil {
			r.warn(fmt.Sprintf("parse cache unavailable: %v", err))
		} else if ok {
			r.parser.Remember(hash, data)
			return data, nil
		}
	}

	data, err := r.parser.Parse(text, absPath, hash)
	if err != nil {
		return nil, err
	}

	if r.parseCache != nil {
		if err := r.parseCache.Put(hash, data); err != nil {
			r.warn(fmt.Sprintf("failed to persist parse result for %s: %v", absPath, err))
		}
	}
	return data, nil
}

// Files returns every file resolved so far.
func (r *Resolver) Files() []*domain.ResolvedFile {
	r.mu.Lock()
	defer r.mu.Unlock()
	files := make([]*domain.ResolvedFile, 0, len(r.files))
	for _, f := range r.files {
		files = append(files, f)
	}
	return files
}

func (r *Resolver) warn(msg string) {
	if r.logger != nil {
		r.logger.Warn(msg)
	}
}

func notFound(name string) error {
	return zerr.With(zerr.Wrap(domain.ErrFileNotFound, name), "logical_name", name)
}

func wrongCasing(requested, corrected string) error {
	err := zerr.Wrap(domain.ErrWrongCasing, fmt.Sprintf("%q should be spelled %q", requested, corrected))
	err = zerr.With(err, "expected", corrected)
	return zerr.With(err, "actual", requested)
}

func outsideRoot(literal, importer string) error {
	err := zerr.With(zerr.Wrap(domain.ErrImportOutsideRoot, fmt.Sprintf("%q", literal)), "import", literal)
	if importer != "" {
		err = zerr.With(err, "importer", importer)
	}
	return err
}
