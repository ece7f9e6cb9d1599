// Package pipeline holds the per-run context of a compilation: the resolver,
// parser, graph builder, analyzer and orchestrator share one Session, which
// is opened at the start of a run and closed at its end.
package pipeline

import (
	"context"
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/core/ports"
	"go.trai.ch/zkc/internal/engine/analyzer"
	"go.trai.ch/zkc/internal/engine/depgraph"
	"go.trai.ch/zkc/internal/engine/orchestrator"
	"go.trai.ch/zkc/internal/engine/parser"
	"go.trai.ch/zkc/internal/engine/resolver"
)

// Walker lists source files below a directory.
type Walker interface {
	WalkFiles(root string, extensions []string) iter.Seq[string]
}

// Deps are the collaborators of a Session. ParseCache may be nil.
type Deps struct {
	FS          ports.FileSystem
	Reader      ports.FileReader
	Hasher      ports.Hasher
	Walker      Walker
	ChangeCache ports.ChangeCache
	ParseCache  ports.ParseCache
	Store       ports.ArtifactStore
	Compilers   ports.CompilerResolver
	Tracer      ports.Tracer
	Logger      ports.Logger
}

// Session is the explicit context of one pipeline run.
type Session struct {
	project   *domain.Project
	cachePath string

	fs       ports.FileSystem
	hasher   ports.Hasher
	walker   Walker
	changes  ports.ChangeCache
	store    ports.ArtifactStore
	tracer   ports.Tracer
	logger   ports.Logger
	parser   *parser.Parser
	resolver *resolver.Resolver
	builder  *depgraph.Builder
	analyzer *analyzer.Analyzer
	orch     *orchestrator.Orchestrator
}

// Open loads the change cache of project and creates the per-run caches.
func Open(project *domain.Project, deps Deps) (*Session, error) {
	s := &Session{
		project:   project,
		cachePath: filepath.Join(project.Root, domain.DefaultChangeCachePath()),
		fs:        deps.FS,
		hasher:    deps.Hasher,
		walker:    deps.Walker,
		changes:   deps.ChangeCache,
		store:     deps.Store,
		tracer:    deps.Tracer,
		logger:    deps.Logger,
		parser:    parser.New(),
		analyzer:  analyzer.New(),
	}

	if err := s.changes.Load(s.cachePath); err != nil {
		return nil, err
	}

	s.resolver = resolver.New(resolver.Options{
		Root:         project.Root,
		PackageName:  project.Name,
		LibraryPaths: project.LibraryPaths,
	}, resolver.Deps{
		FS:          deps.FS,
		Reader:      deps.Reader,
		Hasher:      deps.Hasher,
		Parser:      s.parser,
		ChangeCache: deps.ChangeCache,
		ParseCache:  deps.ParseCache,
		Logger:      deps.Logger,
	})
	s.builder = depgraph.New(s.resolver, 0)
	s.orch = orchestrator.New(
		deps.Compilers,
		deps.Store,
		deps.Hasher,
		deps.Tracer,
		deps.Logger,
		filepath.Join(project.Root, domain.DefaultTempPath()),
	)
	return s, nil
}

// Close releases the per-run caches. The session must not be used afterwards.
func (s *Session) Close() error {
	s.resolver = nil
	s.builder = nil
	s.parser = nil
	s.orch = nil
	return nil
}

// Project returns the project the session was opened for.
func (s *Session) Project() *domain.Project {
	return s.project
}

// Parses reports how many files were parsed from source text in this run.
func (s *Session) Parses() int64 {
	return s.parser.Parses()
}

// Discover returns the entry names of the run. Explicit names win, then the
// configured entries. Otherwise every source file below the sources
// directory that declares a main component is an entry.
func (s *Session) Discover(ctx context.Context, names []string) ([]string, error) {
	if len(names) > 0 {
		return names, nil
	}
	if len(s.project.Entries) > 0 {
		return s.project.Entries, nil
	}

	dir := s.project.SourcesDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(s.project.Root, dir)
	}

	var entries []string
	for path := range s.walker.WalkFiles(dir, []string{domain.SourceExtension}) {
		rel, err := filepath.Rel(s.project.Root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		name := filepath.ToSlash(rel)
		f, err := s.resolver.ResolveLogicalName(ctx, name)
		if err != nil {
			return nil, err
		}
		if f.HasMain() {
			entries = append(entries, name)
		}
	}

	if len(entries) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoEntries, dir), "sources", dir)
	}
	return entries, nil
}

// Graph resolves entries and their imports.
func (s *Session) Graph(ctx context.Context, entries []string) (*domain.DependencyGraph, error) {
	ctx, span := s.tracer.Start(ctx, "resolve")
	defer span.End()
	span.SetAttribute("entries", len(entries))

	g, err := s.builder.Build(ctx, entries)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("files", g.Len())
	return g, nil
}

// FilesToCompile returns one job per entry with a main component that has
// changed, has a changed transitive dependency, has no artifact record, or
// is forced. Jobs are sorted by id.
func (s *Session) FilesToCompile(g *domain.DependencyGraph, flags domain.CompileFlags, force bool) ([]domain.CompileJob, error) {
	var jobs []domain.CompileJob
	for _, entry := range g.Entries() {
		if !entry.HasMain() {
			continue
		}
		deps := g.TransitiveDependencies(entry)

		rebuild, err := s.needsRebuild(entry, deps, flags, force)
		if err != nil {
			return nil, err
		}
		if rebuild {
			jobs = append(jobs, domain.CompileJob{ID: entry.Name(), File: entry, Dependencies: deps})
		}
	}
	return jobs, nil
}

func (s *Session) needsRebuild(entry *domain.ResolvedFile, deps []*domain.ResolvedFile, flags domain.CompileFlags, force bool) (bool, error) {
	if force || s.changed(entry, flags) {
		return true, nil
	}
	// Dependencies may have been recorded by a run for another entry, so
	// their own cache entries cannot tell whether this entry saw them.
	recorded, ok := s.changes.Get(entry.AbsolutePath)
	if !ok || recorded.BuildDigest != s.buildDigest(entry, deps) {
		return true, nil
	}
	exists, err := s.store.Exists(entry.Name())
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *Session) changed(f *domain.ResolvedFile, flags domain.CompileFlags) bool {
	return s.changes.HasChanged(f.AbsolutePath, f.ContentHash, flags)
}

// buildDigest hashes the logical names and content hashes of entry and its
// transitive dependencies in name order.
func (s *Session) buildDigest(entry *domain.ResolvedFile, deps []*domain.ResolvedFile) string {
	lines := make([]string, 0, len(deps)+1)
	lines = append(lines, entry.Name()+"\x00"+entry.ContentHash)
	for _, dep := range deps {
		lines = append(lines, dep.Name()+"\x00"+dep.ContentHash)
	}
	slices.Sort(lines[1:])
	return s.hasher.HashBytes([]byte(strings.Join(lines, "\n")))
}

// Analyze computes the main-component data of every job.
func (s *Session) Analyze(ctx context.Context, jobs []domain.CompileJob) error {
	_, span := s.tracer.Start(ctx, "analyze")
	defer span.End()

	for _, job := range jobs {
		if _, err := s.analyzer.Resolve(job.File, job.Dependencies); err != nil {
			err = zerr.With(err, "id", job.ID)
			span.RecordError(err)
			return err
		}
	}
	return nil
}

// Warnings returns the analysis warnings collected so far.
func (s *Session) Warnings() []domain.AnalysisWarning {
	return s.analyzer.Warnings()
}

// Compile runs the orchestrator over jobs. On success every file of g is
// recorded in the change cache, which is then persisted. Entries of g get a
// fresh build digest. Other files keep the digest they had, so an entry
// that was not part of this run still notices the changes recorded here.
func (s *Session) Compile(
	ctx context.Context,
	g *domain.DependencyGraph,
	jobs []domain.CompileJob,
	flags domain.CompileFlags,
	strict bool,
) (*orchestrator.Result, error) {
	result, err := s.orch.Compile(ctx, orchestrator.Request{Jobs: jobs, Flags: flags, Strict: strict})
	if err != nil {
		return nil, err
	}

	digests := make(map[string]string)
	for _, entry := range g.Entries() {
		if entry.HasMain() {
			digests[entry.AbsolutePath] = s.buildDigest(entry, g.TransitiveDependencies(entry))
		}
	}

	for _, f := range g.Files() {
		digest, ok := digests[f.AbsolutePath]
		if !ok {
			if previous, found := s.changes.Get(f.AbsolutePath); found {
				digest = previous.BuildDigest
			}
		}
		s.changes.Add(f.AbsolutePath, domain.CacheEntry{
			ContentHash:  f.ContentHash,
			LastModified: f.LastModified.UnixMilli(),
			CompileFlags: flags,
			ParsedData:   f.Parsed,
			BuildDigest:  digest,
		})
	}
	if err := s.changes.Persist(s.cachePath); err != nil {
		return nil, err
	}
	return result, nil
}
