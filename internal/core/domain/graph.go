package domain

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dominikbraun/graph"
	"go.trai.ch/zerr"
)

// DependencyGraph is the resolved import graph of a run, keyed by logical name.
// Import cycles are allowed; every traversal is visited-guarded.
type DependencyGraph struct {
	mu      sync.RWMutex
	g       graph.Graph[string, *ResolvedFile]
	entries map[string]struct{}
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		g:       graph.New(func(f *ResolvedFile) string { return f.Name() }, graph.Directed()),
		entries: make(map[string]struct{}),
	}
}

// NewAmbiguousNameError reports two different files claiming one logical name.
func NewAmbiguousNameError(name, firstPath, secondPath string) error {
	err := zerr.Wrap(ErrAmbiguousName, fmt.Sprintf("logical name %q", name))
	err = zerr.With(err, "logical_name", name)
	err = zerr.With(err, "first_path", firstPath)
	return zerr.With(err, "second_path", secondPath)
}

// AddFile adds a node. Re-adding a known file is a no-op, while a second
// absolute path for a known logical name is an identity violation.
func (d *DependencyGraph) AddFile(f *ResolvedFile) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.addFileLocked(f)
}

func (d *DependencyGraph) addFileLocked(f *ResolvedFile) error {
	existing, err := d.g.Vertex(f.Name())
	if err == nil {
		if existing.AbsolutePath != f.AbsolutePath {
			return NewAmbiguousNameError(f.Name(), existing.AbsolutePath, f.AbsolutePath)
		}
		return nil
	}
	if err := d.g.AddVertex(f); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return zerr.Wrap(err, "failed to add file to dependency graph")
	}
	return nil
}

// AddEntry adds f and marks it as a requested entry.
func (d *DependencyGraph) AddEntry(f *ResolvedFile) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.addFileLocked(f); err != nil {
		return err
	}
	d.entries[f.Name()] = struct{}{}
	return nil
}

// AddDependency records that from imports to. Both files are added if needed.
func (d *DependencyGraph) AddDependency(from, to *ResolvedFile) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.addFileLocked(from); err != nil {
		return err
	}
	if err := d.addFileLocked(to); err != nil {
		return err
	}
	err := d.g.AddEdge(from.Name(), to.Name())
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return zerr.Wrap(err, "failed to add import edge")
	}
	return nil
}

// File returns the node for a logical name.
func (d *DependencyGraph) File(name string) (*ResolvedFile, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	f, err := d.g.Vertex(name)
	if err != nil {
		return nil, false
	}
	return f, true
}

// Files returns every node sorted by logical name.
func (d *DependencyGraph) Files() []*ResolvedFile {
	d.mu.RLock()
	defer d.mu.RUnlock()

	adj, err := d.g.AdjacencyMap()
	if err != nil {
		return nil
	}
	return d.sortedFiles(adj)
}

// Entries returns the entry files sorted by logical name.
func (d *DependencyGraph) Entries() []*ResolvedFile {
	d.mu.RLock()
	defer d.mu.RUnlock()

	files := make([]*ResolvedFile, 0, len(d.entries))
	for name := range d.entries {
		if f, err := d.g.Vertex(name); err == nil {
			files = append(files, f)
		}
	}
	sortFiles(files)
	return files
}

// Dependencies returns the direct imports of a file sorted by logical name.
func (d *DependencyGraph) Dependencies(f *ResolvedFile) []*ResolvedFile {
	d.mu.RLock()
	defer d.mu.RUnlock()

	adj, err := d.g.AdjacencyMap()
	if err != nil {
		return nil
	}
	targets := adj[f.Name()]
	files := make([]*ResolvedFile, 0, len(targets))
	for name := range targets {
		if dep, err := d.g.Vertex(name); err == nil {
			files = append(files, dep)
		}
	}
	sortFiles(files)
	return files
}

// TransitiveDependencies returns every file reachable from f, excluding f
// itself, deduplicated and sorted by logical name.
func (d *DependencyGraph) TransitiveDependencies(f *ResolvedFile) []*ResolvedFile {
	d.mu.RLock()
	defer d.mu.RUnlock()

	start := f.Name()
	var files []*ResolvedFile
	_ = graph.DFS(d.g, start, func(name string) bool {
		if name == start {
			return false
		}
		if dep, err := d.g.Vertex(name); err == nil {
			files = append(files, dep)
		}
		return false
	})
	sortFiles(files)
	return files
}

// Len returns the number of files in the graph.
func (d *DependencyGraph) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n, err := d.g.Order()
	if err != nil {
		return 0
	}
	return n
}

func (d *DependencyGraph) sortedFiles(adj map[string]map[string]graph.Edge[string]) []*ResolvedFile {
	files := make([]*ResolvedFile, 0, len(adj))
	for name := range adj {
		if f, err := d.g.Vertex(name); err == nil {
			files = append(files, f)
		}
	}
	sortFiles(files)
	return files
}

func sortFiles(files []*ResolvedFile) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].Name() < files[j].Name()
	})
}
