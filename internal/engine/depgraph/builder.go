// Package depgraph builds the import graph of a set of entry files.
package depgraph

import (
	"context"
	"runtime"

	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// Resolver is the part of the module resolver the builder needs.
type Resolver interface {
	ResolveLogicalName(ctx context.Context, name string) (*domain.ResolvedFile, error)
	ResolveImport(ctx context.Context, from *domain.ResolvedFile, literal string) (*domain.ResolvedFile, error)
}

// Builder resolves entries and their imports into a DependencyGraph.
type Builder struct {
	resolver Resolver
	limit    int
}

// New creates a Builder. A limit below one uses GOMAXPROCS.
func New(resolver Resolver, limit int) *Builder {
	if limit < 1 {
		limit = runtime.GOMAXPROCS(0)
	}
	return &Builder{resolver: resolver, limit: limit}
}

// Build resolves every entry and, recursively, every import edge. Entries are
// walked concurrently, each with its own visited set, so the result and the
// reported error do not depend on scheduling: when several entries fail, the
// error of the lowest-index entry is returned.
func (b *Builder) Build(ctx context.Context, entries []string) (*domain.DependencyGraph, error) {
	g := domain.NewDependencyGraph()
	errs := make([]error, len(entries))

	var eg errgroup.Group
	eg.SetLimit(b.limit)
	for i, name := range entries {
		eg.Go(func() error {
			errs[i] = b.buildEntry(ctx, g, name)
			return nil
		})
	}
	_ = eg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, zerr.With(err, "entry", entries[i])
		}
	}
	return g, nil
}

func (b *Builder) buildEntry(ctx context.Context, g *domain.DependencyGraph, name string) error {
	f, err := b.resolver.ResolveLogicalName(ctx, name)
	if err != nil {
		return err
	}
	if err := g.AddEntry(f); err != nil {
		return err
	}
	return b.walk(ctx, g, f, make(map[*domain.ResolvedFile]struct{}))
}

// walk adds the import edges of f depth-first. Cycles end at visited files.
func (b *Builder) walk(ctx context.Context, g *domain.DependencyGraph, f *domain.ResolvedFile, visited map[*domain.ResolvedFile]struct{}) error {
	if _, seen := visited[f]; seen {
		return nil
	}
	visited[f] = struct{}{}

	if f.Parsed == nil {
		return nil
	}
	for _, literal := range f.Parsed.Imports {
		if err := ctx.Err(); err != nil {
			return err
		}
		dep, err := b.resolver.ResolveImport(ctx, f, literal)
		if err != nil {
			return err
		}
		if err := g.AddDependency(f, dep); err != nil {
			return err
		}
		if err := b.walk(ctx, g, dep, visited); err != nil {
			return err
		}
	}
	return nil
}
