package app

import (
	"context"
	"fmt"

	"github.com/muesli/termenv"
	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/ui/output"
	"go.trai.ch/zkc/internal/ui/style"
)

// GraphOptions configuration for the Graph method.
type GraphOptions struct {
	JSON bool
}

// GraphDependency is one transitive dependency of an entry.
type GraphDependency struct {
	Name    string              `json:"name"`
	Path    string              `json:"path"`
	Kind    string              `json:"kind"`
	Library *domain.LibraryInfo `json:"library,omitempty"`
}

// GraphEntry is an entry file with its transitive dependencies.
type GraphEntry struct {
	Name         string            `json:"name"`
	Template     string            `json:"template,omitempty"`
	Dependencies []GraphDependency `json:"dependencies"`
}

// Graph resolves the entries and prints their dependencies.
func (a *App) Graph(ctx context.Context, names []string, opts GraphOptions) error {
	project, err := a.loadProject()
	if err != nil {
		return err
	}

	session, err := a.openSession(project)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	entries, err := session.Discover(ctx, names)
	if err != nil {
		return err
	}
	g, err := session.Graph(ctx, entries)
	if err != nil {
		return err
	}

	view := buildGraphView(g)
	if opts.JSON {
		return writeJSON(a.out, view)
	}
	return a.renderGraph(view)
}

func buildGraphView(g *domain.DependencyGraph) []GraphEntry {
	view := make([]GraphEntry, 0, len(g.Entries()))
	for _, entry := range g.Entries() {
		e := GraphEntry{Name: entry.Name(), Dependencies: []GraphDependency{}}
		if entry.HasMain() {
			e.Template = entry.Parsed.Main.Template
		}
		for _, dep := range g.TransitiveDependencies(entry) {
			e.Dependencies = append(e.Dependencies, GraphDependency{
				Name:    dep.Name(),
				Path:    dep.AbsolutePath,
				Kind:    dep.Kind().String(),
				Library: dep.Library,
			})
		}
		view = append(view, e)
	}
	return view
}

func (a *App) renderGraph(view []GraphEntry) error {
	out := output.New(a.out)
	color := func(s, c string) termenv.Style {
		return out.String(s).Foreground(termenv.RGBColor(c))
	}

	for _, e := range view {
		line := color(e.Name, string(style.Iris)).Bold().String()
		if e.Template != "" {
			line += " " + color(e.Template, string(style.Slate)).String()
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}

		for i, dep := range e.Dependencies {
			branch := "├─"
			if i == len(e.Dependencies)-1 {
				branch = "└─"
			}
			line := "  " + branch + " " + dep.Name
			if dep.Library != nil {
				line += " " + color(dep.Library.ID+"@"+dep.Library.Version, string(style.Slate)).String()
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
	}
	return nil
}
