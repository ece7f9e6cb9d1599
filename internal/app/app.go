// Package app implements the application layer for zkc.
package app

import (
	"context"
	"io"
	"os"

	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/adapters/detector"
	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/core/ports"
	"go.trai.ch/zkc/internal/engine/pipeline"
)

// SpanReporter switches span reporting on and off.
type SpanReporter interface {
	SetEnabled(enabled bool)
}

// Services are the adapters a pipeline session is assembled from.
type Services struct {
	FS          ports.FileSystem
	Reader      ports.FileReader
	Hasher      ports.Hasher
	Walker      pipeline.Walker
	ChangeCache ports.ChangeCache
	ParseCaches ports.ParseCacheFactory
	Stores      ports.ArtifactStoreFactory
	Compilers   ports.CompilerResolverFactory
	Tracer      ports.Tracer
	Spans       SpanReporter
	Watcher     ports.Watcher
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	services     Services
	out          io.Writer
	cwd          string
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger, services Services) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		services:     services,
		out:          os.Stdout,
		cwd:          ".",
	}
}

// WithOutput sets where reports are written.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithWorkingDir sets the directory the configuration is discovered from.
func (a *App) WithWorkingDir(dir string) *App {
	a.cwd = dir
	return a
}

// SetVerbose enables per-span timing logs.
func (a *App) SetVerbose(verbose bool) {
	if a.services.Spans != nil {
		a.services.Spans.SetEnabled(verbose)
	}
}

// SetOutputMode configures log rendering. mode is one of "auto", "pretty",
// "ci", "plain" or "json"; auto inspects the terminal and CI variables.
func (a *App) SetOutputMode(mode string) {
	resolved := detector.ResolveMode(detector.ModeAuto, mode)
	if resolved == detector.ModeAuto {
		resolved = detector.DetectEnvironment()
	}

	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(resolved == detector.ModeJSON)
	}
	if l, ok := a.logger.(interface{ SetCI(bool) }); ok {
		l.SetCI(resolved == detector.ModeCI)
	}
}

func (a *App) loadProject() (*domain.Project, error) {
	project, err := a.configLoader.Load(a.cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return project, nil
}

// openSession assembles a pipeline session for project.
func (a *App) openSession(project *domain.Project) (*pipeline.Session, error) {
	store, err := a.services.Stores.Open(project)
	if err != nil {
		return nil, err
	}

	deps := pipeline.Deps{
		FS:          a.services.FS,
		Reader:      a.services.Reader,
		Hasher:      a.services.Hasher,
		Walker:      a.services.Walker,
		ChangeCache: a.services.ChangeCache,
		Store:       store,
		Compilers:   a.services.Compilers.New(project.Compiler),
		Tracer:      a.services.Tracer,
		Logger:      a.logger,
	}

	if a.services.ParseCaches != nil {
		parsed, err := a.services.ParseCaches.Open(project)
		if err != nil {
			a.logger.Warn("parse cache unavailable: " + err.Error())
		} else {
			deps.ParseCache = parsed
		}
	}

	return pipeline.Open(project, deps)
}

// CompileOptions configuration for the Compile method.
type CompileOptions struct {
	Force  bool
	Strict bool
	JSON   bool
}

// Compile compiles every entry that needs it. Without names the configured
// or discovered entries are used.
func (a *App) Compile(ctx context.Context, names []string, opts CompileOptions) error {
	project, err := a.loadProject()
	if err != nil {
		return err
	}
	if opts.Strict {
		project.Compiler.Strict = true
	}

	session, err := a.openSession(project)
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	report := &CompileReport{}
	defer func() {
		if report.Warnings == nil {
			a.reportWarnings(session.Warnings())
		}
	}()

	entries, err := session.Discover(ctx, names)
	if err != nil {
		return err
	}
	g, err := session.Graph(ctx, entries)
	if err != nil {
		return err
	}

	flags := project.CompileFlags()
	jobs, err := session.FilesToCompile(g, flags, opts.Force)
	if err != nil {
		return err
	}
	if err := session.Analyze(ctx, jobs); err != nil {
		return err
	}

	result, err := session.Compile(ctx, g, jobs, flags, project.Compiler.Strict)
	if err != nil {
		return err
	}

	report.fill(g, result)
	if opts.JSON {
		report.Warnings = warningStrings(session.Warnings())
		return writeJSON(a.out, report)
	}
	a.logReport(report)
	return nil
}
