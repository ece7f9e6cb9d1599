package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/core/domain"
)

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Workspace bool
	Compilers bool
	Artifacts bool
}

// Clean removes caches and artifacts based on the provided options.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove "+name), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	var project *domain.Project
	if options.Workspace || options.Artifacts {
		p, err := a.loadProject()
		if err != nil {
			return err
		}
		project = p
	} else if p, err := a.configLoader.Load(a.cwd); err == nil {
		project = p
	}

	if options.Workspace {
		remove(filepath.Join(project.Root, domain.DefaultWorkPath()), "workspace caches")
	}

	if options.Artifacts {
		remove(project.ArtifactsPath(), "artifacts")
	}

	if options.Compilers {
		dir := domain.DefaultCompilerCachePath()
		if project != nil && project.Compiler.CacheDir != "" {
			dir = project.Compiler.CacheDir
		}
		remove(dir, "compiler cache")
	}

	return errs
}
