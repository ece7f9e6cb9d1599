package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/adapters/watcher" //nolint:depguard // Debouncer is shared with the adapter
	"go.trai.ch/zkc/internal/core/domain"
)

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	Strict   bool
	Debounce time.Duration
}

// Watch compiles once and then recompiles after every batch of source
// changes until ctx is done. Compilation failures are logged and the loop
// keeps running.
func (a *App) Watch(ctx context.Context, names []string, opts WatchOptions) error {
	if a.services.Watcher == nil {
		return domain.ErrWatchUnavailable
	}

	project, err := a.loadProject()
	if err != nil {
		return err
	}

	window := opts.Debounce
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}

	compile := func() {
		err := a.Compile(ctx, names, CompileOptions{Strict: opts.Strict})
		if err != nil && ctx.Err() == nil {
			a.logger.Error(err)
		}
	}

	compile()

	ignore := []string{
		filepath.Join(project.Root, domain.DefaultWorkPath()),
		project.ArtifactsPath(),
	}
	if err := a.services.Watcher.Start(ctx, project.Root, ignore...); err != nil {
		return zerr.Wrap(err, "failed to start watching sources")
	}
	defer func() { _ = a.services.Watcher.Stop() }()

	debouncer := watcher.NewDebouncer(window)
	defer debouncer.Stop()
	go debouncer.Consume(a.services.Watcher.Events())

	a.logger.Info("watching " + project.Root + " for changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-debouncer.Batches():
			a.logger.Info(fmt.Sprintf("%d file(s) changed, recompiling", len(paths)))
			compile()
		}
	}
}
