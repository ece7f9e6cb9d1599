// Package watcher reports source changes for watch mode rebuilds.
package watcher

import (
	"iter"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/zkc/internal/core/domain"
	"go.trai.ch/zkc/internal/core/ports"
)

// Relevant reports whether a change to path can affect compilation: circuit
// sources, the project configuration and library descriptors. Editor lock
// files are not sources even when they carry the source extension.
func Relevant(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, ".#"):
		return false
	case base == domain.ConfigFileName, base == "package.json":
		return true
	}
	return filepath.Ext(base) == domain.SourceExtension
}

// Debouncer turns a stream of watch events into rebuild batches. A batch is
// the sorted set of relevant paths that changed until no further relevant
// change arrived for the window. Changes arriving while the previous batch
// has not been taken yet are held back and delivered as the next batch.
type Debouncer struct {
	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	window  time.Duration
	stopped bool
	batches chan []string
}

// NewDebouncer creates a Debouncer with the given quiet window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		pending: make(map[string]struct{}),
		window:  window,
		batches: make(chan []string, 1),
	}
}

// Batches delivers the coalesced batches.
func (d *Debouncer) Batches() <-chan []string {
	return d.batches
}

// Add records event and restarts the window. Irrelevant events are dropped
// and reported as false.
func (d *Debouncer) Add(event ports.WatchEvent) bool {
	if !Relevant(event.Path) {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return false
	}
	d.pending[event.Path] = struct{}{}
	d.arm()
	return true
}

// Consume adds every event of events until the sequence ends.
func (d *Debouncer) Consume(events iter.Seq[ports.WatchEvent]) {
	for event := range events {
		d.Add(event)
	}
}

// Stop discards pending changes. No batch is delivered afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
}

// arm must be called with mu held.
func (d *Debouncer) arm() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.timer = nil
	if d.stopped || len(d.pending) == 0 {
		return
	}

	paths := make([]string, 0, len(d.pending))
	for path := range d.pending {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	select {
	case d.batches <- paths:
		clear(d.pending)
	default:
		// The previous batch is still being built.
		d.arm()
	}
}
