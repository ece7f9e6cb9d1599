package ports

import (
	"context"
	"iter"
)

// WatchOp is the kind of change a WatchEvent reports.
type WatchOp int

const (
	// OpCreate means a file or directory appeared.
	OpCreate WatchOp = iota + 1
	// OpWrite means file contents changed.
	OpWrite
	// OpRemove means a file or directory was deleted.
	OpRemove
	// OpRename means a file or directory was moved away.
	OpRename
)

// WatchEvent is a single file system change.
type WatchEvent struct {
	Path      string
	Operation WatchOp
}

// Watcher reports changes below a directory tree.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start watches root recursively. Directories whose absolute path is in
	// ignore are skipped along with everything below them.
	Start(ctx context.Context, root string, ignore ...string) error

	// Stop releases the underlying watches.
	Stop() error

	// Events yields changes until ctx passed to Start is done or Stop is called.
	Events() iter.Seq[WatchEvent]
}
