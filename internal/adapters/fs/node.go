package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zkc/internal/core/ports"
)

const (
	// FileSystemNodeID is the unique identifier for the filesystem Graft node.
	FileSystemNodeID graft.ID = "adapter.fs"
	// FileReaderNodeID is the unique identifier for the file reader Graft node.
	FileReaderNodeID graft.ID = "adapter.file_reader"
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.hasher"
	// WalkerNodeID is the unique identifier for the walker Graft node.
	WalkerNodeID graft.ID = "adapter.walker"
)

func init() {
	graft.Register(graft.Node[ports.FileSystem]{
		ID:        FileSystemNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileSystem, error) {
			return NewOS(), nil
		},
	})

	graft.Register(graft.Node[ports.FileReader]{
		ID:        FileReaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileReader, error) {
			return NewOS(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})
}
