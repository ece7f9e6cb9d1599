package changecache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zkc/internal/adapters/fs"
	"go.trai.ch/zkc/internal/adapters/logger"
	"go.trai.ch/zkc/internal/core/ports"
)

// NodeID is the unique identifier for the change cache Graft node.
const NodeID graft.ID = "adapter.change_cache"

func init() {
	graft.Register(graft.Node[ports.ChangeCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FileSystemNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ChangeCache, error) {
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(fsys, log)
		},
	})
}
