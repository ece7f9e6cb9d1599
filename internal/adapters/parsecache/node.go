package parsecache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zkc/internal/core/ports"
)

// NodeID is the unique identifier for the parse cache Graft node.
const NodeID graft.ID = "adapter.parse_cache"

func init() {
	graft.Register(graft.Node[ports.ParseCacheFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ParseCacheFactory, error) {
			return Factory{}, nil
		},
	})
}
