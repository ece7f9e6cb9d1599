package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zkc/internal/adapters/logger"
	"go.trai.ch/zkc/internal/core/ports"
)

const (
	// BridgeNodeID is the unique identifier for the span bridge Graft node.
	BridgeNodeID graft.ID = "adapter.telemetry_bridge"
	// NodeID is the unique identifier for the tracer Graft node.
	NodeID graft.ID = "adapter.tracer"
)

func init() {
	graft.Register(graft.Node[*Bridge]{
		ID:        BridgeNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Bridge, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBridge(log), nil
		},
	})

	graft.Register(graft.Node[ports.Tracer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{BridgeNodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			bridge, err := graft.Dep[*Bridge](ctx)
			if err != nil {
				return nil, err
			}
			return NewOTelTracer(NewProvider(bridge)), nil
		},
	})
}
