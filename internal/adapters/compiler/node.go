package compiler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zkc/internal/adapters/logger"
	"go.trai.ch/zkc/internal/adapters/shell"
	"go.trai.ch/zkc/internal/core/ports"
)

// NodeID is the unique identifier for the compiler resolver Graft node.
const NodeID graft.ID = "adapter.compiler_resolver"

func init() {
	graft.Register(graft.Node[ports.CompilerResolverFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.CompilerResolverFactory, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(runner, log), nil
		},
	})
}
