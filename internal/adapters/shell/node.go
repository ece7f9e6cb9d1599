package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zkc/internal/core/ports"
)

// NodeID is the unique identifier for the command runner Graft node.
const NodeID graft.ID = "adapter.command_runner"

func init() {
	graft.Register(graft.Node[ports.CommandRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.CommandRunner, error) {
			return NewRunner(nil), nil
		},
	})
}
