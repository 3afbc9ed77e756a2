package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weave/internal/adapters/logger"
	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
)

// NodeID is the unique identifier for the command transformer factory Graft node.
const NodeID graft.ID = "adapter.command_transformer"

// TransformerFactory builds a command transformer for a configuration.
type TransformerFactory func(cfg *domain.Config) *CommandTransformer

func init() {
	graft.Register(graft.Node[TransformerFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (TransformerFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func(cfg *domain.Config) *CommandTransformer {
				return NewCommandTransformer(log, cfg.Transform, cfg.Root)
			}, nil
		},
	})
}
