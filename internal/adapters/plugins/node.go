package plugins

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weave/internal/adapters/shell"
	"go.trai.ch/weave/internal/core/ports"
)

// NodeID is the unique identifier for the plugin factory Graft node.
const NodeID graft.ID = "adapter.plugins"

func init() {
	graft.Register(graft.Node[ports.PluginFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.PluginFactory, error) {
			commands, err := graft.Dep[shell.TransformerFactory](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(commands), nil
		},
	})
}
