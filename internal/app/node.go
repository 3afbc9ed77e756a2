package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weave/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/weave/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/weave/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/weave/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/weave/internal/adapters/plugins"            //nolint:depguard // Wired in app layer
	"go.trai.ch/weave/internal/adapters/telemetry"          //nolint:depguard // Wired in app layer
	"go.trai.ch/weave/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/weave/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			plugins.NodeID,
			cas.NodeID,
			fs.StatNodeID,
			fs.HasherNodeID,
			progrock.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	pluginFactory, err := graft.Dep[ports.PluginFactory](ctx)
	if err != nil {
		return nil, err
	}

	stores, err := graft.Dep[ports.CacheStoreFactory](ctx)
	if err != nil {
		return nil, err
	}

	timestamps, err := graft.Dep[ports.TimestampReader](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.ContentHasher](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(Services{
		ConfigLoader: loader,
		Logger:       log,
		Plugins:      pluginFactory,
		Stores:       stores,
		Timestamps:   timestamps,
		Hasher:       hasher,
		Telemetry:    tel,
		Tracer:       tracer,
	}), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, tel), nil
}
