// Package compiler builds the module graph: it resolves every entry, claims each module
// exactly once and recursively fans out over dependencies on separate goroutines.
package compiler

import (
	"github.com/google/uuid"
	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
	"go.trai.ch/weave/internal/engine/modulecache"
	"go.trai.ch/weave/internal/engine/pipeline"
)

// Services are the collaborators a compilation needs.
type Services struct {
	Plugins    ports.PluginSet
	Timestamps ports.TimestampReader
	Hasher     ports.ContentHasher
	Store      ports.ModuleCacheStore
	Logger     ports.Logger
	Telemetry  ports.Telemetry
	Tracer     ports.Tracer
}

// Context is the state shared by every task of one build.
type Context struct {
	BuildID   string
	Config    *domain.Config
	Graph     *domain.ModuleGraph
	Cache     *modulecache.Gateway
	Pipeline  *pipeline.Pipeline
	Logger    ports.Logger
	Telemetry ports.Telemetry
}

// NewContext assembles the shared state for a build of cfg.
func NewContext(cfg *domain.Config, svc Services, opts ...modulecache.Option) *Context {
	cache := modulecache.New(svc.Store, cfg.PersistentCache.Enabled, opts...)
	return &Context{
		BuildID: uuid.NewString(),
		Config:  cfg,
		Graph:   domain.NewModuleGraph(),
		Cache:   cache,
		Pipeline: pipeline.New(svc.Plugins, svc.Timestamps, svc.Hasher, cache, svc.Tracer, pipeline.Options{
			Root:        cfg.Root,
			Parallelism: cfg.Parallelism,
		}),
		Logger:    svc.Logger,
		Telemetry: svc.Telemetry,
	}
}
