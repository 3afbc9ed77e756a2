package compiler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/engine/modulecache"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of a build once every task has settled.
type Result struct {
	BuildID string
	// Graph is a snapshot of the module graph.
	Graph *domain.ModuleGraph
	// Errors holds every per-module failure that reached the error channel.
	Errors []error
	// DroppedErrors counts failures lost because the error channel was full.
	DroppedErrors int64
	Cache         modulecache.Stats
	Duration      time.Duration
}

// Err aggregates the per-module failures, or returns nil for a clean build.
func (r *Result) Err() error {
	if len(r.Errors) == 0 && r.DroppedErrors == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Errors)+2)
	errs = append(errs, domain.ErrBuildFailed)
	errs = append(errs, r.Errors...)
	if r.DroppedErrors > 0 {
		errs = append(errs, zerr.With(domain.ErrBuildIncomplete, "dropped", r.DroppedErrors))
	}
	return errors.Join(errs...)
}

// builtModule records what the compiler knows about a module it populated.
type builtModule struct {
	dependencies int
	cacheHit     domain.CacheHit
}

// Compiler runs one build over a Context. A Compiler must not be reused.
type Compiler struct {
	cctx *Context
	errs *errorSink

	mu    sync.Mutex
	built map[domain.ModuleID]builtModule

	fatalOnce sync.Once
	fatalErr  error
	cancel    context.CancelFunc
}

// New creates a Compiler for cctx.
func New(cctx *Context) *Compiler {
	return &Compiler{
		cctx:  cctx,
		errs:  newErrorSink(errorChannelCapacity, cctx.Logger),
		built: make(map[domain.ModuleID]builtModule),
	}
}

// Context returns the shared build state.
func (c *Compiler) Context() *Context {
	return c.cctx
}

// Build constructs the module graph from the configured entries. Per-module failures do not
// stop the build; they are returned in Result.Errors once every branch has finished. A broken
// graph invariant aborts the build and is returned as the error.
func (c *Compiler) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.cancel = cancel

	cfg := c.cctx.Config
	if len(cfg.Input) == 0 {
		return nil, domain.ErrNoEntries
	}

	if err := c.cctx.Cache.Load(ctx); err != nil {
		c.cctx.Logger.Warn("module cache unavailable, building without it", "error", err.Error())
	}

	c.errs.start()
	var g errgroup.Group
	for order, name := range cfg.EntryNames() {
		c.spawn(ctx, &g, task{
			param: domain.ResolveParam{
				Source:    cfg.Input[name],
				Kind:      domain.ResolveKindEntry,
				EntryName: name,
			},
			order: order,
		})
	}
	_ = g.Wait()
	errs, dropped := c.errs.close()

	if c.fatalErr != nil {
		return nil, c.fatalErr
	}

	if err := c.persist(ctx); err != nil {
		c.cctx.Logger.Warn("failed to write module cache", "error", err.Error())
	}

	result := &Result{
		BuildID:       c.cctx.BuildID,
		Graph:         c.cctx.Graph.Snapshot(),
		Errors:        errs,
		DroppedErrors: dropped,
		Cache:         c.cctx.Cache.Stats(),
		Duration:      time.Since(start),
	}
	c.cctx.Logger.Info("module graph built",
		"build_id", result.BuildID,
		"modules", result.Graph.ModuleCount(),
		"edges", result.Graph.EdgeCount(),
		"errors", len(errs),
		"duration", result.Duration.Round(time.Millisecond).String(),
	)
	return result, nil
}

// abort records the first fatal error and cancels the build.
func (c *Compiler) abort(err error) {
	c.fatalOnce.Do(func() {
		c.fatalErr = err
		c.cctx.Logger.Error(err)
		if c.cancel != nil {
			c.cancel()
		}
	})
}

func (c *Compiler) recordBuilt(id domain.ModuleID, deps int, hit domain.CacheHit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.built[id] = builtModule{dependencies: deps, cacheHit: hit}
}

// persist writes every module built in this run back to the cache. Modules with a dependency
// that failed to resolve are skipped, since their cached dependency list would be incomplete.
func (c *Compiler) persist(ctx context.Context) error {
	cache := c.cctx.Cache
	if !cache.Enabled() {
		return nil
	}
	graph := c.cctx.Graph

	c.mu.Lock()
	built := make(map[domain.ModuleID]builtModule, len(c.built))
	for id, b := range c.built {
		built[id] = b
	}
	c.mu.Unlock()

	for _, m := range graph.Modules() {
		b, ok := built[m.ID]
		if !ok || m.External {
			continue
		}
		if b.cacheHit == domain.CacheHitTimestamp || b.cacheHit == domain.CacheHitDependency {
			continue
		}

		var deps []domain.CachedDependency
		for _, to := range graph.Dependencies(m.ID) {
			edge, _ := graph.Edge(m.ID, to)
			for _, item := range edge {
				deps = append(deps, domain.CachedDependency{
					Source:   item.Source,
					Kind:     item.Kind,
					Order:    item.Order,
					ModuleID: to,
				})
			}
		}
		if len(deps) != b.dependencies {
			continue
		}
		cache.Put(&domain.CachedModule{Module: *m, Dependencies: deps})
	}
	return cache.Flush(ctx)
}
