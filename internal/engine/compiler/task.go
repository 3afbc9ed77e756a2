package compiler

import (
	"context"
	"fmt"

	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/engine/pipeline"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// task is one request to add a module to the graph.
type task struct {
	param domain.ResolveParam
	// cachedDependency is a pre-resolved id that lets the task skip the resolver.
	cachedDependency domain.ModuleID
	// order is the index of the request in the importer's dependency list.
	order int
}

type claimState int

const (
	// claimBuilt: another task already claimed the module.
	claimBuilt claimState = iota
	// claimCached: the module is adopted from a cache entry.
	claimCached
	// claimBuilding: this task owns the module and must build it.
	claimBuilding
)

type claim struct {
	state    claimState
	id       domain.ModuleID
	module   *domain.Module
	resolved *pipeline.ResolvedModule
	cached   *domain.CachedModule
}

// spawn runs t on its own goroutine. A panic is converted into a task failure.
func (c *Compiler) spawn(ctx context.Context, g *errgroup.Group, t task) {
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				c.errs.report(domain.NewCompilationError(domain.StageTask, &t.param, domain.ModuleID{},
					zerr.With(domain.ErrTaskPanicked, "panic", fmt.Sprint(r))))
			}
		}()
		c.buildModuleGraph(ctx, t)
		return nil
	})
}

func (c *Compiler) buildModuleGraph(ctx context.Context, t task) {
	cl, err := c.claim(ctx, t)
	if err != nil {
		c.errs.report(err)
		return
	}

	switch cl.state {
	case claimBuilt:
		if t.param.Kind == domain.ResolveKindEntry {
			c.bindEntry(cl.id, t.param.EntryName)
		}
		c.addEdge(&t.param, cl.id, t.order)

	case claimCached:
		module := cl.cached.Module
		c.handleDependencies(ctx, t, &module, cl.cached.DependencyDescriptors(), domain.CacheHitDependency)

	case claimBuilding:
		if cl.module.External {
			c.addModule(cl.module, &t.param)
			c.addEdge(&t.param, cl.id, t.order)
			return
		}

		vctx, vertex := c.cctx.Telemetry.Record(ctx, "build "+cl.id.String())
		res, err := c.cctx.Pipeline.Build(vctx, &t.param, cl.resolved, cl.module)
		if err != nil {
			vertex.Complete(err)
			c.errs.report(err)
			return
		}
		if res.CacheHit.IsHit() {
			vertex.Cached()
		}
		vertex.Complete(nil)

		c.handleDependencies(ctx, t, cl.module, res.Dependencies, res.CacheHit)
	}
}

// claim resolves the request and atomically decides who builds the module. The resolver is
// never called while the graph lock is held: a pre-resolved id whose cache entry is unusable
// leaves the critical section, resolves and tries again.
func (c *Compiler) claim(ctx context.Context, t task) (*claim, error) {
	var resolved *pipeline.ResolvedModule
	id := t.cachedDependency
	if id.IsZero() {
		r, err := c.cctx.Pipeline.Resolve(ctx, &t.param)
		if err != nil {
			return nil, err
		}
		resolved, id = r, r.ID
	}

	cache := c.cctx.Cache
	immutable := c.cctx.Config.Immutable
	for {
		var cl *claim
		_ = c.cctx.Graph.Update(func(tx *domain.Tx) error {
			if tx.HasModule(id) {
				cl = &claim{state: claimBuilt, id: id}
				return nil
			}

			if resolved == nil {
				cached, ok := cache.Get(id)
				if ok && cache.ShouldInvalidate(id) {
					cache.Invalidate(id)
					ok = false
				}
				if ok {
					tx.AddModule(domain.NewModule(id, cached.Module.External, cached.Module.Immutable))
					cl = &claim{state: claimCached, id: id, cached: cached}
				}
				return nil
			}

			external := resolved.Result.External
			isImmutable := !external && immutable.Match(resolved.Result.ResolvedPath)
			tx.AddModule(domain.NewModule(id, external, isImmutable))
			cl = &claim{
				state:    claimBuilding,
				id:       id,
				module:   domain.NewModule(id, external, isImmutable),
				resolved: resolved,
			}
			return nil
		})
		if cl != nil {
			return cl, nil
		}

		r, err := c.cctx.Pipeline.Resolve(ctx, &t.param)
		if err != nil {
			return nil, err
		}
		resolved, id = r, r.ID
	}
}

// handleDependencies registers the populated module and its inbound edge, then builds every
// dependency concurrently and waits for all of them.
func (c *Compiler) handleDependencies(
	ctx context.Context,
	t task,
	module *domain.Module,
	deps []domain.Dependency,
	hit domain.CacheHit,
) {
	c.recordBuilt(module.ID, len(deps), hit)
	c.addModule(module, &t.param)
	c.addEdge(&t.param, module.ID, t.order)

	c.cctx.Logger.Debug("module built",
		"build_id", c.cctx.BuildID,
		"module_id", module.ID.String(),
		"dependencies", len(deps),
		"cache", string(hit),
	)

	if ctx.Err() != nil {
		return
	}

	var g errgroup.Group
	for i, dep := range deps {
		child := task{
			param: domain.ResolveParam{
				Source:   dep.Source,
				Kind:     dep.Kind,
				Importer: module.ID,
			},
			order: i,
		}
		if module.Immutable {
			child.cachedDependency = dep.ModuleID
		}
		c.spawn(ctx, &g, child)
	}
	_ = g.Wait()
}

// addModule adds module, or replaces the placeholder claimed for it, and binds entries.
func (c *Compiler) addModule(module *domain.Module, param *domain.ResolveParam) {
	var shadowed string
	_ = c.cctx.Graph.Update(func(tx *domain.Tx) error {
		if param.Kind == domain.ResolveKindEntry {
			shadowed = setEntry(tx, module.ID, param.EntryName)
		}
		if tx.HasModule(module.ID) {
			return tx.ReplaceModule(module)
		}
		tx.AddModule(module)
		return nil
	})
	c.warnShadowed(module.ID, shadowed)
}

// bindEntry records the entry name of a module that another branch already claimed.
func (c *Compiler) bindEntry(id domain.ModuleID, name string) {
	var shadowed string
	_ = c.cctx.Graph.Update(func(tx *domain.Tx) error {
		shadowed = setEntry(tx, id, name)
		return nil
	})
	c.warnShadowed(id, shadowed)
}

// setEntry binds name to id. A module reachable from several entries keeps the name that
// sorts first, so the result does not depend on which entry task ran first. The name that
// lost is returned.
func setEntry(tx *domain.Tx, id domain.ModuleID, name string) string {
	current, ok := tx.Entry(id)
	switch {
	case !ok:
		tx.SetEntry(id, name)
		return ""
	case current == name:
		return ""
	case name < current:
		tx.SetEntry(id, name)
		return current
	default:
		return name
	}
}

func (c *Compiler) warnShadowed(id domain.ModuleID, shadowed string) {
	if shadowed == "" {
		return
	}
	c.cctx.Logger.Warn("entry name shadowed by another entry of the same module",
		"module_id", id.String(),
		"entry", shadowed,
	)
}

// addEdge links the importer of param to id. Entries have no importer.
func (c *Compiler) addEdge(param *domain.ResolveParam, id domain.ModuleID, order int) {
	if !param.HasImporter() {
		return
	}
	err := c.cctx.Graph.AddEdgeItem(param.Importer, id, domain.EdgeItem{
		Source: param.Source,
		Kind:   param.Kind,
		Order:  order,
	})
	if err != nil {
		c.abort(err)
	}
}
