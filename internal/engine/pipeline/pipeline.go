// Package pipeline implements the per-module build pipeline:
// resolve, then load, transform and parse with two cache short-circuits.
package pipeline

import (
	"context"
	"runtime"

	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
	"go.trai.ch/weave/internal/engine/modulecache"
	"go.trai.ch/zerr"
	"golang.org/x/sync/semaphore"
)

// Options configures a Pipeline.
type Options struct {
	// Root is the directory module ids are made relative to.
	Root string
	// Parallelism bounds concurrent plugin calls. Zero means runtime.NumCPU().
	Parallelism int
}

// Pipeline runs the build stages for single modules. It is safe for concurrent use.
type Pipeline struct {
	plugins    ports.PluginSet
	timestamps ports.TimestampReader
	hasher     ports.ContentHasher
	cache      *modulecache.Gateway
	tracer     ports.Tracer
	limiter    *semaphore.Weighted
	root       string
}

// New creates a Pipeline.
func New(
	plugins ports.PluginSet,
	timestamps ports.TimestampReader,
	hasher ports.ContentHasher,
	cache *modulecache.Gateway,
	tracer ports.Tracer,
	opts Options,
) *Pipeline {
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if tracer == nil {
		tracer = nopTracer{}
	}
	return &Pipeline{
		plugins:    plugins,
		timestamps: timestamps,
		hasher:     hasher,
		cache:      cache,
		tracer:     tracer,
		limiter:    semaphore.NewWeighted(int64(parallelism)),
		root:       opts.Root,
	}
}

// ResolvedModule is the outcome of the resolve stage.
type ResolvedModule struct {
	ID     domain.ModuleID
	Result *domain.ResolveResult
}

// Result is the outcome of building one module.
type Result struct {
	// Dependencies are in import order.
	Dependencies []domain.Dependency
	CacheHit     domain.CacheHit
}

// Resolve runs the resolver for param and derives the module id.
func (p *Pipeline) Resolve(ctx context.Context, param *domain.ResolveParam) (*ResolvedModule, error) {
	var result *domain.ResolveResult
	err := p.stage(ctx, domain.StageResolve, param.Source, func(ctx context.Context) error {
		var err error
		result, err = p.plugins.Resolver.Resolve(ctx, param)
		return err
	})
	if err != nil {
		return nil, domain.NewCompilationError(domain.StageResolve, param, domain.ModuleID{}, err)
	}
	if result == nil {
		return nil, domain.NewCompilationError(domain.StageResolve, param, domain.ModuleID{},
			zerr.With(domain.ErrModuleNotResolved, "source", param.Source))
	}

	return &ResolvedModule{
		ID:     domain.NewModuleID(result.ResolvedPath, result.Query.String(), p.root),
		Result: result,
	}, nil
}

// Build populates module, which must carry its id and flags, by running load, transform and
// parse. Cache hits overwrite module wholesale with the cached copy.
func (p *Pipeline) Build(
	ctx context.Context,
	param *domain.ResolveParam,
	resolved *ResolvedModule,
	module *domain.Module,
) (*Result, error) {
	fail := func(stage domain.Stage, err error) (*Result, error) {
		return nil, domain.NewCompilationError(stage, param, module.ID, err)
	}
	rr := resolved.Result

	timestamp, timestampKnown := p.timestamp(module, rr.ResolvedPath)
	if timestampKnown {
		if cached, ok := p.cache.LookupByTimestamp(module.ID, timestamp); ok {
			*module = cached.Module
			return &Result{Dependencies: cached.DependencyDescriptors(), CacheHit: domain.CacheHitTimestamp}, nil
		}
	}

	var loaded *domain.LoadResult
	err := p.stage(ctx, domain.StageLoad, module.ID.String(), func(ctx context.Context) error {
		var err error
		loaded, err = p.plugins.Loader.Load(ctx, &domain.LoadParam{
			ModuleID:     module.ID,
			ResolvedPath: rr.ResolvedPath,
			Query:        rr.Query,
			Meta:         rr.Meta,
		})
		return err
	})
	if err != nil {
		return fail(domain.StageLoad, err)
	}
	if loaded == nil {
		return fail(domain.StageLoad, zerr.With(domain.ErrEmptyLoadResult, "path", rr.ResolvedPath))
	}

	var chain []string
	if loaded.SourceMap != "" {
		chain = append(chain, loaded.SourceMap)
	}

	var transformed *domain.TransformResult
	err = p.stage(ctx, domain.StageTransform, module.ID.String(), func(ctx context.Context) error {
		var err error
		transformed, err = p.plugins.Transformer.Transform(ctx, &domain.TransformParam{
			ModuleID:       module.ID,
			ResolvedPath:   rr.ResolvedPath,
			Content:        loaded.Content,
			ModuleType:     loaded.ModuleType,
			Query:          rr.Query,
			Meta:           rr.Meta,
			SourceMapChain: chain,
		})
		return err
	})
	if err != nil {
		return fail(domain.StageTransform, err)
	}
	if transformed == nil {
		transformed = &domain.TransformResult{Content: loaded.Content}
	}

	content := transformed.Content
	moduleType := loaded.ModuleType
	if transformed.ModuleType != "" {
		moduleType = transformed.ModuleType
	}
	if transformed.SourceMapChain != nil {
		chain = transformed.SourceMapChain
	}

	contentHash := domain.ImmutableContentHash
	if !module.Immutable {
		contentHash = p.hasher.HashContent(content)
	}

	if cached, ok := p.cache.LookupByContentHash(module.ID, contentHash); ok {
		*module = cached.Module
		if !module.Immutable {
			module.LastUpdateTimestamp = timestamp
		}
		return &Result{Dependencies: cached.DependencyDescriptors(), CacheHit: domain.CacheHitContentHash}, nil
	}

	meta, err := p.parse(ctx, param, module.ID, rr, moduleType, content)
	if err != nil {
		return nil, err
	}

	module.Content = content
	module.ContentHash = contentHash
	module.LastUpdateTimestamp = timestamp
	module.ModuleType = moduleType
	module.Size = len(content)
	module.SideEffects = rr.SideEffects
	module.External = false
	module.SourceMapChain = chain
	module.Meta = *meta

	return &Result{Dependencies: meta.Dependencies()}, nil
}

func (p *Pipeline) parse(
	ctx context.Context,
	param *domain.ResolveParam,
	id domain.ModuleID,
	rr *domain.ResolveResult,
	moduleType domain.ModuleType,
	content string,
) (*domain.ModuleMetaData, error) {
	var meta *domain.ModuleMetaData
	err := p.stage(ctx, domain.StageParse, id.String(), func(ctx context.Context) error {
		var err error
		meta, err = p.plugins.Parser.Parse(ctx, &domain.ParseParam{
			ModuleID:     id,
			ResolvedPath: rr.ResolvedPath,
			Query:        rr.Query,
			ModuleType:   moduleType,
			Content:      content,
		})
		return err
	})
	if err != nil {
		return nil, domain.NewCompilationError(domain.StageParse, param, id, err)
	}
	if meta == nil {
		meta = &domain.ModuleMetaData{}
	}

	if p.plugins.Processor == nil {
		return meta, nil
	}
	err = p.stage(ctx, domain.StageProcess, id.String(), func(ctx context.Context) error {
		return p.plugins.Processor.Process(ctx, &domain.ProcessParam{
			ModuleID:   id,
			ModuleType: moduleType,
			Content:    content,
			Meta:       meta,
		})
	})
	if err != nil {
		return nil, domain.NewCompilationError(domain.StageProcess, param, id, err)
	}
	return meta, nil
}

// timestamp returns the value used for timestamp validation and whether a lookup is possible.
func (p *Pipeline) timestamp(module *domain.Module, path string) (int64, bool) {
	if module.Immutable {
		return 0, true
	}
	ts, err := p.timestamps.ModTime(path)
	if err != nil {
		return 0, false
	}
	return ts, true
}

// stage runs fn inside a span while holding one slot of the concurrency limiter.
func (p *Pipeline) stage(ctx context.Context, stage domain.Stage, target string, fn func(context.Context) error) error {
	if err := p.limiter.Acquire(ctx, 1); err != nil {
		return zerr.Wrap(err, "build cancelled")
	}
	defer p.limiter.Release(1)

	ctx, span := p.tracer.Start(ctx, string(stage), ports.WithAttribute("module.id", target))
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
