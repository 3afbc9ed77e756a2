// Package app implements the application layer for weave.
package app

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"go.trai.ch/weave/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
	"go.trai.ch/weave/internal/engine/compiler"
	"go.trai.ch/weave/internal/engine/modulecache"
	"go.trai.ch/zerr"
)

// Services are the collaborators shared by every build the App runs.
type Services struct {
	ConfigLoader ports.ConfigLoader
	Logger       ports.Logger
	Plugins      ports.PluginFactory
	Stores       ports.CacheStoreFactory
	Timestamps   ports.TimestampReader
	Hasher       ports.ContentHasher
	Telemetry    ports.Telemetry
	Tracer       ports.Tracer
}

// App represents the main application logic.
type App struct {
	svc        Services
	cacheOpts  []modulecache.Option
	workingDir string
}

// New creates a new App instance.
func New(svc Services) *App {
	return &App{
		svc:        svc,
		workingDir: ".",
	}
}

// WithWorkingDir sets the directory the configuration is discovered from.
func (a *App) WithWorkingDir(dir string) *App {
	a.workingDir = dir
	return a
}

// WithCacheOptions configures the module cache gateway of every build.
func (a *App) WithCacheOptions(opts ...modulecache.Option) *App {
	a.cacheOpts = append(a.cacheOpts, opts...)
	return a
}

// BuildOptions configures a single invocation.
type BuildOptions struct {
	// ConfigPath is an explicit configuration file. Empty discovers one from the working directory.
	ConfigPath string
	// NoCache disables the persistent module cache for this build.
	NoCache bool
	// Verbose forces debug logging regardless of the configured level.
	Verbose bool
	// JSONLogs forces JSON log output regardless of the configuration.
	JSONLogs bool
}

// logConfigurer is implemented by loggers that accept the configured log settings.
type logConfigurer interface {
	Configure(cfg domain.LogConfig)
}

// progressReporter is implemented by telemetry that tallies vertex outcomes.
type progressReporter interface {
	Summary() *progrock.Summary
}

// Build loads the configuration and constructs the module graph. Per-module failures are
// joined into the returned error; the result is returned alongside so callers can still use
// the partial graph. A nil result means the build never ran or was aborted.
func (a *App) Build(ctx context.Context, opts BuildOptions) (*compiler.Result, error) {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if opts.NoCache {
		cfg.PersistentCache.Enabled = false
	}

	plugins, err := a.svc.Plugins.Plugins(cfg)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create plugins")
	}

	store, err := a.svc.Stores.Open(cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			a.svc.Logger.Warn("failed to close module cache store", "error", closeErr.Error())
		}
	}()

	cctx := compiler.NewContext(cfg, compiler.Services{
		Plugins:    *plugins,
		Timestamps: a.svc.Timestamps,
		Hasher:     a.svc.Hasher,
		Store:      store,
		Logger:     a.svc.Logger,
		Telemetry:  a.svc.Telemetry,
		Tracer:     a.svc.Tracer,
	}, a.cacheOpts...)

	result, err := compiler.New(cctx).Build(ctx)
	if err != nil {
		return nil, err
	}
	a.report(result)
	return result, result.Err()
}

// Graph builds the module graph and writes it to w. The graph is written even when some
// modules failed, so the error of the build is returned after printing.
func (a *App) Graph(ctx context.Context, opts BuildOptions, w io.Writer) error {
	result, buildErr := a.Build(ctx, opts)
	if result == nil {
		return buildErr
	}
	if err := WriteGraph(w, result.Graph); err != nil {
		return zerr.Wrap(err, "failed to write graph")
	}
	return buildErr
}

// Clean removes every entry from the persistent cache store selected by the configuration.
func (a *App) Clean(ctx context.Context, opts BuildOptions) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}
	if !cfg.PersistentCache.Enabled {
		a.svc.Logger.Info("persistent cache disabled, nothing to clean")
		return nil
	}

	store, err := a.svc.Stores.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	if err := store.Clear(ctx); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "backend", string(cfg.PersistentCache.Backend))
	}
	a.svc.Logger.Info("module cache cleared", "backend", string(cfg.PersistentCache.Backend))
	return nil
}

func (a *App) loadConfig(opts BuildOptions) (*domain.Config, error) {
	cfg, err := a.svc.ConfigLoader.Load(a.workingDir, opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if c, ok := a.svc.Logger.(logConfigurer); ok {
		logCfg := cfg.Log
		if opts.Verbose {
			logCfg.Level = "debug"
		}
		if opts.JSONLogs {
			logCfg.JSON = true
		}
		c.Configure(logCfg)
	}
	return cfg, nil
}

func (a *App) report(result *compiler.Result) {
	a.svc.Logger.Debug("module cache",
		"timestamp_hits", result.Cache.TimestampHits,
		"content_hash_hits", result.Cache.ContentHashHits,
		"misses", result.Cache.Misses,
		"invalidations", result.Cache.Invalidations,
	)

	if r, ok := a.svc.Telemetry.(progressReporter); ok && r.Summary() != nil {
		counts := r.Summary().Counts()
		a.svc.Logger.Debug("progress",
			"vertices", counts.Total,
			"cached", counts.Cached,
			"failed", counts.Failed,
		)
	}

	for _, err := range result.Errors {
		a.svc.Logger.Error(err)
	}
	if result.DroppedErrors > 0 {
		a.svc.Logger.Warn("some module errors were dropped", "dropped", result.DroppedErrors)
	}
	if len(result.Errors) == 0 && result.DroppedErrors == 0 {
		a.svc.Logger.Info("build succeeded",
			"modules", result.Graph.ModuleCount(),
			"duration", result.Duration.Round(time.Millisecond).String(),
		)
	}
}

// WriteGraph prints the entries of g followed by every module, dependencies first, with its
// imports in declaration order.
func WriteGraph(w io.Writer, g *domain.ModuleGraph) error {
	entries := g.Entries()
	names := make([]string, 0, len(entries))
	byName := make(map[string]domain.ModuleID, len(entries))
	for id, name := range entries {
		names = append(names, name)
		byName[name] = id
	}
	slices.Sort(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(w, "entry %s: %s\n", name, byName[name]); err != nil {
			return err
		}
	}

	for m := range g.Walk() {
		if _, err := fmt.Fprintf(w, "%s%s\n", m.ID, moduleFlags(m)); err != nil {
			return err
		}
		for _, dep := range g.Dependencies(m.ID) {
			edge, _ := g.Edge(m.ID, dep)
			for _, item := range edge {
				if _, err := fmt.Fprintf(w, "  %s %q -> %s\n", item.Kind, item.Source, dep); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func moduleFlags(m *domain.Module) string {
	switch {
	case m.External:
		return " (external)"
	case m.ModuleType == "":
		return " (unbuilt)"
	case m.Immutable:
		return fmt.Sprintf(" [%s, immutable]", m.ModuleType)
	default:
		return fmt.Sprintf(" [%s]", m.ModuleType)
	}
}
