// Package modulecache provides the module cache gateway used by the build pipeline and the
// graph builder to skip work for modules that were already built.
package modulecache

import (
	"context"
	"sync"
	"sync/atomic"

	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
	"go.trai.ch/zerr"
)

// InvalidationPolicy decides whether a cache entry reached through a pre-resolved dependency
// must be discarded instead of adopted.
type InvalidationPolicy func(id domain.ModuleID) bool

// AlwaysInvalidate discards every entry reached through a pre-resolved dependency.
func AlwaysInvalidate(domain.ModuleID) bool { return true }

// Option configures a Gateway.
type Option func(*Gateway)

// WithInvalidationPolicy overrides the default AlwaysInvalidate policy.
func WithInvalidationPolicy(p InvalidationPolicy) Option {
	return func(g *Gateway) {
		g.policy = p
	}
}

// Stats reports gateway activity for one build.
type Stats struct {
	TimestampHits   int64
	ContentHashHits int64
	Misses          int64
	Invalidations   int64
}

// Gateway is the in-memory view of the persistent module cache.
// Entries are hydrated from the store once, served from memory while the graph is built and
// written back by Flush. The gateway has its own lock, independent of the module graph.
type Gateway struct {
	store   ports.ModuleCacheStore
	enabled bool
	policy  InvalidationPolicy

	mu          sync.RWMutex
	entries     map[domain.ModuleID]*domain.CachedModule
	dirty       map[domain.ModuleID]struct{}
	invalidated map[domain.ModuleID]struct{}

	timestampHits   atomic.Int64
	contentHashHits atomic.Int64
	misses          atomic.Int64
	invalidations   atomic.Int64
}

// New creates a gateway over store. A disabled gateway misses every lookup and drops writes.
func New(store ports.ModuleCacheStore, enabled bool, opts ...Option) *Gateway {
	g := &Gateway{
		store:       store,
		enabled:     enabled && store != nil,
		policy:      AlwaysInvalidate,
		entries:     make(map[domain.ModuleID]*domain.CachedModule),
		dirty:       make(map[domain.ModuleID]struct{}),
		invalidated: make(map[domain.ModuleID]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Enabled reports whether the gateway serves lookups.
func (g *Gateway) Enabled() bool {
	return g.enabled
}

// Load hydrates the gateway from the store.
func (g *Gateway) Load(ctx context.Context) error {
	if !g.enabled {
		return nil
	}
	entries, err := g.store.LoadAll(ctx)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheStoreFailed.Error())
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, e := range entries {
		if e == nil || e.Module.ID.IsZero() {
			continue
		}
		g.entries[e.Module.ID] = e
	}
	return nil
}

// Has reports whether an entry exists for id.
func (g *Gateway) Has(id domain.ModuleID) bool {
	if !g.enabled {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.entries[id]
	return ok
}

// Get returns a copy of the entry for id.
func (g *Gateway) Get(id domain.ModuleID) (*domain.CachedModule, bool) {
	if !g.enabled {
		return nil, false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.entries[id]
	if !ok {
		return nil, false
	}
	return e.Clone(), true
}

// ShouldInvalidate applies the invalidation policy to id.
func (g *Gateway) ShouldInvalidate(id domain.ModuleID) bool {
	return g.policy(id)
}

// LookupByTimestamp returns the entry for id when it was built from a source with the same
// modification time. Immutable modules are looked up with timestamp 0 and stay valid once built.
func (g *Gateway) LookupByTimestamp(id domain.ModuleID, timestamp int64) (*domain.CachedModule, bool) {
	e, ok := g.Get(id)
	if !ok || e.Module.LastUpdateTimestamp != timestamp {
		g.misses.Add(1)
		return nil, false
	}
	g.timestampHits.Add(1)
	return e, true
}

// LookupByContentHash returns the entry for id when its transformed content hashes to hash.
func (g *Gateway) LookupByContentHash(id domain.ModuleID, hash string) (*domain.CachedModule, bool) {
	e, ok := g.Get(id)
	if !ok || e.Module.ContentHash != hash {
		g.misses.Add(1)
		return nil, false
	}
	g.contentHashHits.Add(1)
	return e, true
}

// Invalidate drops the entry for id. The store copy is deleted on the next Flush.
func (g *Gateway) Invalidate(id domain.ModuleID) {
	if !g.enabled {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.entries[id]; !ok {
		return
	}
	delete(g.entries, id)
	delete(g.dirty, id)
	g.invalidated[id] = struct{}{}
	g.invalidations.Add(1)
}

// Put stores a copy of entry, to be persisted on the next Flush.
func (g *Gateway) Put(entry *domain.CachedModule) {
	if !g.enabled || entry == nil {
		return
	}
	c := entry.Clone()
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries[c.Module.ID] = c
	g.dirty[c.Module.ID] = struct{}{}
	delete(g.invalidated, c.Module.ID)
}

// Flush persists entries written since the last flush and deletes invalidated ones.
func (g *Gateway) Flush(ctx context.Context) error {
	if !g.enabled {
		return nil
	}

	g.mu.Lock()
	toSave := make([]*domain.CachedModule, 0, len(g.dirty))
	for id := range g.dirty {
		toSave = append(toSave, g.entries[id].Clone())
	}
	toDelete := make([]domain.ModuleID, 0, len(g.invalidated))
	for id := range g.invalidated {
		toDelete = append(toDelete, id)
	}
	g.dirty = make(map[domain.ModuleID]struct{})
	g.invalidated = make(map[domain.ModuleID]struct{})
	g.mu.Unlock()

	for _, id := range toDelete {
		if err := g.store.Delete(ctx, id); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCacheStoreFailed.Error()), "module_id", id.String())
		}
	}
	if len(toSave) == 0 {
		return nil
	}
	if err := g.store.Save(ctx, toSave); err != nil {
		return zerr.Wrap(err, domain.ErrCacheStoreFailed.Error())
	}
	return nil
}

// Clear drops every entry from memory and from the store.
func (g *Gateway) Clear(ctx context.Context) error {
	if g.store == nil {
		return nil
	}
	g.mu.Lock()
	g.entries = make(map[domain.ModuleID]*domain.CachedModule)
	g.dirty = make(map[domain.ModuleID]struct{})
	g.invalidated = make(map[domain.ModuleID]struct{})
	g.mu.Unlock()

	if err := g.store.Clear(ctx); err != nil {
		return zerr.Wrap(err, domain.ErrCacheStoreFailed.Error())
	}
	return nil
}

// Len returns the number of entries held in memory.
func (g *Gateway) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// Stats returns a snapshot of the hit and miss counters.
func (g *Gateway) Stats() Stats {
	return Stats{
		TimestampHits:   g.timestampHits.Load(),
		ContentHashHits: g.contentHashHits.Load(),
		Misses:          g.misses.Load(),
		Invalidations:   g.invalidations.Load(),
	}
}
