package cas

import (
	"sync"

	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStoreFactory = (*Factory)(nil)

// Opener opens a store for a persistent cache configuration.
type Opener func(cfg domain.PersistentCacheConfig) (ports.ModuleCacheStore, error)

// Factory selects the cache store for a configuration.
type Factory struct {
	mu      sync.Mutex
	openers map[domain.CacheBackend]Opener
	memory  *MemoryStore
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithBackend registers an additional backend.
func WithBackend(backend domain.CacheBackend, open Opener) FactoryOption {
	return func(f *Factory) {
		f.openers[backend] = open
	}
}

// NewFactory creates a Factory serving the file and memory backends.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{openers: make(map[domain.CacheBackend]Opener)}
	f.openers[domain.CacheBackendFile] = func(cfg domain.PersistentCacheConfig) (ports.ModuleCacheStore, error) {
		return NewStore(cfg.Dir), nil
	}
	f.openers[domain.CacheBackendMemory] = func(domain.PersistentCacheConfig) (ports.ModuleCacheStore, error) {
		return f.memoryStore(), nil
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// memoryStore returns the process-wide memory store so consecutive builds share it.
func (f *Factory) memoryStore() *MemoryStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.memory == nil {
		f.memory = NewMemoryStore()
	}
	return f.memory
}

// Open returns the configured store, or a NullStore when the persistent cache is disabled.
func (f *Factory) Open(cfg *domain.Config) (ports.ModuleCacheStore, error) {
	if !cfg.PersistentCache.Enabled {
		return NullStore{}, nil
	}

	f.mu.Lock()
	open, ok := f.openers[cfg.PersistentCache.Backend]
	f.mu.Unlock()
	if !ok {
		return nil, zerr.With(domain.ErrUnknownCacheBackend, "backend", string(cfg.PersistentCache.Backend))
	}

	store, err := open(cfg.PersistentCache)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheStoreFailed.Error()), "backend", string(cfg.PersistentCache.Backend))
	}
	return store, nil
}
