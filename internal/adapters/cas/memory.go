package cas

import (
	"context"
	"sort"
	"sync"

	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
)

var (
	_ ports.ModuleCacheStore = (*MemoryStore)(nil)
	_ ports.ModuleCacheStore = NullStore{}
)

// MemoryStore keeps entries for the lifetime of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[domain.ModuleID]*domain.CachedModule
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[domain.ModuleID]*domain.CachedModule)}
}

// LoadAll returns copies of all entries ordered by module id.
func (s *MemoryStore) LoadAll(_ context.Context) ([]*domain.CachedModule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.CachedModule, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Module.ID.String() < out[j].Module.ID.String()
	})
	return out, nil
}

// Save stores copies of the entries.
func (s *MemoryStore) Save(_ context.Context, entries []*domain.CachedModule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.entries[e.Module.ID] = e.Clone()
	}
	return nil
}

// Delete removes the entry for id.
func (s *MemoryStore) Delete(_ context.Context, id domain.ModuleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Clear removes every entry.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.entries)
	return nil
}

// Close is a no-op; entries survive until the process exits.
func (s *MemoryStore) Close() error {
	return nil
}

// NullStore never stores anything. It backs a disabled persistent cache.
type NullStore struct{}

// LoadAll always returns no entries.
func (NullStore) LoadAll(context.Context) ([]*domain.CachedModule, error) { return nil, nil }

// Save discards the entries.
func (NullStore) Save(context.Context, []*domain.CachedModule) error { return nil }

// Delete does nothing.
func (NullStore) Delete(context.Context, domain.ModuleID) error { return nil }

// Clear does nothing.
func (NullStore) Clear(context.Context) error { return nil }

// Close does nothing.
func (NullStore) Close() error { return nil }
