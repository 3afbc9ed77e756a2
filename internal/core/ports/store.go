package ports

import (
	"context"

	"go.trai.ch/weave/internal/core/domain"
)

// ModuleCacheStore persists cached modules between builds.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ModuleCacheStore interface {
	// LoadAll returns every stored entry.
	LoadAll(ctx context.Context) ([]*domain.CachedModule, error)
	// Save writes the given entries, overwriting entries with the same module id.
	Save(ctx context.Context, entries []*domain.CachedModule) error
	// Delete removes the entry for id. Deleting a missing entry is not an error.
	Delete(ctx context.Context, id domain.ModuleID) error
	// Clear removes every entry.
	Clear(ctx context.Context) error
	// Close releases the store's resources.
	Close() error
}
