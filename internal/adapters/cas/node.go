package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weave/internal/adapters/redis"
	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
)

// NodeID is the unique identifier for the cache store factory Graft node.
const NodeID graft.ID = "adapter.cache_store_factory"

func init() {
	graft.Register(graft.Node[ports.CacheStoreFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CacheStoreFactory, error) {
			return NewFactory(WithBackend(domain.CacheBackendRedis, redis.Open)), nil
		},
	})
}
