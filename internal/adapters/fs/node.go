package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weave/internal/core/ports"
)

const (
	HasherNodeID graft.ID = "adapter.fs.hasher"
	StatNodeID   graft.ID = "adapter.fs.stat"
)

func init() {
	graft.Register(graft.Node[ports.ContentHasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ContentHasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.TimestampReader]{
		ID:        StatNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TimestampReader, error) {
			return NewStat(), nil
		},
	})
}
