package ports

import (
	"context"

	"go.trai.ch/weave/internal/core/domain"
)

// Loader reads the raw content of a resolved module.
//
//go:generate go run go.uber.org/mock/mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type Loader interface {
	Load(ctx context.Context, param *domain.LoadParam) (*domain.LoadResult, error)
}
