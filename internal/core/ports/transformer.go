package ports

import (
	"context"

	"go.trai.ch/weave/internal/core/domain"
)

// Transformer rewrites loaded module content.
//
//go:generate go run go.uber.org/mock/mockgen -source=transformer.go -destination=mocks/mock_transformer.go -package=mocks
type Transformer interface {
	Transform(ctx context.Context, param *domain.TransformParam) (*domain.TransformResult, error)
}
