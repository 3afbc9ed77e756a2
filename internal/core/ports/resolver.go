package ports

import (
	"context"

	"go.trai.ch/weave/internal/core/domain"
)

// Resolver maps a source specifier to a concrete module location.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type Resolver interface {
	// Resolve returns the resolved location for param.
	// Unresolvable specifiers return an error wrapping domain.ErrModuleNotResolved.
	Resolve(ctx context.Context, param *domain.ResolveParam) (*domain.ResolveResult, error)
}
