package ports

import (
	"context"

	"go.trai.ch/weave/internal/core/domain"
)

// Parser turns transformed content into module metadata, including the imports that become
// the module's dependencies.
//
//go:generate go run go.uber.org/mock/mockgen -source=parser.go -destination=mocks/mock_parser.go -package=mocks
type Parser interface {
	Parse(ctx context.Context, param *domain.ParseParam) (*domain.ModuleMetaData, error)
}

// ModuleProcessor runs after parsing and may mutate the module metadata in place.
type ModuleProcessor interface {
	Process(ctx context.Context, param *domain.ProcessParam) error
}
