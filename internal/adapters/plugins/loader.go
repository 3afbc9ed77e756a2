// Package plugins provides the default load, transform, parse and process collaborators.
package plugins

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// QueryRaw loads a module as an opaque asset.
	QueryRaw     = "raw"
	sourceMapExt = ".map"
)

var _ ports.Loader = (*Loader)(nil)

// Loader reads module sources from disk.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the resolved file and an adjacent source map, if any.
func (l *Loader) Load(ctx context.Context, param *domain.LoadParam) (*domain.LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	//nolint:gosec // Path comes from the resolver
	data, err := os.ReadFile(param.ResolvedPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read module"), "path", param.ResolvedPath)
	}

	result := &domain.LoadResult{
		Content:    string(data),
		ModuleType: domain.ModuleTypeFromPath(param.ResolvedPath),
	}
	if param.Query.Has(QueryRaw) {
		result.ModuleType = domain.ModuleTypeAsset
	}

	//nolint:gosec // Path comes from the resolver
	sourceMap, err := os.ReadFile(param.ResolvedPath + sourceMapExt)
	switch {
	case err == nil:
		result.SourceMap = string(sourceMap)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, zerr.With(zerr.Wrap(err, "failed to read source map"), "path", param.ResolvedPath+sourceMapExt)
	}

	return result, nil
}
