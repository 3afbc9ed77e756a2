package plugins

import (
	"context"
	"strings"

	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
)

var (
	_ ports.Transformer = (*Chain)(nil)
	_ ports.Transformer = Normalizer{}
)

// Chain runs transformers in order, feeding each the previous result.
type Chain struct {
	transformers []ports.Transformer
}

// NewChain creates a Chain. Nil transformers are skipped.
func NewChain(transformers ...ports.Transformer) *Chain {
	c := &Chain{}
	for _, t := range transformers {
		if t != nil {
			c.transformers = append(c.transformers, t)
		}
	}
	return c
}

// Len returns the number of transformers in the chain.
func (c *Chain) Len() int {
	return len(c.transformers)
}

// Transform returns nil when no transformer changed the module.
func (c *Chain) Transform(ctx context.Context, param *domain.TransformParam) (*domain.TransformResult, error) {
	current := *param
	changed := false

	for _, t := range c.transformers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := t.Transform(ctx, &current)
		if err != nil {
			return nil, err
		}
		if res == nil {
			continue
		}
		changed = true
		current.Content = res.Content
		if res.ModuleType != "" {
			current.ModuleType = res.ModuleType
		}
		if res.SourceMapChain != nil {
			current.SourceMapChain = res.SourceMapChain
		}
	}

	if !changed {
		return nil, nil
	}
	return &domain.TransformResult{
		Content:        current.Content,
		ModuleType:     current.ModuleType,
		SourceMapChain: current.SourceMapChain,
	}, nil
}

// Normalizer strips a leading byte order mark and converts CRLF line endings to LF.
// Assets are left untouched.
type Normalizer struct{}

// Transform returns nil when the content is already normalized.
func (Normalizer) Transform(_ context.Context, param *domain.TransformParam) (*domain.TransformResult, error) {
	if param.ModuleType == domain.ModuleTypeAsset {
		return nil, nil
	}
	content := strings.TrimPrefix(param.Content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if content == param.Content {
		return nil, nil
	}
	return &domain.TransformResult{Content: content}, nil
}
