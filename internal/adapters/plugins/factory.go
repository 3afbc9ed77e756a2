package plugins

import (
	"go.trai.ch/weave/internal/adapters/fs"
	"go.trai.ch/weave/internal/adapters/shell"
	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
)

var _ ports.PluginFactory = (*Factory)(nil)

// Factory assembles the default plugin set for a configuration.
type Factory struct {
	commands shell.TransformerFactory
}

// NewFactory creates a Factory. commands may be nil, disabling command transforms.
func NewFactory(commands shell.TransformerFactory) *Factory {
	return &Factory{commands: commands}
}

// Plugins returns the resolver, loader, transform chain, parser and processor for cfg.
func (f *Factory) Plugins(cfg *domain.Config) (*ports.PluginSet, error) {
	transformers := []ports.Transformer{Normalizer{}}
	if f.commands != nil && len(cfg.Transform) > 0 {
		transformers = append(transformers, f.commands(cfg))
	}

	return &ports.PluginSet{
		Resolver:    fs.NewResolver(cfg.Root, cfg.Resolve, cfg.External),
		Loader:      NewLoader(),
		Transformer: NewChain(transformers...),
		Parser:      NewParser(),
		Processor:   NewProcessor(),
	}, nil
}
