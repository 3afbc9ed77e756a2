package ports

import "go.trai.ch/weave/internal/core/domain"

// PluginSet groups the collaborators invoked by the build pipeline.
type PluginSet struct {
	Resolver    Resolver
	Loader      Loader
	Transformer Transformer
	Parser      Parser
	// Processor is optional.
	Processor ModuleProcessor
}

// PluginFactory builds the plugin set for a configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=plugins.go -destination=mocks/mock_plugins.go -package=mocks
type PluginFactory interface {
	Plugins(cfg *domain.Config) (*PluginSet, error)
}

// CacheStoreFactory opens the persistent cache store selected by a configuration.
type CacheStoreFactory interface {
	Open(cfg *domain.Config) (ModuleCacheStore, error)
}
