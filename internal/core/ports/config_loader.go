package ports

import "go.trai.ch/weave/internal/core/domain"

// ConfigLoader defines the interface for loading the compilation configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration. An empty path discovers the configuration file in cwd.
	Load(cwd, path string) (*domain.Config, error)
}
