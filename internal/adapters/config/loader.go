// Package config provides the configuration loader for weave.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader for YAML and TOML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration at path, or discovers it from cwd when path is empty.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	configPath, err := l.findConfiguration(cwd, path)
	if err != nil {
		return nil, err
	}

	var weavefile Weavefile
	if err := readAndDecode(configPath, &weavefile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg, err := l.buildConfig(configPath, &weavefile)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

func (l *Loader) findConfiguration(cwd, path string) (string, error) {
	if abs, err := filepath.Abs(cwd); err == nil {
		cwd = abs
	}

	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		if _, err := os.Stat(path); err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrConfigNotFound.Error()), "path", path)
		}
		return filepath.Clean(path), nil
	}

	currentDir := cwd
	for {
		for _, name := range domain.ConfigFileNames {
			candidate := filepath.Join(currentDir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) buildConfig(configPath string, wf *Weavefile) (*domain.Config, error) {
	if len(wf.Input) == 0 {
		return nil, domain.ErrNoEntries
	}

	root := resolveRoot(configPath, wf.Root)
	cfg := &domain.Config{
		Input:       make(map[string]string, len(wf.Input)),
		Root:        root,
		Parallelism: wf.Parallelism,
		Log: domain.LogConfig{
			Level: wf.Log.Level,
			JSON:  wf.Log.JSON,
		},
	}
	for name, source := range wf.Input {
		cfg.Input[name] = source
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = runtime.NumCPU()
	}

	externals := wf.External
	if externals == nil {
		externals = domain.DefaultExternals
	}
	var err error
	if cfg.External, err = domain.NewMatcher(externals); err != nil {
		return nil, zerr.With(err, "field", "external")
	}

	immutable := wf.Immutable
	if immutable == nil {
		immutable = domain.DefaultImmutable
	}
	if cfg.Immutable, err = domain.NewMatcher(immutable); err != nil {
		return nil, zerr.With(err, "field", "immutable")
	}

	cfg.Resolve = buildResolve(root, wf.Resolve)

	if cfg.Transform, err = buildTransform(wf.Transform); err != nil {
		return nil, err
	}

	if cfg.PersistentCache, err = buildPersistentCache(root, wf.PersistentCache); err != nil {
		return nil, err
	}

	if l.Logger != nil && !cfg.PersistentCache.Enabled && wf.PersistentCache.Backend != "" {
		l.Logger.Warn("persistent cache backend configured but cache is disabled", "backend", wf.PersistentCache.Backend)
	}

	return cfg, nil
}

func buildResolve(root string, dto ResolveDTO) domain.ResolveConfig {
	rc := domain.ResolveConfig{Extensions: dto.Extensions}
	if len(rc.Extensions) == 0 {
		rc.Extensions = append([]string(nil), domain.DefaultExtensions...)
	}
	for i, ext := range rc.Extensions {
		if !strings.HasPrefix(ext, ".") {
			rc.Extensions[i] = "." + ext
		}
	}

	if len(dto.Alias) > 0 {
		rc.Alias = make(map[string]string, len(dto.Alias))
		for prefix, target := range dto.Alias {
			if strings.HasPrefix(target, "./") || strings.HasPrefix(target, "../") || target == "." {
				target = filepath.Join(root, target)
			}
			rc.Alias[prefix] = target
		}
	}
	return rc
}

func buildTransform(dtos []TransformRuleDTO) ([]domain.TransformRule, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	rules := make([]domain.TransformRule, 0, len(dtos))
	for i, dto := range dtos {
		if len(dto.Command) == 0 {
			return nil, zerr.With(domain.ErrInvalidTransformRule, "rule", i)
		}
		test, err := regexp.Compile(dto.Test)
		if err != nil {
			err = zerr.Wrap(err, domain.ErrInvalidPattern.Error())
			err = zerr.With(err, "pattern", dto.Test)
			return nil, zerr.With(err, "rule", i)
		}
		rules = append(rules, domain.TransformRule{
			Test:    test,
			Command: dto.Command,
			Env:     dto.Env,
		})
	}
	return rules, nil
}

func buildPersistentCache(root string, dto PersistentCacheDTO) (domain.PersistentCacheConfig, error) {
	pc := domain.PersistentCacheConfig{
		Enabled:   dto.Enabled == nil || *dto.Enabled,
		Backend:   domain.CacheBackend(strings.ToLower(dto.Backend)),
		Dir:       dto.Dir,
		RedisAddr: dto.RedisAddr,
		Namespace: dto.Namespace,
	}

	switch pc.Backend {
	case "":
		pc.Backend = domain.CacheBackendFile
	case domain.CacheBackendFile, domain.CacheBackendMemory, domain.CacheBackendRedis:
	default:
		return pc, zerr.With(domain.ErrUnknownCacheBackend, "backend", dto.Backend)
	}

	switch {
	case pc.Dir == "":
		pc.Dir = filepath.Join(root, filepath.FromSlash(domain.CacheDirName))
	case !filepath.IsAbs(pc.Dir):
		pc.Dir = filepath.Join(root, pc.Dir)
	}
	if pc.RedisAddr == "" {
		pc.RedisAddr = domain.DefaultRedisAddr
	}
	if pc.Namespace == "" {
		pc.Namespace = domain.DefaultNamespace
	}
	return pc, nil
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndDecode reads a configuration file and decodes it by extension.
func readAndDecode(configPath string, target *Weavefile) error {
	// #nosec G304 -- configPath is discovered or provided by the user
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if strings.EqualFold(filepath.Ext(configPath), ".toml") {
		if _, err := toml.Decode(string(data), target); err != nil {
			return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
		}
		return nil
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}
