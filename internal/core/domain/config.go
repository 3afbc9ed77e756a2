package domain

import (
	"regexp"
	"sort"

	"go.trai.ch/zerr"
)

const (
	// DirPerm is the permission used for directories created by weave.
	DirPerm = 0o750
	// FilePerm is the permission used for files created by weave.
	FilePerm = 0o600
	// CacheDirName is the default persistent cache location, relative to the root.
	CacheDirName = ".weave/cache"
	// DefaultNamespace is the default redis key namespace.
	DefaultNamespace = "weave"
	// DefaultRedisAddr is the default redis address.
	DefaultRedisAddr = "localhost:6379"
)

// ConfigFileNames lists the configuration files discovered in a directory, by precedence.
var ConfigFileNames = []string{"weave.yaml", "weave.yml", "weave.toml"}

// DefaultExtensions are probed by the resolver when a configuration declares none.
var DefaultExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".json", ".css"}

// DefaultImmutable marks installed packages as immutable when a configuration declares nothing.
var DefaultImmutable = []string{"(^|/)node_modules/"}

// DefaultExternals are the specifiers treated as external when a configuration declares none.
var DefaultExternals = []string{"^react-refresh$", "^module$", "^vue$"}

// CacheBackend selects the persistent cache storage.
type CacheBackend string

const (
	CacheBackendFile   CacheBackend = "file"
	CacheBackendMemory CacheBackend = "memory"
	CacheBackendRedis  CacheBackend = "redis"
)

// PersistentCacheConfig controls the module cache.
type PersistentCacheConfig struct {
	Enabled   bool
	Backend   CacheBackend
	Dir       string
	RedisAddr string
	Namespace string
}

// ResolveConfig controls the default resolver.
type ResolveConfig struct {
	Extensions []string
	Alias      map[string]string
}

// TransformRule pipes modules whose resolved path matches Test through Command.
type TransformRule struct {
	Test    *regexp.Regexp
	Command []string
	Env     map[string]string
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string
	JSON  bool
}

// Config is the compilation configuration.
type Config struct {
	// Input maps entry names to their source specifiers.
	Input           map[string]string
	Root            string
	External        *Matcher
	Immutable       *Matcher
	PersistentCache PersistentCacheConfig
	Parallelism     int
	Resolve         ResolveConfig
	Transform       []TransformRule
	Log             LogConfig
}

// EntryNames returns the configured entry names in sorted order.
func (c *Config) EntryNames() []string {
	names := make([]string, 0, len(c.Input))
	for name := range c.Input {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Matcher tests strings against a list of regular expressions.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles patterns. The zero-length list matches nothing.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, ErrInvalidPattern.Error()), "pattern", p)
		}
		m.patterns = append(m.patterns, re)
	}
	return m, nil
}

// MustMatcher is like NewMatcher but panics on invalid patterns.
func MustMatcher(patterns ...string) *Matcher {
	m, err := NewMatcher(patterns)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether s matches any pattern. A nil Matcher matches nothing.
func (m *Matcher) Match(s string) bool {
	if m == nil {
		return false
	}
	for _, re := range m.patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// Patterns returns the source of each pattern.
func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.patterns))
	for _, re := range m.patterns {
		out = append(out, re.String())
	}
	return out
}
