package config

// Weavefile represents the structure of the weave.yaml / weave.toml configuration file.
type Weavefile struct {
	Root            string             `yaml:"root"            toml:"root"`
	Input           map[string]string  `yaml:"input"           toml:"input"`
	External        []string           `yaml:"external"        toml:"external"`
	Immutable       []string           `yaml:"immutable"       toml:"immutable"`
	Parallelism     int                `yaml:"parallelism"     toml:"parallelism"`
	Resolve         ResolveDTO         `yaml:"resolve"         toml:"resolve"`
	Transform       []TransformRuleDTO `yaml:"transform"       toml:"transform"`
	PersistentCache PersistentCacheDTO `yaml:"persistentCache" toml:"persistentCache"`
	Log             LogDTO             `yaml:"log"             toml:"log"`
}

// ResolveDTO configures the default resolver.
type ResolveDTO struct {
	Extensions []string          `yaml:"extensions" toml:"extensions"`
	Alias      map[string]string `yaml:"alias"      toml:"alias"`
}

// TransformRuleDTO represents a command transform rule.
type TransformRuleDTO struct {
	Test    string            `yaml:"test"    toml:"test"`
	Command []string          `yaml:"command" toml:"command"`
	Env     map[string]string `yaml:"env"     toml:"env"`
}

// PersistentCacheDTO configures the module cache store.
type PersistentCacheDTO struct {
	Enabled   *bool  `yaml:"enabled"   toml:"enabled"`
	Backend   string `yaml:"backend"   toml:"backend"`
	Dir       string `yaml:"dir"       toml:"dir"`
	RedisAddr string `yaml:"redisAddr" toml:"redisAddr"`
	Namespace string `yaml:"namespace" toml:"namespace"`
}

// LogDTO configures logging.
type LogDTO struct {
	Level string `yaml:"level" toml:"level"`
	JSON  bool   `yaml:"json"  toml:"json"`
}
