package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weave/internal/adapters/config"
	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestLoader_Load_YAML(t *testing.T) {
	rootDir := t.TempDir()
	createFile(t, rootDir, "weave.yaml", `
root: .
input:
  main: ./src/index.ts
  admin: ./src/admin.ts
external: ["^react$"]
immutable: ["vendor/"]
parallelism: 3
resolve:
  extensions: [".ts", "js"]
  alias:
    "@": ./src
    lodash: lodash-es
transform:
  - test: "\\.ts$"
    command: ["tr", "a", "b"]
    env: {FOO: bar}
persistentCache:
  enabled: true
  backend: memory
  dir: tmp/cache
log:
  level: debug
  json: true
`)

	cfg, err := newLoader(t).Load(rootDir, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Clean(rootDir), cfg.Root)
	assert.Equal(t, []string{"admin", "main"}, cfg.EntryNames())
	assert.Equal(t, "./src/index.ts", cfg.Input["main"])
	assert.True(t, cfg.External.Match("react"))
	assert.False(t, cfg.External.Match("react-dom"))
	assert.True(t, cfg.Immutable.Match("/x/vendor/a.js"))
	assert.Equal(t, 3, cfg.Parallelism)
	assert.Equal(t, []string{".ts", ".js"}, cfg.Resolve.Extensions)
	assert.Equal(t, filepath.Join(rootDir, "src"), cfg.Resolve.Alias["@"])
	assert.Equal(t, "lodash-es", cfg.Resolve.Alias["lodash"])

	require.Len(t, cfg.Transform, 1)
	assert.True(t, cfg.Transform[0].Test.MatchString("a.ts"))
	assert.Equal(t, []string{"tr", "a", "b"}, cfg.Transform[0].Command)
	assert.Equal(t, "bar", cfg.Transform[0].Env["FOO"])

	assert.True(t, cfg.PersistentCache.Enabled)
	assert.Equal(t, domain.CacheBackendMemory, cfg.PersistentCache.Backend)
	assert.Equal(t, filepath.Join(rootDir, "tmp", "cache"), cfg.PersistentCache.Dir)
	assert.Equal(t, domain.DefaultNamespace, cfg.PersistentCache.Namespace)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoader_Load_TOML(t *testing.T) {
	rootDir := t.TempDir()
	createFile(t, rootDir, "weave.toml", `
external = []

[input]
main = "./index.js"

[persistentCache]
enabled = false
backend = "redis"
redisAddr = "cache:6379"
namespace = "ci"
`)

	cfg, err := newLoader(t).Load(rootDir, "")
	require.NoError(t, err)

	assert.Equal(t, "./index.js", cfg.Input["main"])
	assert.False(t, cfg.External.Match("vue"))
	assert.False(t, cfg.PersistentCache.Enabled)
	assert.Equal(t, domain.CacheBackendRedis, cfg.PersistentCache.Backend)
	assert.Equal(t, "cache:6379", cfg.PersistentCache.RedisAddr)
	assert.Equal(t, "ci", cfg.PersistentCache.Namespace)
}

func TestLoader_Load_Defaults(t *testing.T) {
	rootDir := t.TempDir()
	createFile(t, rootDir, "weave.yml", "input: {main: ./index.js}\n")

	cfg, err := newLoader(t).Load(rootDir, "")
	require.NoError(t, err)

	assert.Equal(t, runtime.NumCPU(), cfg.Parallelism)
	assert.Equal(t, domain.DefaultExtensions, cfg.Resolve.Extensions)
	assert.Equal(t, domain.DefaultExternals, cfg.External.Patterns())
	assert.True(t, cfg.Immutable.Match(filepath.Join(rootDir, "node_modules", "vue", "index.js")))
	assert.True(t, cfg.PersistentCache.Enabled)
	assert.Equal(t, domain.CacheBackendFile, cfg.PersistentCache.Backend)
	assert.Equal(t, filepath.Join(rootDir, ".weave", "cache"), cfg.PersistentCache.Dir)
	assert.Equal(t, domain.DefaultRedisAddr, cfg.PersistentCache.RedisAddr)
	assert.Empty(t, cfg.Transform)
}

func TestLoader_Load_Discovery(t *testing.T) {
	rootDir := t.TempDir()
	createFile(t, rootDir, "weave.yaml", "root: app\ninput: {main: ./index.js}\n")
	srcDir := filepath.Join(rootDir, "app", "src", "deep")
	require.NoError(t, os.MkdirAll(srcDir, domain.DirPerm))

	cfg, err := newLoader(t).Load(srcDir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(rootDir, "app"), cfg.Root)
}

func TestLoader_Load_ExplicitPath(t *testing.T) {
	rootDir := t.TempDir()
	createFile(t, rootDir, "configs/custom.yaml", "input: {main: ../index.js}\n")

	cfg, err := newLoader(t).Load(rootDir, "configs/custom.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(rootDir, "configs"), cfg.Root)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{
			name:    "no entries",
			file:    "weave.yaml",
			content: "root: .\n",
			want:    domain.ErrNoEntries,
		},
		{
			name:    "invalid external pattern",
			file:    "weave.yaml",
			content: "input: {main: ./a.js}\nexternal: [\"(\"]\n",
			want:    domain.ErrInvalidPattern,
		},
		{
			name:    "invalid transform test",
			file:    "weave.yaml",
			content: "input: {main: ./a.js}\ntransform: [{test: \"[\", command: [cat]}]\n",
			want:    domain.ErrInvalidPattern,
		},
		{
			name:    "transform without command",
			file:    "weave.yaml",
			content: "input: {main: ./a.js}\ntransform: [{test: \"x\"}]\n",
			want:    domain.ErrInvalidTransformRule,
		},
		{
			name:    "unknown backend",
			file:    "weave.yaml",
			content: "input: {main: ./a.js}\npersistentCache: {backend: s3}\n",
			want:    domain.ErrUnknownCacheBackend,
		},
		{
			name:    "malformed yaml",
			file:    "weave.yaml",
			content: "input: [\n",
			want:    domain.ErrConfigParseFailed,
		},
		{
			name:    "malformed toml",
			file:    "weave.toml",
			content: "input = \n",
			want:    domain.ErrConfigParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootDir := t.TempDir()
			createFile(t, rootDir, tt.file, tt.content)

			_, err := newLoader(t).Load(rootDir, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want.Error())
		})
	}
}

func TestLoader_Load_NotFound(t *testing.T) {
	rootDir := t.TempDir()

	_, err := newLoader(t).Load(rootDir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigNotFound.Error())

	_, err = newLoader(t).Load(rootDir, "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigNotFound.Error())
}
