package plugins_test

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weave/internal/adapters/plugins"
	"go.trai.ch/weave/internal/adapters/shell"
	"go.trai.ch/weave/internal/core/domain"
)

func TestFactory_Plugins(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.ts"), []byte("import './b'\r\n"), domain.FilePerm))

	cfg := &domain.Config{
		Root:     root,
		External: domain.MustMatcher(domain.DefaultExternals...),
		Resolve:  domain.ResolveConfig{Extensions: domain.DefaultExtensions},
		Transform: []domain.TransformRule{
			{Test: regexp.MustCompile(`\.ts$`), Command: []string{"cat"}},
		},
	}

	var built int
	factory := plugins.NewFactory(func(cfg *domain.Config) *shell.CommandTransformer {
		built++
		return shell.NewCommandTransformer(nil, cfg.Transform, cfg.Root)
	})

	set, err := factory.Plugins(cfg)
	require.NoError(t, err)
	require.NotNil(t, set.Processor)
	assert.Equal(t, 1, built)

	ctx := context.Background()
	rr, err := set.Resolver.Resolve(ctx, &domain.ResolveParam{Source: "./index", Kind: domain.ResolveKindEntry})
	require.NoError(t, err)

	loaded, err := set.Loader.Load(ctx, &domain.LoadParam{ResolvedPath: rr.ResolvedPath})
	require.NoError(t, err)

	transformed, err := set.Transformer.Transform(ctx, &domain.TransformParam{
		ResolvedPath: rr.ResolvedPath,
		Content:      loaded.Content,
		ModuleType:   loaded.ModuleType,
	})
	require.NoError(t, err)
	assert.Equal(t, "import './b'\n", transformed.Content)

	meta, err := set.Parser.Parse(ctx, &domain.ParseParam{ModuleType: loaded.ModuleType, Content: transformed.Content})
	require.NoError(t, err)
	assert.Equal(t, []domain.ImportRecord{{Source: "./b", Kind: domain.ResolveKindImport}}, meta.Imports)
}

func TestFactory_NoCommandRules(t *testing.T) {
	factory := plugins.NewFactory(func(*domain.Config) *shell.CommandTransformer {
		t.Fatal("command transformer should not be built without rules")
		return nil
	})

	_, err := factory.Plugins(&domain.Config{Root: t.TempDir()})
	require.NoError(t, err)
}
