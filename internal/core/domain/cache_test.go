package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weave/internal/core/domain"
)

func TestCachedModule_DependencyDescriptors(t *testing.T) {
	entry := &domain.CachedModule{
		Module: domain.Module{ID: id("index.js")},
		Dependencies: []domain.CachedDependency{
			{Source: "./b", Kind: domain.ResolveKindImport, Order: 1, ModuleID: id("b.js")},
			{Source: "./a", Kind: domain.ResolveKindRequire, Order: 0, ModuleID: id("a.js")},
		},
	}

	assert.Equal(t, []domain.Dependency{
		{Source: "./a", Kind: domain.ResolveKindRequire, ModuleID: id("a.js")},
		{Source: "./b", Kind: domain.ResolveKindImport, ModuleID: id("b.js")},
	}, entry.DependencyDescriptors())
}

func TestCachedModule_Clone(t *testing.T) {
	entry := &domain.CachedModule{
		Module:       domain.Module{ID: id("a.js"), Meta: domain.ModuleMetaData{Exports: []string{"a"}}},
		Dependencies: []domain.CachedDependency{{Source: "./b"}},
	}

	c := entry.Clone()
	c.Module.Meta.Exports[0] = "changed"
	c.Dependencies[0].Source = "changed"

	assert.Equal(t, "a", entry.Module.Meta.Exports[0])
	assert.Equal(t, "./b", entry.Dependencies[0].Source)
}

func TestResolveKind_Text(t *testing.T) {
	for _, kind := range []domain.ResolveKind{
		domain.ResolveKindEntry,
		domain.ResolveKindImport,
		domain.ResolveKindDynamicImport,
		domain.ResolveKindRequire,
		domain.ResolveKindCSSAtImport,
		domain.ResolveKindCSSURL,
		domain.ResolveKindScriptSrc,
		domain.ResolveKindLinkHref,
	} {
		text, err := kind.MarshalText()
		require.NoError(t, err)

		var decoded domain.ResolveKind
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, kind, decoded)
	}

	var k domain.ResolveKind
	assert.Error(t, k.UnmarshalText([]byte("bogus")))
	assert.Equal(t, "unknown", domain.ResolveKind(99).String())
}

func TestCompilationError(t *testing.T) {
	cause := errors.New("boom")
	param := &domain.ResolveParam{Source: "./b", Kind: domain.ResolveKindImport, Importer: id("a.js")}

	err := domain.NewCompilationError(domain.StageResolve, param, domain.ModuleID{}, cause)
	assert.Equal(t, `resolve "./b" (imported by "a.js"): boom`, err.Error())
	assert.ErrorIs(t, err, cause)

	var target *domain.CompilationError
	require.ErrorAs(t, error(err), &target)
	assert.Equal(t, domain.StageResolve, target.Stage)

	loadErr := domain.NewCompilationError(domain.StageLoad, nil, id("b.js"), cause)
	assert.Equal(t, `load "b.js": boom`, loadErr.Error())
}

func TestModuleTypeFromPath(t *testing.T) {
	assert.Equal(t, domain.ModuleTypeJS, domain.ModuleTypeFromPath("a.mjs"))
	assert.Equal(t, domain.ModuleTypeTSX, domain.ModuleTypeFromPath("App.TSX"))
	assert.Equal(t, domain.ModuleTypeCSS, domain.ModuleTypeFromPath("a.css"))
	assert.Equal(t, domain.ModuleTypeAsset, domain.ModuleTypeFromPath("logo.png"))
	assert.True(t, domain.ModuleTypeTS.IsScript())
	assert.False(t, domain.ModuleTypeCSS.IsScript())
}
