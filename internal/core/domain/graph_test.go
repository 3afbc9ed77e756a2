package domain_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/zerr"
)

func id(s string) domain.ModuleID {
	return domain.ModuleIDFromString(s)
}

func addModules(g *domain.ModuleGraph, ids ...string) {
	for _, s := range ids {
		g.AddModule(domain.NewModule(id(s), false, false))
	}
}

func TestModuleGraph_AddAndReplace(t *testing.T) {
	g := domain.NewModuleGraph()
	g.AddModule(domain.NewModule(id("a.js"), false, false))

	require.True(t, g.HasModule(id("a.js")))
	assert.False(t, g.HasModule(id("b.js")))

	built := domain.NewModule(id("a.js"), false, false)
	built.Content = "export const a = 1"
	require.NoError(t, g.ReplaceModule(built))

	got, ok := g.Module(id("a.js"))
	require.True(t, ok)
	assert.Equal(t, "export const a = 1", got.Content)

	err := g.ReplaceModule(domain.NewModule(id("missing.js"), false, false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrModuleNotFound.Error())
}

func TestModuleGraph_ModuleReturnsCopy(t *testing.T) {
	g := domain.NewModuleGraph()
	m := domain.NewModule(id("a.js"), false, false)
	m.SourceMapChain = []string{"map"}
	g.AddModule(m)

	got, _ := g.Module(id("a.js"))
	got.SourceMapChain[0] = "mutated"
	got.Content = "mutated"

	again, _ := g.Module(id("a.js"))
	assert.Equal(t, "map", again.SourceMapChain[0])
	assert.Empty(t, again.Content)
}

func TestModuleGraph_AddEdgeItem_MissingEndpoint(t *testing.T) {
	g := domain.NewModuleGraph()
	addModules(g, "a.js")

	err := g.AddEdgeItem(id("a.js"), id("b.js"), domain.EdgeItem{Source: "./b", Kind: domain.ResolveKindImport})
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "b.js", zErr.Metadata()["missing"])

	err = g.AddEdgeItem(id("x.js"), id("a.js"), domain.EdgeItem{Source: "./a", Kind: domain.ResolveKindImport})
	require.Error(t, err)
	assert.Equal(t, 0, g.EdgeCount())
}

func TestModuleGraph_MultiEdge(t *testing.T) {
	g := domain.NewModuleGraph()
	addModules(g, "a.js", "b.js")

	require.NoError(t, g.AddEdgeItem(id("a.js"), id("b.js"), domain.EdgeItem{Source: "./b", Kind: domain.ResolveKindImport, Order: 0}))
	require.NoError(t, g.AddEdgeItem(id("a.js"), id("b.js"), domain.EdgeItem{Source: "./b.js", Kind: domain.ResolveKindDynamicImport, Order: 2}))

	edge, ok := g.Edge(id("a.js"), id("b.js"))
	require.True(t, ok)
	assert.Equal(t, domain.Edge{
		{Source: "./b", Kind: domain.ResolveKindImport, Order: 0},
		{Source: "./b.js", Kind: domain.ResolveKindDynamicImport, Order: 2},
	}, edge)
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, []domain.ModuleID{id("a.js")}, g.Dependents(id("b.js")))
}

func TestModuleGraph_DependenciesFollowImportOrder(t *testing.T) {
	g := domain.NewModuleGraph()
	addModules(g, "index.js", "z.js", "a.js", "m.js")

	// Added out of order, as concurrent tasks finish.
	require.NoError(t, g.AddEdgeItem(id("index.js"), id("m.js"), domain.EdgeItem{Source: "./m", Order: 2}))
	require.NoError(t, g.AddEdgeItem(id("index.js"), id("a.js"), domain.EdgeItem{Source: "./a", Order: 1}))
	require.NoError(t, g.AddEdgeItem(id("index.js"), id("z.js"), domain.EdgeItem{Source: "./z", Order: 0}))

	assert.Equal(t, []domain.ModuleID{id("z.js"), id("a.js"), id("m.js")}, g.Dependencies(id("index.js")))
}

func TestModuleGraph_Entries(t *testing.T) {
	g := domain.NewModuleGraph()
	addModules(g, "index.js")
	require.NoError(t, g.Update(func(tx *domain.Tx) error {
		tx.SetEntry(id("index.js"), "main")
		return nil
	}))

	assert.Equal(t, map[domain.ModuleID]string{id("index.js"): "main"}, g.Entries())
}

func TestModuleGraph_UpdateClaimIsAtomic(t *testing.T) {
	g := domain.NewModuleGraph()

	var wg sync.WaitGroup
	var mu sync.Mutex
	claims := 0
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.Update(func(tx *domain.Tx) error {
				if tx.HasModule(id("shared.js")) {
					return nil
				}
				tx.AddModule(domain.NewModule(id("shared.js"), false, false))
				mu.Lock()
				claims++
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, claims)
	assert.Equal(t, 1, g.ModuleCount())
}

func TestModuleGraph_Walk(t *testing.T) {
	g := domain.NewModuleGraph()
	addModules(g, "index.js", "a.js", "b.js", "common.js", "orphan.js")
	require.NoError(t, g.Update(func(tx *domain.Tx) error {
		tx.SetEntry(id("index.js"), "main")
		return nil
	}))
	require.NoError(t, g.AddEdgeItem(id("index.js"), id("a.js"), domain.EdgeItem{Order: 0}))
	require.NoError(t, g.AddEdgeItem(id("index.js"), id("b.js"), domain.EdgeItem{Order: 1}))
	require.NoError(t, g.AddEdgeItem(id("a.js"), id("common.js"), domain.EdgeItem{Order: 0}))
	require.NoError(t, g.AddEdgeItem(id("b.js"), id("common.js"), domain.EdgeItem{Order: 0}))
	// Cycle back to the entry.
	require.NoError(t, g.AddEdgeItem(id("common.js"), id("index.js"), domain.EdgeItem{Order: 0}))

	var order []string
	for m := range g.Walk() {
		order = append(order, m.ID.String())
	}

	assert.Equal(t, []string{"common.js", "a.js", "b.js", "index.js", "orphan.js"}, order)
}

func TestModuleGraph_WalkStopsEarly(t *testing.T) {
	g := domain.NewModuleGraph()
	addModules(g, "a.js", "b.js", "c.js")

	count := 0
	for range g.Walk() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestModuleGraph_Snapshot(t *testing.T) {
	g := domain.NewModuleGraph()
	addModules(g, "a.js", "b.js")
	require.NoError(t, g.AddEdgeItem(id("a.js"), id("b.js"), domain.EdgeItem{Source: "./b"}))

	snap := g.Snapshot()
	addModules(g, "c.js")
	require.NoError(t, g.AddEdgeItem(id("a.js"), id("b.js"), domain.EdgeItem{Source: "./b.js", Order: 1}))

	assert.Equal(t, 2, snap.ModuleCount())
	edge, ok := snap.Edge(id("a.js"), id("b.js"))
	require.True(t, ok)
	assert.Len(t, edge, 1)
}
