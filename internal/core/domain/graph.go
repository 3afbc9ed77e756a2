// Package domain contains the core domain models of the module graph.
package domain

import (
	"iter"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"

	"go.trai.ch/zerr"
)

// EdgeItem records one import statement linking an importer to a dependency.
type EdgeItem struct {
	Source string
	Kind   ResolveKind
	// Order is the position of the import in the importer's dependency list.
	Order int
}

// Edge is the non-empty list of imports from one module to another.
type Edge []EdgeItem

func (e Edge) minOrder() int {
	lowest := e[0].Order
	for _, item := range e[1:] {
		lowest = min(lowest, item.Order)
	}
	return lowest
}

// ModuleGraph holds modules, the import edges between them and the named entries.
// It is safe for concurrent use: reads take a shared lock, mutations an exclusive one.
type ModuleGraph struct {
	mu         sync.RWMutex
	modules    map[ModuleID]*Module
	edges      map[ModuleID]map[ModuleID]Edge
	dependents map[ModuleID]map[ModuleID]struct{}
	entries    map[ModuleID]string
}

// NewModuleGraph creates an empty graph.
func NewModuleGraph() *ModuleGraph {
	return &ModuleGraph{
		modules:    make(map[ModuleID]*Module),
		edges:      make(map[ModuleID]map[ModuleID]Edge),
		dependents: make(map[ModuleID]map[ModuleID]struct{}),
		entries:    make(map[ModuleID]string),
	}
}

// Tx is a view of the graph inside an exclusive critical section.
// It must not be retained after the Update callback returns.
type Tx struct {
	g *ModuleGraph
}

// Update runs fn while holding the exclusive lock, so a check and the mutation that depends
// on it happen atomically.
func (g *ModuleGraph) Update(fn func(tx *Tx) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(&Tx{g: g})
}

// HasModule reports whether id is present.
func (tx *Tx) HasModule(id ModuleID) bool {
	_, ok := tx.g.modules[id]
	return ok
}

// AddModule inserts m, overwriting any module with the same id.
func (tx *Tx) AddModule(m *Module) {
	tx.g.modules[m.ID] = m
}

// ReplaceModule swaps the stored module for m. The module must already be present.
func (tx *Tx) ReplaceModule(m *Module) error {
	if _, ok := tx.g.modules[m.ID]; !ok {
		return zerr.With(ErrModuleNotFound, "module_id", m.ID.String())
	}
	tx.g.modules[m.ID] = m
	return nil
}

// SetEntry binds id to the entry name.
func (tx *Tx) SetEntry(id ModuleID, name string) {
	tx.g.entries[id] = name
}

// Entry returns the entry name bound to id.
func (tx *Tx) Entry(id ModuleID) (string, bool) {
	name, ok := tx.g.entries[id]
	return name, ok
}

// AddEdgeItem appends item to the edge from -> to, creating the edge if needed.
// Both endpoints must be present.
func (tx *Tx) AddEdgeItem(from, to ModuleID, item EdgeItem) error {
	g := tx.g
	if _, ok := g.modules[from]; !ok {
		return zerr.With(ErrEdgeEndpointMissing, "missing", from.String())
	}
	if _, ok := g.modules[to]; !ok {
		return zerr.With(ErrEdgeEndpointMissing, "missing", to.String())
	}

	out, ok := g.edges[from]
	if !ok {
		out = make(map[ModuleID]Edge)
		g.edges[from] = out
	}
	out[to] = append(out[to], item)

	in, ok := g.dependents[to]
	if !ok {
		in = make(map[ModuleID]struct{})
		g.dependents[to] = in
	}
	in[from] = struct{}{}
	return nil
}

// AddModule inserts m under the exclusive lock.
func (g *ModuleGraph) AddModule(m *Module) {
	_ = g.Update(func(tx *Tx) error {
		tx.AddModule(m)
		return nil
	})
}

// ReplaceModule swaps an existing module under the exclusive lock.
func (g *ModuleGraph) ReplaceModule(m *Module) error {
	return g.Update(func(tx *Tx) error {
		return tx.ReplaceModule(m)
	})
}

// AddEdgeItem appends an edge item under the exclusive lock.
func (g *ModuleGraph) AddEdgeItem(from, to ModuleID, item EdgeItem) error {
	return g.Update(func(tx *Tx) error {
		return tx.AddEdgeItem(from, to, item)
	})
}

// HasModule reports whether id is present.
func (g *ModuleGraph) HasModule(id ModuleID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.modules[id]
	return ok
}

// Module returns a copy of the module stored under id.
func (g *ModuleGraph) Module(id ModuleID) (*Module, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	m, ok := g.modules[id]
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

// Modules returns copies of every module sorted by id.
func (g *ModuleGraph) Modules() []*Module {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Module, 0, len(g.modules))
	for _, id := range g.sortedIDs() {
		out = append(out, g.modules[id].Clone())
	}
	return out
}

// Entries returns the entry bindings.
func (g *ModuleGraph) Entries() map[ModuleID]string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return maps.Clone(g.entries)
}

// Edge returns a copy of the edge from -> to.
func (g *ModuleGraph) Edge(from, to ModuleID) (Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.edges[from][to]
	if !ok {
		return nil, false
	}
	return slices.Clone(e), true
}

// Dependencies returns the modules imported by id, ordered by their first import position.
func (g *ModuleGraph) Dependencies(id ModuleID) []ModuleID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.dependencies(id)
}

// Dependents returns the modules importing id, sorted by id.
func (g *ModuleGraph) Dependents(id ModuleID) []ModuleID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]ModuleID, 0, len(g.dependents[id]))
	for from := range g.dependents[id] {
		out = append(out, from)
	}
	sortIDs(out)
	return out
}

// ModuleCount returns the number of modules, placeholders included.
func (g *ModuleGraph) ModuleCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.modules)
}

// EdgeCount returns the number of distinct importer/dependency pairs.
func (g *ModuleGraph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, out := range g.edges {
		n += len(out)
	}
	return n
}

// Walk yields modules dependencies-first, starting from the entries in name order and then
// covering modules unreachable from any entry. Import cycles are broken at the first
// revisited module. The order is computed up front, so yielding does not hold the lock.
func (g *ModuleGraph) Walk() iter.Seq[*Module] {
	g.mu.RLock()
	order := g.walkOrder()
	mods := make([]*Module, 0, len(order))
	for _, id := range order {
		mods = append(mods, g.modules[id].Clone())
	}
	g.mu.RUnlock()

	return func(yield func(*Module) bool) {
		for _, m := range mods {
			if !yield(m) {
				return
			}
		}
	}
}

// Snapshot returns a deep copy that is safe to hand to consumers once the build settles.
func (g *ModuleGraph) Snapshot() *ModuleGraph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := NewModuleGraph()
	for id, m := range g.modules {
		s.modules[id] = m.Clone()
	}
	for from, out := range g.edges {
		copied := make(map[ModuleID]Edge, len(out))
		for to, e := range out {
			copied[to] = slices.Clone(e)
		}
		s.edges[from] = copied
	}
	for to, in := range g.dependents {
		s.dependents[to] = maps.Clone(in)
	}
	s.entries = maps.Clone(g.entries)
	return s
}

func (g *ModuleGraph) dependencies(id ModuleID) []ModuleID {
	out := make([]ModuleID, 0, len(g.edges[id]))
	for to := range g.edges[id] {
		out = append(out, to)
	}
	edges := g.edges[id]
	sort.Slice(out, func(i, j int) bool {
		oi, oj := edges[out[i]].minOrder(), edges[out[j]].minOrder()
		if oi != oj {
			return oi < oj
		}
		return out[i].String() < out[j].String()
	})
	return out
}

func (g *ModuleGraph) walkOrder() []ModuleID {
	order := make([]ModuleID, 0, len(g.modules))
	visited := make(map[ModuleID]bool, len(g.modules))

	var visit func(id ModuleID)
	visit = func(id ModuleID) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, dep := range g.dependencies(id) {
			visit(dep)
		}
		order = append(order, id)
	}

	entries := make([]ModuleID, 0, len(g.entries))
	for id := range g.entries {
		entries = append(entries, id)
	}
	sort.Slice(entries, func(i, j int) bool {
		ni, nj := g.entries[entries[i]], g.entries[entries[j]]
		if ni != nj {
			return ni < nj
		}
		return entries[i].String() < entries[j].String()
	})
	for _, id := range entries {
		visit(id)
	}
	for _, id := range g.sortedIDs() {
		visit(id)
	}
	return order
}

func (g *ModuleGraph) sortedIDs() []ModuleID {
	ids := make([]ModuleID, 0, len(g.modules))
	for id := range g.modules {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids
}

func sortIDs(ids []ModuleID) {
	slices.SortFunc(ids, func(a, b ModuleID) int { return strings.Compare(a.String(), b.String()) })
}
