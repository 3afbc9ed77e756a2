package domain

import "slices"

// CachedDependency is a resolved dependency stored alongside a cached module.
type CachedDependency struct {
	Source   string      `json:"source"`
	Kind     ResolveKind `json:"kind"`
	Order    int         `json:"order"`
	ModuleID ModuleID    `json:"moduleId"`
}

// CachedModule is a fully built module together with its resolved dependencies.
type CachedModule struct {
	Module       Module             `json:"module"`
	Dependencies []CachedDependency `json:"dependencies"`
}

// Clone returns a deep copy of the entry.
func (c *CachedModule) Clone() *CachedModule {
	return &CachedModule{
		Module:       *c.Module.Clone(),
		Dependencies: slices.Clone(c.Dependencies),
	}
}

// DependencyDescriptors returns the dependencies ordered by their import position,
// each carrying its pre-resolved ModuleID.
func (c *CachedModule) DependencyDescriptors() []Dependency {
	sorted := slices.Clone(c.Dependencies)
	slices.SortStableFunc(sorted, func(a, b CachedDependency) int { return a.Order - b.Order })

	deps := make([]Dependency, 0, len(sorted))
	for _, d := range sorted {
		deps = append(deps, Dependency{Source: d.Source, Kind: d.Kind, ModuleID: d.ModuleID})
	}
	return deps
}
