package domain

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// ImmutableContentHash is the content hash recorded for immutable modules.
// Immutable modules never change once built, so their content is not hashed.
const ImmutableContentHash = "immutable_module"

// ModuleType classifies module content.
type ModuleType string

const (
	ModuleTypeJS    ModuleType = "js"
	ModuleTypeJSX   ModuleType = "jsx"
	ModuleTypeTS    ModuleType = "ts"
	ModuleTypeTSX   ModuleType = "tsx"
	ModuleTypeCSS   ModuleType = "css"
	ModuleTypeJSON  ModuleType = "json"
	ModuleTypeHTML  ModuleType = "html"
	ModuleTypeAsset ModuleType = "asset"
)

// ModuleTypeFromPath derives the module type from a file extension.
func ModuleTypeFromPath(p string) ModuleType {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".js", ".mjs", ".cjs":
		return ModuleTypeJS
	case ".jsx":
		return ModuleTypeJSX
	case ".ts", ".mts", ".cts":
		return ModuleTypeTS
	case ".tsx":
		return ModuleTypeTSX
	case ".css":
		return ModuleTypeCSS
	case ".json":
		return ModuleTypeJSON
	case ".html", ".htm":
		return ModuleTypeHTML
	default:
		return ModuleTypeAsset
	}
}

// IsScript reports whether the type is JavaScript or a dialect of it.
func (t ModuleType) IsScript() bool {
	switch t {
	case ModuleTypeJS, ModuleTypeJSX, ModuleTypeTS, ModuleTypeTSX:
		return true
	default:
		return false
	}
}

// ImportRecord is a single import found in a module's content.
type ImportRecord struct {
	Source string      `json:"source"`
	Kind   ResolveKind `json:"kind"`
}

// ModuleMetaData is the parsed representation of a module.
type ModuleMetaData struct {
	Imports []ImportRecord    `json:"imports,omitempty"`
	Exports []string          `json:"exports,omitempty"`
	Extra   map[string]string `json:"extra,omitempty"`
}

// Clone returns a deep copy of the metadata.
func (m ModuleMetaData) Clone() ModuleMetaData {
	return ModuleMetaData{
		Imports: slices.Clone(m.Imports),
		Exports: slices.Clone(m.Exports),
		Extra:   maps.Clone(m.Extra),
	}
}

// Dependencies converts the recorded imports into dependency descriptors, in import order.
func (m ModuleMetaData) Dependencies() []Dependency {
	deps := make([]Dependency, 0, len(m.Imports))
	for _, imp := range m.Imports {
		deps = append(deps, Dependency{Source: imp.Source, Kind: imp.Kind})
	}
	return deps
}

// Module is a node of the module graph.
type Module struct {
	ID ModuleID `json:"id"`
	// Content is the transformed source.
	Content     string `json:"content"`
	ContentHash string `json:"contentHash"`
	// LastUpdateTimestamp is the source modification time in Unix milliseconds,
	// or 0 for immutable modules.
	LastUpdateTimestamp int64          `json:"lastUpdateTimestamp"`
	ModuleType          ModuleType     `json:"moduleType"`
	Size                int            `json:"size"`
	External            bool           `json:"external"`
	Immutable           bool           `json:"immutable"`
	SideEffects         bool           `json:"sideEffects"`
	SourceMapChain      []string       `json:"sourceMapChain,omitempty"`
	Meta                ModuleMetaData `json:"meta"`
}

// NewModule creates a placeholder module carrying only its identity and flags.
func NewModule(id ModuleID, external, immutable bool) *Module {
	return &Module{
		ID:        id,
		External:  external,
		Immutable: immutable,
	}
}

// Clone returns a deep copy of the module.
func (m *Module) Clone() *Module {
	c := *m
	c.SourceMapChain = slices.Clone(m.SourceMapChain)
	c.Meta = m.Meta.Clone()
	return &c
}
