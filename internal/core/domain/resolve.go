package domain

// ResolveKind describes how a module was requested.
type ResolveKind int

const (
	// ResolveKindEntry is a configured entry point; the param carries the entry name.
	ResolveKindEntry ResolveKind = iota
	// ResolveKindImport is a static import or re-export.
	ResolveKindImport
	// ResolveKindDynamicImport is an import() expression.
	ResolveKindDynamicImport
	// ResolveKindRequire is a CommonJS require() call.
	ResolveKindRequire
	// ResolveKindCSSAtImport is a CSS @import rule.
	ResolveKindCSSAtImport
	// ResolveKindCSSURL is a CSS url() reference.
	ResolveKindCSSURL
	// ResolveKindScriptSrc is an HTML <script src>.
	ResolveKindScriptSrc
	// ResolveKindLinkHref is an HTML <link href>.
	ResolveKindLinkHref
)

var resolveKindNames = map[ResolveKind]string{
	ResolveKindEntry:         "entry",
	ResolveKindImport:        "import",
	ResolveKindDynamicImport: "dynamicImport",
	ResolveKindRequire:       "require",
	ResolveKindCSSAtImport:   "cssAtImport",
	ResolveKindCSSURL:        "cssUrl",
	ResolveKindScriptSrc:     "scriptSrc",
	ResolveKindLinkHref:      "linkHref",
}

func (k ResolveKind) String() string {
	if name, ok := resolveKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k ResolveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ResolveKind) UnmarshalText(text []byte) error {
	for kind, name := range resolveKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return ErrUnknownResolveKind
}

// ResolveParam is a request to turn a source specifier into a concrete module.
type ResolveParam struct {
	Source string
	Kind   ResolveKind
	// EntryName is set when Kind is ResolveKindEntry.
	EntryName string
	// Importer is the zero ModuleID for entries.
	Importer ModuleID
}

// HasImporter reports whether the request originates from another module.
func (p *ResolveParam) HasImporter() bool {
	return !p.Importer.IsZero()
}

// ResolveResult is the resolver's answer for a ResolveParam.
type ResolveResult struct {
	ResolvedPath string
	Query        Query
	External     bool
	SideEffects  bool
	Meta         map[string]string
}

// Dependency is a dependency descriptor declared by a module. ModuleID is set only when the
// dependency's identity is already known, e.g. when adopted from a cache entry.
type Dependency struct {
	Source   string
	Kind     ResolveKind
	ModuleID ModuleID
}
