package domain

import (
	"path"
	"path/filepath"
	"strings"
	"unique"
)

// ModuleID identifies a module by its resolved path and canonical query string.
// Two requests for the same path with the same query always produce the same ModuleID,
// regardless of which module imported them. The value is interned, so comparisons and
// map lookups are cheap.
type ModuleID struct {
	h unique.Handle[string]
}

// NewModuleID builds the identity for resolvedPath and the stringified query.
// Paths under root are stored root-relative with forward slashes so ids stay stable
// across machines; anything else (virtual modules, paths outside root) is kept verbatim.
func NewModuleID(resolvedPath, query, root string) ModuleID {
	rel := relativeToRoot(resolvedPath, root)
	return ModuleIDFromString(rel + query)
}

// ModuleIDFromString interns an already-computed id string.
func ModuleIDFromString(s string) ModuleID {
	if s == "" {
		return ModuleID{}
	}
	return ModuleID{h: unique.Make(s)}
}

// String returns the id as text.
func (id ModuleID) String() string {
	var zero unique.Handle[string]
	if id.h == zero {
		return ""
	}
	return id.h.Value()
}

// IsZero reports whether the id is unset.
func (id ModuleID) IsZero() bool {
	var zero unique.Handle[string]
	return id.h == zero
}

// Path returns the path component of the id without the query string.
func (id ModuleID) Path() string {
	p, _, _ := strings.Cut(id.String(), "?")
	return p
}

// Query returns the canonical query string of the id, including the leading '?'.
func (id ModuleID) Query() string {
	_, q, ok := strings.Cut(id.String(), "?")
	if !ok {
		return ""
	}
	return "?" + q
}

// ResolvedPath maps the id back to a filesystem path under root.
func (id ModuleID) ResolvedPath(root string) string {
	p := id.Path()
	if p == "" || filepath.IsAbs(p) || root == "" || isVirtual(p) {
		return p
	}
	return filepath.Join(root, filepath.FromSlash(p))
}

// MarshalText implements encoding.TextMarshaler.
func (id ModuleID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ModuleID) UnmarshalText(text []byte) error {
	*id = ModuleIDFromString(string(text))
	return nil
}

func relativeToRoot(resolvedPath, root string) string {
	if root == "" || !filepath.IsAbs(resolvedPath) {
		return filepath.ToSlash(resolvedPath)
	}
	rel, err := filepath.Rel(root, resolvedPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(resolvedPath)
	}
	return path.Clean(filepath.ToSlash(rel))
}

// isVirtual reports whether p names a module that has no backing file, such as "\0virtual" ids
// or "scheme:" prefixed ids produced by plugins.
func isVirtual(p string) bool {
	if strings.HasPrefix(p, "\x00") {
		return true
	}
	scheme, _, ok := strings.Cut(p, ":")
	return ok && len(scheme) > 1 && !strings.ContainsAny(scheme, `/\`)
}
