package fs

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
	"go.trai.ch/zerr"
)

// MetaPackage is the ResolveResult.Meta key holding the package a bare specifier resolved into.
const MetaPackage = "package"

var _ ports.Resolver = (*Resolver)(nil)

// Resolver implements ports.Resolver with node-style lookup on the local file system.
type Resolver struct {
	root       string
	extensions []string
	aliases    []alias
	external   *domain.Matcher
	packages   *packageCache
}

type alias struct {
	prefix string
	target string
}

// NewResolver creates a Resolver for a project root.
func NewResolver(root string, cfg domain.ResolveConfig, external *domain.Matcher) *Resolver {
	extensions := cfg.Extensions
	if len(extensions) == 0 {
		extensions = domain.DefaultExtensions
	}

	aliases := make([]alias, 0, len(cfg.Alias))
	for prefix, target := range cfg.Alias {
		aliases = append(aliases, alias{prefix: prefix, target: target})
	}
	// Longest prefix wins.
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i].prefix) != len(aliases[j].prefix) {
			return len(aliases[i].prefix) > len(aliases[j].prefix)
		}
		return aliases[i].prefix < aliases[j].prefix
	})

	return &Resolver{
		root:       filepath.Clean(root),
		extensions: extensions,
		aliases:    aliases,
		external:   external,
		packages:   newPackageCache(),
	}
}

// Resolve maps param.Source to a file. Externals and URLs are returned without touching the disk.
func (r *Resolver) Resolve(ctx context.Context, param *domain.ResolveParam) (*domain.ResolveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source, rawQuery, _ := strings.Cut(param.Source, "?")
	query := domain.ParseQuery(rawQuery)

	if r.external.Match(source) || isURL(source) {
		return &domain.ResolveResult{
			ResolvedPath: source,
			Query:        query,
			External:     true,
			SideEffects:  true,
		}, nil
	}
	if strings.HasPrefix(source, "\x00") {
		return &domain.ResolveResult{ResolvedPath: source, Query: query, SideEffects: true}, nil
	}

	source, aliased := r.applyAlias(source)
	baseDir := r.root
	if param.HasImporter() && !aliased {
		baseDir = filepath.Dir(param.Importer.ResolvedPath(r.root))
	}

	var (
		resolved string
		pkg      *packageJSON
		pkgName  string
		err      error
	)
	switch {
	case isRelative(source):
		resolved, err = r.probe(filepath.Join(baseDir, filepath.FromSlash(source)))
	case filepath.IsAbs(source) || strings.HasPrefix(source, "/"):
		resolved, err = r.resolveAbsolute(source)
	default:
		pkgName, _ = splitPackageSpecifier(source)
		resolved, pkg, err = r.resolvePackage(baseDir, source)
	}
	if err != nil {
		return nil, err
	}
	if resolved == "" {
		var notFound error = zerr.With(domain.ErrModuleNotResolved, "source", param.Source)
		if param.HasImporter() {
			notFound = zerr.With(notFound, "importer", param.Importer.String())
		}
		return nil, notFound
	}

	result := &domain.ResolveResult{
		ResolvedPath: resolved,
		Query:        query,
		SideEffects:  hasSideEffects(resolved, query),
	}
	if pkg != nil {
		result.Meta = map[string]string{MetaPackage: pkgName}
		if !pkg.hasSideEffects() {
			result.SideEffects = false
		}
	}
	return result, nil
}

// applyAlias rewrites the longest matching alias prefix. Relative alias targets are
// resolved against the root rather than the importer.
func (r *Resolver) applyAlias(source string) (string, bool) {
	for _, a := range r.aliases {
		if source == a.prefix {
			return a.target, true
		}
		if rest, ok := strings.CutPrefix(source, a.prefix+"/"); ok {
			return a.target + "/" + rest, true
		}
	}
	return source, false
}

// resolveAbsolute tries the path as given, then anchored at the project root.
func (r *Resolver) resolveAbsolute(source string) (string, error) {
	native := filepath.FromSlash(source)
	if resolved, err := r.probe(native); err != nil || resolved != "" {
		return resolved, err
	}
	return r.probe(filepath.Join(r.root, strings.TrimPrefix(native, string(filepath.Separator))))
}

// resolvePackage walks up from dir looking for the package in node_modules.
func (r *Resolver) resolvePackage(dir, source string) (string, *packageJSON, error) {
	name, subpath := splitPackageSpecifier(source)
	for {
		pkgDir := filepath.Join(dir, nodeModules, filepath.FromSlash(name))
		if isDir(pkgDir) {
			pkg, err := r.packages.read(pkgDir)
			if err != nil {
				return "", nil, err
			}

			target := pkgDir
			switch {
			case subpath != "":
				target = filepath.Join(pkgDir, filepath.FromSlash(subpath))
			case pkg != nil && pkg.entry() != "":
				target = filepath.Join(pkgDir, filepath.FromSlash(pkg.entry()))
			}
			resolved, err := r.probe(target)
			if err != nil || resolved != "" {
				if pkg == nil {
					pkg = &packageJSON{Name: name}
				}
				return resolved, pkg, err
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

// probe returns the first existing file among path, path+ext and path/index+ext,
// or "" when nothing matches.
func (r *Resolver) probe(path string) (string, error) {
	info, err := os.Stat(path)
	if err == nil && info.Mode().IsRegular() {
		return path, nil
	}

	for _, ext := range r.extensions {
		if isFile(path + ext) {
			return path + ext, nil
		}
	}

	if err == nil && info.IsDir() {
		pkg, err := r.packages.read(path)
		if err != nil {
			return "", err
		}
		if pkg != nil && pkg.entry() != "" {
			entry := filepath.Join(path, filepath.FromSlash(pkg.entry()))
			if resolved, err := r.probe(entry); err != nil || resolved != "" {
				return resolved, err
			}
		}
		for _, ext := range r.extensions {
			index := filepath.Join(path, "index"+ext)
			if isFile(index) {
				return index, nil
			}
		}
	}
	return "", nil
}

func hasSideEffects(resolved string, query domain.Query) bool {
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".json":
		return false
	case ".css":
		return !query.Has("inline")
	default:
		return true
	}
}

func isRelative(source string) bool {
	return source == "." || source == ".." ||
		strings.HasPrefix(source, "./") || strings.HasPrefix(source, "../")
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") ||
		strings.HasPrefix(source, "//") || strings.HasPrefix(source, "data:")
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
