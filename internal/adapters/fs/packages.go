package fs

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/zerr"
)

const (
	nodeModules     = "node_modules"
	packageJSONFile = "package.json"
)

// packageJSON holds the package.json fields the resolver reads.
type packageJSON struct {
	Name        string          `json:"name"`
	Main        string          `json:"main"`
	Module      string          `json:"module"`
	SideEffects json.RawMessage `json:"sideEffects"`
}

// hasSideEffects reports false only for an explicit "sideEffects": false.
func (p *packageJSON) hasSideEffects() bool {
	var flag bool
	if err := json.Unmarshal(p.SideEffects, &flag); err == nil {
		return flag
	}
	return true
}

// entry returns the package entry, preferring the ES module field.
func (p *packageJSON) entry() string {
	if p.Module != "" {
		return p.Module
	}
	return p.Main
}

// packageCache memoizes package.json reads by directory. A nil value records a missing file.
type packageCache struct {
	mu   sync.RWMutex
	pkgs map[string]*packageJSON
}

func newPackageCache() *packageCache {
	return &packageCache{pkgs: make(map[string]*packageJSON)}
}

func (c *packageCache) read(dir string) (*packageJSON, error) {
	c.mu.RLock()
	pkg, ok := c.pkgs[dir]
	c.mu.RUnlock()
	if ok {
		return pkg, nil
	}

	path := filepath.Join(dir, packageJSONFile)
	//nolint:gosec // Path is built from a resolved package directory
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		pkg = nil
	case err != nil:
		return nil, zerr.With(zerr.Wrap(err, "failed to read package.json"), "path", path)
	default:
		pkg = &packageJSON{}
		if err := json.Unmarshal(data, pkg); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to parse package.json"), "path", path)
		}
	}

	c.mu.Lock()
	c.pkgs[dir] = pkg
	c.mu.Unlock()
	return pkg, nil
}

// splitPackageSpecifier splits "pkg/sub" or "@scope/pkg/sub" into the package name and subpath.
func splitPackageSpecifier(source string) (name, subpath string) {
	parts := strings.SplitN(source, "/", 3)
	if strings.HasPrefix(source, "@") && len(parts) >= 2 {
		name = parts[0] + "/" + parts[1]
		if len(parts) == 3 {
			subpath = parts[2]
		}
		return name, subpath
	}
	name, subpath, _ = strings.Cut(source, "/")
	return name, subpath
}
