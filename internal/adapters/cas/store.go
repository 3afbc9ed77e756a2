// Package cas implements the persistent module cache stores.
package cas

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const entryExt = ".json"

var _ ports.ModuleCacheStore = (*Store)(nil)

// Store implements ports.ModuleCacheStore using a file-per-module strategy.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created on first write.
func NewStore(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

// Dir returns the directory holding the entries.
func (s *Store) Dir() string {
	return s.dir
}

// LoadAll reads every entry in the store directory.
func (s *Store) LoadAll(ctx context.Context) ([]*domain.CachedModule, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "dir", s.dir)
	}

	names := make([]string, 0, len(dirEntries))
	for _, e := range dirEntries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), entryExt) {
			continue
		}
		names = append(names, e.Name())
	}

	entries := make([]*domain.CachedModule, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entry, err := s.read(filepath.Join(s.dir, name))
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) read(filename string) (*domain.CachedModule, error) {
	//nolint:gosec // Path is constructed from the cache directory and a hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "file", filename)
	}

	var entry domain.CachedModule
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "file", filename)
	}
	return &entry, nil
}

// Save writes one file per entry.
func (s *Store) Save(ctx context.Context, entries []*domain.CachedModule) error {
	if len(entries) == 0 {
		return nil
	}
	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error()), "module_id", entry.Module.ID.String())
		}
		if err := writeFileAtomic(s.filename(entry.Module.ID), data); err != nil {
			return zerr.With(err, "module_id", entry.Module.ID.String())
		}
	}
	return nil
}

// Delete removes the entry for id.
func (s *Store) Delete(_ context.Context, id domain.ModuleID) error {
	err := os.Remove(s.filename(id))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "module_id", id.String())
	}
	return nil
}

// Clear removes the store directory.
func (s *Store) Clear(_ context.Context) error {
	if err := os.RemoveAll(s.dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "dir", s.dir)
	}
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

func (s *Store) filename(id domain.ModuleID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return filepath.Join(s.dir, hex.EncodeToString(hash[:])+entryExt)
}

// writeFileAtomic writes through a temporary file so concurrent readers never see a partial entry.
func writeFileAtomic(filename string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), ".entry-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Rename(tmpName, filename); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}
