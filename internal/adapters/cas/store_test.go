package cas_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"go.trai.ch/weave/internal/adapters/cas"
	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
)

func entry(id string, deps ...string) *domain.CachedModule {
	e := &domain.CachedModule{
		Module: domain.Module{
			ID:                  domain.ModuleIDFromString(id),
			Content:             "export default '" + id + "'",
			ContentHash:         "0123456789abcdef",
			LastUpdateTimestamp: 1700000000000,
			ModuleType:          domain.ModuleTypeFromPath(id),
			SideEffects:         true,
		},
	}
	for i, d := range deps {
		e.Dependencies = append(e.Dependencies, domain.CachedDependency{
			Source:   "./" + d,
			Kind:     domain.ResolveKindImport,
			Order:    i,
			ModuleID: domain.ModuleIDFromString(d),
		})
	}
	return e
}

func ids(entries []*domain.CachedModule) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Module.ID.String())
	}
	sort.Strings(out)
	return out
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "cache")
	store := cas.NewStore(dir)

	loaded, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll on missing dir failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected no entries, got %d", len(loaded))
	}

	if err := store.Save(ctx, []*domain.CachedModule{entry("src/index.js", "src/a.js"), entry("src/a.js")}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// A second store over the same directory sees the entries.
	loaded, err = cas.NewStore(dir).LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if got := ids(loaded); strings.Join(got, ",") != "src/a.js,src/index.js" {
		t.Fatalf("unexpected ids: %v", got)
	}

	for _, e := range loaded {
		if e.Module.ID.String() != "src/index.js" {
			continue
		}
		if len(e.Dependencies) != 1 || e.Dependencies[0].ModuleID.String() != "src/a.js" {
			t.Errorf("dependencies not round-tripped: %+v", e.Dependencies)
		}
		if e.Module.LastUpdateTimestamp != 1700000000000 {
			t.Errorf("timestamp not round-tripped: %d", e.Module.LastUpdateTimestamp)
		}
	}
}

func TestStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	store := cas.NewStore(t.TempDir())

	first := entry("a.js")
	second := entry("a.js")
	second.Module.ContentHash = "fedcba9876543210"

	if err := store.Save(ctx, []*domain.CachedModule{first}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, []*domain.CachedModule{second}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(loaded))
	}
	if loaded[0].Module.ContentHash != "fedcba9876543210" {
		t.Errorf("expected overwritten hash, got %q", loaded[0].Module.ContentHash)
	}
}

func TestStore_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := cas.NewStore(dir)

	if err := store.Save(ctx, []*domain.CachedModule{entry("a.js"), entry("b.js")}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Delete(ctx, domain.ModuleIDFromString("a.js")); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, domain.ModuleIDFromString("missing.js")); err != nil {
		t.Fatalf("Delete of missing entry failed: %v", err)
	}

	loaded, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if got := ids(loaded); len(got) != 1 || got[0] != "b.js" {
		t.Fatalf("unexpected ids after delete: %v", got)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("expected cache dir to be removed, stat err: %v", err)
	}
}

func TestStore_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := cas.NewStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), domain.FilePerm); err != nil {
		t.Fatalf("failed to write corrupt entry: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), domain.FilePerm); err != nil {
		t.Fatalf("failed to write unrelated file: %v", err)
	}

	_, err := store.LoadAll(ctx)
	if err == nil {
		t.Fatal("expected error for corrupt entry")
	}
	if !strings.Contains(err.Error(), domain.ErrStoreUnmarshalFailed.Error()) {
		t.Errorf("expected unmarshal error, got: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := cas.NewMemoryStore()

	saved := entry("b.js", "a.js")
	if err := store.Save(ctx, []*domain.CachedModule{saved, entry("a.js")}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Mutating the caller's copy must not leak into the store.
	saved.Dependencies[0].Source = "./mutated"

	loaded, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(loaded) != 2 || loaded[0].Module.ID.String() != "a.js" || loaded[1].Module.ID.String() != "b.js" {
		t.Fatalf("unexpected entries: %v", ids(loaded))
	}
	if loaded[1].Dependencies[0].Source != "./a.js" {
		t.Errorf("store shares memory with caller: %q", loaded[1].Dependencies[0].Source)
	}

	if err := store.Delete(ctx, domain.ModuleIDFromString("a.js")); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	loaded, _ = store.LoadAll(ctx)
	if len(loaded) != 1 {
		t.Fatalf("expected 1 entry after delete, got %d", len(loaded))
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	loaded, _ = store.LoadAll(ctx)
	if len(loaded) != 0 {
		t.Fatalf("expected empty store after clear, got %d", len(loaded))
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	var store cas.NullStore

	if err := store.Save(ctx, []*domain.CachedModule{entry("a.js")}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected no entries, got %d", len(loaded))
	}
}

func TestFactory_Open(t *testing.T) {
	dir := t.TempDir()
	cfg := func(enabled bool, backend domain.CacheBackend) *domain.Config {
		return &domain.Config{PersistentCache: domain.PersistentCacheConfig{
			Enabled: enabled,
			Backend: backend,
			Dir:     dir,
		}}
	}

	factory := cas.NewFactory()

	store, err := factory.Open(cfg(false, domain.CacheBackendFile))
	if err != nil {
		t.Fatalf("Open disabled failed: %v", err)
	}
	if _, ok := store.(cas.NullStore); !ok {
		t.Errorf("expected NullStore for disabled cache, got %T", store)
	}

	store, err = factory.Open(cfg(true, domain.CacheBackendFile))
	if err != nil {
		t.Fatalf("Open file failed: %v", err)
	}
	fileStore, ok := store.(*cas.Store)
	if !ok {
		t.Fatalf("expected *cas.Store, got %T", store)
	}
	if fileStore.Dir() != dir {
		t.Errorf("expected dir %q, got %q", dir, fileStore.Dir())
	}

	first, err := factory.Open(cfg(true, domain.CacheBackendMemory))
	if err != nil {
		t.Fatalf("Open memory failed: %v", err)
	}
	second, _ := factory.Open(cfg(true, domain.CacheBackendMemory))
	if first != second {
		t.Error("expected memory backend to be shared between opens")
	}

	_, err = factory.Open(cfg(true, "s3"))
	if err == nil || !strings.Contains(err.Error(), domain.ErrUnknownCacheBackend.Error()) {
		t.Errorf("expected unknown backend error, got: %v", err)
	}
}

func TestFactory_WithBackend(t *testing.T) {
	var opened domain.PersistentCacheConfig
	factory := cas.NewFactory(
		cas.WithBackend(domain.CacheBackendRedis, func(cfg domain.PersistentCacheConfig) (ports.ModuleCacheStore, error) {
			opened = cfg
			return cas.NewMemoryStore(), nil
		}),
		cas.WithBackend("broken", func(domain.PersistentCacheConfig) (ports.ModuleCacheStore, error) {
			return nil, errors.New("connection refused")
		}),
	)

	cfg := &domain.Config{PersistentCache: domain.PersistentCacheConfig{
		Enabled:   true,
		Backend:   domain.CacheBackendRedis,
		Namespace: "team",
	}}
	if _, err := factory.Open(cfg); err != nil {
		t.Fatalf("Open redis failed: %v", err)
	}
	if opened.Namespace != "team" {
		t.Errorf("opener did not receive config, got %+v", opened)
	}

	cfg.PersistentCache.Backend = "broken"
	_, err := factory.Open(cfg)
	if err == nil || !strings.Contains(err.Error(), domain.ErrCacheStoreFailed.Error()) {
		t.Errorf("expected store failure, got: %v", err)
	}
}
