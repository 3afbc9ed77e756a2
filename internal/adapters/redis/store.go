// Package redis implements a module cache store backed by a redis hash.
package redis

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.trai.ch/weave/internal/core/domain"
	"go.trai.ch/weave/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	keyPrefix   = "weave:modules:"
	dialTimeout = 2 * time.Second
)

var _ ports.ModuleCacheStore = (*Store)(nil)

// Store implements ports.ModuleCacheStore with one redis hash per namespace.
// Each field is a module id and each value the JSON-encoded entry.
type Store struct {
	client *goredis.Client
	key    string
}

// NewStore wraps an existing client.
func NewStore(client *goredis.Client, namespace string) *Store {
	if namespace == "" {
		namespace = domain.DefaultNamespace
	}
	return &Store{client: client, key: keyPrefix + namespace}
}

// Open connects to the redis server named by the configuration.
func Open(cfg domain.PersistentCacheConfig) (ports.ModuleCacheStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.RedisAddr,
		DialTimeout: dialTimeout,
	})
	return NewStore(client, cfg.Namespace), nil
}

// Key returns the hash key holding the entries.
func (s *Store) Key() string {
	return s.key
}

// LoadAll reads the whole hash.
func (s *Store) LoadAll(ctx context.Context) ([]*domain.CachedModule, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "key", s.key)
	}

	ids := make([]string, 0, len(fields))
	for id := range fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]*domain.CachedModule, 0, len(ids))
	for _, id := range ids {
		entry, err := decode(fields[id])
		if err != nil {
			return nil, zerr.With(err, "module_id", id)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Save writes the entries in a single pipeline.
func (s *Store) Save(ctx context.Context, entries []*domain.CachedModule) error {
	if len(entries) == 0 {
		return nil
	}

	values := make([]any, 0, 2*len(entries))
	for _, entry := range entries {
		data, err := encode(entry)
		if err != nil {
			return err
		}
		values = append(values, entry.Module.ID.String(), data)
	}

	_, err := s.client.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, s.key, values...)
		return nil
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", s.key)
	}
	return nil
}

// Delete removes the entry for id.
func (s *Store) Delete(ctx context.Context, id domain.ModuleID) error {
	if err := s.client.HDel(ctx, s.key, id.String()).Err(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "module_id", id.String())
	}
	return nil
}

// Clear removes the namespace hash.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", s.key)
	}
	return nil
}

// Close closes the client connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

func encode(entry *domain.CachedModule) (string, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error()), "module_id", entry.Module.ID.String())
	}
	return string(data), nil
}

func decode(value string) (*domain.CachedModule, error) {
	var entry domain.CachedModule
	if err := json.Unmarshal([]byte(value), &entry); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}
	return &entry, nil
}
