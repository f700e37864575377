// Package bigcache implements backend.Backend on allegro/bigcache: a
// bounded in-process alternative tuned for large entry counts. BigCache has
// no per-entry TTL (eviction follows the global LifeWindow), so entries may
// outlive their logical TTL here; the facade's envelope check enforces the
// logical TTL at read time. Index sets live in a guarded map.
package bigcache

import (
	"context"
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/nscache/backend"
	"github.com/unkn0wn-root/nscache/internal/memberset"
)

type Backend struct {
	c    *bc.BigCache
	sets *memberset.Map
}

var _ backend.Backend = (*Backend)(nil)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(cfg Config) (*Backend, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Backend{c: c, sets: memberset.New()}, nil
}

func (b *Backend) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, err := b.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, false, nil
	}
	return v, err == nil, err
}

// Set ignores the per-entry TTL; see the package comment.
func (b *Backend) Set(_ context.Context, key string, value []byte, _ time.Duration) (bool, error) {
	return true, b.c.Set(key, value)
}

func (b *Backend) AddToSet(_ context.Context, setKey, member string, ttl time.Duration) error {
	b.sets.Add(setKey, member, ttl)
	return nil
}

func (b *Backend) Members(_ context.Context, setKey string) ([]string, error) {
	return b.sets.Members(setKey), nil
}

// Del is idempotent: bigcache reports ErrEntryNotFound for absent keys,
// which the Backend contract does not treat as an error.
func (b *Backend) Del(_ context.Context, key string) error {
	if err := b.c.Delete(key); err != nil && !errors.Is(err, bc.ErrEntryNotFound) {
		return err
	}
	b.sets.Delete(key)
	return nil
}

func (b *Backend) Close(_ context.Context) error {
	return b.c.Close()
}
