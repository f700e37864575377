// Package ristretto implements backend.Backend on dgraph-io/ristretto: a
// bounded in-process alternative to the default local backend. Entry bytes
// live in ristretto with native per-entry TTL and cost = len(value); index
// sets live in a guarded map because ristretto cannot express mutable sets.
package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/nscache/backend"
	"github.com/unkn0wn-root/nscache/internal/memberset"
)

type Backend struct {
	c    *rc.Cache
	sets *memberset.Map
}

var _ backend.Backend = (*Backend)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Backend, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto backend: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Backend{c: c, sets: memberset.New()}, nil
}

func (b *Backend) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := b.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	bs, _ := v.([]byte)
	if bs == nil {
		// self-heal: drop unexpected entry shape
		b.c.Del(key)
		return nil, false, nil
	}
	return bs, true, nil
}

// Set stores value with cost = len(value). Ristretto admits writes through
// a buffer, so ok=true means accepted, not yet necessarily visible; the
// admission policy may still drop the entry under pressure.
func (b *Backend) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	return b.c.SetWithTTL(key, value, int64(len(value)), ttl), nil
}

func (b *Backend) AddToSet(_ context.Context, setKey, member string, ttl time.Duration) error {
	b.sets.Add(setKey, member, ttl)
	return nil
}

func (b *Backend) Members(_ context.Context, setKey string) ([]string, error) {
	return b.sets.Members(setKey), nil
}

func (b *Backend) Del(_ context.Context, key string) error {
	b.c.Del(key)
	b.sets.Delete(key)
	return nil
}

func (b *Backend) Close(_ context.Context) error {
	b.c.Wait()
	b.c.Close()
	return nil
}

// Wait blocks until buffered writes are applied. Useful in tests and
// shutdown paths that need read-your-write visibility.
func (b *Backend) Wait() { b.c.Wait() }

// Metrics exposes ristretto's counters when Config.Metrics was set.
// Not part of backend.Backend.
func (b *Backend) Metrics() *rc.Metrics { return b.c.Metrics }
