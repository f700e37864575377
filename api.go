package nscache

import (
	"context"
	"time"

	be "github.com/unkn0wn-root/nscache/backend"
)

// Cache is the byte-level indexed cache facade: namespace-grouped entries
// with TTLs and group invalidation. Most callers want the typed Store on
// top of it; Cache is the right level when you build your own keys.
type Cache interface {
	Enabled() bool
	Close(context.Context) error

	// Get returns the payload stored under entryKey. Corrupt and logically
	// expired entries are deleted on the way out and read as a miss.
	Get(ctx context.Context, entryKey string) ([]byte, bool, error)

	// Put stores payload under entryKey and registers entryKey in the index
	// set at namespaceKey so InvalidateNamespace can find it. ttl <= 0 means
	// Options.DefaultTTL. The two writes are not transactional: when only
	// the index write fails the entry stays readable by key until its TTL.
	Put(ctx context.Context, namespaceKey, entryKey string, payload []byte, ttl time.Duration) error

	// Delete removes one entry. Deleting an absent key is not an error.
	Delete(ctx context.Context, entryKey string) error

	// InvalidateNamespace deletes every entry registered under namespaceKey,
	// then the namespace key itself. Best effort and not atomic: a put
	// racing the sweep may survive until its own TTL. On partial failure it
	// returns *InvalidateError and keeps the namespace key for retry.
	InvalidateNamespace(ctx context.Context, namespaceKey string) error
}

// Options tune the facade. Only Backend is required.
type Options struct {
	// Required
	Backend be.Backend // usually backend/redis

	Fallback   be.Backend    // tried when Backend errors; nil => in-process backend/local
	Logger     Logger        // if nil, NopLogger is used
	Hooks      Hooks         // if nil, NopHooks is used
	DefaultTTL time.Duration // 0 => 10m
	Disabled   bool          // kill switch: Get misses, writes are no-ops
}

func New(opts Options) (Cache, error) {
	return newCache(opts)
}
