package nscache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/unkn0wn-root/nscache/codec"
	"github.com/unkn0wn-root/nscache/internal/keys"
)

// Store binds one cache name, TTL and value type to a Cache and offers
// domain-shaped methods: callers think in (owner, query), never in keys.
type Store[V any] interface {
	// Get returns the cached value for owner's query variant. Misses and
	// backend outages both come back as ok=false with a nil error; the
	// caller's loader stays the source of truth.
	Get(ctx context.Context, owner string, q Query) (V, bool, error)

	// Put caches v for owner's query variant under the store's TTL and
	// registers it for group invalidation.
	Put(ctx context.Context, owner string, q Query, v V) error

	// GetOrLoad is Get with a loader on miss. A loaded value is cached
	// best-effort before being returned; a failed cache fill never fails
	// the call.
	GetOrLoad(ctx context.Context, owner string, q Query, load Loader[V]) (V, bool, error)

	// InvalidateAll evicts every cached variant that belongs to owner.
	InvalidateAll(ctx context.Context, owner string) error
}

// StoreOptions configure one typed store. Name and Codec are required.
type StoreOptions[V any] struct {
	// Required
	Name  string // logical family, part of every key it builds; no ':' allowed
	Codec codec.Codec[V]

	TTL    time.Duration // 0 => 10m
	Logger Logger        // if nil, NopLogger is used
}

func NewStore[V any](c Cache, opts StoreOptions[V]) (Store[V], error) {
	if c == nil {
		return nil, fmt.Errorf("nscache: cache is required")
	}
	if opts.Name == "" {
		return nil, fmt.Errorf("nscache: store name is required")
	}
	if strings.Contains(opts.Name, ":") {
		return nil, fmt.Errorf("nscache: store name %q must not contain ':'", opts.Name)
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("nscache: codec is required")
	}

	s := &store[V]{
		cache: c,
		name:  opts.Name,
		codec: opts.Codec,
	}

	// defaults
	s.ttl = coalesce[time.Duration](opts.TTL, DefaultTTL)
	s.log = coalesce[Logger](opts.Logger, NopLogger{})
	return s, nil
}

type store[V any] struct {
	cache Cache
	name  string
	codec codec.Codec[V]
	ttl   time.Duration
	log   Logger
}

func (s *store[V]) Get(ctx context.Context, owner string, q Query) (V, bool, error) {
	var zero V
	k := s.entryKey(owner, q)

	payload, ok, err := s.cache.Get(ctx, k)
	if err != nil {
		if ctx.Err() != nil {
			return zero, false, err
		}
		// both backends failed: degrade to a miss so the caller reloads
		s.log.Debug("cache read failed; treating as miss", Fields{"key": k, "err": err})
		return zero, false, nil
	}
	if !ok {
		return zero, false, nil
	}

	v, err := s.codec.Decode(payload)
	if err != nil {
		// the stored bytes don't decode to V anymore (schema drift, foreign
		// write); drop them so reads stop failing the same way
		s.heal(ctx, k, "decode")
		s.log.Debug("decode failed; healed entry", Fields{"key": k, "err": err})
		return zero, false, nil
	}
	return v, true, nil
}

func (s *store[V]) Put(ctx context.Context, owner string, q Query, v V) error {
	payload, err := s.codec.Encode(v)
	if err != nil {
		return err
	}
	return s.cache.Put(ctx, s.namespaceKey(owner), s.entryKey(owner, q), payload, s.ttl)
}

func (s *store[V]) GetOrLoad(ctx context.Context, owner string, q Query, load Loader[V]) (V, bool, error) {
	var zero V
	if v, ok, err := s.Get(ctx, owner, q); err != nil || ok {
		return v, ok, err
	}

	v, found, err := load(ctx)
	if err != nil {
		return zero, false, err
	}
	if !found {
		return zero, false, nil
	}
	if err := s.Put(ctx, owner, q, v); err != nil {
		s.log.Debug("cache fill failed; serving loaded value", Fields{"owner": owner, "err": err})
	}
	return v, true, nil
}

func (s *store[V]) InvalidateAll(ctx context.Context, owner string) error {
	return s.cache.InvalidateNamespace(ctx, s.namespaceKey(owner))
}

func (s *store[V]) entryKey(owner string, q Query) string {
	return keys.Entry(s.name, owner, q.token())
}

func (s *store[V]) namespaceKey(owner string) string {
	return keys.Namespace(s.name, owner)
}

// heal deletes a key whose payload no longer decodes. When the store sits
// on the package's own facade the deletion reports through its self-heal
// hook; foreign Cache implementations just get the delete.
func (s *store[V]) heal(ctx context.Context, key, reason string) {
	if cc, ok := s.cache.(*cache); ok {
		cc.selfHeal(ctx, key, reason)
		return
	}
	_ = s.cache.Delete(ctx, key)
}
