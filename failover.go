package nscache

import (
	"context"
	"time"

	be "github.com/unkn0wn-root/nscache/backend"
)

// failover composes the primary backend with the in-process fallback. Every
// operation makes one attempt on the primary; on error it emits the
// degraded-mode signal and makes one attempt on the fallback. A clean miss
// never consults the fallback, and a caller-cancelled context is returned
// as-is (a primary failure caused by the caller's own deadline is not an
// outage). No retries, no backoff.
//
// Under fallback the cache is process-private: other replicas see neither
// writes nor invalidations until the primary recovers. Accepted degradation,
// bounded by TTL.
type failover struct {
	primary  be.Backend
	fallback be.Backend
	log      Logger
	hooks    Hooks
}

var _ be.Backend = (*failover)(nil)

func (f *failover) degraded(op, key string, err error) {
	f.hooks.BackendFallback(op, key, err)
	f.log.Warn("primary backend failed; using fallback", Fields{"op": op, "key": key, "err": err})
}

func (f *failover) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok, err := f.primary.Get(ctx, key)
	if err == nil || ctx.Err() != nil {
		return v, ok, err
	}
	f.degraded("get", key, err)
	return f.fallback.Get(ctx, key)
}

func (f *failover) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	ok, err := f.primary.Set(ctx, key, value, ttl)
	if err == nil || ctx.Err() != nil {
		return ok, err
	}
	f.degraded("set", key, err)
	return f.fallback.Set(ctx, key, value, ttl)
}

func (f *failover) AddToSet(ctx context.Context, setKey, member string, ttl time.Duration) error {
	err := f.primary.AddToSet(ctx, setKey, member, ttl)
	if err == nil || ctx.Err() != nil {
		return err
	}
	f.degraded("add_to_set", setKey, err)
	return f.fallback.AddToSet(ctx, setKey, member, ttl)
}

func (f *failover) Members(ctx context.Context, setKey string) ([]string, error) {
	members, err := f.primary.Members(ctx, setKey)
	if err == nil || ctx.Err() != nil {
		return members, err
	}
	f.degraded("members", setKey, err)
	return f.fallback.Members(ctx, setKey)
}

func (f *failover) Del(ctx context.Context, key string) error {
	err := f.primary.Del(ctx, key)
	if err == nil || ctx.Err() != nil {
		return err
	}
	f.degraded("del", key, err)
	return f.fallback.Del(ctx, key)
}

func (f *failover) Close(ctx context.Context) error {
	perr := f.primary.Close(ctx)
	ferr := f.fallback.Close(ctx)
	if perr != nil {
		return perr
	}
	return ferr
}
