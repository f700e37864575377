package nscache

import (
	"context"
	"fmt"
	"time"

	be "github.com/unkn0wn-root/nscache/backend"
	"github.com/unkn0wn-root/nscache/backend/local"
	"github.com/unkn0wn-root/nscache/internal/keys"
	"github.com/unkn0wn-root/nscache/internal/wire"
)

type cache struct {
	store   be.Backend // failover composite over primary + fallback
	log     Logger
	hooks   Hooks
	ttl     time.Duration
	enabled bool
}

func newCache(opts Options) (*cache, error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("nscache: backend is required")
	}

	c := &cache{enabled: !opts.Disabled}

	// defaults
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.ttl = coalesce[time.Duration](opts.DefaultTTL, DefaultTTL)

	fb := opts.Fallback
	if fb == nil {
		fb = local.New(local.Config{})
	}
	c.store = &failover{
		primary:  opts.Backend,
		fallback: fb,
		log:      c.log,
		hooks:    c.hooks,
	}
	return c, nil
}

func (c *cache) Enabled() bool { return c.enabled }

func (c *cache) Close(ctx context.Context) error {
	return c.store.Close(ctx)
}

func (c *cache) Get(ctx context.Context, entryKey string) ([]byte, bool, error) {
	if !c.enabled {
		return nil, false, nil
	}
	k := keys.Clamp(entryKey)
	raw, ok, err := c.store.Get(ctx, k)
	if err != nil || !ok {
		return nil, false, err
	}
	ent, err := wire.Decode(raw)
	if err != nil {
		c.selfHeal(ctx, k, "corrupt")
		return nil, false, nil
	}
	// backends without native per-key expiry keep bytes past their logical
	// TTL; enforce it here
	if ent.Expired(time.Now()) {
		c.selfHeal(ctx, k, "expired")
		return nil, false, nil
	}
	return ent.Payload, true, nil
}

func (c *cache) Put(ctx context.Context, namespaceKey, entryKey string, payload []byte, ttl time.Duration) error {
	if !c.enabled {
		return nil
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	nk := keys.Clamp(namespaceKey)
	ek := keys.Clamp(entryKey)

	wireb := wire.Encode(time.Now(), ttl, payload)
	ok, err := c.store.Set(ctx, ek, wireb, ttl)
	if err != nil {
		return err
	}
	if !ok {
		c.hooks.SetRejected(ek)
		c.log.Debug("set rejected by backend (pressure)", Fields{"key": ek})
		return nil // nothing stored, nothing to index
	}

	// index write is best-effort: on failure the entry stays readable by
	// key and dies by its own TTL, invalidation just cannot find it
	if err := c.store.AddToSet(ctx, nk, ek, ttl); err != nil {
		c.hooks.IndexWriteFailed(nk, ek, err)
		c.log.Warn("index write failed; entry unindexed until TTL", Fields{
			"namespace": nk, "key": ek, "err": err,
		})
	}
	return nil
}

func (c *cache) Delete(ctx context.Context, entryKey string) error {
	if !c.enabled {
		return nil
	}
	return c.store.Del(ctx, keys.Clamp(entryKey))
}

func (c *cache) InvalidateNamespace(ctx context.Context, namespaceKey string) error {
	if !c.enabled {
		return nil
	}
	nk := keys.Clamp(namespaceKey)

	members, err := c.store.Members(ctx, nk)
	if err != nil {
		c.hooks.InvalidateIncomplete(nk, 0, err)
		return &InvalidateError{NamespaceKey: nk, EnumErr: err}
	}

	var (
		failed int
		errs   []error
	)
	for _, m := range members { // members were stored clamped by Put
		if err := c.store.Del(ctx, m); err != nil {
			failed++
			errs = append(errs, err)
		}
	}
	if failed > 0 {
		c.hooks.InvalidateIncomplete(nk, failed, errs[0])
		c.log.Warn("namespace sweep incomplete; keeping index for retry", Fields{
			"namespace": nk, "members": len(members), "failed": failed,
		})
		return &InvalidateError{NamespaceKey: nk, Members: len(members), Failed: failed, DelErrs: errs}
	}

	if err := c.store.Del(ctx, nk); err != nil {
		c.hooks.InvalidateIncomplete(nk, 0, err)
		return &InvalidateError{NamespaceKey: nk, Members: len(members), IndexErr: err}
	}
	c.log.Debug("namespace invalidated", Fields{"namespace": nk, "members": len(members)})
	return nil
}

func (c *cache) selfHeal(ctx context.Context, key, reason string) {
	// the store's heal passes the raw entry key; the backend only ever held
	// the clamped one
	k := keys.Clamp(key)
	_ = c.store.Del(ctx, k)
	c.hooks.SelfHeal(k, reason)
	c.log.Debug("self-healed entry", Fields{"key": k, "reason": reason})
}
