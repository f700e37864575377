// Package redis implements backend.Backend on a shared Redis deployment.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/nscache/backend"
)

var ErrNilClient = errors.New("redis backend: nil client")

const defaultOpTimeout = 5 * time.Second

type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
	opTimeout   time.Duration
}

var _ backend.Backend = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this backend exclusively owns the client

	// OpTimeout bounds each individual operation on top of the caller's
	// context. 0 means the 5s default; negative disables the bound.
	OpTimeout time.Duration
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	t := cfg.OpTimeout
	if t == 0 {
		t = defaultOpTimeout
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient, opTimeout: t}, nil
}

func (b *Redis) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.opTimeout)
}

func (b *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := b.opCtx(ctx)
	defer cancel()

	v, err := b.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return v, true, nil
}

func (b *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	ctx, cancel := b.opCtx(ctx)
	defer cancel()

	if ttl <= 0 {
		ttl = 0 // non-positive TTL means no expiry
	}
	if err := b.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// AddToSet pipelines SADD with EXPIRE NX + EXPIRE GT. A fresh SADD leaves
// the key persistent, so NX pins the first deadline and GT handles every
// later call, moving the deadline forward only.
func (b *Redis) AddToSet(ctx context.Context, setKey, member string, ttl time.Duration) error {
	ctx, cancel := b.opCtx(ctx)
	defer cancel()

	pipe := b.rdb.Pipeline()
	pipe.SAdd(ctx, setKey, member)
	pipe.ExpireNX(ctx, setKey, ttl)
	pipe.ExpireGT(ctx, setKey, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (b *Redis) Members(ctx context.Context, setKey string) ([]string, error) {
	ctx, cancel := b.opCtx(ctx)
	defer cancel()

	members, err := b.rdb.SMembers(ctx, setKey).Result()
	if err == goredis.Nil || (err == nil && len(members) == 0) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (b *Redis) Del(ctx context.Context, key string) error {
	ctx, cancel := b.opCtx(ctx)
	defer cancel()

	return b.rdb.Del(ctx, key).Err()
}

// Close releases the underlying redis client only when this backend owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (b *Redis) Close(context.Context) error {
	if b.closeClient {
		if err := b.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
