// Package local implements backend.Backend as an in-process store. It is
// the automatic fallback when a remote backend is unreachable: same
// operation contract, single-process scope.
//
// Expired entries are swept lazily on access and under insert pressure;
// there is no background goroutine.
package local

import (
	"context"
	"sync"
	"time"

	"github.com/unkn0wn-root/nscache/backend"
	"github.com/unkn0wn-root/nscache/internal/memberset"
)

// DefaultMaxEntries bounds the value map when Config.MaxEntries is zero.
const DefaultMaxEntries = 8192

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

type Local struct {
	mu      sync.Mutex
	entries map[string]entry
	sets    *memberset.Map
	max     int
}

var _ backend.Backend = (*Local)(nil)

type Config struct {
	// MaxEntries caps the number of live value entries. When an insert
	// finds the map full even after sweeping expired entries, Set reports
	// ok=false. 0 means DefaultMaxEntries.
	MaxEntries int
}

func New(cfg Config) *Local {
	max := cfg.MaxEntries
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &Local{
		entries: make(map[string]entry),
		sets:    memberset.New(),
		max:     max,
	}
}

func (l *Local) Get(_ context.Context, key string) ([]byte, bool, error) {
	now := time.Now()

	l.mu.Lock()
	e, ok := l.entries[key]
	if ok && e.expired(now) {
		delete(l.entries, key)
		ok = false
	}
	l.mu.Unlock()

	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil // callers may retain or mutate
}

func (l *Local) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	now := time.Now()
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = now.Add(ttl)
	}
	cp := append([]byte(nil), value...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.entries[key]; !exists && len(l.entries) >= l.max {
		l.sweepLocked(now)
		if len(l.entries) >= l.max {
			return false, nil // full even after sweeping: reject under pressure
		}
	}
	l.entries[key] = entry{value: cp, expiresAt: expiresAt}
	return true, nil
}

func (l *Local) AddToSet(_ context.Context, setKey, member string, ttl time.Duration) error {
	l.sets.Add(setKey, member, ttl)
	return nil
}

func (l *Local) Members(_ context.Context, setKey string) ([]string, error) {
	return l.sets.Members(setKey), nil
}

// Del removes key from the value map and the set map. The two keyspaces are
// prefix-disjoint in facade use, so at most one side has it.
func (l *Local) Del(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.entries, key)
	l.mu.Unlock()
	l.sets.Delete(key)
	return nil
}

func (l *Local) Close(context.Context) error { return nil }

func (l *Local) sweepLocked(now time.Time) {
	for k, e := range l.entries {
		if e.expired(now) {
			delete(l.entries, k)
		}
	}
}
