// Package backend defines the storage abstraction used by nscache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set for a key (no prepended
// or appended metadata, no re-encoding, no mutation). If a store performs
// internal transforms (e.g., compression), they MUST be fully reversed so
// that the bytes returned by Get are identical to the bytes provided to Set.
//
// Important: the keyspaces "ent:<store>:" and "idx:<store>:" are owned by
// nscache. External code MUST NOT write values under these prefixes. Foreign
// writes may be treated as corruption by strict envelope validation and
// deleted.
package backend

import (
	"context"
	"time"
)

// Backend is a minimal byte store with TTLs plus the expiring-set operations
// that make group invalidation possible. Must be safe for concurrent use.
// TTLs handed to Set and AddToSet are always positive.
type Backend interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL.
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) (ok bool, err error)

	// AddToSet registers member in the set at setKey, creating the set if
	// absent. The set's TTL only ever moves forward: a call with a later
	// deadline extends it, an earlier one leaves it unchanged, so the set
	// cannot expire before its newest member.
	AddToSet(ctx context.Context, setKey, member string, ttl time.Duration) error

	// Members returns the live members of the set at setKey. An absent or
	// expired set yields an empty slice and a nil error.
	Members(ctx context.Context, setKey string) ([]string, error)

	// Del removes a key (best-effort, idempotent). It covers both value
	// keys and set keys; deleting an absent key is not an error.
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
