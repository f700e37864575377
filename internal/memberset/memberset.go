// Package memberset provides a mutex-guarded map of string sets with
// per-set expiry, used by in-process backends to model namespace index
// sets. Expiry is checked lazily on access; there is no background sweep.
package memberset

import (
	"sync"
	"time"
)

type set struct {
	members   map[string]struct{}
	expiresAt time.Time
}

func (s *set) expired(now time.Time) bool {
	return now.After(s.expiresAt)
}

// Map maps set keys to expiring member sets. Safe for concurrent use.
type Map struct {
	mu   sync.Mutex
	sets map[string]*set
}

func New() *Map {
	return &Map{sets: make(map[string]*set)}
}

// Add registers member under key, creating the set if absent. The set's
// deadline only ever moves forward: a later now+ttl extends it, an earlier
// one is ignored, so the set outlives its longest-lived member.
func (m *Map) Add(key, member string, ttl time.Duration) {
	now := time.Now()
	deadline := now.Add(ttl)

	m.mu.Lock()
	s, ok := m.sets[key]
	if !ok || s.expired(now) {
		s = &set{members: make(map[string]struct{}), expiresAt: deadline}
		m.sets[key] = s
	} else if deadline.After(s.expiresAt) {
		s.expiresAt = deadline
	}
	s.members[member] = struct{}{}
	m.mu.Unlock()
}

// Members returns a copy of the live members of key. An absent or expired
// set yields nil; an expired set is dropped on the way out.
func (m *Map) Members(key string) []string {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sets[key]
	if !ok {
		return nil
	}
	if s.expired(now) {
		delete(m.sets, key)
		return nil
	}
	out := make([]string, 0, len(s.members))
	for member := range s.members {
		out = append(out, member)
	}
	return out
}

// Delete removes the whole set. Deleting an absent key is a no-op.
func (m *Map) Delete(key string) {
	m.mu.Lock()
	delete(m.sets, key)
	m.mu.Unlock()
}
