package memberset

import (
	"sort"
	"testing"
	"time"
)

func sortedMembers(m *Map, key string) []string {
	got := m.Members(key)
	sort.Strings(got)
	return got
}

func TestAddAndMembers(t *testing.T) {
	m := New()

	m.Add("idx:a", "k1", time.Minute)
	m.Add("idx:a", "k2", time.Minute)
	m.Add("idx:a", "k2", time.Minute) // duplicate member collapses

	got := sortedMembers(m, "idx:a")
	if len(got) != 2 || got[0] != "k1" || got[1] != "k2" {
		t.Fatalf("members = %v, want [k1 k2]", got)
	}

	if got := m.Members("idx:missing"); got != nil {
		t.Fatalf("absent set should yield nil, got %v", got)
	}
}

func TestMembersReturnsCopy(t *testing.T) {
	m := New()
	m.Add("idx:a", "k1", time.Minute)

	got := m.Members("idx:a")
	got[0] = "mutated"

	if again := m.Members("idx:a"); again[0] != "k1" {
		t.Fatalf("internal state mutated through returned slice: %v", again)
	}
}

func TestDelete(t *testing.T) {
	m := New()
	m.Add("idx:a", "k1", time.Minute)

	m.Delete("idx:a")
	if got := m.Members("idx:a"); got != nil {
		t.Fatalf("expected nil after delete, got %v", got)
	}

	m.Delete("idx:a") // deleting absent key is a no-op
}

func TestExpiryIsLazy(t *testing.T) {
	m := New()
	m.Add("idx:a", "k1", 30*time.Millisecond)

	if got := m.Members("idx:a"); len(got) != 1 {
		t.Fatalf("expected live set before expiry, got %v", got)
	}

	time.Sleep(50 * time.Millisecond)
	if got := m.Members("idx:a"); got != nil {
		t.Fatalf("expected expired set to read as absent, got %v", got)
	}
}

func TestDeadlineOnlyMovesForward(t *testing.T) {
	m := New()
	m.Add("idx:a", "k1", 200*time.Millisecond)
	// a shorter ttl on a later add must not shorten the set's life
	m.Add("idx:a", "k2", 10*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	got := sortedMembers(m, "idx:a")
	if len(got) != 2 {
		t.Fatalf("set expired early after short-ttl add: %v", got)
	}
}

func TestExpiredSetResetOnAdd(t *testing.T) {
	m := New()
	m.Add("idx:a", "stale", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	// adding to an expired set starts a fresh one; the stale member is gone
	m.Add("idx:a", "fresh", time.Minute)
	got := m.Members("idx:a")
	if len(got) != 1 || got[0] != "fresh" {
		t.Fatalf("members = %v, want [fresh]", got)
	}
}
