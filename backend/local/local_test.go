package local

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestSetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	l := New(Config{})

	if _, found, err := l.Get(ctx, "ent:k"); err != nil || found {
		t.Fatalf("expected clean miss, got found=%v err=%v", found, err)
	}

	ok, err := l.Set(ctx, "ent:k", []byte("payload"), time.Minute)
	if err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}

	v, found, err := l.Get(ctx, "ent:k")
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if string(v) != "payload" {
		t.Fatalf("value mismatch: %q", v)
	}
}

func TestValueIsolation(t *testing.T) {
	ctx := context.Background()
	l := New(Config{})

	in := []byte("abc")
	if ok, err := l.Set(ctx, "k", in, time.Minute); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	in[0] = 'X' // caller mutates its buffer after Set

	out, _, err := l.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "abc" {
		t.Fatalf("stored value aliased caller buffer: %q", out)
	}

	out[0] = 'Y' // caller mutates the returned buffer
	again, _, err := l.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != "abc" {
		t.Fatalf("returned value aliased stored buffer: %q", again)
	}
}

func TestLazyExpiry(t *testing.T) {
	ctx := context.Background()
	l := New(Config{})

	if ok, err := l.Set(ctx, "k", []byte("v"), 30*time.Millisecond); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	time.Sleep(50 * time.Millisecond)

	if _, found, err := l.Get(ctx, "k"); err != nil || found {
		t.Fatalf("expected miss after expiry, got found=%v err=%v", found, err)
	}
}

func TestPressureRejection(t *testing.T) {
	ctx := context.Background()
	l := New(Config{MaxEntries: 2})

	for i := 0; i < 2; i++ {
		ok, err := l.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), time.Minute)
		if err != nil || !ok {
			t.Fatalf("fill %d: ok=%v err=%v", i, ok, err)
		}
	}

	// full map rejects a new key without error
	ok, err := l.Set(ctx, "k2", []byte("v"), time.Minute)
	if err != nil {
		t.Fatalf("pressure rejection must not error: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false on full map")
	}

	// overwriting an existing key still works at capacity
	ok, err = l.Set(ctx, "k0", []byte("v2"), time.Minute)
	if err != nil || !ok {
		t.Fatalf("overwrite at capacity: ok=%v err=%v", ok, err)
	}
}

func TestPressureSweepsExpiredFirst(t *testing.T) {
	ctx := context.Background()
	l := New(Config{MaxEntries: 2})

	if ok, _ := l.Set(ctx, "stale", []byte("v"), 20*time.Millisecond); !ok {
		t.Fatal("seed set failed")
	}
	if ok, _ := l.Set(ctx, "live", []byte("v"), time.Minute); !ok {
		t.Fatal("seed set failed")
	}
	time.Sleep(40 * time.Millisecond)

	// the expired entry is swept to make room
	ok, err := l.Set(ctx, "new", []byte("v"), time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected insert after sweep: ok=%v err=%v", ok, err)
	}

	if _, found, _ := l.Get(ctx, "live"); !found {
		t.Fatalf("live entry lost during sweep")
	}
}

func TestSetsAndDel(t *testing.T) {
	ctx := context.Background()
	l := New(Config{})

	if err := l.AddToSet(ctx, "idx:ns", "ent:a", time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := l.AddToSet(ctx, "idx:ns", "ent:b", time.Minute); err != nil {
		t.Fatal(err)
	}

	members, err := l.Members(ctx, "idx:ns")
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 2 {
		t.Fatalf("members = %v, want 2 entries", members)
	}

	if err := l.Del(ctx, "idx:ns"); err != nil {
		t.Fatal(err)
	}
	members, err = l.Members(ctx, "idx:ns")
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 0 {
		t.Fatalf("expected empty set after Del, got %v", members)
	}

	// absent keys delete cleanly
	if err := l.Del(ctx, "ent:absent"); err != nil {
		t.Fatal(err)
	}
}
