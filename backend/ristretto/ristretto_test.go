package ristretto

import (
	"context"
	"testing"
	"time"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New(Config{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = b.Close(context.Background()) })
	return b
}

func TestInvalidConfigRejected(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error on zero config")
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	ok, err := b.Set(ctx, "ent:k", []byte("payload"), time.Minute)
	if err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	b.Wait() // writes are buffered

	v, found, err := b.Get(ctx, "ent:k")
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if string(v) != "payload" {
		t.Fatalf("value mismatch: %q", v)
	}
}

func TestTTLExpiry(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	if ok, _ := b.Set(ctx, "k", []byte("v"), 30*time.Millisecond); !ok {
		t.Fatal("Set rejected")
	}
	b.Wait()
	time.Sleep(60 * time.Millisecond)

	if _, found, err := b.Get(ctx, "k"); err != nil || found {
		t.Fatalf("expected miss after TTL, got found=%v err=%v", found, err)
	}
}

func TestDelCoversValuesAndSets(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)

	if ok, _ := b.Set(ctx, "ent:k", []byte("v"), time.Minute); !ok {
		t.Fatal("Set rejected")
	}
	b.Wait()
	if err := b.Del(ctx, "ent:k"); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := b.Get(ctx, "ent:k"); found {
		t.Fatalf("value survived Del")
	}

	if err := b.AddToSet(ctx, "idx:ns", "ent:k", time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := b.Del(ctx, "idx:ns"); err != nil {
		t.Fatal(err)
	}
	members, err := b.Members(ctx, "idx:ns")
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 0 {
		t.Fatalf("set survived Del: %v", members)
	}
}
