package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, found, err := s.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("found=%v err=%v for missing key", found, err)
	}

	if err := s.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("set err=%v", err)
	}
	v, found, err := s.Get(ctx, "k")
	if err != nil || !found || string(v) != "v" {
		t.Fatalf("get=%q found=%v err=%v", v, found, err)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete err=%v", err)
	}
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatalf("key survived delete")
	}
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("set err=%v", err)
	}
	if _, found, _ := s.Get(ctx, "k"); !found {
		t.Fatalf("fresh key not found")
	}
	time.Sleep(25 * time.Millisecond)
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatalf("expired key still readable")
	}
}

func TestMemoryStore_CopiesValue(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	src := []byte("abc")
	if err := s.Set(ctx, "k", src, 0); err != nil {
		t.Fatalf("set err=%v", err)
	}
	src[0] = 'x'

	v, _, _ := s.Get(ctx, "k")
	if string(v) != "abc" {
		t.Fatalf("stored value aliased caller slice: %q", v)
	}
}
