package cache

import (
	"testing"
	"time"
)

func TestTTLStoreExpiry(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	s := NewTTLStoreWithClock(clock)

	s.Set("k", "v", time.Minute)
	if v, ok := s.Get("k"); !ok || v != "v" {
		t.Fatalf("expected live value, got %v ok=%v", v, ok)
	}

	now = now.Add(61 * time.Second)
	if _, ok := s.Get("k"); ok {
		t.Fatal("expected value to expire")
	}
}

func TestTTLStoreIncrWindow(t *testing.T) {
	now := time.Now()
	s := NewTTLStoreWithClock(func() time.Time { return now })

	if n := s.Incr("attempts", 5*time.Minute); n != 1 {
		t.Fatalf("first incr = %d, want 1", n)
	}
	if n := s.Incr("attempts", 5*time.Minute); n != 2 {
		t.Fatalf("second incr = %d, want 2", n)
	}

	// the window is anchored at the first increment
	now = now.Add(5*time.Minute + time.Second)
	if n := s.Incr("attempts", 5*time.Minute); n != 1 {
		t.Fatalf("incr after window = %d, want 1", n)
	}
}

func TestTTLStoreDelete(t *testing.T) {
	s := NewTTLStore()
	s.Set("k", 42, time.Minute)
	s.Delete("k")
	if s.GetInt("k") != 0 {
		t.Fatal("expected deleted counter to read 0")
	}
}
