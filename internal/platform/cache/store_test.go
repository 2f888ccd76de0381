package cache

import (
	"testing"
	"time"
)

func TestStore_SetGet(t *testing.T) {
	s := NewStore()

	s.Set(t.Context(), "k", "v", time.Minute)
	got, ok := s.Get(t.Context(), "k")
	if !ok {
		t.Fatal("expected hit")
	}
	if got != "v" {
		t.Fatalf("unexpected value: %v", got)
	}
}

func TestStore_ExpiresLazily(t *testing.T) {
	s := NewStore()

	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Set(t.Context(), "k", "v", 30*time.Second)
	if _, ok := s.Get(t.Context(), "k"); !ok {
		t.Fatal("expected hit before expiry")
	}

	now = now.Add(30 * time.Second)
	if _, ok := s.Get(t.Context(), "k"); ok {
		t.Fatal("expected miss at expiry")
	}
	if s.Len() != 0 {
		t.Fatalf("expected expired entry deleted, len=%d", s.Len())
	}
}

func TestStore_OverwriteResetsTTL(t *testing.T) {
	s := NewStore()

	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Set(t.Context(), "k", "old", 10*time.Second)
	now = now.Add(9 * time.Second)
	s.Set(t.Context(), "k", "new", 10*time.Second)

	now = now.Add(5 * time.Second)
	got, ok := s.Get(t.Context(), "k")
	if !ok {
		t.Fatal("expected hit after overwrite")
	}
	if got != "new" {
		t.Fatalf("unexpected value: %v", got)
	}
}

func TestStore_NonPositiveTTLNeverExpires(t *testing.T) {
	s := NewStore()

	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Set(t.Context(), "k", "v", 0)
	now = now.Add(240 * time.Hour)
	if _, ok := s.Get(t.Context(), "k"); !ok {
		t.Fatal("expected entry without expiry to persist")
	}
}

func TestStore_Delete(t *testing.T) {
	s := NewStore()

	s.Set(t.Context(), "k", "v", time.Minute)
	s.Delete(t.Context(), "k")
	if _, ok := s.Get(t.Context(), "k"); ok {
		t.Fatal("expected miss after delete")
	}
}
