package server

import (
	"errors"
	"testing"
	"time"
)

func TestRegistrySweep(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(time.Hour)
	r.now = func() time.Time { return now }

	r.Add(&playSession{ID: "old"})
	now = now.Add(30 * time.Minute)
	r.Add(&playSession{ID: "fresh"})

	now = now.Add(45 * time.Minute)
	if n := r.Sweep(); n != 1 {
		t.Fatalf("swept %d sessions, want 1", n)
	}
	if _, err := r.Get("old"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old session still present: %v", err)
	}
	if _, err := r.Get("fresh"); err != nil {
		t.Errorf("fresh session missing: %v", err)
	}
}

func TestRegistryGetTouches(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(time.Hour)
	r.now = func() time.Time { return now }

	r.Add(&playSession{ID: "a"})
	now = now.Add(50 * time.Minute)
	if _, err := r.Get("a"); err != nil {
		t.Fatal(err)
	}

	now = now.Add(50 * time.Minute)
	if n := r.Sweep(); n != 0 {
		t.Errorf("swept %d, want 0 after recent use", n)
	}
	if r.Len() != 1 {
		t.Errorf("len = %d, want 1", r.Len())
	}
}
