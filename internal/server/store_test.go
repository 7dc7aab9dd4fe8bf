package server

import (
	"context"
	"errors"
	"testing"
)

func TestPrefStore(t *testing.T) {
	ctx := context.Background()
	s := setupPrefs(t)

	if _, err := s.Language(ctx, "visitor-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.SetLanguage(ctx, "visitor-1", "ro"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetLanguage(ctx, "visitor-1", "ar"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := s.SetLanguage(ctx, "visitor-2", "uk"); err != nil {
		t.Fatalf("set other: %v", err)
	}

	got, err := s.Language(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "ar" {
		t.Errorf("language = %q, want ar", got)
	}
	if got, _ := s.Language(ctx, "visitor-2"); got != "uk" {
		t.Errorf("visitor-2 language = %q, want uk", got)
	}
}
