package kv

import (
	"context"
	"errors"
	"testing"

	"movigo/internal/domain"
	"movigo/internal/repository"
	"movigo/internal/store"
)

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sessions := NewSessionRepository(store.NewMemory())

	if _, err := sessions.Current(ctx); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound with no session, got %v", err)
	}

	profile := &domain.PublicProfile{ID: "u1", Name: "Ana Gomez", Email: "ana@example.com"}
	if err := sessions.SetCurrent(ctx, profile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current, err := sessions.Current(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current.ID != "u1" || current.Email != "ana@example.com" {
		t.Errorf("unexpected session profile: %+v", current)
	}

	if err := sessions.Clear(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := sessions.Current(ctx); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}
}
