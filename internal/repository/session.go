package repository

import (
	"context"

	"movigo/internal/domain"
)

// SessionRepository persists the logged-in user's public profile under
// the shared currentUser key. The core does not own authentication; it
// only records which user the caller says is signed in.
type SessionRepository interface {
	// Current returns the signed-in profile, or ErrNotFound when no
	// session is stored.
	Current(ctx context.Context) (*domain.PublicProfile, error)

	// SetCurrent stores the signed-in profile.
	SetCurrent(ctx context.Context, profile *domain.PublicProfile) error

	// Clear removes the stored session.
	Clear(ctx context.Context) error
}
