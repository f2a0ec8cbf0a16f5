package repository

import (
	"context"

	"movigo/internal/domain"
)

// UserStats is the derived aggregate view over all users.
type UserStats struct {
	Total             int `json:"total"`
	Active            int `json:"active"`
	WithActiveRentals int `json:"withActiveRentals"`
	RegisteredLast30d int `json:"registeredLast30Days"`
}

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// List retrieves all users; empty slice if none stored.
	List(ctx context.Context) ([]*domain.User, error)

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create validates the user, enforces email and document
	// uniqueness and persists it.
	Create(ctx context.Context, user *domain.User) error

	// Update re-validates and persists an existing user.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user. Fails with a StateError while the user
	// has active rentals.
	Delete(ctx context.Context, id string) error

	// Stats returns aggregate user statistics.
	Stats(ctx context.Context) (*UserStats, error)
}
