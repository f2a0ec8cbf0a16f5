package repository

import (
	"context"

	"movigo/internal/domain"
)

// RentalStats is the derived aggregate view over all rentals.
type RentalStats struct {
	Total              int                        `json:"total"`
	ByStatus           map[domain.RentalStatus]int `json:"byStatus"`
	Revenue            float64                    `json:"revenue"`
	AvgDurationMinutes float64                    `json:"avgDurationMinutes"`
}

// RentalRepository defines the persistence operations for rentals.
// Rentals are never deleted; closed ones stay in the store for history.
type RentalRepository interface {
	// List retrieves all rentals; empty slice if none stored.
	List(ctx context.Context) ([]*domain.Rental, error)

	// GetByID retrieves a rental by ID.
	GetByID(ctx context.Context, id string) (*domain.Rental, error)

	// ListByUser retrieves all rentals for a user.
	ListByUser(ctx context.Context, userID string) ([]*domain.Rental, error)

	// Create validates the rental and persists it.
	Create(ctx context.Context, rental *domain.Rental) error

	// Update re-validates and persists an existing rental. Fails with
	// a StateError when the stored rental is already closed, except
	// for the paid flag flip on a finalized rental.
	Update(ctx context.Context, rental *domain.Rental) error

	// Stats returns aggregate rental statistics.
	Stats(ctx context.Context) (*RentalStats, error)
}
