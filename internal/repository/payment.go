package repository

import (
	"context"

	"movigo/internal/domain"
)

// PaymentStats is the derived aggregate view over all payments.
type PaymentStats struct {
	Total     int                          `json:"total"`
	ByStatus  map[domain.PaymentStatus]int `json:"byStatus"`
	Collected float64                      `json:"collected"`
}

// PaymentRepository defines the persistence operations for payments.
type PaymentRepository interface {
	// List retrieves all payments; empty slice if none stored.
	List(ctx context.Context) ([]*domain.Payment, error)

	// GetByID retrieves a payment by ID.
	GetByID(ctx context.Context, id string) (*domain.Payment, error)

	// GetByRentalID retrieves the payment for a rental.
	// Returns nil, nil if no payment exists for the rental.
	GetByRentalID(ctx context.Context, rentalID string) (*domain.Payment, error)

	// Create validates the payment, enforces the one-payment-per-rental
	// rule and persists it.
	Create(ctx context.Context, payment *domain.Payment) error

	// UpdateStatus updates the status of a payment.
	UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error

	// Stats returns aggregate payment statistics.
	Stats(ctx context.Context) (*PaymentStats, error)
}
