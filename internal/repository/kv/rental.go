package kv

import (
	"context"
	"time"

	"movigo/internal/domain"
	"movigo/internal/repository"
	"movigo/internal/store"
)

// RentalRepository is a key-value implementation of
// repository.RentalRepository. Rentals are append-only history: there
// is no delete, and a closed rental only ever changes its paid flag.
type RentalRepository struct {
	store store.Store
}

// NewRentalRepository creates a new rental repository.
func NewRentalRepository(s store.Store) *RentalRepository {
	return &RentalRepository{store: s}
}

func (r *RentalRepository) List(ctx context.Context) ([]*domain.Rental, error) {
	return loadCollection[domain.Rental](ctx, r.store, store.KeyRentals)
}

func (r *RentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	rentals, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, rental := range rentals {
		if rental.ID == id {
			return rental, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *RentalRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Rental, error) {
	rentals, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Rental, 0)
	for _, rental := range rentals {
		if rental.UserID == userID {
			result = append(result, rental)
		}
	}
	return result, nil
}

func (r *RentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	if violations := rental.Validate(); len(violations) > 0 {
		return repository.NewValidationError("rental", violations)
	}

	rentals, err := r.List(ctx)
	if err != nil {
		return err
	}

	for _, existing := range rentals {
		if existing.ID == rental.ID {
			return &repository.ConflictError{Entity: "rental", Field: "id", Value: rental.ID}
		}
	}

	rentals = append(rentals, rental)
	return replaceAll(ctx, r.store, store.KeyRentals, rentals)
}

func (r *RentalRepository) Update(ctx context.Context, rental *domain.Rental) error {
	if violations := rental.Validate(); len(violations) > 0 {
		return repository.NewValidationError("rental", violations)
	}

	rentals, err := r.List(ctx)
	if err != nil {
		return err
	}

	for i, existing := range rentals {
		if existing.ID != rental.ID {
			continue
		}
		// Terminal states are immutable except the paid flag flip on a
		// finalized rental.
		if existing.Closed() && !paidFlipOnly(existing, rental) {
			return &repository.StateError{
				Entity: "rental",
				ID:     rental.ID,
				Reason: "a closed rental cannot be modified",
			}
		}
		rentals[i] = rental
		return replaceAll(ctx, r.store, store.KeyRentals, rentals)
	}

	return repository.ErrNotFound
}

func (r *RentalRepository) Stats(ctx context.Context) (*repository.RentalStats, error) {
	rentals, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &repository.RentalStats{
		Total:    len(rentals),
		ByStatus: make(map[domain.RentalStatus]int),
	}
	finalized := 0
	durationSum := 0
	for _, rental := range rentals {
		stats.ByStatus[rental.Status]++
		if rental.Status == domain.RentalFinalized {
			stats.Revenue += rental.Fare
			durationSum += rental.DurationMinutes
			finalized++
		}
	}
	if finalized > 0 {
		stats.AvgDurationMinutes = float64(durationSum) / float64(finalized)
	}
	return stats, nil
}

// paidFlipOnly reports whether next differs from prev only by the paid
// flag on a finalized rental. Every other field must be untouched.
func paidFlipOnly(prev, next *domain.Rental) bool {
	if prev.Status != domain.RentalFinalized || next.Status != domain.RentalFinalized {
		return false
	}
	return prev.ID == next.ID &&
		prev.UserID == next.UserID &&
		prev.TransportID == next.TransportID &&
		prev.OriginStationID == next.OriginStationID &&
		equalStringPtr(prev.DestinationStationID, next.DestinationStationID) &&
		prev.Start.Equal(next.Start) &&
		equalTimePtr(prev.End, next.End) &&
		prev.DurationMinutes == next.DurationMinutes &&
		prev.Fare == next.Fare &&
		prev.CancelReason == next.CancelReason
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

var _ repository.RentalRepository = (*RentalRepository)(nil)
