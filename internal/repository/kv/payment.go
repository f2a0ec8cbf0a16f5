package kv

import (
	"context"

	"movigo/internal/domain"
	"movigo/internal/repository"
	"movigo/internal/store"
)

// PaymentRepository is a key-value implementation of
// repository.PaymentRepository.
type PaymentRepository struct {
	store store.Store
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(s store.Store) *PaymentRepository {
	return &PaymentRepository{store: s}
}

func (r *PaymentRepository) List(ctx context.Context) ([]*domain.Payment, error) {
	return loadCollection[domain.Payment](ctx, r.store, store.KeyPayments)
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	payments, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *PaymentRepository) GetByRentalID(ctx context.Context, rentalID string) (*domain.Payment, error) {
	payments, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if p.RentalID == rentalID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if violations := payment.Validate(); len(violations) > 0 {
		return repository.NewValidationError("payment", violations)
	}

	payments, err := r.List(ctx)
	if err != nil {
		return err
	}

	for _, existing := range payments {
		if existing.RentalID == payment.RentalID {
			return &repository.ConflictError{Entity: "payment", Field: "rental", Value: payment.RentalID}
		}
	}

	payments = append(payments, payment)
	return replaceAll(ctx, r.store, store.KeyPayments, payments)
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	payments, err := r.List(ctx)
	if err != nil {
		return err
	}

	for _, p := range payments {
		if p.ID == id {
			p.Status = status
			return replaceAll(ctx, r.store, store.KeyPayments, payments)
		}
	}

	return repository.ErrNotFound
}

func (r *PaymentRepository) Stats(ctx context.Context) (*repository.PaymentStats, error) {
	payments, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &repository.PaymentStats{
		Total:    len(payments),
		ByStatus: make(map[domain.PaymentStatus]int),
	}
	for _, p := range payments {
		stats.ByStatus[p.Status]++
		if p.Status == domain.PaymentCompleted {
			stats.Collected += p.Amount
		}
	}
	return stats, nil
}

var _ repository.PaymentRepository = (*PaymentRepository)(nil)
