package kv

import (
	"context"
	"strings"
	"time"

	"movigo/internal/domain"
	"movigo/internal/repository"
	"movigo/internal/store"
)

// UserRepository is a key-value implementation of
// repository.UserRepository.
type UserRepository struct {
	store store.Store
}

// NewUserRepository creates a new user repository.
func NewUserRepository(s store.Store) *UserRepository {
	return &UserRepository{store: s}
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	return loadCollection[domain.User](ctx, r.store, store.KeyUsers)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if violations := user.Validate(); len(violations) > 0 {
		return repository.NewValidationError("user", violations)
	}

	users, err := r.List(ctx)
	if err != nil {
		return err
	}

	if err := checkUserUniqueness(users, user); err != nil {
		return err
	}

	users = append(users, user)
	return replaceAll(ctx, r.store, store.KeyUsers, users)
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	if violations := user.Validate(); len(violations) > 0 {
		return repository.NewValidationError("user", violations)
	}

	users, err := r.List(ctx)
	if err != nil {
		return err
	}

	found := false
	for i, existing := range users {
		if existing.ID == user.ID {
			users[i] = user
			found = true
			continue
		}
		if err := checkUserUniqueness([]*domain.User{existing}, user); err != nil {
			return err
		}
	}
	if !found {
		return repository.ErrNotFound
	}

	return replaceAll(ctx, r.store, store.KeyUsers, users)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}

	for i, u := range users {
		if u.ID != id {
			continue
		}
		if len(u.ActiveRentalIDs) > 0 {
			return &repository.StateError{
				Entity: "user",
				ID:     id,
				Reason: "cannot delete a user with active rentals",
			}
		}
		users = append(users[:i], users[i+1:]...)
		return replaceAll(ctx, r.store, store.KeyUsers, users)
	}

	return repository.ErrNotFound
}

func (r *UserRepository) Stats(ctx context.Context) (*repository.UserStats, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -30)
	stats := &repository.UserStats{Total: len(users)}
	for _, u := range users {
		if u.Active {
			stats.Active++
		}
		if len(u.ActiveRentalIDs) > 0 {
			stats.WithActiveRentals++
		}
		if u.RegisteredAt.After(cutoff) {
			stats.RegisteredLast30d++
		}
	}
	return stats, nil
}

// checkUserUniqueness enforces the unique-email and unique-document
// constraints against the given existing users.
func checkUserUniqueness(existing []*domain.User, user *domain.User) error {
	for _, e := range existing {
		if strings.EqualFold(e.Email, user.Email) {
			return &repository.ConflictError{Entity: "user", Field: "email", Value: user.Email}
		}
		if e.DocumentType == user.DocumentType && strings.EqualFold(e.DocumentNumber, user.DocumentNumber) {
			return &repository.ConflictError{Entity: "user", Field: "document", Value: user.DocumentNumber}
		}
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
