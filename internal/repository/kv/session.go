package kv

import (
	"context"
	"encoding/json"
	"errors"

	"movigo/internal/domain"
	"movigo/internal/repository"
	"movigo/internal/store"
)

// SessionRepository is a key-value implementation of
// repository.SessionRepository.
type SessionRepository struct {
	store store.Store
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(s store.Store) *SessionRepository {
	return &SessionRepository{store: s}
}

func (r *SessionRepository) Current(ctx context.Context) (*domain.PublicProfile, error) {
	data, err := r.store.Get(ctx, store.KeyCurrentUser)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var profile domain.PublicProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *SessionRepository) SetCurrent(ctx context.Context, profile *domain.PublicProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.KeyCurrentUser, data)
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, store.KeyCurrentUser)
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
