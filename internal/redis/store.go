// Package redis provides the Redis-backed durable store and the
// transport lock used to guard the rental read-check-write window.
package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"movigo/internal/store"
)

const keyPrefix = "movigo:"

// Store is a Redis implementation of store.Store. Documents are kept
// without TTL under a namespaced key.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis-backed store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrKeyNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, keyPrefix+key, value, 0).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}

var _ store.Store = (*Store)(nil)
