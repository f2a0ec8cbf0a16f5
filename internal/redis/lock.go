package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed transport locking in Redis. The rental
// coordinator holds a lock for the duration of its read-check-write
// sequence so two instances cannot rent the same transport.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireTransportLock attempts to acquire a lock for the given transport.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireTransportLock(ctx context.Context, transportID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:transport:%s", transportID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseTransportLock releases the lock for the given transport.
func (s *LockStore) ReleaseTransportLock(ctx context.Context, transportID string) error {
	key := fmt.Sprintf("lock:transport:%s", transportID)

	return s.client.Del(ctx, key).Err()
}

// LockStoreInterface defines the locking operations the rental
// coordinator needs.
type LockStoreInterface interface {
	AcquireTransportLock(ctx context.Context, transportID string, ttl time.Duration) (bool, error)
	ReleaseTransportLock(ctx context.Context, transportID string) error
}

var _ LockStoreInterface = (*LockStore)(nil)
