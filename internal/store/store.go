// Package store defines the durable key-value contract the repositories
// persist through. Values are opaque JSON documents; every write replaces
// the whole document for its key (last writer wins, no merge).
package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned when a key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// Store is a durable key-value document store.
type Store interface {
	// Get returns the document stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the document stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}

// Collection keys in the shared namespace.
const (
	KeyStations    = "stations"
	KeyTransports  = "transports"
	KeyUsers       = "users"
	KeyRentals     = "rentals"
	KeyPayments    = "payments"
	KeyCurrentUser = "currentUser"
)
