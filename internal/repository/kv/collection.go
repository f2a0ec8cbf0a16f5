// Package kv implements the entity repositories over the durable
// key-value store. Every mutation is read-entire-collection,
// modify-in-memory, write-entire-collection-back: the store never sees
// partial updates, and concurrent writers overwrite each other (last
// write wins). This matches the documented persistence contract.
package kv

import (
	"context"
	"encoding/json"
	"errors"

	"movigo/internal/store"
)

// loadCollection reads and decodes the whole collection stored under
// key. An unwritten key decodes to an empty collection.
func loadCollection[T any](ctx context.Context, s store.Store, key string) ([]*T, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return []*T{}, nil
		}
		return nil, err
	}

	var records []*T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []*T{}
	}
	return records, nil
}

// replaceAll encodes and writes back the whole collection for key.
func replaceAll[T any](ctx context.Context, s store.Store, key string, records []*T) error {
	if records == nil {
		records = []*T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, data)
}
