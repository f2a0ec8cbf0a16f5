// Package postgres provides a PostgreSQL implementation of the durable
// store. Documents live in a single key/jsonb table so the store keeps
// the same whole-document replace contract as the Redis backend.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"movigo/internal/store"
)

// Querier abstracts *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is a PostgreSQL implementation of store.Store.
type Store struct {
	q Querier
}

// NewStore creates a new PostgreSQL document store.
func NewStore(db *sql.DB) *Store {
	return &Store{q: db}
}

// EnsureSchema creates the documents table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			key        TEXT PRIMARY KEY,
			doc        JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT doc FROM documents WHERE key = $1`

	var doc []byte
	err := s.q.QueryRowContext(ctx, query, key).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrKeyNotFound
		}
		return nil, err
	}

	return doc, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO documents (key, doc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
	`

	_, err := s.q.ExecContext(ctx, query, key, value)
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM documents WHERE key = $1`

	_, err := s.q.ExecContext(ctx, query, key)
	return err
}

var _ store.Store = (*Store)(nil)
