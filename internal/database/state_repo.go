package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// SaveState upserts a JSON document under a key in the client_state
// table. The cart and the bar book document live here.
func (db *DB) SaveState(ctx context.Context, key string, value []byte) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO client_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()
	`, key, value)
	return err
}

// LoadState reads a JSON document by key. A missing key returns nil
// with no error.
func (db *DB) LoadState(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := db.Pool.QueryRow(ctx, `
		SELECT value FROM client_state WHERE key = $1
	`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

// RemoveState drops a key. Removing an absent key is not an error.
func (db *DB) RemoveState(ctx context.Context, key string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM client_state WHERE key = $1`, key)
	return err
}

// stateStore adapts the DB to the key-value interface the cart service
// consumes.
type stateStore struct {
	db *DB
}

// StateStore returns a key-value view over the client_state table.
func (db *DB) StateStore() *stateStore {
	return &stateStore{db: db}
}

func (s *stateStore) Save(ctx context.Context, key string, value []byte) error {
	return s.db.SaveState(ctx, key, value)
}

func (s *stateStore) Load(ctx context.Context, key string) ([]byte, error) {
	return s.db.LoadState(ctx, key)
}

func (s *stateStore) Remove(ctx context.Context, key string) error {
	return s.db.RemoveState(ctx, key)
}
