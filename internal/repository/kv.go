// Package repository provides a PostgreSQL implementation of the durable
// key-value storage used by the account store.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresKVRepository stores values in the kv table.
type PostgresKVRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresKVRepository creates a new PostgresKVRepository using the provided *sql.DB.
// db must be a valid connection to a PostgreSQL instance with the kv table created.
func NewPostgresKVRepository(db *sql.DB) *PostgresKVRepository {
	return &PostgresKVRepository{DB: db}
}

// Get fetches the value stored under key.
//
//	ctx: context for cancellation and deadlines
//	key: storage key
//
// Returns ok=false without an error when no row exists.
func (r *PostgresKVRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := r.DB.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or overwrites the value stored under key.
func (r *PostgresKVRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
