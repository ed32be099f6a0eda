// Package storage provides the durable key-value storage the account store
// persists into. Backends: in-memory, one file per key, and an embedded bbolt
// database. The PostgreSQL backend lives in the repository package.
package storage

import (
	"context"
	"errors"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// KV is a string-keyed byte store.
type KV interface {
	// Get returns the value stored under key. ok is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}
