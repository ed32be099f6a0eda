package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atinyakov/accountkeeper/internal/config"
	"github.com/atinyakov/accountkeeper/internal/db"
	"github.com/atinyakov/accountkeeper/internal/repository"
	"go.uber.org/zap"
)

const boltFile = "accounts.db"

// Open returns the backend selected by opts.Backend together with a func
// releasing it.
func Open(_ context.Context, opts *config.Options, log *zap.Logger) (KV, func() error, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case "memory":
		log.Info("using in-memory storage")
		return NewMemoryKV(), noop, nil

	case "", "file":
		kv, err := NewFileKV(opts.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using file storage", zap.String("dir", kv.Dir()))
		return kv, noop, nil

	case "bolt":
		if err := os.MkdirAll(opts.Path, 0700); err != nil {
			return nil, nil, fmt.Errorf("create storage directory: %w", err)
		}
		path := filepath.Join(opts.Path, boltFile)
		bkv, err := OpenBoltKV(path)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using bolt storage", zap.String("path", path))
		return bkv, bkv.Close, nil

	case "postgres":
		conn, err := db.InitPostgres(opts.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using postgres storage")
		return repository.NewPostgresKVRepository(conn), conn.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
