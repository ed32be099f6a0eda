package accounts

import (
	"context"

	"github.com/atinyakov/accountkeeper/internal/config"
	"github.com/atinyakov/accountkeeper/internal/models"
	"github.com/atinyakov/accountkeeper/internal/storage"
	"go.uber.org/zap"
)

// NewStoreFromConfig builds a Store over kv using the codec and ID scheme
// named in opts.
func NewStoreFromConfig(ctx context.Context, kv storage.KV, opts *config.Options, log *zap.Logger) (*Store, error) {
	codec, err := CodecByName(opts.Codec)
	if err != nil {
		return nil, err
	}
	ids, err := IDGeneratorByName(opts.IDScheme)
	if err != nil {
		return nil, err
	}
	return NewStore(ctx, kv, WithLogger(log), WithCodec(codec), WithIDGenerator(ids))
}

// LogChanges subscribes the store's own logger to collection changes and
// logs the new size at debug level.
func (s *Store) LogChanges() (unsubscribe func()) {
	return s.Subscribe(func(accs []models.Account) {
		s.log.Debug("account collection changed", zap.Int("count", len(accs)))
	})
}
