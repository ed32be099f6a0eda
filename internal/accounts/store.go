// Package accounts holds the account collection and the pure helpers around
// it: the record factory, the tag codec and the validator.
//
// A Store owns the in-memory collection and mirrors it into a storage.KV
// under a single key after every mutation. The whole collection is written
// each time; there are no incremental writes.
package accounts

import (
	"context"
	"fmt"
	"sync"

	"github.com/atinyakov/accountkeeper/internal/models"
	"github.com/atinyakov/accountkeeper/internal/storage"
	"go.uber.org/zap"
)

// DefaultKey is the storage key the collection is persisted under.
const DefaultKey = "accounts"

// Store is the persistent account collection. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	accounts []models.Account

	kv    storage.KV
	key   string
	codec Codec
	ids   IDGenerator
	log   *zap.Logger

	// version counts published snapshots; guarded by mu.
	version uint64

	subMu   sync.Mutex
	subs    map[int]func([]models.Account)
	nextSub int

	// deliverMu serialises delivery so subscribers see snapshots in
	// mutation order. delivered is guarded by it.
	deliverMu sync.Mutex
	delivered uint64
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithCodec sets the persisted encoding.
func WithCodec(c Codec) Option {
	return func(s *Store) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithIDGenerator sets the generator used by Add.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// NewStore builds a Store over kv and loads the persisted collection once.
// Malformed persisted data is logged and leaves the collection empty; only
// a failure to read from kv is returned.
func NewStore(ctx context.Context, kv storage.KV, opts ...Option) (*Store, error) {
	s := &Store{
		accounts: []models.Account{},
		kv:       kv,
		key:      DefaultKey,
		codec:    JSONCodec{},
		ids:      defaultIDs,
		log:      zap.NewNop(),
		subs:     make(map[int]func([]models.Account)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the collection with the persisted one. When nothing is
// stored, or the stored value cannot be decoded, the collection is left as
// it was and no error is returned.
func (s *Store) Load(ctx context.Context) error {
	data, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	if !ok || len(data) == 0 {
		return nil
	}

	loaded, err := s.codec.Unmarshal(data)
	if err != nil {
		s.log.Error("failed to load accounts from storage",
			zap.String("key", s.key), zap.Error(err))
		return nil
	}
	for i := range loaded {
		if loaded[i].Tags == nil {
			loaded[i].Tags = []models.Tag{}
		}
	}
	if loaded == nil {
		loaded = []models.Account{}
	}

	s.mu.Lock()
	s.accounts = loaded
	ver, snap := s.publishLocked()
	s.mu.Unlock()

	s.log.Debug("accounts loaded", zap.Int("count", len(snap)))
	s.notify(ver, snap)
	return nil
}

// Persist writes the whole collection to storage, overwriting what was there.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := s.codec.Marshal(s.accounts)
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		s.log.Error("failed to persist accounts", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("persist accounts: %w", err)
	}
	s.log.Debug("accounts persisted", zap.Int("count", len(s.accounts)), zap.Int("bytes", len(data)))
	return nil
}

// Add appends a new empty account, persists and returns it.
// The account stays in memory even when persisting fails.
func (s *Store) Add(ctx context.Context) (models.Account, error) {
	s.mu.Lock()
	acc := NewAccount(s.ids)
	for s.indexLocked(acc.ID) != -1 {
		acc.ID = s.ids.NewID()
	}
	s.accounts = append(s.accounts, acc)
	err := s.persistLocked(ctx)
	ver, snap := s.publishLocked()
	s.mu.Unlock()

	s.log.Debug("account added", zap.String("id", acc.ID))
	s.notify(ver, snap)
	return acc.Clone(), err
}

// Remove deletes the account with the given id and persists. It reports
// false, and does nothing, when no such account exists.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i == -1 {
		s.mu.Unlock()
		return false, nil
	}
	s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
	err := s.persistLocked(ctx)
	ver, snap := s.publishLocked()
	s.mu.Unlock()

	s.log.Debug("account removed", zap.String("id", id))
	s.notify(ver, snap)
	return true, err
}

// Update merges the set fields of patch into the account with the given id
// and persists. It reports false, and does nothing, when no such account
// exists.
func (s *Store) Update(ctx context.Context, id string, patch models.AccountPatch) (bool, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i == -1 {
		s.mu.Unlock()
		return false, nil
	}
	patch.Apply(&s.accounts[i])
	err := s.persistLocked(ctx)
	ver, snap := s.publishLocked()
	s.mu.Unlock()

	s.log.Debug("account updated", zap.String("id", id))
	s.notify(ver, snap)
	return true, err
}

// Get returns a copy of the account with the given id, or ErrNotFound.
func (s *Store) Get(id string) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i == -1 {
		return models.Account{}, ErrNotFound
	}
	return s.accounts[i].Clone(), nil
}

// Accounts returns a copy of the collection in insertion order.
func (s *Store) Accounts() []models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Count returns the number of accounts.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// Subscribe registers fn to receive a copy of the collection after every
// load and mutation. fn runs on the mutating goroutine after the store lock
// is released, one call at a time. When mutations race, a snapshot older
// than one already delivered is dropped, so the last call always reflects
// the current collection. fn may read the store but must not mutate it.
// The slice is shared by all subscribers and must not be modified. The
// returned func removes the subscription.
func (s *Store) Subscribe(fn func([]models.Account)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(ver uint64, snap []models.Account) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	if ver <= s.delivered {
		return
	}
	s.delivered = ver

	s.subMu.Lock()
	fns := make([]func([]models.Account), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (s *Store) indexLocked(id string) int {
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			return i
		}
	}
	return -1
}

// publishLocked stamps the current collection with the next version and
// returns a copy of it for notify.
func (s *Store) publishLocked() (uint64, []models.Account) {
	s.version++
	return s.version, s.snapshotLocked()
}

func (s *Store) snapshotLocked() []models.Account {
	out := make([]models.Account, len(s.accounts))
	for i, a := range s.accounts {
		out[i] = a.Clone()
	}
	return out
}
