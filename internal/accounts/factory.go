package accounts

import (
	"crypto/rand"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/atinyakov/accountkeeper/internal/models"
	"github.com/google/uuid"
)

// IDGenerator produces identifiers for new accounts.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a plain function to IDGenerator.
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string { return f() }

const (
	suffixLen = 9
	base36    = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// TimeIDGenerator builds IDs from Unix milliseconds followed by a random
// base-36 suffix. The time component is strictly increasing per generator,
// so two IDs from the same generator never share a prefix.
type TimeIDGenerator struct {
	last atomic.Int64
	now  func() time.Time
}

// NewTimeIDGenerator returns a TimeIDGenerator reading the wall clock.
func NewTimeIDGenerator() *TimeIDGenerator {
	return &TimeIDGenerator{now: time.Now}
}

func (g *TimeIDGenerator) NewID() string {
	return strconv.FormatInt(g.tick(), 10) + randomSuffix()
}

func (g *TimeIDGenerator) tick() int64 {
	now := g.now().UnixMilli()
	for {
		prev := g.last.Load()
		next := now
		if next <= prev {
			next = prev + 1
		}
		if g.last.CompareAndSwap(prev, next) {
			return next
		}
	}
}

func randomSuffix() string {
	buf := make([]byte, suffixLen)
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = base36[int(b)%len(base36)]
	}
	return string(buf)
}

// UUIDGenerator issues random (version 4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

var defaultIDs = NewTimeIDGenerator()

// IDGeneratorByName maps a configured scheme to a generator.
// An empty name selects the time scheme.
func IDGeneratorByName(name string) (IDGenerator, error) {
	switch name {
	case "", "time":
		return defaultIDs, nil
	case "uuid":
		return UUIDGenerator{}, nil
	default:
		return nil, &UnknownSchemeError{Kind: "id scheme", Name: name}
	}
}

// NewAccount returns an empty local account with a fresh ID.
func NewAccount(ids IDGenerator) models.Account {
	if ids == nil {
		ids = defaultIDs
	}
	return models.Account{
		ID:         ids.NewID(),
		Tags:       []models.Tag{},
		RecordType: models.RecordTypeLocalized,
		Login:      "",
		Password:   models.StringPtr(""),
	}
}
