package accounts

import (
	"regexp"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/atinyakov/accountkeeper/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var timeIDPattern = regexp.MustCompile(`^(\d+)([0-9a-z]{9})$`)

func TestNewAccount_Defaults(t *testing.T) {
	acc := NewAccount(IDGeneratorFunc(func() string { return "fixed" }))

	assert.Equal(t, "fixed", acc.ID)
	assert.Equal(t, []models.Tag{}, acc.Tags)
	assert.Equal(t, models.RecordTypeLocalized, acc.RecordType)
	assert.True(t, acc.RecordType.IsLocal())
	assert.Equal(t, "", acc.Login)
	require.NotNil(t, acc.Password)
	assert.Equal(t, "", *acc.Password)
}

func TestTimeIDGenerator_Format(t *testing.T) {
	g := NewTimeIDGenerator()
	m := timeIDPattern.FindStringSubmatch(g.NewID())
	require.NotNil(t, m)

	ms, err := strconv.ParseInt(m[1], 10, 64)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().UnixMilli(), ms, 5000)
}

func TestTimeIDGenerator_MonotonicWithFrozenClock(t *testing.T) {
	frozen := time.UnixMilli(1_700_000_000_000)
	g := &TimeIDGenerator{now: func() time.Time { return frozen }}

	var prev int64
	for i := 0; i < 100; i++ {
		m := timeIDPattern.FindStringSubmatch(g.NewID())
		require.NotNil(t, m)
		ms, _ := strconv.ParseInt(m[1], 10, 64)
		assert.Greater(t, ms, prev)
		prev = ms
	}
}

func TestTimeIDGenerator_ConcurrentUnique(t *testing.T) {
	g := NewTimeIDGenerator()
	const workers, each = 8, 200

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*each)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				id := g.NewID()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*each)
}

func TestIDGeneratorByName(t *testing.T) {
	g, err := IDGeneratorByName("uuid")
	require.NoError(t, err)
	_, err = uuid.Parse(g.NewID())
	assert.NoError(t, err)

	g, err = IDGeneratorByName("")
	require.NoError(t, err)
	assert.Regexp(t, timeIDPattern, g.NewID())

	_, err = IDGeneratorByName("sequential")
	var unknown *UnknownSchemeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "sequential", unknown.Name)
}
