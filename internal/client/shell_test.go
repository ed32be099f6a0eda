package client

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/atinyakov/accountkeeper/internal/accounts"
	"github.com/atinyakov/accountkeeper/internal/models"
	"github.com/atinyakov/accountkeeper/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedIDs(ids ...string) accounts.IDGenerator {
	return accounts.IDGeneratorFunc(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	})
}

func runShell(t *testing.T, store Store, input string) string {
	t.Helper()
	var out bytes.Buffer
	Run(context.Background(), store, strings.NewReader(input), &out)
	return out.String()
}

func newStore(t *testing.T) *accounts.Store {
	t.Helper()
	s, err := accounts.NewStore(context.Background(), storage.NewMemoryKV(),
		accounts.WithIDGenerator(fixedIDs("a1", "a2", "a3")))
	require.NoError(t, err)
	return s
}

func TestRun_AddEditValidateDelete(t *testing.T) {
	s := newStore(t)
	input := strings.Join([]string{
		"add",
		"add",
		"count",
		"validate a1",
		"edit a1",
		"alice", "pw", "", "ops; vpn",
		"validate a1",
		"delete a2",
		"delete a2",
		"list",
		"exit",
	}, "\n") + "\n"

	out := runShell(t, s, input)

	assert.Contains(t, out, "Account a1 added")
	assert.Contains(t, out, "Account a2 added")
	assert.Contains(t, out, "accounts> 2\n")
	assert.Contains(t, out, "Account is invalid: login, password")
	assert.Contains(t, out, "Account updated")
	assert.Contains(t, out, "Account is valid")
	assert.Contains(t, out, "Account deleted")
	assert.Contains(t, out, "Account not found")
	assert.Contains(t, out, "Stored accounts (1):")
	assert.Contains(t, out, "Tags: ops; vpn")
	assert.True(t, strings.HasSuffix(out, "Bye\n"))

	acc, err := s.Get("a1")
	require.NoError(t, err)
	assert.Equal(t, "alice", acc.Login)
	assert.Equal(t, []models.Tag{{Text: "ops"}, {Text: "vpn"}}, acc.Tags)
}

func TestRun_Get(t *testing.T) {
	s := newStore(t)
	out := runShell(t, s, "add\nget a1\nget zz\n")

	assert.Contains(t, out, `"id": "a1"`)
	assert.Contains(t, out, `"recordType": "Локальная"`)
	assert.Contains(t, out, "Account not found")
}

func TestRun_UsageAndUnknown(t *testing.T) {
	out := runShell(t, newStore(t), "get\nedit\ndelete\nvalidate\nfrobnicate\nhelp\n\n")

	for _, want := range []string{
		"Usage: get <id>", "Usage: edit <id>", "Usage: delete <id>", "Usage: validate <id>",
		"Unknown command", helpText,
	} {
		assert.Contains(t, out, want)
	}
}

// failingKV accepts no writes.
type failingKV struct {
	*storage.MemoryKV
}

func (failingKV) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestRun_AddNotSaved(t *testing.T) {
	s, err := accounts.NewStore(context.Background(), failingKV{storage.NewMemoryKV()},
		accounts.WithIDGenerator(fixedIDs("x1")))
	require.NoError(t, err)

	out := runShell(t, s, "add\n")

	assert.Contains(t, out, "Account x1 added in memory but not saved: persist accounts: disk full\n")
	assert.NotContains(t, out, "Account x1 added\n")
	assert.Equal(t, 1, s.Count())
}

// vanishingStore loses every account between Get and Update.
type vanishingStore struct {
	*accounts.Store
}

func (v vanishingStore) Update(ctx context.Context, id string, _ models.AccountPatch) (bool, error) {
	_, err := v.Store.Remove(ctx, id)
	return false, err
}

func TestRun_EditVanishedAccount(t *testing.T) {
	s := newStore(t)
	_, err := s.Add(context.Background())
	require.NoError(t, err)

	out := runShell(t, vanishingStore{s}, "edit a1\nbob\n\n\n\n")

	assert.Contains(t, out, "Account not found")
	assert.NotContains(t, out, "Account updated")
}
