package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/atinyakov/accountkeeper/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// exerciseKV runs the behaviour every backend must share.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	v, ok, err := kv.Get(ctx, "accounts")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)

	require.NoError(t, kv.Set(ctx, "accounts", []byte(`[1]`)))
	require.NoError(t, kv.Set(ctx, "accounts", []byte(`[2]`)))
	require.NoError(t, kv.Set(ctx, "other", []byte(`x`)))

	v, ok, err = kv.Get(ctx, "accounts")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[2]`, string(v))

	v[0] = 'z'
	v, _, _ = kv.Get(ctx, "accounts")
	assert.Equal(t, `[2]`, string(v), "returned slice must not alias storage")
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemoryKV())
}

func TestFileKV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	kv, err := NewFileKV(dir)
	require.NoError(t, err)
	exerciseKV(t, kv)

	raw, err := os.ReadFile(filepath.Join(dir, "accounts"))
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(raw))

	leftovers, _ := filepath.Glob(filepath.Join(dir, ".tmp-*"))
	assert.Empty(t, leftovers)
}

func TestFileKV_Persists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "accounts", []byte(`[]`)))

	again, err := NewFileKV(dir)
	require.NoError(t, err)
	v, ok, err := again.Get(ctx, "accounts")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(v))
}

func TestFileKV_RejectsBadKeys(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "..", "a/b", "../escape"} {
		assert.Error(t, kv.Set(context.Background(), key, []byte("x")), key)
	}
}

func TestNewFileKV_EmptyDir(t *testing.T) {
	_, err := NewFileKV("")
	assert.EqualError(t, err, "directory is required")
}

func TestBoltKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.db")
	kv, err := OpenBoltKV(path)
	require.NoError(t, err)
	exerciseKV(t, kv)
	require.NoError(t, kv.Close())

	reopened, err := OpenBoltKV(path)
	require.NoError(t, err)
	defer reopened.Close()
	v, ok, err := reopened.Get(context.Background(), "other")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", string(v))
}

func TestOpen(t *testing.T) {
	log := zap.NewNop()
	dir := t.TempDir()

	cases := []struct {
		backend string
		check   func(t *testing.T, kv KV)
	}{
		{"memory", func(t *testing.T, kv KV) { assert.IsType(t, &MemoryKV{}, kv) }},
		{"file", func(t *testing.T, kv KV) { assert.IsType(t, &FileKV{}, kv) }},
		{"bolt", func(t *testing.T, kv KV) {
			assert.IsType(t, &BoltKV{}, kv)
			assert.FileExists(t, filepath.Join(dir, boltFile))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.backend, func(t *testing.T) {
			opts := config.Defaults()
			opts.Backend = tc.backend
			opts.Path = dir

			kv, closeFn, err := Open(context.Background(), opts, log)
			require.NoError(t, err)
			defer closeFn()
			tc.check(t, kv)
		})
	}
}

func TestOpen_Unknown(t *testing.T) {
	opts := config.Defaults()
	opts.Backend = "redis"

	_, _, err := Open(context.Background(), opts, zap.NewNop())
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
