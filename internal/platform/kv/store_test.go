package kv

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "billiards_current_user")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "billiards_current_user", []byte(`{"username":"alice"}`)))
	got, ok, err := store.Get(ctx, "billiards_current_user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"username":"alice"}`, string(got))

	require.NoError(t, store.Set(ctx, "billiards_current_user", []byte(`{"username":"bob"}`)))
	got, _, err = store.Get(ctx, "billiards_current_user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"bob"}`, string(got))

	require.NoError(t, store.Delete(ctx, "billiards_current_user"))
	_, ok, err = store.Get(ctx, "billiards_current_user")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, "never-set"))
	assert.ErrorIs(t, store.Set(ctx, "", []byte("x")), ErrEmptyKey)
}

func TestMemory_Contract(t *testing.T) {
	t.Parallel()
	exerciseStore(t, NewMemory())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	value := []byte("abc")
	require.NoError(t, store.Set(context.Background(), "k", value))
	value[0] = 'z'

	got, _, _ := store.Get(context.Background(), "k")
	assert.Equal(t, "abc", string(got))
}

func TestBadger_Contract(t *testing.T) {
	t.Parallel()

	store, err := OpenBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store)
}

func TestBadger_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := OpenBadger(BadgerConfig{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "billiards_session_cookies", []byte("[]")))
	require.NoError(t, store.Close())

	reopened, err := OpenBadger(BadgerConfig{Path: dir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, ok, err := reopened.Get(context.Background(), "billiards_session_cookies")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(got))
}

func TestOpenBadger_RequiresPath(t *testing.T) {
	t.Parallel()

	_, err := OpenBadger(BadgerConfig{})
	assert.Error(t, err)
}

func TestRedis_Contract(t *testing.T) {
	addr := os.Getenv("BILLIARDS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("BILLIARDS_TEST_REDIS_ADDR not set")
	}

	store := NewRedis(RedisConfig{Addr: addr, Prefix: "billiards-test:"})
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Ping(context.Background()))

	exerciseStore(t, store)
}
