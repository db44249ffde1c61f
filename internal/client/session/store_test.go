package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestSQLiteStore_GetAbsent(t *testing.T) {
	store := NewSQLiteStore(setupDB(t))

	value, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, value)
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(setupDB(t))

	require.NoError(t, store.Set(ctx, "k", []byte("v1")))
	require.NoError(t, store.Set(ctx, "k", []byte("v2")))

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), value)
}

func TestSQLiteStore_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(setupDB(t))

	require.NoError(t, store.Set(ctx, "a", []byte("1")))
	require.NoError(t, store.Set(ctx, "b", []byte("2")))

	require.NoError(t, store.Delete(ctx, "a"))
	value, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.Nil(t, value)

	require.NoError(t, store.Clear(ctx))
	value, err = store.Get(ctx, "b")
	require.NoError(t, err)
	require.Nil(t, value)
}
