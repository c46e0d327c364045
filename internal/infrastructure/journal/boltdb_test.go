package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"), "journal")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndList(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Append(Entry{Kind: KindEmailFailure, TaskID: "t1", Recipient: "a@b.c", Reason: "refused"}))
	require.NoError(t, store.Append(Entry{Kind: KindActivityLogFailure, TaskID: "t2", Reason: "insert failed"}))

	entries, err := store.List(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// oldest first
	assert.Equal(t, "t1", entries[0].TaskID)
	assert.Equal(t, "t2", entries[1].TaskID)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].Timestamp.IsZero())

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}

func TestListLimit(t *testing.T) {
	store := openStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(Entry{Kind: KindEmailFailure, TaskID: "t", Reason: "x"}))
	}

	entries, err := store.List(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestPrune(t *testing.T) {
	store := openStore(t)

	old := Entry{Kind: KindEmailFailure, TaskID: "old", Reason: "x", Timestamp: time.Now().Add(-48 * time.Hour)}
	fresh := Entry{Kind: KindEmailFailure, TaskID: "fresh", Reason: "x"}
	require.NoError(t, store.Append(old))
	require.NoError(t, store.Append(fresh))

	removed, err := store.Prune(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	entries, err := store.List(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "fresh", entries[0].TaskID)
}
