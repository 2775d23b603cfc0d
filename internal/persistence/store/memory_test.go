package store

import (
	"context"
	"testing"
	"time"

	"github.com/roach88/nyx/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetMissing(t *testing.T) {
	t.Parallel()

	st := NewMemoryStore()
	_, err := st.Get(context.Background(), "tasks", "nope")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestMemoryStore_UpsertAndGet(t *testing.T) {
	t.Parallel()

	st := NewMemoryStore()
	require.NoError(t, st.Upsert(context.Background(), "tasks", domain.Record{"id": "1", "title": "A"}))

	rec, err := st.Get(context.Background(), "tasks", "1")
	require.NoError(t, err)
	assert.Equal(t, "A", rec["title"])

	// mutating the returned copy must not leak back into the store
	rec["title"] = "B"
	again, err := st.Get(context.Background(), "tasks", "1")
	require.NoError(t, err)
	assert.Equal(t, "A", again["title"])
}

func TestMemoryStore_LastModified(t *testing.T) {
	t.Parallel()

	st := NewMemoryStore()

	_, exists, err := st.LastModified(context.Background(), "tasks", "1")
	require.NoError(t, err)
	assert.False(t, exists)

	ts := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, st.Upsert(context.Background(), "tasks", domain.Record{"id": "1", "last_modified": ts}))

	got, exists, err := st.LastModified(context.Background(), "tasks", "1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, ts, got)
}

func TestMemoryStore_TablesAreIsolated(t *testing.T) {
	t.Parallel()

	st := NewMemoryStore()
	require.NoError(t, st.Upsert(context.Background(), "tasks", domain.Record{"id": "1"}))

	_, err := st.Get(context.Background(), "notes", "1")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}
