package memory

import (
	"context"
	"testing"
	"time"

	"pawsync/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddQueryUpdateDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	id, err := store.Add(ctx, "walks", map[string]any{"ownerUserId": "user-1", "distanceMeters": 1200.0})
	require.NoError(t, err)
	_, err = store.Add(ctx, "walks", map[string]any{"ownerUserId": "user-2", "distanceMeters": 300.0})
	require.NoError(t, err)

	docs, err := store.Query(ctx, "walks", []repository.Filter{repository.Eq("ownerUserId", "user-1")}, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0].ID)

	require.NoError(t, store.Update(ctx, "walks", id, map[string]any{"medal": "BRONZE"}))
	doc, ok := store.Get("walks", id)
	require.True(t, ok)
	assert.Equal(t, "BRONZE", doc["medal"])
	assert.Equal(t, "user-1", doc["ownerUserId"])

	err = store.Update(ctx, "walks", "missing", map[string]any{"medal": "GOLD"})
	assert.ErrorIs(t, err, repository.ErrRemoteDocumentNotFound)

	require.NoError(t, store.Delete(ctx, "walks", id))
	require.NoError(t, store.Delete(ctx, "walks", id))
	assert.Equal(t, 1, store.Count("walks"))
}

func TestStore_QueryRangeAndOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	for i := range 4 {
		store.Put("activities", string(rune('a'+i)), map[string]any{
			"ownerUserId": "user-1",
			"scheduledAt": base.Add(time.Duration(i) * time.Hour),
		})
	}

	docs, err := store.Query(ctx, "activities", []repository.Filter{
		repository.Eq("ownerUserId", "user-1"),
		{Field: "scheduledAt", Op: repository.OpGreaterOrEqual, Value: base.Add(time.Hour)},
	}, &repository.OrderBy{Field: "scheduledAt", Descending: true})
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "d", docs[0].ID)
	assert.Equal(t, "b", docs[2].ID)
}

func TestStore_AddUnique(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first, created, err := store.AddUnique(ctx, "favorites", map[string]any{"dedupeKey": "user-1|animal-1"}, "user-1|animal-1")
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := store.AddUnique(ctx, "favorites", map[string]any{"dedupeKey": "user-1|animal-1"}, "user-1|animal-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.Count("favorites"))
}

func TestStore_OfflineAndInjectedFailures(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	store.SetOffline(true)
	_, err := store.Add(ctx, "favorites", map[string]any{})
	assert.ErrorIs(t, err, repository.ErrRemoteUnavailable)
	_, err = store.Query(ctx, "favorites", nil, nil)
	assert.ErrorIs(t, err, repository.ErrRemoteUnavailable)

	store.SetOffline(false)
	boom := errors.New("boom")
	store.FailNext("query", boom)

	_, err = store.Query(ctx, "favorites", nil, nil)
	assert.ErrorIs(t, err, boom)
	_, err = store.Query(ctx, "favorites", nil, nil)
	assert.NoError(t, err)
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore().Add(ctx, "favorites", map[string]any{})
	assert.ErrorIs(t, err, repository.ErrRemoteUnavailable)
}
