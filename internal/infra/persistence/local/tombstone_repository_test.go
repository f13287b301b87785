package local

import (
	"context"
	"testing"

	"pawsync/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTombstoneRepository_SaveBumpsAttempts(t *testing.T) {
	ctx := context.Background()
	repo := NewTombstoneRepository(newTestDB(t))

	tombstone := &entity.Tombstone{
		Kind:        entity.KindFavorite,
		RemoteID:    "doc-1",
		OwnerUserID: "user-1",
		LastError:   "offline",
	}
	require.NoError(t, repo.Save(ctx, tombstone))
	require.NoError(t, repo.Save(ctx, &entity.Tombstone{
		Kind:        entity.KindFavorite,
		RemoteID:    "doc-1",
		OwnerUserID: "user-1",
		LastError:   "timeout",
	}))

	list, err := repo.List(ctx, entity.KindFavorite, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Attempts)
	assert.Equal(t, "timeout", list[0].LastError)
}

func TestTombstoneRepository_RemoteIDsAndRemove(t *testing.T) {
	ctx := context.Background()
	repo := NewTombstoneRepository(newTestDB(t))

	require.NoError(t, repo.Save(ctx, &entity.Tombstone{Kind: entity.KindWalk, RemoteID: "doc-1", OwnerUserID: "user-1"}))
	require.NoError(t, repo.Save(ctx, &entity.Tombstone{Kind: entity.KindWalk, RemoteID: "doc-2", OwnerUserID: "user-2"}))
	require.NoError(t, repo.Save(ctx, &entity.Tombstone{Kind: entity.KindActivity, RemoteID: "doc-3", OwnerUserID: "user-1"}))

	ids, err := repo.RemoteIDs(ctx, entity.KindWalk)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "doc-1")

	all, err := repo.List(ctx, entity.KindWalk, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Remove(ctx, entity.KindWalk, "doc-1"))
	require.NoError(t, repo.Remove(ctx, entity.KindWalk, "missing"))

	ids, err = repo.RemoteIDs(ctx, entity.KindWalk)
	require.NoError(t, err)
	assert.NotContains(t, ids, "doc-1")
	assert.Len(t, ids, 1)
}
