package local

import (
	"context"
	"sync"
	"testing"
	"time"

	"pawsync/internal/domain/entity"
	"pawsync/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := OpenSQLite(sqliteMemoryPath, nil, false)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func newFavorite(owner, animal string) *entity.Favorite {
	return &entity.Favorite{
		Record: entity.Record{
			OwnerUserID: owner,
			SubjectID:   animal,
			Status:      entity.StatusActive,
		},
		AnimalName: "Mochi",
	}
}

func TestRecordStore_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewFavoriteStore(newTestDB(t))

	fav := newFavorite("user-1", "animal-1")
	require.NoError(t, store.Insert(ctx, fav))
	assert.NotEqual(t, uuid.Nil, fav.LocalID)
	assert.False(t, fav.CreatedAt.IsZero())

	got, err := store.Get(ctx, fav.LocalID)
	require.NoError(t, err)
	assert.Equal(t, "Mochi", got.AnimalName)
	assert.Equal(t, entity.SyncStateLocalOnly, got.SyncState())
	assert.Nil(t, got.RemoteID)
}

func TestRecordStore_GetMissing(t *testing.T) {
	store := NewFavoriteStore(newTestDB(t))

	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
}

func TestRecordStore_DedupeKeyIsUnique(t *testing.T) {
	ctx := context.Background()
	store := NewFavoriteStore(newTestDB(t))

	require.NoError(t, store.Insert(ctx, newFavorite("user-1", "animal-1")))
	err := store.Insert(ctx, newFavorite("user-1", "animal-1"))
	assert.ErrorIs(t, err, repository.ErrDuplicateRecord)

	// Another user may favorite the same animal.
	require.NoError(t, store.Insert(ctx, newFavorite("user-2", "animal-1")))

	found, err := store.FindByDedupeKey(ctx, entity.DedupeKey("user-1", "animal-1"))
	require.NoError(t, err)
	assert.Equal(t, "user-1", found.OwnerUserID)
}

func TestRecordStore_PendingAndRemoteID(t *testing.T) {
	ctx := context.Background()
	store := NewFavoriteStore(newTestDB(t))

	first := newFavorite("user-1", "animal-1")
	second := newFavorite("user-1", "animal-2")
	other := newFavorite("user-2", "animal-3")
	for _, fav := range []*entity.Favorite{first, second, other} {
		require.NoError(t, store.Insert(ctx, fav))
	}

	pending, err := store.ListPending(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, store.SetRemoteID(ctx, first.LocalID, "doc-1"))

	pending, err = store.ListPending(ctx, "")
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	got, err := store.Get(ctx, first.LocalID)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", got.RemoteIDValue())
	assert.True(t, got.IsSynced())

	err = store.SetRemoteID(ctx, uuid.New(), "doc-x")
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
}

func TestRecordStore_UpdateStatusReleasesDedupeKey(t *testing.T) {
	ctx := context.Background()
	store := NewOwnershipStore(newTestDB(t))

	req := &entity.OwnershipRequest{
		Record: entity.Record{
			OwnerUserID: "user-1",
			SubjectID:   "animal-1",
			Status:      entity.StatusPending,
		},
		ShelterID: "shelter-1",
	}
	require.NoError(t, store.Insert(ctx, req))

	dup := *req
	dup.LocalID = uuid.Nil
	assert.ErrorIs(t, store.Insert(ctx, &dup), repository.ErrDuplicateRecord)

	updated, err := store.UpdateStatus(ctx, req.LocalID, entity.StatusRejected, true)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, updated.Status)
	assert.True(t, updated.Dirty)

	again := &entity.OwnershipRequest{
		Record: entity.Record{
			OwnerUserID: "user-1",
			SubjectID:   "animal-1",
			Status:      entity.StatusPending,
		},
	}
	require.NoError(t, store.Insert(ctx, again))
}

func TestRecordStore_DirtyAndMarkClean(t *testing.T) {
	ctx := context.Background()
	store := NewActivityStore(newTestDB(t))

	act := &entity.Activity{
		Record: entity.Record{
			OwnerUserID: "user-1",
			SubjectID:   "shelter-1",
			Status:      entity.StatusScheduled,
		},
		Title:       "Morning walk",
		Location:    orb.Point{121.5654, 25.0330},
		ScheduledAt: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Insert(ctx, act))
	require.NoError(t, store.SetRemoteID(ctx, act.LocalID, "doc-1"))

	_, err := store.UpdateStatus(ctx, act.LocalID, entity.StatusDone, true)
	require.NoError(t, err)

	dirty, err := store.ListDirty(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, dirty, 1)
	assert.InDelta(t, 121.5654, dirty[0].Location.Lon(), 1e-6)

	require.NoError(t, store.MarkClean(ctx, act.LocalID))

	dirty, err = store.ListDirty(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, dirty)
}

func TestRecordStore_WalkRouteRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewWalkStore(newTestDB(t))

	walk := &entity.Walk{
		Record: entity.Record{
			OwnerUserID: "user-1",
			SubjectID:   "dog-1",
			Status:      entity.StatusInProgress,
		},
		Route:     orb.LineString{{121.50, 25.03}, {121.51, 25.03}},
		StartedAt: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Insert(ctx, walk))

	walk.AppendPoint(orb.Point{121.52, 25.03})
	walk.Finish(time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC))
	require.NoError(t, store.Update(ctx, walk))

	got, err := store.Get(ctx, walk.LocalID)
	require.NoError(t, err)
	assert.Len(t, got.Route, 3)
	assert.Equal(t, entity.StatusFinished, got.Status)
	assert.Equal(t, walk.Medal, got.Medal)
	require.NotNil(t, got.EndedAt)
	assert.InDelta(t, walk.DistanceMeters, got.DistanceMeters, 1e-6)
}

func TestRecordStore_Modify(t *testing.T) {
	ctx := context.Background()
	store := NewFavoriteStore(newTestDB(t))

	fav := newFavorite("user-1", "animal-1")
	require.NoError(t, store.Insert(ctx, fav))

	changed, err := store.Modify(ctx, fav.LocalID, func(f *entity.Favorite) error {
		f.AnimalName = "Kuro"
		f.Dirty = true

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Kuro", changed.AnimalName)

	got, err := store.Get(ctx, fav.LocalID)
	require.NoError(t, err)
	assert.Equal(t, "Kuro", got.AnimalName)
	assert.True(t, got.Dirty)

	abort := errors.New("abort")
	_, err = store.Modify(ctx, fav.LocalID, func(f *entity.Favorite) error {
		f.AnimalName = "Shiro"

		return abort
	})
	assert.ErrorIs(t, err, abort)

	got, err = store.Get(ctx, fav.LocalID)
	require.NoError(t, err)
	assert.Equal(t, "Kuro", got.AnimalName)

	_, err = store.Modify(ctx, uuid.New(), func(*entity.Favorite) error { return nil })
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
}

func TestRecordStore_ModifySerializesWriters(t *testing.T) {
	ctx := context.Background()
	store := NewWalkStore(newTestDB(t))

	walk := &entity.Walk{
		Record: entity.Record{
			OwnerUserID: "user-1",
			SubjectID:   "dog-1",
			Status:      entity.StatusInProgress,
		},
		StartedAt: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Insert(ctx, walk))

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Modify(ctx, walk.LocalID, func(w *entity.Walk) error {
				w.AppendPoint(orb.Point{121.5 + float64(i)/1000, 25.03})

				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, walk.LocalID)
	require.NoError(t, err)
	assert.Len(t, got.Route, 20)
}

func TestRecordStore_UpsertRemote(t *testing.T) {
	ctx := context.Background()
	store := NewFavoriteStore(newTestDB(t))

	local := newFavorite("user-1", "animal-1")
	require.NoError(t, store.Insert(ctx, local))

	// The remote copy of the local-only row carries its local ID and is adopted.
	adopted := newFavorite("user-1", "animal-1")
	adopted.LocalID = local.LocalID
	adopted.SetRemoteID("doc-1")

	fresh := newFavorite("user-1", "animal-2")
	fresh.SetRemoteID("doc-2")

	applied, err := store.UpsertRemote(ctx, []*entity.Favorite{adopted, fresh})
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	all, err := store.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := store.Get(ctx, local.LocalID)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", got.RemoteIDValue())

	// Re-applying the same documents is idempotent.
	again := newFavorite("user-1", "animal-2")
	again.SetRemoteID("doc-2")
	applied, err = store.UpsertRemote(ctx, []*entity.Favorite{again})
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	all, err = store.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRecordStore_UpsertRemoteKeepsDirtyRows(t *testing.T) {
	ctx := context.Background()
	store := NewActivityStore(newTestDB(t))

	act := &entity.Activity{
		Record: entity.Record{
			OwnerUserID: "user-1",
			SubjectID:   "shelter-1",
			Status:      entity.StatusScheduled,
		},
		Title: "Bath day",
	}
	require.NoError(t, store.Insert(ctx, act))
	require.NoError(t, store.SetRemoteID(ctx, act.LocalID, "doc-1"))
	_, err := store.UpdateStatus(ctx, act.LocalID, entity.StatusCancelled, true)
	require.NoError(t, err)

	stale := &entity.Activity{
		Record: entity.Record{
			OwnerUserID: "user-1",
			SubjectID:   "shelter-1",
			Status:      entity.StatusScheduled,
		},
		Title: "Bath day",
	}
	stale.SetRemoteID("doc-1")

	applied, err := store.UpsertRemote(ctx, []*entity.Activity{stale})
	require.NoError(t, err)
	assert.Zero(t, applied)

	got, err := store.Get(ctx, act.LocalID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, got.Status)
}

func TestRecordStore_DeleteAndSubscribe(t *testing.T) {
	ctx := context.Background()
	store := NewFavoriteStore(newTestDB(t))

	changes, cancel := store.Subscribe("user-1")
	defer cancel()

	fav := newFavorite("user-1", "animal-1")
	require.NoError(t, store.Insert(ctx, fav))

	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatal("expected a change signal after insert")
	}

	require.NoError(t, store.Delete(ctx, fav.LocalID))

	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatal("expected a change signal after delete")
	}

	assert.ErrorIs(t, store.Delete(ctx, fav.LocalID), repository.ErrRecordNotFound)

	cancel()
	_, open := <-changes
	assert.False(t, open)
}
