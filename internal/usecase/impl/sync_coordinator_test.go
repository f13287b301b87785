package impl

import (
	"context"
	"testing"
	"time"

	deliverycontext "pawsync/internal/delivery/context"
	"pawsync/internal/domain/entity"
	domainerrors "pawsync/internal/domain/errors"
	"pawsync/internal/domain/repository"
	"pawsync/internal/domain/service"
	"pawsync/internal/infra/mapper"
	"pawsync/internal/infra/persistence/local"
	mockRepo "pawsync/internal/mocks/repository"
	mockSvc "pawsync/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFavoriteRecord(owner, animal string) *entity.Favorite {
	return &entity.Favorite{
		Record: entity.Record{
			OwnerUserID: owner,
			SubjectID:   animal,
			Status:      entity.StatusActive,
		},
		AnimalName: "Mochi",
	}
}

func newWalkRecord(owner, dog string) *entity.Walk {
	return &entity.Walk{
		Record: entity.Record{
			OwnerUserID: owner,
			SubjectID:   dog,
			Status:      entity.StatusInProgress,
		},
		StartedAt: time.Date(2026, 6, 1, 7, 0, 0, 0, time.UTC),
		Medal:     entity.MedalNone,
	}
}

func (fx *syncFixtures) favorites() *SyncCoordinator[*entity.Favorite] {
	return NewSyncCoordinator(fx.params, local.NewFavoriteStore(fx.db), mapper.NewFavoriteMapper())
}

func (fx *syncFixtures) ownerships() *SyncCoordinator[*entity.OwnershipRequest] {
	return NewSyncCoordinator(fx.params, local.NewOwnershipStore(fx.db), mapper.NewOwnershipMapper())
}

func (fx *syncFixtures) walks() *SyncCoordinator[*entity.Walk] {
	return NewSyncCoordinator(fx.params, local.NewWalkStore(fx.db), mapper.NewWalkMapper())
}

func (fx *syncFixtures) activities() *SyncCoordinator[*entity.Activity] {
	return NewSyncCoordinator(fx.params, local.NewActivityStore(fx.db), mapper.NewActivityMapper())
}

func TestSyncCoordinator_CreateOffline_IsVisibleLocally(t *testing.T) {
	fx := newSyncFixtures(t, false)
	coordinator := fx.favorites()
	ctx := context.Background()

	created, err := coordinator.Create(ctx, newFavoriteRecord("u1", "a1"))
	require.NoError(t, err)
	assert.Equal(t, entity.SyncStateLocalOnly, created.SyncState())

	list, err := coordinator.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.LocalID, list[0].LocalID)
	assert.Zero(t, fx.remote.Count("favorites"))
	assert.Equal(t, 1.0, counterValue(t, fx.registry, "pawsync_remote_writes_total", map[string]string{"outcome": "local_only"}))
}

func TestSyncCoordinator_CreateOnline_StoresRemoteID(t *testing.T) {
	fx := newSyncFixtures(t, true)
	coordinator := fx.walks()
	ctx := context.Background()

	created, err := coordinator.Create(ctx, newWalkRecord("u1", "dog-1"))
	require.NoError(t, err)
	require.True(t, created.IsSynced())

	stored, err := coordinator.Get(ctx, created.LocalID)
	require.NoError(t, err)
	assert.Equal(t, created.RemoteIDValue(), stored.RemoteIDValue())

	doc, ok := fx.remote.Get("walks", created.RemoteIDValue())
	require.True(t, ok)
	assert.Equal(t, created.LocalID.String(), doc[repository.FieldClientID])
	assert.Equal(t, "u1", doc[repository.FieldOwnerUserID])
}

func TestSyncCoordinator_CreateRemoteFailure_IsSwallowed(t *testing.T) {
	fx := newSyncFixtures(t, true)
	coordinator := fx.favorites()
	fx.remote.FailNext("add", errors.New("permission denied"))

	created, err := coordinator.Create(context.Background(), newFavoriteRecord("u1", "a1"))
	require.NoError(t, err)
	assert.False(t, created.IsSynced())
	assert.Zero(t, fx.remote.Count("favorites"))
	assert.Equal(t, 1.0, counterValue(t, fx.registry, "pawsync_remote_writes_total", map[string]string{
		"kind":      "favorites",
		"operation": "create",
		"outcome":   "failed",
	}))
}

func TestSyncCoordinator_CreateValidatesRecord(t *testing.T) {
	fx := newSyncFixtures(t, true)
	coordinator := fx.favorites()
	ctx := context.Background()

	_, err := coordinator.Create(ctx, newFavoriteRecord("", "a1"))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRecord)

	fav := newFavoriteRecord("u1", "a1")
	fav.Status = entity.StatusPending
	_, err = coordinator.Create(ctx, fav)
	assert.True(t, isBaseError(err, "INVALID_STATUS"))
}

func TestSyncCoordinator_NoDuplicatePendingRequests(t *testing.T) {
	fx := newSyncFixtures(t, false)
	coordinator := fx.ownerships()
	ctx := context.Background()

	request := func() *entity.OwnershipRequest {
		return &entity.OwnershipRequest{
			Record: entity.Record{
				OwnerUserID: "u1",
				SubjectID:   "a1",
				Status:      entity.StatusPending,
			},
			ShelterID: "s1",
		}
	}

	first, err := coordinator.Create(ctx, request())
	require.NoError(t, err)

	_, err = coordinator.Create(ctx, request())
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateRequest)

	list, err := coordinator.List(ctx, "u1")
	require.NoError(t, err)
	pending := 0
	for _, req := range list {
		if req.Status == entity.StatusPending {
			pending++
		}
	}
	assert.Equal(t, 1, pending)

	// A decided request releases the pair.
	_, err = coordinator.UpdateStatus(ctx, first.LocalID, entity.StatusRejected)
	require.NoError(t, err)
	_, err = coordinator.Create(ctx, request())
	require.NoError(t, err)
}

func TestSyncCoordinator_SyncPendingConverges(t *testing.T) {
	fx := newSyncFixtures(t, false)
	walks := fx.walks()
	favorites := fx.favorites()
	ctx := context.Background()

	const n = 5
	for i := range n {
		_, err := walks.Create(ctx, newWalkRecord("u1", "dog-"+string(rune('a'+i))))
		require.NoError(t, err)
	}
	_, err := favorites.Create(ctx, newFavoriteRecord("u1", "a1"))
	require.NoError(t, err)

	fx.network.SetOnline(true)

	report, err := walks.SyncPending(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, n, report.Created)
	assert.Zero(t, report.Failed)

	report, err = favorites.SyncPending(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)

	list, err := walks.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, n)
	for _, walk := range list {
		assert.True(t, walk.IsSynced(), "walk %s should be synced", walk.LocalID)
	}
	assert.Equal(t, n, fx.remote.Count("walks"))
}

func TestSyncCoordinator_OfflineCreateThenSyncScenario(t *testing.T) {
	fx := newSyncFixtures(t, false)
	coordinator := fx.favorites()
	ctx := context.Background()

	_, err := coordinator.Create(ctx, newFavoriteRecord("u1", "a1"))
	require.NoError(t, err)

	list, err := coordinator.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a1", list[0].SubjectID)
	assert.Nil(t, list[0].RemoteID)

	fx.network.SetOnline(true)
	_, err = coordinator.SyncPending(ctx, "")
	require.NoError(t, err)

	list, err = coordinator.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0].RemoteID)
	assert.Equal(t, 1, fx.remote.Count("favorites"))
}

func TestSyncCoordinator_SyncPendingHandlesRecordsIndependently(t *testing.T) {
	fx := newSyncFixtures(t, false)
	coordinator := fx.walks()
	ctx := context.Background()

	for _, dog := range []string{"dog-1", "dog-2", "dog-3"} {
		_, err := coordinator.Create(ctx, newWalkRecord("u1", dog))
		require.NoError(t, err)
	}

	fx.network.SetOnline(true)
	fx.remote.FailNext("add", errors.New("quota exceeded"))

	report, err := coordinator.SyncPending(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 1, report.Failed)

	report, err = coordinator.SyncPending(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 3, fx.remote.Count("walks"))
}

func TestSyncCoordinator_SyncPendingOffline(t *testing.T) {
	fx := newSyncFixtures(t, false)

	report, err := fx.favorites().SyncPending(context.Background(), "")
	assert.Nil(t, report)
	assert.ErrorIs(t, err, domainerrors.ErrOffline)
	assert.ErrorIs(t, err, repository.ErrRemoteUnavailable)
}

func TestSyncCoordinator_UpdateStatusFailureIsSurfaced(t *testing.T) {
	fx := newSyncFixtures(t, true)
	coordinator := fx.activities()
	ctx := context.Background()

	act, err := coordinator.Create(ctx, &entity.Activity{
		Record: entity.Record{
			OwnerUserID: "u1",
			SubjectID:   "shelter-1",
			Status:      entity.StatusScheduled,
		},
		Title:    "Bath day",
		Location: orb.Point{121.5, 25.0},
	})
	require.NoError(t, err)
	require.True(t, act.IsSynced())

	fx.remote.FailNext("update", errors.New("internal"))

	updated, err := coordinator.UpdateStatus(ctx, act.LocalID, entity.StatusDone)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrRemoteSyncFailed)
	require.NotNil(t, updated)
	assert.Equal(t, entity.StatusDone, updated.Status)
	assert.True(t, updated.Dirty)

	stored, err := coordinator.Get(ctx, act.LocalID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, stored.Status)

	// The next sync pass mirrors the pending status.
	report, err := coordinator.SyncPending(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)

	doc, ok := fx.remote.Get("activities", act.RemoteIDValue())
	require.True(t, ok)
	assert.Equal(t, "DONE", doc["status"])

	stored, err = coordinator.Get(ctx, act.LocalID)
	require.NoError(t, err)
	assert.False(t, stored.Dirty)
}

func TestSyncCoordinator_UpdateStatusOffline(t *testing.T) {
	fx := newSyncFixtures(t, true)
	coordinator := fx.ownerships()
	ctx := context.Background()

	req, err := coordinator.Create(ctx, &entity.OwnershipRequest{
		Record: entity.Record{OwnerUserID: "u1", SubjectID: "a1", Status: entity.StatusPending},
	})
	require.NoError(t, err)

	fx.network.SetOnline(false)

	_, err = coordinator.UpdateStatus(ctx, req.LocalID, entity.StatusApproved)
	assert.ErrorIs(t, err, domainerrors.ErrOffline)
	assert.ErrorIs(t, err, repository.ErrRemoteUnavailable)

	fx.network.SetOnline(true)
	report, err := coordinator.SyncPending(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)

	doc, ok := fx.remote.Get("ownerships", req.RemoteIDValue())
	require.True(t, ok)
	assert.Equal(t, "APPROVED", doc["status"])
	assert.Nil(t, doc[repository.FieldDedupeKey])
}

func TestSyncCoordinator_UpdateStatusOfLocalOnlyRecordStaysLocal(t *testing.T) {
	fx := newSyncFixtures(t, false)
	coordinator := fx.activities()
	ctx := context.Background()

	act, err := coordinator.Create(ctx, &entity.Activity{
		Record: entity.Record{OwnerUserID: "u1", SubjectID: "s1", Status: entity.StatusScheduled},
		Title:  "Visit",
	})
	require.NoError(t, err)

	updated, err := coordinator.UpdateStatus(ctx, act.LocalID, entity.StatusCancelled)
	require.NoError(t, err)
	assert.False(t, updated.Dirty)

	_, err = coordinator.UpdateStatus(ctx, act.LocalID, entity.StatusFinished)
	assert.True(t, isBaseError(err, "INVALID_STATUS"))

	fx.network.SetOnline(true)
	report, err := coordinator.SyncPending(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Zero(t, report.Updated)

	stored, err := coordinator.Get(ctx, act.LocalID)
	require.NoError(t, err)
	doc, ok := fx.remote.Get("activities", stored.RemoteIDValue())
	require.True(t, ok)
	assert.Equal(t, "CANCELLED", doc["status"])
}

func TestSyncCoordinator_FetchAll(t *testing.T) {
	fx := newSyncFixtures(t, true)
	coordinator := fx.favorites()
	ctx := context.Background()

	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	fx.remote.Put("favorites", "doc-1", map[string]any{
		"ownerUserId": "u1",
		"subjectId":   "a1",
		"animalName":  "Mochi",
		"createdAt":   now,
	})
	fx.remote.Put("favorites", "doc-2", map[string]any{
		"ownerUserId": "u1",
		"subjectId":   "a2",
	})
	fx.remote.Put("favorites", "doc-bad", map[string]any{
		"ownerUserId": "u1",
	})
	fx.remote.Put("favorites", "doc-other", map[string]any{
		"ownerUserId": "u2",
		"subjectId":   "a1",
	})

	result, err := coordinator.FetchAll(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 1, result.Dropped)
	assert.False(t, result.Skipped)
	assert.Equal(t, 1.0, counterValue(t, fx.registry, "pawsync_documents_dropped_total", map[string]string{"kind": "favorites"}))

	list, err := coordinator.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Fetching again converges to the same local state.
	_, err = coordinator.FetchAll(ctx, "u1")
	require.NoError(t, err)
	again, err := coordinator.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, again, 2)
}

func TestSyncCoordinator_FetchAllNeverDeletesLocalRecords(t *testing.T) {
	fx := newSyncFixtures(t, false)
	coordinator := fx.walks()
	ctx := context.Background()

	_, err := coordinator.Create(ctx, newWalkRecord("u1", "dog-1"))
	require.NoError(t, err)

	result, err := coordinator.FetchAll(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, result.Skipped)

	fx.network.SetOnline(true)
	result, err = coordinator.FetchAll(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, result.Fetched)

	list, err := coordinator.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSyncCoordinator_FetchAllQueryFailureIsReported(t *testing.T) {
	fx := newSyncFixtures(t, true)
	fx.remote.FailNext("query", errors.New("deadline"))

	result, err := fx.favorites().FetchAll(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, result.Failed)
}

func TestSyncCoordinator_DeleteOfflineIsNotResurrected(t *testing.T) {
	fx := newSyncFixtures(t, true)
	coordinator := fx.favorites()
	ctx := context.Background()

	fav, err := coordinator.Create(ctx, newFavoriteRecord("u1", "a1"))
	require.NoError(t, err)
	require.True(t, fav.IsSynced())

	fx.network.SetOnline(false)
	err = coordinator.Delete(ctx, fav.LocalID)
	assert.ErrorIs(t, err, domainerrors.ErrOffline)

	_, err = coordinator.Get(ctx, fav.LocalID)
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
	assert.Equal(t, 1, fx.remote.Count("favorites"))

	fx.network.SetOnline(true)
	result, err := coordinator.FetchAll(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Tombstoned)
	assert.Zero(t, result.Fetched)

	list, err := coordinator.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	report, err := coordinator.SyncPending(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Deleted)
	assert.Zero(t, fx.remote.Count("favorites"))

	ids, err := fx.params.Tombstones.RemoteIDs(ctx, entity.KindFavorite)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSyncCoordinator_DeleteRemoteFailureKeepsTombstone(t *testing.T) {
	fx := newSyncFixtures(t, true)
	coordinator := fx.walks()
	ctx := context.Background()

	walk, err := coordinator.Create(ctx, newWalkRecord("u1", "dog-1"))
	require.NoError(t, err)

	fx.remote.FailNext("delete", errors.New("internal"))
	err = coordinator.Delete(ctx, walk.LocalID)
	assert.ErrorIs(t, err, domainerrors.ErrRemoteSyncFailed)

	fx.remote.FailNext("delete", errors.New("internal"))
	report, err := coordinator.SyncPending(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)

	tombstones, err := fx.params.Tombstones.List(ctx, entity.KindWalk, "u1")
	require.NoError(t, err)
	require.Len(t, tombstones, 1)
	assert.Equal(t, 2, tombstones[0].Attempts)
}

func TestSyncCoordinator_DeleteLocalOnlyRecord(t *testing.T) {
	fx := newSyncFixtures(t, false)
	coordinator := fx.favorites()
	ctx := context.Background()

	fav, err := coordinator.Create(ctx, newFavoriteRecord("u1", "a1"))
	require.NoError(t, err)

	require.NoError(t, coordinator.Delete(ctx, fav.LocalID))

	ids, err := fx.params.Tombstones.RemoteIDs(ctx, entity.KindFavorite)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSyncCoordinator_CreateAdoptsExistingRemoteDuplicate(t *testing.T) {
	fx := newSyncFixtures(t, true)
	coordinator := fx.favorites()
	ctx := context.Background()

	fx.remote.Put("favorites", "doc-existing", map[string]any{
		"ownerUserId":             "u1",
		"subjectId":               "a1",
		repository.FieldDedupeKey: entity.DedupeKey("u1", "a1"),
	})

	fav, err := coordinator.Create(ctx, newFavoriteRecord("u1", "a1"))
	require.NoError(t, err)
	assert.Equal(t, "doc-existing", fav.RemoteIDValue())
	assert.Equal(t, 1, fx.remote.Count("favorites"))
}

func TestSyncCoordinator_RecreateAfterPendingDeleteKeepsLiveDocument(t *testing.T) {
	tests := []struct {
		name            string
		onlineRecreate  bool
		wantCreatedSync int
	}{
		{name: "recreated online", onlineRecreate: true},
		{name: "recreated offline", onlineRecreate: false, wantCreatedSync: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newSyncFixtures(t, true)
			coordinator := fx.favorites()
			ctx := context.Background()

			first, err := coordinator.Create(ctx, newFavoriteRecord("u1", "a1"))
			require.NoError(t, err)
			oldID := first.RemoteIDValue()

			fx.network.SetOnline(false)
			assert.ErrorIs(t, coordinator.Delete(ctx, first.LocalID), domainerrors.ErrOffline)

			fx.network.SetOnline(tt.onlineRecreate)
			second, err := coordinator.Create(ctx, newFavoriteRecord("u1", "a1"))
			require.NoError(t, err)
			fx.network.SetOnline(true)

			report, err := coordinator.SyncPending(ctx, "u1")
			require.NoError(t, err)
			assert.Zero(t, report.Failed)
			assert.Equal(t, tt.wantCreatedSync, report.Created)

			stored, err := coordinator.Get(ctx, second.LocalID)
			require.NoError(t, err)
			require.True(t, stored.IsSynced())
			assert.NotEqual(t, oldID, stored.RemoteIDValue())

			_, exists := fx.remote.Get("favorites", stored.RemoteIDValue())
			assert.True(t, exists)
			_, exists = fx.remote.Get("favorites", oldID)
			assert.False(t, exists)
			assert.Equal(t, 1, fx.remote.Count("favorites"))

			ids, err := fx.params.Tombstones.RemoteIDs(ctx, entity.KindFavorite)
			require.NoError(t, err)
			assert.Empty(t, ids)

			// A later pass has nothing left to fix.
			report, err = coordinator.SyncPending(ctx, "u1")
			require.NoError(t, err)
			assert.Zero(t, report.Created+report.Updated+report.Deleted+report.Failed)
		})
	}
}

// coordinatorMocks drives a coordinator whose remote side is fully mocked.
type coordinatorMocks struct {
	remote     *mockRepo.MockRemoteStore
	tombstones *mockRepo.MockTombstoneRepository
	network    *mockSvc.MockNetworkMonitor
	publisher  *mockSvc.MockEventPublisher
	metrics    *mockSvc.MockSyncMetrics
	params     CoordinatorParams
}

func newCoordinatorMocks(t *testing.T) coordinatorMocks {
	base := newSyncFixtures(t, true)

	m := coordinatorMocks{
		remote:     mockRepo.NewMockRemoteStore(t),
		tombstones: mockRepo.NewMockTombstoneRepository(t),
		network:    mockSvc.NewMockNetworkMonitor(t),
		publisher:  mockSvc.NewMockEventPublisher(t),
		metrics:    mockSvc.NewMockSyncMetrics(t),
	}
	m.params = base.params
	m.params.Remote = m.remote
	m.params.Tombstones = m.tombstones
	m.params.Network = m.network
	m.params.Publisher = m.publisher
	m.params.Metrics = m.metrics

	return m
}

func TestSyncCoordinator_RetryAdoptsEarlierRemoteCopy(t *testing.T) {
	fx := newSyncFixtures(t, false)
	m := newCoordinatorMocks(t)
	store := local.NewWalkStore(fx.db)
	ctx := context.Background()

	walk := newWalkRecord("u1", "dog-1")
	require.NoError(t, store.Insert(ctx, walk))

	m.params.Tombstones = fx.params.Tombstones
	coordinator := NewSyncCoordinator(m.params, store, mapper.NewWalkMapper())

	m.network.EXPECT().Reachable(ctx).Return(true)
	m.remote.EXPECT().
		Query(ctx, "walks", []repository.Filter{repository.Eq(repository.FieldClientID, walk.LocalID.String())}, (*repository.OrderBy)(nil)).
		Return([]repository.Document{{ID: "doc-landed"}}, nil)
	m.metrics.EXPECT().RemoteWrite("walks", service.SyncOperationCreate, service.SyncOutcomeSynced).Return()
	m.metrics.EXPECT().ObserveSyncPass("walks", mock.AnythingOfType("time.Duration")).Return()
	m.publisher.EXPECT().PublishSyncEvent(ctx, mock.AnythingOfType("*service.SyncEvent")).Return(nil)

	report, err := coordinator.SyncPending(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)

	stored, err := store.Get(ctx, walk.LocalID)
	require.NoError(t, err)
	assert.Equal(t, "doc-landed", stored.RemoteIDValue())
}

func TestSyncCoordinator_PublishesSyncEvents(t *testing.T) {
	fx := newSyncFixtures(t, true)
	m := newCoordinatorMocks(t)
	coordinator := NewSyncCoordinator(m.params, local.NewFavoriteStore(fx.db), mapper.NewFavoriteMapper())

	ctx := deliverycontext.WithRequestID(context.Background(), "req-1")

	m.network.EXPECT().Reachable(ctx).Return(true)
	m.remote.EXPECT().
		AddUnique(ctx, "favorites", mock.Anything, entity.DedupeKey("u1", "a1")).
		Return("doc-1", true, nil)
	m.metrics.EXPECT().RemoteWrite("favorites", service.SyncOperationCreate, service.SyncOutcomeSynced).Return()
	m.publisher.EXPECT().
		PublishSyncEvent(ctx, mock.MatchedBy(func(event *service.SyncEvent) bool {
			return event.RequestID == "req-1" &&
				event.RemoteID == "doc-1" &&
				event.Operation == service.SyncOperationCreate &&
				event.Outcome == service.SyncOutcomeSynced &&
				event.LocalID != uuid.Nil.String()
		})).
		Return(errors.New("broker down"))

	fav, err := coordinator.Create(ctx, newFavoriteRecord("u1", "a1"))
	require.NoError(t, err)
	assert.Equal(t, "doc-1", fav.RemoteIDValue())
}

func TestSyncCoordinator_DeleteTombstoneSaveFailure(t *testing.T) {
	fx := newSyncFixtures(t, true)
	m := newCoordinatorMocks(t)
	store := local.NewFavoriteStore(fx.db)
	coordinator := NewSyncCoordinator(m.params, store, mapper.NewFavoriteMapper())
	ctx := context.Background()

	fav := newFavoriteRecord("u1", "a1")
	fav.SetRemoteID("doc-1")
	require.NoError(t, store.Insert(ctx, fav))

	m.network.EXPECT().Reachable(ctx).Return(false)
	m.tombstones.EXPECT().Save(ctx, mock.AnythingOfType("*entity.Tombstone")).Return(errors.New("disk full"))

	err := coordinator.Delete(ctx, fav.LocalID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save tombstone")
}

func isBaseError(err error, code string) bool {
	var appErr domainerrors.AppError
	if !errors.As(err, &appErr) {
		return false
	}

	return appErr.ErrorCode() == code
}
