// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"pawsync/config"
	deliverycontext "pawsync/internal/delivery/context"
	"pawsync/internal/domain/entity"
	domainerrors "pawsync/internal/domain/errors"
	"pawsync/internal/domain/repository"
	"pawsync/internal/domain/service"
	"pawsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

const defaultSyncWorkers = 4

// CoordinatorParams holds the dependencies shared by every sync coordinator, injected by Fx.
type CoordinatorParams struct {
	fx.In

	Remote     repository.RemoteStore
	Tombstones repository.TombstoneRepository
	Network    service.NetworkMonitor
	Publisher  service.EventPublisher
	Metrics    service.SyncMetrics
	Config     *config.Config
	Logger     *slog.Logger
}

// SyncCoordinator implements usecase.SyncUsecase for one entity kind.
type SyncCoordinator[T entity.Syncable] struct {
	kind       entity.Kind
	local      repository.LocalStore[T]
	remote     repository.RemoteStore
	mapper     service.Mapper[T]
	tombstones repository.TombstoneRepository
	network    service.NetworkMonitor
	publisher  service.EventPublisher
	metrics    service.SyncMetrics
	workers    int
	logger     *slog.Logger
	now        func() time.Time
}

var _ usecase.SyncUsecase[*entity.Favorite] = (*SyncCoordinator[*entity.Favorite])(nil)

// NewSyncCoordinator builds the coordinator for the kind produced by mapper.
func NewSyncCoordinator[T entity.Syncable](params CoordinatorParams, local repository.LocalStore[T], mapper service.Mapper[T]) *SyncCoordinator[T] {
	workers := defaultSyncWorkers
	if params.Config != nil && params.Config.Sync != nil && params.Config.Sync.Workers > 0 {
		workers = params.Config.Sync.Workers
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	kind := mapper.New().Kind()

	return &SyncCoordinator[T]{
		kind:       kind,
		local:      local,
		remote:     params.Remote,
		mapper:     mapper,
		tombstones: params.Tombstones,
		network:    params.Network,
		publisher:  params.Publisher,
		metrics:    params.Metrics,
		workers:    workers,
		logger:     logger.With(slog.String("kind", kind.String())),
		now:        time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the coordinator's logger.
func (c *SyncCoordinator[T]) log(ctx context.Context) *slog.Logger {
	if logger := deliverycontext.GetLogger(ctx); logger != nil {
		return logger.With(slog.String("kind", c.kind.String()))
	}

	return c.logger
}

// Kind returns the entity kind handled by the coordinator.
func (c *SyncCoordinator[T]) Kind() entity.Kind {
	return c.kind
}

// Create inserts the record locally, then mirrors it remotely when the network allows.
// The local write always wins: remote failures leave a local-only record and a nil error.
func (c *SyncCoordinator[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T

	meta := rec.Meta()
	if meta.OwnerUserID == "" || meta.SubjectID == "" {
		return zero, domainerrors.ErrInvalidRecord
	}
	if !rec.ValidStatus(meta.Status) {
		return zero, domainerrors.ErrInvalidStatus.WithDetails(meta.Status.String())
	}
	meta.RemoteID = nil
	meta.Dirty = false

	if key := rec.DedupeKey(); key != nil {
		_, err := c.local.FindByDedupeKey(ctx, *key)
		if err == nil {
			return zero, domainerrors.ErrDuplicateRequest
		}
		if !errors.Is(err, repository.ErrRecordNotFound) {
			return zero, errors.Wrap(err, "failed to check for an existing record")
		}
	}

	if err := c.local.Insert(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicateRecord) {
			return zero, domainerrors.ErrDuplicateRequest
		}

		return zero, errors.Wrap(err, "failed to insert record locally")
	}

	if !c.network.Reachable(ctx) {
		c.log(ctx).Info("Remote store unreachable, record kept local",
			slog.String("local_id", meta.LocalID.String()),
			slog.String("owner", meta.OwnerUserID))
		c.report(ctx, meta, service.SyncOperationCreate, service.SyncOutcomeLocalOnly, nil)

		return rec, nil
	}

	if err := c.pushCreate(ctx, rec); err != nil {
		if isLocalFailure(err) {
			return zero, err
		}
		// Swallowed: the record stays local-only until the next sync pass.
	}

	return rec, nil
}

// FetchAll merges the owner's remote documents into the local store.
// It never deletes local records and never surfaces remote failures.
func (c *SyncCoordinator[T]) FetchAll(ctx context.Context, ownerUserID string) (*usecase.FetchResult, error) {
	if !c.network.Reachable(ctx) {
		return &usecase.FetchResult{Skipped: true}, nil
	}

	docs, err := c.remote.Query(ctx, c.kind.String(), []repository.Filter{
		repository.Eq(repository.FieldOwnerUserID, ownerUserID),
	}, nil)
	if err != nil {
		c.log(ctx).Warn("Failed to fetch remote documents",
			slog.String("owner", ownerUserID),
			slog.Any("error", err))

		return &usecase.FetchResult{Failed: true}, nil
	}

	tombstoned, err := c.tombstones.RemoteIDs(ctx, c.kind)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load pending deletes")
	}

	result := &usecase.FetchResult{}
	recs := make([]T, 0, len(docs))
	for _, doc := range docs {
		if _, ok := tombstoned[doc.ID]; ok {
			result.Tombstoned++

			continue
		}

		rec, ok := c.mapper.FromDocument(doc)
		if !ok {
			result.Dropped++
			c.metrics.DocumentDropped(c.kind.String())
			c.log(ctx).Warn("Dropped malformed remote document",
				slog.String("remote_id", doc.ID),
				slog.String("owner", ownerUserID))

			continue
		}
		recs = append(recs, rec)
	}

	applied, err := c.local.UpsertRemote(ctx, recs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to merge remote documents")
	}
	result.Fetched = applied

	return result, nil
}

// Update writes the record locally and mirrors it. Records that were never synced stay
// local and are created remotely by the next sync pass.
func (c *SyncCoordinator[T]) Update(ctx context.Context, rec T) (T, error) {
	var zero T

	meta := rec.Meta()
	if !rec.ValidStatus(meta.Status) {
		return zero, domainerrors.ErrInvalidStatus.WithDetails(meta.Status.String())
	}

	current, err := c.local.Get(ctx, meta.LocalID)
	if err != nil {
		return zero, err
	}
	meta.RemoteID = current.Meta().RemoteID
	meta.CreatedAt = current.Meta().CreatedAt
	meta.Dirty = current.Meta().IsSynced()
	meta.Touch(c.now().UTC())

	if err := c.local.Update(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicateRecord) {
			return zero, domainerrors.ErrDuplicateRequest
		}

		return zero, errors.Wrap(err, "failed to update record locally")
	}

	if !meta.IsSynced() {
		return rec, nil
	}

	return rec, c.pushUpdate(ctx, rec)
}

// Mutate applies fn to the owner's stored record in one local transaction and mirrors
// the result like Update. fn always sees the latest row, so concurrent changes are not lost.
func (c *SyncCoordinator[T]) Mutate(ctx context.Context, ownerUserID string, localID uuid.UUID, fn func(T) error) (T, error) {
	rec, err := c.modifyLocal(ctx, ownerUserID, localID, fn)
	if err != nil || !rec.Meta().IsSynced() {
		return rec, err
	}

	return rec, c.pushUpdate(ctx, rec)
}

// modifyLocal is the local half of Mutate. A synced record is left dirty for the next
// sync pass, which also keeps a remote fetch from overwriting it.
func (c *SyncCoordinator[T]) modifyLocal(ctx context.Context, ownerUserID string, localID uuid.UUID, fn func(T) error) (T, error) {
	var (
		zero  T
		fnErr error
	)

	rec, err := c.local.Modify(ctx, localID, func(rec T) error {
		meta := rec.Meta()
		if meta.OwnerUserID != ownerUserID {
			fnErr = domainerrors.ErrForbidden

			return fnErr
		}
		if fnErr = fn(rec); fnErr != nil {
			return fnErr
		}
		if !rec.ValidStatus(meta.Status) {
			fnErr = domainerrors.ErrInvalidStatus.WithDetails(meta.Status.String())

			return fnErr
		}
		meta.Dirty = meta.IsSynced()
		meta.Touch(c.now().UTC())

		return nil
	})
	switch {
	case err == nil:
		return rec, nil
	case fnErr != nil:
		return zero, fnErr
	case errors.Is(err, repository.ErrRecordNotFound):
		return zero, domainerrors.ErrRecordNotFound
	case errors.Is(err, repository.ErrDuplicateRecord):
		return zero, domainerrors.ErrDuplicateRequest
	default:
		return zero, errors.Wrap(err, "failed to modify record locally")
	}
}

// UpdateStatus changes the status locally first, then mirrors it. A failed remote write
// is returned to the caller and retried by the next sync pass.
func (c *SyncCoordinator[T]) UpdateStatus(ctx context.Context, localID uuid.UUID, status entity.Status) (T, error) {
	var zero T

	current, err := c.local.Get(ctx, localID)
	if err != nil {
		return zero, err
	}
	if !current.ValidStatus(status) {
		return zero, domainerrors.ErrInvalidStatus.WithDetails(status.String())
	}

	updated, err := c.local.UpdateStatus(ctx, localID, status, current.Meta().IsSynced())
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRecord) {
			return zero, domainerrors.ErrDuplicateRequest
		}

		return zero, errors.Wrap(err, "failed to update status locally")
	}

	if !updated.Meta().IsSynced() {
		return updated, nil
	}

	return updated, c.pushUpdate(ctx, updated)
}

// Delete removes the record locally, then remotely. The local delete is never rolled back;
// a remote delete that cannot be confirmed is kept as a tombstone and retried later.
func (c *SyncCoordinator[T]) Delete(ctx context.Context, localID uuid.UUID) error {
	current, err := c.local.Get(ctx, localID)
	if err != nil {
		return err
	}

	if err := c.local.Delete(ctx, localID); err != nil {
		return errors.Wrap(err, "failed to delete record locally")
	}

	meta := current.Meta()
	if !meta.IsSynced() {
		return nil
	}

	if !c.network.Reachable(ctx) {
		return c.bury(ctx, meta, service.SyncOutcomeLocalOnly, repository.ErrRemoteUnavailable)
	}

	if err := c.remote.Delete(ctx, c.kind.String(), meta.RemoteIDValue()); err != nil {
		c.log(ctx).Warn("Failed to delete remote document",
			slog.String("local_id", meta.LocalID.String()),
			slog.String("remote_id", meta.RemoteIDValue()),
			slog.Any("error", err))

		return c.bury(ctx, meta, service.SyncOutcomeFailed, err)
	}

	c.report(ctx, meta, service.SyncOperationDelete, service.SyncOutcomeSynced, nil)

	return nil
}

// SyncPending pushes every unsynced local change: local-only records are created, dirty
// records are updated and tombstones are deleted. Each record is handled independently.
func (c *SyncCoordinator[T]) SyncPending(ctx context.Context, ownerUserID string) (*usecase.SyncReport, error) {
	if !c.network.Reachable(ctx) {
		return nil, domainerrors.NewRemoteSyncError(domainerrors.ErrOffline, repository.ErrRemoteUnavailable)
	}

	start := c.now()
	defer func() {
		c.metrics.ObserveSyncPass(c.kind.String(), c.now().Sub(start))
	}()

	pending, err := c.local.ListPending(ctx, ownerUserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pending records")
	}
	dirty, err := c.local.ListDirty(ctx, ownerUserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list dirty records")
	}
	tombstones, err := c.tombstones.List(ctx, c.kind, ownerUserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pending deletes")
	}

	var created, updated, deleted, failed atomic.Int64
	count := func(counter *atomic.Int64, err error) {
		if err != nil {
			failed.Add(1)

			return
		}
		counter.Add(1)
	}

	// Workers never return an error so one failed record cannot cancel the others.
	// Pending deletes go first: a create may reuse the dedupe key of a deleted document.
	var deletes errgroup.Group
	deletes.SetLimit(c.workers)
	for _, tombstone := range tombstones {
		deletes.Go(func() error {
			count(&deleted, c.retryDelete(ctx, tombstone))

			return nil
		})
	}
	_ = deletes.Wait()

	var group errgroup.Group
	group.SetLimit(c.workers)

	for _, rec := range pending {
		group.Go(func() error {
			count(&created, c.retryCreate(ctx, rec))

			return nil
		})
	}
	for _, rec := range dirty {
		group.Go(func() error {
			count(&updated, c.pushUpdate(ctx, rec))

			return nil
		})
	}
	_ = group.Wait()

	report := &usecase.SyncReport{
		Kind:    c.kind,
		Created: int(created.Load()),
		Updated: int(updated.Load()),
		Deleted: int(deleted.Load()),
		Failed:  int(failed.Load()),
	}
	if report.Created+report.Updated+report.Deleted+report.Failed > 0 {
		c.log(ctx).Info("Sync pass finished",
			slog.String("owner", ownerUserID),
			slog.Int("created", report.Created),
			slog.Int("updated", report.Updated),
			slog.Int("deleted", report.Deleted),
			slog.Int("failed", report.Failed))
	}

	return report, nil
}

// List returns the owner's records from the local store.
func (c *SyncCoordinator[T]) List(ctx context.Context, ownerUserID string) ([]T, error) {
	return c.local.ListByOwner(ctx, ownerUserID)
}

// Get returns one record from the local store.
func (c *SyncCoordinator[T]) Get(ctx context.Context, localID uuid.UUID) (T, error) {
	return c.local.Get(ctx, localID)
}

// Subscribe signals every local change to the owner's records.
func (c *SyncCoordinator[T]) Subscribe(ownerUserID string) (<-chan struct{}, func()) {
	return c.local.Subscribe(ownerUserID)
}

// pushCreate writes a new remote document and records its ID locally.
func (c *SyncCoordinator[T]) pushCreate(ctx context.Context, rec T) error {
	meta := rec.Meta()
	fields := c.mapper.ToDocument(rec)

	var (
		remoteID string
		err      error
	)
	if key := rec.DedupeKey(); key != nil {
		remoteID, err = c.addUnique(ctx, meta, fields, *key)
	} else {
		remoteID, err = c.remote.Add(ctx, c.kind.String(), fields)
	}
	if err != nil {
		c.log(ctx).Warn("Failed to create remote document, record kept local",
			slog.String("local_id", meta.LocalID.String()),
			slog.String("owner", meta.OwnerUserID),
			slog.Any("error", err))
		c.report(ctx, meta, service.SyncOperationCreate, service.SyncOutcomeFailed, err)

		return remoteFailure(err)
	}

	return c.adopt(ctx, meta, remoteID)
}

// addUnique creates the document holding key. A document that still holds the key but is
// waiting for a delete from this client is removed first, so a new record never adopts a
// document its pending delete would take away.
func (c *SyncCoordinator[T]) addUnique(ctx context.Context, meta *entity.Record, fields map[string]any, key string) (string, error) {
	remoteID, created, err := c.remote.AddUnique(ctx, c.kind.String(), fields, key)
	if err != nil || created {
		return remoteID, err
	}

	buried, err := c.tombstones.RemoteIDs(ctx, c.kind)
	if err != nil {
		return "", errors.Wrap(err, "failed to load pending deletes")
	}
	if _, ok := buried[remoteID]; !ok {
		return remoteID, nil
	}

	if err := c.remote.Delete(ctx, c.kind.String(), remoteID); err != nil {
		return "", err
	}
	if err := c.tombstones.Remove(ctx, c.kind, remoteID); err != nil {
		return "", errors.Wrap(err, "failed to remove tombstone")
	}
	c.log(ctx).Info("Deleted tombstoned document before re-creating it",
		slog.String("local_id", meta.LocalID.String()),
		slog.String("remote_id", remoteID))
	c.report(ctx, &entity.Record{OwnerUserID: meta.OwnerUserID, RemoteID: &remoteID}, service.SyncOperationDelete, service.SyncOutcomeSynced, nil)

	remoteID, _, err = c.remote.AddUnique(ctx, c.kind.String(), fields, key)

	return remoteID, err
}

// retryCreate pushes a local-only record. Records without a dedupe key look for a document
// left by an earlier attempt before writing a new one.
func (c *SyncCoordinator[T]) retryCreate(ctx context.Context, rec T) error {
	if rec.DedupeKey() != nil {
		return c.pushCreate(ctx, rec)
	}

	meta := rec.Meta()
	docs, err := c.remote.Query(ctx, c.kind.String(), []repository.Filter{
		repository.Eq(repository.FieldClientID, meta.LocalID.String()),
	}, nil)
	if err != nil {
		c.log(ctx).Warn("Failed to look up earlier remote copy",
			slog.String("local_id", meta.LocalID.String()),
			slog.Any("error", err))
		c.report(ctx, meta, service.SyncOperationCreate, service.SyncOutcomeFailed, err)

		return remoteFailure(err)
	}
	if len(docs) > 0 {
		return c.adopt(ctx, meta, docs[0].ID)
	}

	return c.pushCreate(ctx, rec)
}

// adopt stores the remote ID of a record whose document now exists remotely.
func (c *SyncCoordinator[T]) adopt(ctx context.Context, meta *entity.Record, remoteID string) error {
	if err := c.local.SetRemoteID(ctx, meta.LocalID, remoteID); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			// Deleted locally while the remote write was in flight.
			return c.bury(ctx, &entity.Record{
				OwnerUserID: meta.OwnerUserID,
				LocalID:     meta.LocalID,
				RemoteID:    &remoteID,
			}, service.SyncOutcomeFailed, err)
		}

		return localFailure{errors.Wrap(err, "failed to store remote ID")}
	}
	meta.SetRemoteID(remoteID)
	c.report(ctx, meta, service.SyncOperationCreate, service.SyncOutcomeSynced, nil)

	return nil
}

// pushUpdate mirrors a synced record and clears its dirty flag.
func (c *SyncCoordinator[T]) pushUpdate(ctx context.Context, rec T) error {
	meta := rec.Meta()

	if !c.network.Reachable(ctx) {
		c.report(ctx, meta, service.SyncOperationUpdate, service.SyncOutcomeLocalOnly, repository.ErrRemoteUnavailable)

		return domainerrors.NewRemoteSyncError(domainerrors.ErrOffline, repository.ErrRemoteUnavailable)
	}

	fields := c.mapper.ToDocument(rec)
	if rec.DedupeKey() == nil {
		// Release a key the document may still hold.
		fields[repository.FieldDedupeKey] = nil
	}

	if err := c.remote.Update(ctx, c.kind.String(), meta.RemoteIDValue(), fields); err != nil {
		c.log(ctx).Warn("Failed to update remote document",
			slog.String("local_id", meta.LocalID.String()),
			slog.String("remote_id", meta.RemoteIDValue()),
			slog.Any("error", err))
		c.report(ctx, meta, service.SyncOperationUpdate, service.SyncOutcomeFailed, err)

		return remoteFailure(err)
	}

	if err := c.local.MarkClean(ctx, meta.LocalID); err != nil && !errors.Is(err, repository.ErrRecordNotFound) {
		return errors.Wrap(err, "failed to clear dirty flag")
	}
	meta.Dirty = false
	c.report(ctx, meta, service.SyncOperationUpdate, service.SyncOutcomeSynced, nil)

	return nil
}

// retryDelete deletes a tombstoned document and drops the tombstone once confirmed.
func (c *SyncCoordinator[T]) retryDelete(ctx context.Context, tombstone *entity.Tombstone) error {
	meta := &entity.Record{OwnerUserID: tombstone.OwnerUserID, RemoteID: &tombstone.RemoteID}

	if err := c.remote.Delete(ctx, c.kind.String(), tombstone.RemoteID); err != nil {
		c.log(ctx).Warn("Failed to retry remote delete",
			slog.String("remote_id", tombstone.RemoteID),
			slog.Int("attempts", tombstone.Attempts),
			slog.Any("error", err))

		return c.bury(ctx, meta, service.SyncOutcomeFailed, err)
	}

	if err := c.tombstones.Remove(ctx, c.kind, tombstone.RemoteID); err != nil {
		return errors.Wrap(err, "failed to remove tombstone")
	}
	c.report(ctx, meta, service.SyncOperationDelete, service.SyncOutcomeSynced, nil)

	return nil
}

// bury records a remote delete that still has to happen and returns the sync error.
func (c *SyncCoordinator[T]) bury(ctx context.Context, meta *entity.Record, outcome service.SyncOutcome, cause error) error {
	tombstone := &entity.Tombstone{
		Kind:        c.kind,
		RemoteID:    meta.RemoteIDValue(),
		OwnerUserID: meta.OwnerUserID,
		LastError:   cause.Error(),
	}
	if err := c.tombstones.Save(ctx, tombstone); err != nil {
		c.log(ctx).Error("Failed to save tombstone, remote document may be orphaned",
			slog.String("remote_id", tombstone.RemoteID),
			slog.Any("error", err))

		return errors.Wrap(err, "failed to save tombstone")
	}
	c.report(ctx, meta, service.SyncOperationDelete, outcome, cause)

	return remoteFailure(cause)
}

// report counts a remote outcome and publishes it as a sync event.
func (c *SyncCoordinator[T]) report(ctx context.Context, meta *entity.Record, op service.SyncOperation, outcome service.SyncOutcome, cause error) {
	c.metrics.RemoteWrite(c.kind.String(), op, outcome)

	event := &service.SyncEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		Kind:        c.kind.String(),
		RemoteID:    meta.RemoteIDValue(),
		OwnerUserID: meta.OwnerUserID,
		Operation:   op,
		Outcome:     outcome,
		OccurredAt:  c.now().UTC(),
	}
	if meta.LocalID != uuid.Nil {
		event.LocalID = meta.LocalID.String()
	}
	if cause != nil {
		event.Error = cause.Error()
	}

	if err := c.publisher.PublishSyncEvent(ctx, event); err != nil {
		c.log(ctx).Warn("Failed to publish sync event",
			slog.String("operation", string(op)),
			slog.String("remote_id", event.RemoteID),
			slog.Any("error", err))
	}
}

// remoteFailure converts a remote store error into the sync error shown to users.
func remoteFailure(err error) error {
	if errors.Is(err, repository.ErrRemoteUnavailable) {
		return domainerrors.NewRemoteSyncError(domainerrors.ErrOffline, err)
	}

	return domainerrors.NewRemoteSyncError(domainerrors.ErrRemoteSyncFailed, err)
}

// localFailure marks an error raised by the local store after a successful remote write.
type localFailure struct {
	error
}

func (e localFailure) Unwrap() error {
	return e.error
}

func isLocalFailure(err error) bool {
	var target localFailure

	return errors.As(err, &target)
}
