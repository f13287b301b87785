package local

import (
	"context"
	"time"

	"pawsync/internal/domain/entity"
	domainerrors "pawsync/internal/domain/errors"
	"pawsync/internal/domain/repository"
	"pawsync/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recordCodec converts between a domain entity and its GORM model.
type recordCodec[T entity.Syncable, M any] struct {
	fromDomain func(T) *M
	toDomain   func(*M) T
	record     func(*M) *model.RecordModel
}

// recordStore implements repository.LocalStore for one entity table.
type recordStore[T entity.Syncable, M any] struct {
	db    *gorm.DB
	codec recordCodec[T, M]
	feed  *changeFeed
	now   func() time.Time
}

func newRecordStore[T entity.Syncable, M any](db *gorm.DB, codec recordCodec[T, M]) *recordStore[T, M] {
	return &recordStore[T, M]{
		db:    db,
		codec: codec,
		feed:  newChangeFeed(),
		now:   time.Now,
	}
}

// withTx returns a copy of the store bound to tx. Notifications still go to the shared feed.
func (s *recordStore[T, M]) withTx(tx *gorm.DB) *recordStore[T, M] {
	bound := *s
	bound.db = tx

	return &bound
}

// Insert persists a new record and assigns its LocalID when unset.
func (s *recordStore[T, M]) Insert(ctx context.Context, rec T) error {
	meta := rec.Meta()
	if meta.LocalID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate local ID")
		}
		meta.LocalID = id
	}
	if meta.CreatedAt.IsZero() {
		meta.InitTimestamps(s.now().UTC())
	}

	m := s.codec.fromDomain(rec)
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateRecord
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidRecord.WrapMessage("missing required record information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to insert record")
	}

	s.feed.notify(meta.OwnerUserID)

	return nil
}

// Get retrieves a record by its local ID.
func (s *recordStore[T, M]) Get(ctx context.Context, localID uuid.UUID) (T, error) {
	return s.first(ctx, "local_id = ?", localID)
}

// FindByDedupeKey returns the record holding the uniqueness key.
func (s *recordStore[T, M]) FindByDedupeKey(ctx context.Context, key string) (T, error) {
	return s.first(ctx, "dedupe_key = ?", key)
}

// ListByOwner returns the owner's records, newest first.
func (s *recordStore[T, M]) ListByOwner(ctx context.Context, ownerUserID string) ([]T, error) {
	query := s.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at DESC")

	return s.find(query, "failed to list records by owner")
}

// ListPending returns records without a remote ID, oldest first.
func (s *recordStore[T, M]) ListPending(ctx context.Context, ownerUserID string) ([]T, error) {
	query := s.db.WithContext(ctx).Where("remote_id IS NULL")
	if ownerUserID != "" {
		query = query.Where("owner_user_id = ?", ownerUserID)
	}

	return s.find(query.Order("created_at ASC"), "failed to list pending records")
}

// ListDirty returns synced records whose local changes are not mirrored yet.
func (s *recordStore[T, M]) ListDirty(ctx context.Context, ownerUserID string) ([]T, error) {
	query := s.db.WithContext(ctx).Where("remote_id IS NOT NULL AND dirty = ?", true)
	if ownerUserID != "" {
		query = query.Where("owner_user_id = ?", ownerUserID)
	}

	return s.find(query.Order("updated_at ASC"), "failed to list dirty records")
}

// SetRemoteID stores the remote document ID of a record.
func (s *recordStore[T, M]) SetRemoteID(ctx context.Context, localID uuid.UUID, remoteID string) error {
	current, err := s.Get(ctx, localID)
	if err != nil {
		return err
	}

	if err := s.updateColumns(ctx, localID, map[string]any{"remote_id": remoteID}); err != nil {
		return err
	}

	s.feed.notify(current.Meta().OwnerUserID)

	return nil
}

// Update replaces the payload, status and dirty flag of a record.
func (s *recordStore[T, M]) Update(ctx context.Context, rec T) error {
	if err := s.save(ctx, rec); err != nil {
		return err
	}

	s.feed.notify(rec.Meta().OwnerUserID)

	return nil
}

// Modify applies fn to the current record and stores the result in one transaction.
// The row stays locked until commit on databases that support FOR UPDATE; sqlite
// serializes the transaction on its single connection. An error from fn aborts the
// change and is returned as is.
func (s *recordStore[T, M]) Modify(ctx context.Context, localID uuid.UUID, fn func(T) error) (T, error) {
	var updated T

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := new(M)
		err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
			Where("local_id = ?", localID).
			First(m).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrRecordNotFound
			}

			return errors.Wrap(err, "failed to lock record")
		}

		rec := s.codec.toDomain(m)
		if err := fn(rec); err != nil {
			return err
		}
		rec.Meta().LocalID = localID

		if err := s.withTx(tx).save(ctx, rec); err != nil {
			return err
		}
		updated = rec

		return nil
	})
	if err != nil {
		var zero T

		return zero, err
	}

	s.feed.notify(updated.Meta().OwnerUserID)

	return updated, nil
}

func (s *recordStore[T, M]) save(ctx context.Context, rec T) error {
	meta := rec.Meta()
	m := s.codec.fromDomain(rec)

	result := s.db.WithContext(ctx).
		Model(new(M)).
		Where("local_id = ?", meta.LocalID).
		Select("*").
		Omit("local_id", "created_at").
		Updates(m)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateRecord
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update record")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRecordNotFound
	}

	return nil
}

// UpdateStatus changes the status and dirty flag of a record and returns the updated record.
// The dedupe key is recomputed so that a status change can release it.
func (s *recordStore[T, M]) UpdateStatus(ctx context.Context, localID uuid.UUID, status entity.Status, dirty bool) (T, error) {
	var updated T

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txStore := s.withTx(tx)

		rec, err := txStore.Get(ctx, localID)
		if err != nil {
			return err
		}

		meta := rec.Meta()
		meta.Status = status
		meta.Dirty = dirty
		meta.Touch(s.now().UTC())

		m := txStore.codec.fromDomain(rec)
		rm := txStore.codec.record(m)
		if err := txStore.updateColumns(ctx, localID, map[string]any{
			"status":     rm.Status,
			"dirty":      rm.Dirty,
			"dedupe_key": rm.DedupeKey,
			"updated_at": rm.UpdatedAt,
		}); err != nil {
			return err
		}

		updated = rec

		return nil
	})
	if err != nil {
		var zero T

		return zero, err
	}

	s.feed.notify(updated.Meta().OwnerUserID)

	return updated, nil
}

// MarkClean clears the dirty flag.
func (s *recordStore[T, M]) MarkClean(ctx context.Context, localID uuid.UUID) error {
	current, err := s.Get(ctx, localID)
	if err != nil {
		return err
	}

	if err := s.updateColumns(ctx, localID, map[string]any{"dirty": false}); err != nil {
		return err
	}

	s.feed.notify(current.Meta().OwnerUserID)

	return nil
}

// UpsertRemote merges records read from the remote store and returns how many were applied.
// A record is matched by remote ID first, then adopted by local ID or dedupe key when the
// matching row has not been synced yet. Rows with unsynced local changes keep their values.
// Nothing is ever deleted.
func (s *recordStore[T, M]) UpsertRemote(ctx context.Context, recs []T) (int, error) {
	applied := 0
	owners := make(map[string]struct{})

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txStore := s.withTx(tx)

		for _, rec := range recs {
			ok, err := txStore.mergeRemote(ctx, rec)
			if err != nil {
				return err
			}
			if ok {
				applied++
				owners[rec.Meta().OwnerUserID] = struct{}{}
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	for owner := range owners {
		s.feed.notify(owner)
	}

	return applied, nil
}

func (s *recordStore[T, M]) mergeRemote(ctx context.Context, rec T) (bool, error) {
	meta := rec.Meta()
	remoteID := meta.RemoteIDValue()
	if remoteID == "" {
		return false, nil
	}
	meta.Dirty = false
	if meta.UpdatedAt.IsZero() {
		meta.UpdatedAt = s.now().UTC()
	}

	existing, err := s.first(ctx, "remote_id = ?", remoteID)
	switch {
	case err == nil:
		if existing.Meta().Dirty {
			return false, nil
		}
		meta.LocalID = existing.Meta().LocalID
		meta.CreatedAt = existing.Meta().CreatedAt

		return true, s.Update(ctx, rec)
	case !errors.Is(err, repository.ErrRecordNotFound):
		return false, err
	}

	if adopted, err := s.adoptLocal(ctx, rec); err != nil || adopted {
		return adopted, err
	}

	if key := rec.DedupeKey(); key != nil {
		_, err := s.FindByDedupeKey(ctx, *key)
		if err == nil {
			// Another synced row already holds the key; the duplicate document is ignored.
			return false, nil
		}
		if !errors.Is(err, repository.ErrRecordNotFound) {
			return false, err
		}
	}

	if meta.LocalID != uuid.Nil {
		if _, err := s.Get(ctx, meta.LocalID); err == nil {
			meta.LocalID = uuid.Nil
		} else if !errors.Is(err, repository.ErrRecordNotFound) {
			return false, err
		}
	}

	if err := s.Insert(ctx, rec); err != nil {
		return false, err
	}

	return true, nil
}

// adoptLocal attaches a remote record to the local-only row it originated from.
func (s *recordStore[T, M]) adoptLocal(ctx context.Context, rec T) (bool, error) {
	meta := rec.Meta()

	candidate, err := s.adoptionCandidate(ctx, rec)
	if err != nil || isNil(candidate) {
		return false, err
	}
	if candidate.Meta().IsSynced() {
		return false, nil
	}

	meta.LocalID = candidate.Meta().LocalID
	meta.CreatedAt = candidate.Meta().CreatedAt

	return true, s.Update(ctx, rec)
}

func (s *recordStore[T, M]) adoptionCandidate(ctx context.Context, rec T) (T, error) {
	var zero T

	if id := rec.Meta().LocalID; id != uuid.Nil {
		found, err := s.Get(ctx, id)
		if err == nil && found.Meta().OwnerUserID == rec.Meta().OwnerUserID {
			return found, nil
		}
		if err != nil && !errors.Is(err, repository.ErrRecordNotFound) {
			return zero, err
		}
	}

	if key := rec.DedupeKey(); key != nil {
		found, err := s.FindByDedupeKey(ctx, *key)
		if err == nil {
			return found, nil
		}
		if !errors.Is(err, repository.ErrRecordNotFound) {
			return zero, err
		}
	}

	return zero, nil
}

// Delete removes a record by its local ID.
func (s *recordStore[T, M]) Delete(ctx context.Context, localID uuid.UUID) error {
	current, err := s.Get(ctx, localID)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Where("local_id = ?", localID).Delete(new(M))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete record")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRecordNotFound
	}

	s.feed.notify(current.Meta().OwnerUserID)

	return nil
}

// Subscribe returns a channel signalled after every change to the owner's records.
func (s *recordStore[T, M]) Subscribe(ownerUserID string) (<-chan struct{}, func()) {
	return s.feed.subscribe(ownerUserID)
}

func (s *recordStore[T, M]) first(ctx context.Context, query string, args ...any) (T, error) {
	var zero T
	m := new(M)

	if err := s.db.WithContext(ctx).Where(query, args...).First(m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, repository.ErrRecordNotFound
		}

		return zero, errors.Wrap(err, "failed to find record")
	}

	return s.codec.toDomain(m), nil
}

func (s *recordStore[T, M]) find(query *gorm.DB, msg string) ([]T, error) {
	var models []*M
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, msg)
	}

	recs := make([]T, 0, len(models))
	for _, m := range models {
		recs = append(recs, s.codec.toDomain(m))
	}

	return recs, nil
}

func (s *recordStore[T, M]) updateColumns(ctx context.Context, localID uuid.UUID, columns map[string]any) error {
	result := s.db.WithContext(ctx).
		Model(new(M)).
		Where("local_id = ?", localID).
		Updates(columns)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateRecord
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update record")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRecordNotFound
	}

	return nil
}

func isNil[T entity.Syncable](rec T) bool {
	var zero T

	return any(rec) == any(zero)
}
