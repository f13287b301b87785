package usecase

import (
	"context"

	"pawsync/internal/domain/entity"
	domainerrors "pawsync/internal/domain/errors"
	"pawsync/internal/errors"

	"github.com/google/uuid"
)

// FetchResult summarizes a FetchAll pass.
type FetchResult struct {
	Fetched    int  `json:"fetched"`    // Documents merged into the local store
	Dropped    int  `json:"dropped"`    // Malformed documents rejected by the mapper
	Tombstoned int  `json:"tombstoned"` // Documents skipped because a delete is pending
	Skipped    bool `json:"skipped"`    // The remote store was unreachable
	Failed     bool `json:"failed"`     // The remote query failed
}

// SyncReport summarizes a SyncPending pass.
type SyncReport struct {
	Kind    entity.Kind `json:"kind"`
	Created int         `json:"created"`
	Updated int         `json:"updated"`
	Deleted int         `json:"deleted"`
	Failed  int         `json:"failed"`
}

// Add folds another report into r.
func (r *SyncReport) Add(other *SyncReport) {
	if other == nil {
		return
	}
	r.Created += other.Created
	r.Updated += other.Updated
	r.Deleted += other.Deleted
	r.Failed += other.Failed
}

// PendingSyncer pushes the local changes of one entity kind to the remote store.
type PendingSyncer interface {
	// Kind returns the entity kind handled by the syncer
	Kind() entity.Kind

	// SyncPending pushes local-only records, dirty records and pending deletes.
	// An empty owner syncs every owner.
	SyncPending(ctx context.Context, ownerUserID string) (*SyncReport, error)
}

// SyncUsecase reconciles the local store of one entity kind with its remote collection
// under an offline-first policy. The local store is always written first.
type SyncUsecase[T entity.Syncable] interface {
	PendingSyncer

	// Create inserts the record locally and mirrors it remotely when possible.
	// Remote failures are swallowed: the local-only record is returned with a nil error.
	Create(ctx context.Context, rec T) (T, error)

	// FetchAll merges the owner's remote documents into the local store. It never deletes.
	FetchAll(ctx context.Context, ownerUserID string) (*FetchResult, error)

	// Update writes the record locally and mirrors it. Remote failures are returned.
	Update(ctx context.Context, rec T) (T, error)

	// UpdateStatus changes the status locally and mirrors it. Remote failures are returned.
	UpdateStatus(ctx context.Context, localID uuid.UUID, status entity.Status) (T, error)

	// Delete removes the record locally and remotely. A failed remote delete is
	// remembered for the next sync pass and returned.
	Delete(ctx context.Context, localID uuid.UUID) error

	// List returns the owner's records from the local store
	List(ctx context.Context, ownerUserID string) ([]T, error)

	// Get returns one record from the local store
	Get(ctx context.Context, localID uuid.UUID) (T, error)

	// Subscribe signals every local change to the owner's records
	Subscribe(ownerUserID string) (<-chan struct{}, func())
}

// SyncAll runs SyncPending for every syncer in order. A kind that fails does not stop
// the others, except when the remote store is unreachable, which ends the pass.
func SyncAll(ctx context.Context, syncers []PendingSyncer, ownerUserID string) ([]*SyncReport, error) {
	reports := make([]*SyncReport, 0, len(syncers))

	var errs []error
	for _, syncer := range syncers {
		report, err := syncer.SyncPending(ctx, ownerUserID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrOffline) {
				return reports, err
			}
			errs = append(errs, errors.Wrapf(err, "failed to sync %s", syncer.Kind()))

			continue
		}
		reports = append(reports, report)
	}

	return reports, errors.Join(errs...)
}
