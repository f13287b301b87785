// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"pawsync/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for local persistence.
var (
	// ErrRecordNotFound is returned when no local record matches the lookup.
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateRecord is returned when an insert collides with a unique key.
	ErrDuplicateRecord = errors.New("record already exists")
)

// LocalStore is the durable per-entity cache. It is the only source the UI layer reads from.
// Every mutation notifies the owner's subscribers.
type LocalStore[T entity.Syncable] interface {
	// Insert persists a new record and assigns its LocalID when unset.
	Insert(ctx context.Context, rec T) error

	// Get retrieves a record by its local ID.
	Get(ctx context.Context, localID uuid.UUID) (T, error)

	// ListByOwner returns the owner's records, newest first.
	ListByOwner(ctx context.Context, ownerUserID string) ([]T, error)

	// FindByDedupeKey returns the record holding the uniqueness key.
	FindByDedupeKey(ctx context.Context, key string) (T, error)

	// ListPending returns records without a remote ID. An empty owner matches every owner.
	ListPending(ctx context.Context, ownerUserID string) ([]T, error)

	// ListDirty returns synced records whose local changes are not mirrored yet.
	// An empty owner matches every owner.
	ListDirty(ctx context.Context, ownerUserID string) ([]T, error)

	// SetRemoteID stores the remote document ID of a record.
	SetRemoteID(ctx context.Context, localID uuid.UUID, remoteID string) error

	// Update replaces the payload, status and dirty flag of a record.
	Update(ctx context.Context, rec T) error

	// Modify applies fn to the current record and stores the result atomically.
	// Concurrent Modify calls on the same record run one after the other.
	// An error from fn aborts the change and is returned unchanged.
	Modify(ctx context.Context, localID uuid.UUID, fn func(T) error) (T, error)

	// UpdateStatus changes the status and dirty flag of a record and returns the updated record.
	UpdateStatus(ctx context.Context, localID uuid.UUID, status entity.Status, dirty bool) (T, error)

	// MarkClean clears the dirty flag.
	MarkClean(ctx context.Context, localID uuid.UUID) error

	// UpsertRemote merges records read from the remote store. It never deletes.
	UpsertRemote(ctx context.Context, recs []T) (int, error)

	// Delete removes a record by its local ID.
	Delete(ctx context.Context, localID uuid.UUID) error

	// Subscribe returns a channel signalled after every change to the owner's records.
	// The returned function releases the subscription.
	Subscribe(ownerUserID string) (<-chan struct{}, func())
}
