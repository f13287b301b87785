package repository

import (
	"context"

	"pawsync/internal/domain/entity"
)

// TombstoneRepository stores remote deletes that still have to be confirmed.
type TombstoneRepository interface {
	// Save records a pending remote delete, bumping its attempt count when it already exists.
	Save(ctx context.Context, tombstone *entity.Tombstone) error

	// List returns the tombstones of a kind. An empty owner matches every owner.
	List(ctx context.Context, kind entity.Kind, ownerUserID string) ([]*entity.Tombstone, error)

	// RemoteIDs returns the set of tombstoned remote IDs of a kind.
	RemoteIDs(ctx context.Context, kind entity.Kind) (map[string]struct{}, error)

	// Remove drops a tombstone once the remote delete is confirmed.
	Remove(ctx context.Context, kind entity.Kind, remoteID string) error
}
