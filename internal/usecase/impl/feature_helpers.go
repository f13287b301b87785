package impl

import (
	"context"
	"strings"

	"pawsync/internal/domain/entity"
	domainerrors "pawsync/internal/domain/errors"
	"pawsync/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ownedRecord loads a record and checks that it belongs to ownerUserID.
func ownedRecord[T entity.Syncable](ctx context.Context, coordinator *SyncCoordinator[T], ownerUserID string, localID uuid.UUID) (T, error) {
	var zero T

	rec, err := coordinator.Get(ctx, localID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return zero, domainerrors.ErrRecordNotFound
		}

		return zero, err
	}
	if rec.Meta().OwnerUserID != ownerUserID {
		return zero, domainerrors.ErrForbidden
	}

	return rec, nil
}

// requireIDs rejects blank identifiers before anything is written.
func requireIDs(ids ...string) error {
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return domainerrors.ErrValidationFailed.WithDetails("owner and subject are required")
		}
	}

	return nil
}
