package local

import (
	"context"
	"time"

	"pawsync/internal/domain/entity"
	domainerrors "pawsync/internal/domain/errors"
	"pawsync/internal/domain/repository"
	"pawsync/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// tombstoneRepository implements the repository.TombstoneRepository interface.
type tombstoneRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTombstoneRepository is the constructor for tombstoneRepository.
func NewTombstoneRepository(db *gorm.DB) repository.TombstoneRepository {
	return &tombstoneRepository{
		db:  db,
		now: time.Now,
	}
}

// Save records a pending remote delete, bumping its attempt count when it already exists.
func (repo *tombstoneRepository) Save(ctx context.Context, tombstone *entity.Tombstone) error {
	now := repo.now().UTC()
	if tombstone.Attempts < 1 {
		tombstone.Attempts = 1
	}

	tombstoneM := fromTombstoneDomain(tombstone)
	tombstoneM.CreatedAt = now
	tombstoneM.UpdatedAt = now

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "kind"}, {Name: "remote_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"attempts":   gorm.Expr(tombstoneM.TableName() + ".attempts + 1"),
				"last_error": tombstoneM.LastError,
				"updated_at": now,
			}),
		}).
		Create(tombstoneM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save tombstone")
	}

	return nil
}

// List returns the tombstones of a kind. An empty owner matches every owner.
func (repo *tombstoneRepository) List(ctx context.Context, kind entity.Kind, ownerUserID string) ([]*entity.Tombstone, error) {
	var tombstoneModels []*model.TombstoneModel

	query := repo.db.WithContext(ctx).Where("kind = ?", kind.String())
	if ownerUserID != "" {
		query = query.Where("owner_user_id = ?", ownerUserID)
	}

	if err := query.Order("created_at ASC").Find(&tombstoneModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tombstones")
	}

	tombstones := make([]*entity.Tombstone, 0, len(tombstoneModels))
	for _, tombstoneM := range tombstoneModels {
		tombstones = append(tombstones, toTombstoneDomain(tombstoneM))
	}

	return tombstones, nil
}

// RemoteIDs returns the set of tombstoned remote IDs of a kind.
func (repo *tombstoneRepository) RemoteIDs(ctx context.Context, kind entity.Kind) (map[string]struct{}, error) {
	var ids []string

	if err := repo.db.WithContext(ctx).
		Model(&model.TombstoneModel{}).
		Where("kind = ?", kind.String()).
		Pluck("remote_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tombstoned remote IDs")
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set, nil
}

// Remove drops a tombstone once the remote delete is confirmed. Removing a missing tombstone is a no-op.
func (repo *tombstoneRepository) Remove(ctx context.Context, kind entity.Kind, remoteID string) error {
	if err := repo.db.WithContext(ctx).
		Where("kind = ? AND remote_id = ?", kind.String(), remoteID).
		Delete(&model.TombstoneModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to remove tombstone")
	}

	return nil
}

// --- Mapper Functions ---

func fromTombstoneDomain(t *entity.Tombstone) *model.TombstoneModel {
	return &model.TombstoneModel{
		Kind:        t.Kind.String(),
		RemoteID:    t.RemoteID,
		OwnerUserID: t.OwnerUserID,
		Attempts:    t.Attempts,
		LastError:   t.LastError,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTombstoneDomain(m *model.TombstoneModel) *entity.Tombstone {
	return &entity.Tombstone{
		Kind:        entity.Kind(m.Kind),
		RemoteID:    m.RemoteID,
		OwnerUserID: m.OwnerUserID,
		Attempts:    m.Attempts,
		LastError:   m.LastError,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
