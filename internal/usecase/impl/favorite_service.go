package impl

import (
	"context"
	"log/slog"

	"pawsync/internal/domain/entity"
	"pawsync/internal/domain/repository"
	"pawsync/internal/domain/service"
	"pawsync/internal/usecase"

	"github.com/pkg/errors"
)

// favoriteService implements the FavoriteUsecase interface.
type favoriteService struct {
	coordinator *SyncCoordinator[*entity.Favorite]
	store       repository.LocalStore[*entity.Favorite]
}

// NewFavoriteService is the constructor for favoriteService.
func NewFavoriteService(params CoordinatorParams, store repository.LocalStore[*entity.Favorite], mapper service.Mapper[*entity.Favorite]) usecase.FavoriteUsecase {
	return &favoriteService{
		coordinator: NewSyncCoordinator(params, store, mapper),
		store:       store,
	}
}

// Toggle favorites the listing, or removes the existing favorite.
func (srv *favoriteService) Toggle(ctx context.Context, ownerUserID string, input *usecase.FavoriteInput) (*entity.Favorite, bool, error) {
	if input == nil {
		return nil, false, requireIDs("")
	}
	if err := requireIDs(ownerUserID, input.AnimalID); err != nil {
		return nil, false, err
	}

	existing, err := srv.store.FindByDedupeKey(ctx, entity.DedupeKey(ownerUserID, input.AnimalID))
	switch {
	case err == nil:
		srv.coordinator.log(ctx).Debug("Removing favorite", slog.String("animal_id", input.AnimalID))

		return existing, false, srv.coordinator.Delete(ctx, existing.LocalID)
	case !errors.Is(err, repository.ErrRecordNotFound):
		return nil, false, errors.Wrap(err, "failed to look up favorite")
	}

	fav := &entity.Favorite{
		Record: entity.Record{
			OwnerUserID: ownerUserID,
			SubjectID:   input.AnimalID,
			Status:      entity.StatusActive,
		},
		AnimalName: input.AnimalName,
		ImageURL:   input.ImageURL,
	}

	created, err := srv.coordinator.Create(ctx, fav)
	if err != nil {
		return nil, false, err
	}

	return created, true, nil
}

// Coordinator exposes the sync coordinator backing the feature.
func (srv *favoriteService) Coordinator() usecase.SyncUsecase[*entity.Favorite] {
	return srv.coordinator
}
