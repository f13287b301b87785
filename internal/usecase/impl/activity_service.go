package impl

import (
	"context"
	"strings"

	"pawsync/internal/domain/entity"
	domainerrors "pawsync/internal/domain/errors"
	"pawsync/internal/domain/repository"
	"pawsync/internal/domain/service"
	"pawsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// activityService implements the ActivityUsecase interface.
type activityService struct {
	coordinator *SyncCoordinator[*entity.Activity]
}

// NewActivityService is the constructor for activityService.
func NewActivityService(params CoordinatorParams, store repository.LocalStore[*entity.Activity], mapper service.Mapper[*entity.Activity]) usecase.ActivityUsecase {
	return &activityService{
		coordinator: NewSyncCoordinator(params, store, mapper),
	}
}

// Schedule creates a scheduled activity.
func (srv *activityService) Schedule(ctx context.Context, ownerUserID string, input *usecase.ScheduleActivityInput) (*entity.Activity, error) {
	if input == nil {
		return nil, requireIDs("")
	}
	if err := requireIDs(ownerUserID, input.ShelterID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("title is required")
	}

	activity := &entity.Activity{
		Record: entity.Record{
			OwnerUserID: ownerUserID,
			SubjectID:   input.ShelterID,
			Status:      entity.StatusScheduled,
		},
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Location:    orb.Point{input.Longitude, input.Latitude},
		ScheduledAt: input.ScheduledAt.UTC(),
	}

	return srv.coordinator.Create(ctx, activity)
}

// SetStatus moves an activity to another status.
func (srv *activityService) SetStatus(ctx context.Context, ownerUserID string, localID uuid.UUID, status entity.Status) (*entity.Activity, error) {
	activity, err := ownedRecord(ctx, srv.coordinator, ownerUserID, localID)
	if err != nil {
		return nil, err
	}
	if activity.Status == status {
		return activity, nil
	}

	return srv.coordinator.UpdateStatus(ctx, localID, status)
}

// Cancel marks a scheduled activity as cancelled.
func (srv *activityService) Cancel(ctx context.Context, ownerUserID string, localID uuid.UUID) (*entity.Activity, error) {
	activity, err := ownedRecord(ctx, srv.coordinator, ownerUserID, localID)
	if err != nil {
		return nil, err
	}
	if activity.Status == entity.StatusDone {
		return nil, domainerrors.ErrInvalidStatus.WithDetails("a finished activity cannot be cancelled")
	}

	return srv.SetStatus(ctx, ownerUserID, localID, entity.StatusCancelled)
}

// Remove deletes an activity.
func (srv *activityService) Remove(ctx context.Context, ownerUserID string, localID uuid.UUID) error {
	if _, err := ownedRecord(ctx, srv.coordinator, ownerUserID, localID); err != nil {
		return err
	}

	return srv.coordinator.Delete(ctx, localID)
}

// Coordinator exposes the sync coordinator backing the feature.
func (srv *activityService) Coordinator() usecase.SyncUsecase[*entity.Activity] {
	return srv.coordinator
}
