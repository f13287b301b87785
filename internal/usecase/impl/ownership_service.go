package impl

import (
	"context"
	"log/slog"
	"strings"

	"pawsync/internal/domain/entity"
	domainerrors "pawsync/internal/domain/errors"
	"pawsync/internal/domain/repository"
	"pawsync/internal/domain/service"
	"pawsync/internal/usecase"

	"github.com/google/uuid"
)

// ownershipService implements the OwnershipUsecase interface.
type ownershipService struct {
	coordinator *SyncCoordinator[*entity.OwnershipRequest]
}

// NewOwnershipService is the constructor for ownershipService.
func NewOwnershipService(params CoordinatorParams, store repository.LocalStore[*entity.OwnershipRequest], mapper service.Mapper[*entity.OwnershipRequest]) usecase.OwnershipUsecase {
	return &ownershipService{
		coordinator: NewSyncCoordinator(params, store, mapper),
	}
}

// Request files a pending adoption request.
func (srv *ownershipService) Request(ctx context.Context, ownerUserID string, input *usecase.OwnershipRequestInput) (*entity.OwnershipRequest, error) {
	if input == nil {
		return nil, requireIDs("")
	}
	if err := requireIDs(ownerUserID, input.AnimalID, input.ShelterID); err != nil {
		return nil, err
	}

	req := &entity.OwnershipRequest{
		Record: entity.Record{
			OwnerUserID: ownerUserID,
			SubjectID:   input.AnimalID,
			Status:      entity.StatusPending,
		},
		ShelterID: input.ShelterID,
		Message:   strings.TrimSpace(input.Message),
	}

	created, err := srv.coordinator.Create(ctx, req)
	if err != nil {
		srv.coordinator.log(ctx).Warn("Ownership request rejected",
			slog.String("animal_id", input.AnimalID),
			slog.Any("error", err))

		return nil, err
	}

	return created, nil
}

// Decide approves or rejects a pending request. Deciding releases the request's
// uniqueness so the user may ask again later.
func (srv *ownershipService) Decide(ctx context.Context, ownerUserID string, localID uuid.UUID, status entity.Status) (*entity.OwnershipRequest, error) {
	req, err := ownedRecord(ctx, srv.coordinator, ownerUserID, localID)
	if err != nil {
		return nil, err
	}
	if status != entity.StatusApproved && status != entity.StatusRejected {
		return nil, domainerrors.ErrInvalidStatus.WithDetails("a request can only be approved or rejected")
	}
	if !req.CanTransitionTo(status) {
		return nil, domainerrors.ErrInvalidStatus.WithDetails("request is already " + req.Status.String())
	}

	return srv.coordinator.UpdateStatus(ctx, localID, status)
}

// Withdraw deletes a request.
func (srv *ownershipService) Withdraw(ctx context.Context, ownerUserID string, localID uuid.UUID) error {
	if _, err := ownedRecord(ctx, srv.coordinator, ownerUserID, localID); err != nil {
		return err
	}

	return srv.coordinator.Delete(ctx, localID)
}

// Coordinator exposes the sync coordinator backing the feature.
func (srv *ownershipService) Coordinator() usecase.SyncUsecase[*entity.OwnershipRequest] {
	return srv.coordinator
}
