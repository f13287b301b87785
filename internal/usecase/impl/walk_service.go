package impl

import (
	"context"
	"log/slog"
	"time"

	"pawsync/internal/domain/entity"
	domainerrors "pawsync/internal/domain/errors"
	"pawsync/internal/domain/repository"
	"pawsync/internal/domain/service"
	"pawsync/internal/usecase"
	"pawsync/internal/util"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// walkService implements the WalkUsecase interface.
type walkService struct {
	coordinator *SyncCoordinator[*entity.Walk]
	now         func() time.Time
}

// NewWalkService is the constructor for walkService.
func NewWalkService(params CoordinatorParams, store repository.LocalStore[*entity.Walk], mapper service.Mapper[*entity.Walk]) usecase.WalkUsecase {
	return &walkService{
		coordinator: NewSyncCoordinator(params, store, mapper),
		now:         time.Now,
	}
}

// Start begins a walk for a dog.
func (srv *walkService) Start(ctx context.Context, ownerUserID, dogID string) (*entity.Walk, error) {
	if err := requireIDs(ownerUserID, dogID); err != nil {
		return nil, err
	}

	walk := &entity.Walk{
		Record: entity.Record{
			OwnerUserID: ownerUserID,
			SubjectID:   dogID,
			Status:      entity.StatusInProgress,
		},
		StartedAt: srv.now().UTC(),
		Medal:     entity.MedalNone,
	}

	return srv.coordinator.Create(ctx, walk)
}

// Track appends a position to a walk in progress. The route is mirrored when the walk ends.
func (srv *walkService) Track(ctx context.Context, ownerUserID string, localID uuid.UUID, lon, lat float64) (*entity.Walk, error) {
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("coordinates out of range")
	}

	return srv.coordinator.modifyLocal(ctx, ownerUserID, localID, func(walk *entity.Walk) error {
		if !walk.InProgress() {
			return domainerrors.ErrWalkNotInProgress
		}
		walk.AppendPoint(orb.Point{lon, lat})
		walk.DistanceMeters = entity.RouteLength(walk.Route)

		return nil
	})
}

// Finish closes the walk, awards its medal and mirrors it remotely.
func (srv *walkService) Finish(ctx context.Context, ownerUserID string, localID uuid.UUID) (*entity.Walk, error) {
	walk, err := srv.coordinator.Mutate(ctx, ownerUserID, localID, func(walk *entity.Walk) error {
		if !walk.InProgress() {
			return domainerrors.ErrWalkNotInProgress
		}
		walk.Finish(srv.now().UTC())

		return nil
	})
	if walk == nil {
		return nil, err
	}

	srv.coordinator.log(ctx).Info("Walk finished",
		slog.String("local_id", walk.LocalID.String()),
		slog.Float64("distance_meters", walk.DistanceMeters),
		slog.String("medal", string(walk.Medal)))

	return walk, err
}

// Summary aggregates the owner's walks from the local store.
func (srv *walkService) Summary(ctx context.Context, ownerUserID string) (*usecase.WalkSummary, error) {
	walks, err := srv.coordinator.List(ctx, ownerUserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list walks")
	}

	summary := &usecase.WalkSummary{Medals: make(map[entity.Medal]int)}

	var (
		total   time.Duration
		longest *entity.Walk
	)
	for _, walk := range walks {
		if walk.InProgress() {
			summary.InProgress++

			continue
		}
		summary.Walks++
		summary.TotalDistance += walk.DistanceMeters
		total += walk.Duration(srv.now())
		summary.Medals[walk.Medal]++

		if longest == nil || walk.DistanceMeters > longest.DistanceMeters {
			longest = walk
		}
	}

	summary.TotalSeconds = int64(total.Seconds())
	summary.DistanceText = util.FormatDistance(summary.TotalDistance)
	summary.DurationText = util.FormatDuration(total)
	summary.AveragePace = util.FormatPace(total, summary.TotalDistance)
	if longest != nil {
		id := longest.LocalID
		summary.LongestWalkID = &id
	}

	return summary, nil
}

// Coordinator exposes the sync coordinator backing the feature.
func (srv *walkService) Coordinator() usecase.SyncUsecase[*entity.Walk] {
	return srv.coordinator
}
