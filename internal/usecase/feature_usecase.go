package usecase

import (
	"context"
	"time"

	"pawsync/internal/domain/entity"

	"github.com/google/uuid"
)

// FavoriteInput describes the animal listing being toggled
type FavoriteInput struct {
	AnimalID   string `json:"animal_id" validate:"required"`
	AnimalName string `json:"animal_name"`
	ImageURL   string `json:"image_url" validate:"omitempty,url"`
}

// FavoriteUsecase defines the favorite listing use cases
type FavoriteUsecase interface {
	// Toggle favorites the listing, or removes the favorite when it already exists.
	// It returns the favorite and whether it is now favorited.
	Toggle(ctx context.Context, ownerUserID string, input *FavoriteInput) (*entity.Favorite, bool, error)

	// Coordinator exposes the sync coordinator backing the feature
	Coordinator() SyncUsecase[*entity.Favorite]
}

// OwnershipRequestInput describes a new adoption request
type OwnershipRequestInput struct {
	AnimalID  string `json:"animal_id" validate:"required"`
	ShelterID string `json:"shelter_id" validate:"required"`
	Message   string `json:"message" validate:"max=500"`
}

// OwnershipUsecase defines the adoption request use cases
type OwnershipUsecase interface {
	// Request files a pending adoption request. A second pending request for the
	// same animal fails with ErrDuplicateRequest.
	Request(ctx context.Context, ownerUserID string, input *OwnershipRequestInput) (*entity.OwnershipRequest, error)

	// Decide approves or rejects a pending request
	Decide(ctx context.Context, ownerUserID string, localID uuid.UUID, status entity.Status) (*entity.OwnershipRequest, error)

	// Withdraw deletes a request
	Withdraw(ctx context.Context, ownerUserID string, localID uuid.UUID) error

	// Coordinator exposes the sync coordinator backing the feature
	Coordinator() SyncUsecase[*entity.OwnershipRequest]
}

// WalkSummary aggregates the owner's walks
type WalkSummary struct {
	Walks         int                  `json:"walks"`
	InProgress    int                  `json:"in_progress"`
	TotalDistance float64              `json:"total_distance_meters"`
	TotalSeconds  int64                `json:"total_duration_seconds"`
	Medals        map[entity.Medal]int `json:"medals"`
	DistanceText  string               `json:"distance_text"`
	DurationText  string               `json:"duration_text"`
	AveragePace   string               `json:"average_pace"`
	LongestWalkID *uuid.UUID           `json:"longest_walk_id,omitempty"`
}

// WalkUsecase defines the walk tracking use cases
type WalkUsecase interface {
	// Start begins a walk for a dog
	Start(ctx context.Context, ownerUserID, dogID string) (*entity.Walk, error)

	// Track appends a position to a walk in progress. Points stay local until the walk ends.
	Track(ctx context.Context, ownerUserID string, localID uuid.UUID, lon, lat float64) (*entity.Walk, error)

	// Finish closes the walk, awards its medal and mirrors it remotely
	Finish(ctx context.Context, ownerUserID string, localID uuid.UUID) (*entity.Walk, error)

	// Summary aggregates the owner's walks from the local store
	Summary(ctx context.Context, ownerUserID string) (*WalkSummary, error)

	// Coordinator exposes the sync coordinator backing the feature
	Coordinator() SyncUsecase[*entity.Walk]
}

// ScheduleActivityInput describes a shelter activity to schedule
type ScheduleActivityInput struct {
	ShelterID   string    `json:"shelter_id" validate:"required"`
	Title       string    `json:"title" validate:"required,max=120"`
	Description string    `json:"description" validate:"max=2000"`
	Longitude   float64   `json:"longitude" validate:"gte=-180,lte=180"`
	Latitude    float64   `json:"latitude" validate:"gte=-90,lte=90"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

// ActivityUsecase defines the shelter activity use cases
type ActivityUsecase interface {
	// Schedule creates a scheduled activity
	Schedule(ctx context.Context, ownerUserID string, input *ScheduleActivityInput) (*entity.Activity, error)

	// SetStatus moves an activity to another status
	SetStatus(ctx context.Context, ownerUserID string, localID uuid.UUID, status entity.Status) (*entity.Activity, error)

	// Cancel marks an activity as cancelled
	Cancel(ctx context.Context, ownerUserID string, localID uuid.UUID) (*entity.Activity, error)

	// Remove deletes an activity
	Remove(ctx context.Context, ownerUserID string, localID uuid.UUID) error

	// Coordinator exposes the sync coordinator backing the feature
	Coordinator() SyncUsecase[*entity.Activity]
}
