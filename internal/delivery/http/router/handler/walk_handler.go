package handler

import (
	"context"
	"log/slog"
	"net/http"

	deliverycontext "pawsync/internal/delivery/context"
	"pawsync/internal/delivery/http/response"
	"pawsync/internal/domain/entity"
	domainerrors "pawsync/internal/domain/errors"
	"pawsync/internal/infra/task"
	"pawsync/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// WalkHandlerParams holds dependencies for WalkHandler, injected by Fx.
type WalkHandlerParams struct {
	fx.In

	Lc     fx.Lifecycle
	WalkUC usecase.WalkUsecase
	Runner *task.Runner
	Logger *slog.Logger
}

// WalkHandler serves GPS tracked walks
type WalkHandler struct {
	*FeatureHandler[*entity.Walk]

	walkUC usecase.WalkUsecase
}

// StartWalkRequest is the body of the start endpoint
type StartWalkRequest struct {
	DogID string `json:"dog_id" validate:"required"`
}

// TrackPointRequest is one GPS fix
type TrackPointRequest struct {
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
}

// NewWalkHandler is the constructor for WalkHandler
func NewWalkHandler(params WalkHandlerParams) *WalkHandler {
	return &WalkHandler{
		FeatureHandler: newFeatureHandler(params.Lc, params.WalkUC.Coordinator(), params.Runner, params.Logger),
		walkUC:         params.WalkUC,
	}
}

// Start begins a walk
func (h *WalkHandler) Start(c echo.Context) error {
	var req StartWalkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	return h.perform(c, "start", func(ctx context.Context, ownerUserID string) error {
		_, err := h.walkUC.Start(ctx, ownerUserID, req.DogID)

		return err
	})
}

// Track appends a GPS fix to a walk in progress
func (h *WalkHandler) Track(c echo.Context) error {
	id, err := localID(c)
	if err != nil {
		return err
	}

	var req TrackPointRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	return h.perform(c, "track", func(ctx context.Context, ownerUserID string) error {
		_, err := h.walkUC.Track(ctx, ownerUserID, id, *req.Longitude, *req.Latitude)

		return err
	})
}

// Finish ends a walk and awards its medal
func (h *WalkHandler) Finish(c echo.Context) error {
	id, err := localID(c)
	if err != nil {
		return err
	}

	return h.perform(c, "finish", func(ctx context.Context, ownerUserID string) error {
		_, err := h.walkUC.Finish(ctx, ownerUserID, id)

		return err
	})
}

// Summary returns the user's walk totals
func (h *WalkHandler) Summary(c echo.Context) error {
	owner := deliverycontext.GetUserID(c)
	if owner == "" {
		return domainerrors.ErrUnauthorized
	}

	summary, err := h.walkUC.Summary(c.Request().Context(), owner)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, summary)
}
