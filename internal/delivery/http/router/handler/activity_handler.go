package handler

import (
	"context"
	"log/slog"

	"pawsync/internal/domain/entity"
	"pawsync/internal/infra/task"
	"pawsync/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ActivityHandlerParams holds dependencies for ActivityHandler, injected by Fx.
type ActivityHandlerParams struct {
	fx.In

	Lc         fx.Lifecycle
	ActivityUC usecase.ActivityUsecase
	Runner     *task.Runner
	Logger     *slog.Logger
}

// ActivityHandler serves shelter activities
type ActivityHandler struct {
	*FeatureHandler[*entity.Activity]

	activityUC usecase.ActivityUsecase
}

// ActivityStatusRequest is the body of the status endpoint
type ActivityStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=SCHEDULED DONE CANCELLED"`
}

// NewActivityHandler is the constructor for ActivityHandler
func NewActivityHandler(params ActivityHandlerParams) *ActivityHandler {
	return &ActivityHandler{
		FeatureHandler: newFeatureHandler(params.Lc, params.ActivityUC.Coordinator(), params.Runner, params.Logger),
		activityUC:     params.ActivityUC,
	}
}

// Schedule creates an activity
func (h *ActivityHandler) Schedule(c echo.Context) error {
	var req usecase.ScheduleActivityInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	return h.perform(c, "schedule", func(ctx context.Context, ownerUserID string) error {
		_, err := h.activityUC.Schedule(ctx, ownerUserID, &req)

		return err
	})
}

// SetStatus moves an activity to another status. Cancelling goes through Cancel so a
// finished activity cannot be cancelled.
func (h *ActivityHandler) SetStatus(c echo.Context) error {
	id, err := localID(c)
	if err != nil {
		return err
	}

	var req ActivityStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	status := entity.Status(req.Status)

	return h.perform(c, "set_status", func(ctx context.Context, ownerUserID string) error {
		var err error
		if status == entity.StatusCancelled {
			_, err = h.activityUC.Cancel(ctx, ownerUserID, id)
		} else {
			_, err = h.activityUC.SetStatus(ctx, ownerUserID, id, status)
		}

		return err
	})
}

// Remove deletes an activity
func (h *ActivityHandler) Remove(c echo.Context) error {
	id, err := localID(c)
	if err != nil {
		return err
	}

	return h.perform(c, "remove", func(ctx context.Context, ownerUserID string) error {
		return h.activityUC.Remove(ctx, ownerUserID, id)
	})
}
