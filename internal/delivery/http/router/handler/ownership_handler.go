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

// OwnershipHandlerParams holds dependencies for OwnershipHandler, injected by Fx.
type OwnershipHandlerParams struct {
	fx.In

	Lc          fx.Lifecycle
	OwnershipUC usecase.OwnershipUsecase
	Runner      *task.Runner
	Logger      *slog.Logger
}

// OwnershipHandler serves adoption requests
type OwnershipHandler struct {
	*FeatureHandler[*entity.OwnershipRequest]

	ownershipUC usecase.OwnershipUsecase
}

// DecideRequest is the body of the decision endpoint
type DecideRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

// NewOwnershipHandler is the constructor for OwnershipHandler
func NewOwnershipHandler(params OwnershipHandlerParams) *OwnershipHandler {
	return &OwnershipHandler{
		FeatureHandler: newFeatureHandler(params.Lc, params.OwnershipUC.Coordinator(), params.Runner, params.Logger),
		ownershipUC:    params.OwnershipUC,
	}
}

// Request files an adoption request
func (h *OwnershipHandler) Request(c echo.Context) error {
	var req usecase.OwnershipRequestInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	return h.perform(c, "request", func(ctx context.Context, ownerUserID string) error {
		_, err := h.ownershipUC.Request(ctx, ownerUserID, &req)

		return err
	})
}

// Decide approves or rejects a pending request
func (h *OwnershipHandler) Decide(c echo.Context) error {
	id, err := localID(c)
	if err != nil {
		return err
	}

	var req DecideRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	return h.perform(c, "decide", func(ctx context.Context, ownerUserID string) error {
		_, err := h.ownershipUC.Decide(ctx, ownerUserID, id, entity.Status(req.Status))

		return err
	})
}

// Withdraw deletes a request
func (h *OwnershipHandler) Withdraw(c echo.Context) error {
	id, err := localID(c)
	if err != nil {
		return err
	}

	return h.perform(c, "withdraw", func(ctx context.Context, ownerUserID string) error {
		return h.ownershipUC.Withdraw(ctx, ownerUserID, id)
	})
}
