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

// FavoriteHandlerParams holds dependencies for FavoriteHandler, injected by Fx.
type FavoriteHandlerParams struct {
	fx.In

	Lc         fx.Lifecycle
	FavoriteUC usecase.FavoriteUsecase
	Runner     *task.Runner
	Logger     *slog.Logger
}

// FavoriteHandler serves the favorites feature
type FavoriteHandler struct {
	*FeatureHandler[*entity.Favorite]

	favoriteUC usecase.FavoriteUsecase
}

// NewFavoriteHandler is the constructor for FavoriteHandler
func NewFavoriteHandler(params FavoriteHandlerParams) *FavoriteHandler {
	return &FavoriteHandler{
		FeatureHandler: newFeatureHandler(params.Lc, params.FavoriteUC.Coordinator(), params.Runner, params.Logger),
		favoriteUC:     params.FavoriteUC,
	}
}

// Toggle favorites a listing, or removes the favorite when it already exists
func (h *FavoriteHandler) Toggle(c echo.Context) error {
	var req usecase.FavoriteInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	return h.perform(c, "toggle", func(ctx context.Context, ownerUserID string) error {
		_, _, err := h.favoriteUC.Toggle(ctx, ownerUserID, &req)

		return err
	})
}
