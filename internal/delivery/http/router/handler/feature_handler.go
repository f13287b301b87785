package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	deliverycontext "pawsync/internal/delivery/context"
	"pawsync/internal/delivery/http/response"
	"pawsync/internal/delivery/http/validator"
	"pawsync/internal/delivery/viewmodel"
	"pawsync/internal/domain/entity"
	domainerrors "pawsync/internal/domain/errors"
	"pawsync/internal/infra/task"
	"pawsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// FeatureHandler serves the view model endpoints shared by every feature.
type FeatureHandler[T entity.Syncable] struct {
	registry *viewmodel.Registry[T]
}

func newFeatureHandler[T entity.Syncable](lc fx.Lifecycle, coordinator usecase.SyncUsecase[T], runner *task.Runner, logger *slog.Logger) *FeatureHandler[T] {
	registry := viewmodel.NewRegistry(coordinator, runner, logger)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			registry.Close()

			return nil
		},
	})

	return &FeatureHandler[T]{registry: registry}
}

// RegisterViewRoutes mounts the state, stream, refresh and message endpoints on g.
func (h *FeatureHandler[T]) RegisterViewRoutes(g *echo.Group) {
	g.GET("", h.GetState)
	g.GET("/stream", h.Stream)
	g.POST("/refresh", h.Refresh)
	g.DELETE("/message", h.ClearMessage)
}

// GetState returns the user's current view of the feature
func (h *FeatureHandler[T]) GetState(c echo.Context) error {
	vm, _, err := h.view(c)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, vm.State())
}

// Stream pushes every new state as a server-sent event until the client goes away
func (h *FeatureHandler[T]) Stream(c echo.Context) error {
	vm, _, err := h.view(c)
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	for state := range vm.Subscribe(c.Request().Context()) {
		data, err := json.Marshal(state)
		if err != nil {
			return errors.Wrap(err, "failed to encode state")
		}
		if _, err := fmt.Fprintf(res, "id: %d\nevent: state\ndata: %s\n\n", state.Version, data); err != nil {
			// The client went away.
			return nil
		}
		res.Flush()
	}

	return nil
}

// Refresh pulls remote changes and pushes local ones in the background
func (h *FeatureHandler[T]) Refresh(c echo.Context) error {
	vm, _, err := h.view(c)
	if err != nil {
		return err
	}

	return response.Accepted(c, vm.Refresh(c.Request().Context()))
}

// ClearMessage dismisses the one-shot message
func (h *FeatureHandler[T]) ClearMessage(c echo.Context) error {
	vm, _, err := h.view(c)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]bool{"cleared": vm.ClearMessage()})
}

// perform runs one operation for the user as a background task and answers 202.
func (h *FeatureHandler[T]) perform(c echo.Context, name string, op func(ctx context.Context, ownerUserID string) error) error {
	vm, owner, err := h.view(c)
	if err != nil {
		return err
	}

	t := vm.Perform(c.Request().Context(), name, func(ctx context.Context) error {
		return op(ctx, owner)
	})

	return response.Accepted(c, t)
}

func (h *FeatureHandler[T]) view(c echo.Context) (*viewmodel.ViewModel[T], string, error) {
	owner := deliverycontext.GetUserID(c)
	if owner == "" {
		return nil, "", domainerrors.ErrUnauthorized
	}

	vm, err := h.registry.Open(c.Request().Context(), owner)
	if err != nil {
		return nil, "", domainerrors.NewDatabaseExecuteError(err, "failed to open "+h.registry.Kind().String())
	}

	return vm, owner, nil
}

// bindAndValidate binds the request body into req and validates it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(validator.Describe(err))
	}

	return nil
}

// localID parses the :id path parameter.
func localID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid id")
	}

	return id, nil
}
