package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"pawsync/config"
	deliverycontext "pawsync/internal/delivery/context"
	"pawsync/internal/delivery/http/response"
	domainerrors "pawsync/internal/domain/errors"
	"pawsync/internal/domain/service"
	"pawsync/internal/infra/task"
	"pawsync/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

const healthProbeTimeout = 2 * time.Second

// SystemHandlerParams holds dependencies for SystemHandler, injected by Fx.
type SystemHandlerParams struct {
	fx.In

	Config   *config.Config
	Network  service.NetworkMonitor
	Registry *prometheus.Registry
	Runner   *task.Runner
	Syncers  []usecase.PendingSyncer `group:"syncers"`
	Logger   *slog.Logger
}

// SystemHandler serves health, metrics, task lookup and manual sync
type SystemHandler struct {
	cfg      *config.Config
	network  service.NetworkMonitor
	registry *prometheus.Registry
	runner   *task.Runner
	syncers  []usecase.PendingSyncer
	logger   *slog.Logger
}

// HealthStatus is the body of the health endpoint
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Online  bool   `json:"online"`
}

// NewSystemHandler is the constructor for SystemHandler
func NewSystemHandler(params SystemHandlerParams) *SystemHandler {
	return &SystemHandler{
		cfg:      params.Config,
		network:  params.Network,
		registry: params.Registry,
		runner:   params.Runner,
		syncers:  params.Syncers,
		logger:   params.Logger,
	}
}

// HealthCheck reports liveness and whether the remote store is reachable
func (h *SystemHandler) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthProbeTimeout)
	defer cancel()

	return c.JSON(http.StatusOK, HealthStatus{
		Status:  "ok",
		Service: h.cfg.Env.ServiceName,
		Online:  h.network.Reachable(ctx),
	})
}

// Metrics serves the Prometheus registry
func (h *SystemHandler) Metrics() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{
		Registry:          h.registry,
		EnableOpenMetrics: true,
	}))
}

// GetTask returns the state of a background task
func (h *SystemHandler) GetTask(c echo.Context) error {
	t, ok := h.runner.Lookup(c.Param("id"))
	if !ok {
		return domainerrors.ErrTaskNotFound
	}

	return response.Success(c, http.StatusOK, t.Info())
}

// SyncNow pushes the user's pending changes of every feature in the background
func (h *SystemHandler) SyncNow(c echo.Context) error {
	owner := deliverycontext.GetUserID(c)
	if owner == "" {
		return domainerrors.ErrUnauthorized
	}

	origin := c.Request().Context()
	t := h.runner.Go("sync", func(ctx context.Context) error {
		ctx = deliverycontext.Detach(ctx, origin)
		reports, err := usecase.SyncAll(ctx, h.syncers, owner)
		for _, report := range reports {
			deliverycontext.GetLoggerOrDefault(ctx, h.logger).Info("Manual sync finished",
				slog.String("kind", report.Kind.String()),
				slog.Int("created", report.Created),
				slog.Int("updated", report.Updated),
				slog.Int("deleted", report.Deleted),
				slog.Int("failed", report.Failed))
		}

		return err
	})

	return response.Accepted(c, t)
}
