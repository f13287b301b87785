// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pawsync/config"
	"pawsync/internal/delivery/http/middleware"
	"pawsync/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config           *config.Config
	SystemHandler    *handler.SystemHandler
	FavoriteHandler  *handler.FavoriteHandler
	OwnershipHandler *handler.OwnershipHandler
	WalkHandler      *handler.WalkHandler
	ActivityHandler  *handler.ActivityHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg              *config.Config
	systemHandler    *handler.SystemHandler
	favoriteHandler  *handler.FavoriteHandler
	ownershipHandler *handler.OwnershipHandler
	walkHandler      *handler.WalkHandler
	activityHandler  *handler.ActivityHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:              params.Config,
		systemHandler:    params.SystemHandler,
		favoriteHandler:  params.FavoriteHandler,
		ownershipHandler: params.OwnershipHandler,
		walkHandler:      params.WalkHandler,
		activityHandler:  params.ActivityHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.systemHandler.HealthCheck)
	if r.cfg.Metrics != nil && r.cfg.Metrics.Enabled {
		e.GET("/metrics", r.systemHandler.Metrics())
	}

	// Everything below acts for the user named by the access token
	v1 := e.Group("/v1")
	v1.Use(r.authMiddleware.Authenticate)

	v1.GET("/tasks/:id", r.systemHandler.GetTask)
	v1.POST("/sync", r.systemHandler.SyncNow)

	favorites := v1.Group("/favorites")
	{
		r.favoriteHandler.RegisterViewRoutes(favorites)
		favorites.POST("", r.favoriteHandler.Toggle)
	}

	ownerships := v1.Group("/ownerships")
	{
		r.ownershipHandler.RegisterViewRoutes(ownerships)
		ownerships.POST("", r.ownershipHandler.Request)
		ownerships.PATCH("/:id/status", r.ownershipHandler.Decide)
		ownerships.DELETE("/:id", r.ownershipHandler.Withdraw)
	}

	walks := v1.Group("/walks")
	{
		r.walkHandler.RegisterViewRoutes(walks)
		walks.GET("/summary", r.walkHandler.Summary)
		walks.POST("", r.walkHandler.Start)
		walks.POST("/:id/points", r.walkHandler.Track)
		walks.POST("/:id/finish", r.walkHandler.Finish)
	}

	activities := v1.Group("/activities")
	{
		r.activityHandler.RegisterViewRoutes(activities)
		activities.POST("", r.activityHandler.Schedule)
		activities.PATCH("/:id/status", r.activityHandler.SetStatus)
		activities.DELETE("/:id", r.activityHandler.Remove)
	}
}
