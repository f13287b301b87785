package main

import (
	"context"
	"log/slog"
	"os"

	"pawsync/config"
	"pawsync/internal/delivery"
	"pawsync/internal/delivery/http"
	"pawsync/internal/delivery/http/middleware"
	"pawsync/internal/delivery/http/router/handler"
	"pawsync/internal/delivery/worker"
	"pawsync/internal/infra/auth"
	logs "pawsync/internal/infra/log"
	"pawsync/internal/infra/mapper"
	"pawsync/internal/infra/metrics"
	"pawsync/internal/infra/network"
	"pawsync/internal/infra/persistence/local"
	"pawsync/internal/infra/pubsub"
	"pawsync/internal/infra/remote"
	"pawsync/internal/infra/task"
	"pawsync/internal/usecase"
	"pawsync/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			metrics.RegisterTaskMetrics,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			local.New,
			metrics.NewRegistry,
			metrics.NewSyncMetrics,
			network.NewNetworkMonitor,
			task.NewRunner,
		),
		remote.Module,
		pubsub.Module,
	)
}

// injectRepo provides one local store per kind. Each store owns the change feed
// its view models follow, so it must be shared.
func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			local.NewFavoriteStore,
			local.NewOwnershipStore,
			local.NewWalkStore,
			local.NewActivityStore,
			local.NewTombstoneRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			mapper.NewFavoriteMapper,
			mapper.NewOwnershipMapper,
			mapper.NewWalkMapper,
			mapper.NewActivityMapper,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewFavoriteService,
			impl.NewOwnershipService,
			impl.NewWalkService,
			impl.NewActivityService,
			asSyncer(func(uc usecase.FavoriteUsecase) usecase.PendingSyncer { return uc.Coordinator() }),
			asSyncer(func(uc usecase.OwnershipUsecase) usecase.PendingSyncer { return uc.Coordinator() }),
			asSyncer(func(uc usecase.WalkUsecase) usecase.PendingSyncer { return uc.Coordinator() }),
			asSyncer(func(uc usecase.ActivityUsecase) usecase.PendingSyncer { return uc.Coordinator() }),
		),
	)
}

// asSyncer adds a feature's coordinator to the syncers group.
func asSyncer(f any) any {
	return fx.Annotate(f, fx.ResultTags(`group:"syncers"`))
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSystemHandler,
			handler.NewFavoriteHandler,
			handler.NewOwnershipHandler,
			handler.NewWalkHandler,
			handler.NewActivityHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
