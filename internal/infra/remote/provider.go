// Package remote selects the remote document store implementation.
package remote

import (
	"context"
	"log/slog"

	"pawsync/config"
	"pawsync/internal/domain/repository"
	"pawsync/internal/infra/remote/firestore"
	"pawsync/internal/infra/remote/memory"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// StoreParams holds dependencies for the remote store, injected by Fx
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewRemoteStore creates a RemoteStore based on configuration
func NewRemoteStore(params StoreParams) (repository.RemoteStore, error) {
	logger := params.Logger

	switch params.Config.Remote.Provider {
	case config.RemoteProviderMemory:
		logger.Warn("Using in-memory remote store, documents are lost on restart")

		return memory.NewStore(), nil

	case config.RemoteProviderFirestore:
		fbCfg := params.Config.Firebase
		if fbCfg == nil {
			return nil, errors.New("firebase section is required for the firestore provider")
		}
		logger.Info("Using Firestore remote store",
			slog.String("project_id", fbCfg.ProjectID),
		)

		store, closeFn, err := firestore.NewFirestoreStore(params.Ctx, fbCfg.ProjectID, fbCfg.CredentialsPath)
		if err != nil {
			return nil, err
		}

		params.Lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				logger.Info("Closing Firestore client")

				return errors.WithStack(closeFn())
			},
		})

		return store, nil

	default:
		return nil, errors.Errorf("unknown remote provider: %s", params.Config.Remote.Provider)
	}
}

// Module provides the remote store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewRemoteStore),
)
