// Package worker runs background synchronization for every feature.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pawsync/config"
	"pawsync/internal/delivery"
	domainerrors "pawsync/internal/domain/errors"
	"pawsync/internal/domain/lifecycle"
	"pawsync/internal/domain/service"
	"pawsync/internal/errors"
	"pawsync/internal/usecase"

	"go.uber.org/fx"
)

// ServerParams holds dependencies for the sync worker
type ServerParams struct {
	fx.In

	Lc      fx.Lifecycle
	Cfg     *config.Config
	Logger  *slog.Logger
	Network service.NetworkMonitor
	Syncers []usecase.PendingSyncer `group:"syncers"`
}

type syncWorker struct {
	interval time.Duration
	logger   *slog.Logger
	network  service.NetworkMonitor
	syncers  []usecase.PendingSyncer

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewServer creates the worker that pushes pending changes when the network comes
// back and on every sync interval.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	w := newSyncWorker(params.Cfg, params.Logger, params.Network, params.Syncers)

	params.Lc.Append(fx.Hook{
		OnStop: w.stop,
	})

	return w, nil
}

func newSyncWorker(cfg *config.Config, logger *slog.Logger, network service.NetworkMonitor, syncers []usecase.PendingSyncer) *syncWorker {
	var interval time.Duration
	if cfg.Sync != nil {
		interval = cfg.Sync.Interval
	}

	return &syncWorker{
		interval: interval,
		logger:   logger,
		network:  network,
		syncers:  syncers,
		done:     make(chan struct{}),
	}
}

// Serve blocks until ctx is done or the worker is stopped.
func (w *syncWorker) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()
	defer close(w.done)
	defer cancel()

	w.logger.Info("Starting sync worker",
		slog.Duration("interval", w.interval),
		slog.Int("features", len(w.syncers)))

	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	reachability := w.network.Watch(ctx)
	online := w.network.Reachable(ctx)
	if online {
		w.syncAll(ctx, "startup")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case reachable, ok := <-reachability:
			if !ok {
				reachability = nil

				continue
			}
			if reachable && !online {
				w.syncAll(ctx, "reconnect")
			}
			online = reachable
		case <-tick:
			if online {
				w.syncAll(ctx, "interval")
			}
		}
	}
}

func (w *syncWorker) syncAll(ctx context.Context, trigger string) {
	logger := w.logger.With(slog.String("trigger", trigger))

	reports, err := usecase.SyncAll(ctx, w.syncers, "")
	total := &usecase.SyncReport{}
	for _, report := range reports {
		total.Add(report)
	}

	switch {
	case errors.Is(err, domainerrors.ErrOffline):
		logger.Info("Sync skipped, remote store unreachable")
	case err != nil && ctx.Err() == nil:
		logger.Error("Sync pass failed", slog.Any("error", err))
	case err == nil:
		logger.Info("Sync pass finished",
			slog.Int("created", total.Created),
			slog.Int("updated", total.Updated),
			slog.Int("deleted", total.Deleted),
			slog.Int("failed", total.Failed))
	}
}

func (w *syncWorker) stop(ctx context.Context) error {
	w.mu.Lock()
	cancel := w.cancel
	w.mu.Unlock()
	if cancel == nil {
		return nil
	}

	w.logger.Info("Stopping sync worker")
	cancel()

	ctx, timeout := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer timeout()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "sync worker did not stop")
	}
}
