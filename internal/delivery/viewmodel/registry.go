package viewmodel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pawsync/internal/domain/entity"
	"pawsync/internal/infra/task"
	"pawsync/internal/usecase"
)

// DefaultIdleTTL is how long an unwatched view model is kept after its last use.
const DefaultIdleTTL = 10 * time.Minute

type registryEntry[T entity.Syncable] struct {
	vm       *ViewModel[T]
	lastUsed time.Time
}

// Registry keeps one view model per user for a feature. View models nobody watched or
// used for the idle TTL are closed on a later Open.
type Registry[T entity.Syncable] struct {
	coordinator usecase.SyncUsecase[T]
	runner      *task.Runner
	logger      *slog.Logger
	idleTTL     time.Duration
	now         func() time.Time

	mu    sync.Mutex
	views map[string]*registryEntry[T]
}

// NewRegistry creates an empty registry for the feature backed by coordinator.
func NewRegistry[T entity.Syncable](coordinator usecase.SyncUsecase[T], runner *task.Runner, logger *slog.Logger) *Registry[T] {
	return &Registry[T]{
		coordinator: coordinator,
		runner:      runner,
		logger:      logger,
		idleTTL:     DefaultIdleTTL,
		now:         time.Now,
		views:       make(map[string]*registryEntry[T]),
	}
}

// Kind returns the feature's entity kind.
func (r *Registry[T]) Kind() entity.Kind {
	return r.coordinator.Kind()
}

// Open returns the user's view model, opening it on first use. The first open also
// starts a background refresh. The local store is read outside the registry lock.
func (r *Registry[T]) Open(ctx context.Context, ownerUserID string) (*ViewModel[T], error) {
	now := r.now()

	r.mu.Lock()
	entry, ok := r.views[ownerUserID]
	if ok {
		entry.lastUsed = now
	}
	stale := r.takeStaleLocked(now, ownerUserID)
	r.mu.Unlock()

	r.closeViews(stale)
	if ok {
		return entry.vm, nil
	}

	vm := New(r.coordinator, r.runner, r.logger)
	if _, err := vm.Open(ctx, ownerUserID); err != nil {
		vm.Close()

		return nil, err
	}

	r.mu.Lock()
	if existing, ok := r.views[ownerUserID]; ok {
		// A concurrent Open won the race.
		existing.lastUsed = now
		r.mu.Unlock()
		vm.Close()

		return existing.vm, nil
	}
	r.views[ownerUserID] = &registryEntry[T]{vm: vm, lastUsed: now}
	r.mu.Unlock()

	return vm, nil
}

// Len returns how many view models are open.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.views)
}

// Close closes every view model.
func (r *Registry[T]) Close() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[string]*registryEntry[T])
	r.mu.Unlock()

	for _, entry := range views {
		entry.vm.Close()
	}
}

// takeStaleLocked removes the idle view models not used within the TTL, except keep's.
func (r *Registry[T]) takeStaleLocked(now time.Time, keep string) []*ViewModel[T] {
	var stale []*ViewModel[T]
	for owner, entry := range r.views {
		if owner == keep || now.Sub(entry.lastUsed) < r.idleTTL || !entry.vm.Idle() {
			continue
		}
		delete(r.views, owner)
		stale = append(stale, entry.vm)
	}

	return stale
}

func (r *Registry[T]) closeViews(views []*ViewModel[T]) {
	for _, vm := range views {
		r.logger.Debug("Closing idle view model",
			slog.String("kind", r.Kind().String()),
			slog.String("owner", vm.Owner()))
		vm.Close()
	}
}
