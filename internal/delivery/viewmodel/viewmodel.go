// Package viewmodel holds the observable per-user state of each feature.
//
// A view model derives its items from the local store only. User intents run as
// detached tasks so a write outlives the view that issued it, while the live query is
// scoped to the view and stops when the view is reopened for another user or closed.
package viewmodel

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "pawsync/internal/delivery/context"
	"pawsync/internal/domain/entity"
	domainerrors "pawsync/internal/domain/errors"
	"pawsync/internal/infra/task"
	"pawsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrClosed is returned when a closed view model is opened again.
var ErrClosed = errors.New("view model is closed")

// Message is a one-shot notice shown to the user until it is cleared.
type Message struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Text string `json:"text"`
}

// State is a snapshot of a feature view.
type State[T entity.Syncable] struct {
	Kind    entity.Kind `json:"kind"`
	Owner   string      `json:"owner"`
	Items   []T         `json:"items"`
	Loading bool        `json:"loading"`
	Message *Message    `json:"message,omitempty"`
	Version uint64      `json:"version"`
}

// ViewModel exposes the live local state of one feature for one user.
type ViewModel[T entity.Syncable] struct {
	coordinator usecase.SyncUsecase[T]
	runner      *task.Runner
	logger      *slog.Logger

	mu       sync.Mutex
	state    State[T]
	inFlight int
	scope    *task.Scope
	live     *task.Task
	subs     map[chan State[T]]struct{}
	done     chan struct{}
	closed   bool
}

// New creates a view model that is idle until Open is called.
func New[T entity.Syncable](coordinator usecase.SyncUsecase[T], runner *task.Runner, logger *slog.Logger) *ViewModel[T] {
	return &ViewModel[T]{
		coordinator: coordinator,
		runner:      runner,
		logger:      logger.With(slog.String("kind", coordinator.Kind().String())),
		state:       State[T]{Kind: coordinator.Kind()},
		subs:        make(map[chan State[T]]struct{}),
		done:        make(chan struct{}),
	}
}

// Open starts the live query for ownerUserID, replacing any previous one, then
// refreshes from the remote store in the background.
func (vm *ViewModel[T]) Open(ctx context.Context, ownerUserID string) (*task.Task, error) {
	vm.mu.Lock()
	if vm.closed {
		vm.mu.Unlock()

		return nil, ErrClosed
	}
	previous := vm.stopLocked()
	vm.mu.Unlock()

	if previous != nil {
		<-previous.Done()
	}

	// Subscribe before the first read so no change slips between them.
	feed, cancel := vm.coordinator.Subscribe(ownerUserID)

	items, err := vm.coordinator.List(ctx, ownerUserID)
	if err != nil {
		cancel()

		return nil, errors.Wrap(err, "failed to load local records")
	}

	vm.mu.Lock()
	if vm.closed {
		vm.mu.Unlock()
		cancel()

		return nil, ErrClosed
	}
	if vm.state.Owner != ownerUserID {
		vm.state.Message = nil
	}
	vm.state.Owner = ownerUserID
	vm.state.Items = items
	vm.publishLocked()

	scope := vm.runner.NewScope()
	vm.scope = scope
	vm.live = vm.runner.GoScoped(scope, "live:"+vm.state.Kind.String(), func(ctx context.Context) error {
		defer cancel()

		return vm.follow(ctx, ownerUserID, feed)
	})
	live := vm.live
	vm.mu.Unlock()

	if rejected(live) {
		cancel()
	}

	return vm.Refresh(ctx), nil
}

// Refresh pulls the owner's remote documents and pushes pending local changes.
func (vm *ViewModel[T]) Refresh(ctx context.Context) *task.Task {
	owner := vm.Owner()

	return vm.Perform(ctx, "refresh", func(ctx context.Context) error {
		result, err := vm.coordinator.FetchAll(ctx, owner)
		if err != nil {
			return err
		}
		if result.Skipped {
			// Offline: the local view is all there is.
			return nil
		}

		_, err = vm.coordinator.SyncPending(ctx, owner)
		if errors.Is(err, domainerrors.ErrOffline) {
			return nil
		}

		return err
	})
}

// Perform runs one coordinator operation as a detached task. The loading flag is set
// while it runs and a failure becomes the current message.
func (vm *ViewModel[T]) Perform(ctx context.Context, name string, op func(ctx context.Context) error) *task.Task {
	vm.mu.Lock()
	vm.inFlight++
	vm.state.Loading = true
	vm.publishLocked()
	vm.mu.Unlock()

	origin := ctx
	kind := vm.state.Kind.String()

	var once sync.Once
	settle := func(err error) {
		once.Do(func() { vm.settle(name, err) })
	}

	t := vm.runner.Go(kind+"."+name, func(ctx context.Context) error {
		err := op(deliverycontext.Detach(ctx, origin))
		settle(err)

		return err
	})
	if rejected(t) {
		settle(t.Err())
	}

	return t
}

// ClearMessage dismisses the current message. It reports whether one was shown.
func (vm *ViewModel[T]) ClearMessage() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.state.Message == nil {
		return false
	}
	vm.state.Message = nil
	vm.publishLocked()

	return true
}

// State returns the current snapshot.
func (vm *ViewModel[T]) State() State[T] {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.snapshotLocked()
}

// Idle reports whether nobody watches the view model and no operation is running.
func (vm *ViewModel[T]) Idle() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return len(vm.subs) == 0 && vm.inFlight == 0
}

// Owner returns the user the view model is open for.
func (vm *ViewModel[T]) Owner() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.state.Owner
}

// Subscribe streams snapshots, starting with the current one, until ctx is done or the
// view model is closed. Slow readers only see the latest snapshot.
func (vm *ViewModel[T]) Subscribe(ctx context.Context) <-chan State[T] {
	ch := make(chan State[T], 1)

	vm.mu.Lock()
	if vm.closed {
		vm.mu.Unlock()
		close(ch)

		return ch
	}
	ch <- vm.snapshotLocked()
	vm.subs[ch] = struct{}{}
	vm.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-vm.done:
		}

		vm.mu.Lock()
		defer vm.mu.Unlock()
		if _, ok := vm.subs[ch]; ok {
			delete(vm.subs, ch)
			close(ch)
		}
	}()

	return ch
}

// Close stops the live query and ends every subscription. Detached writes keep running.
func (vm *ViewModel[T]) Close() {
	vm.mu.Lock()
	if vm.closed {
		vm.mu.Unlock()

		return
	}
	vm.closed = true
	live := vm.stopLocked()
	for ch := range vm.subs {
		delete(vm.subs, ch)
		close(ch)
	}
	close(vm.done)
	vm.mu.Unlock()

	if live != nil {
		<-live.Done()
	}
}

// follow reloads the items on every local change until ctx is cancelled.
func (vm *ViewModel[T]) follow(ctx context.Context, ownerUserID string, feed <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-feed:
			if !ok {
				return nil
			}
		}

		items, err := vm.coordinator.List(ctx, ownerUserID)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			vm.logger.Warn("Failed to reload local records",
				slog.String("owner", ownerUserID),
				slog.Any("error", err))
			vm.fail(err)

			continue
		}

		vm.mu.Lock()
		if vm.state.Owner == ownerUserID {
			vm.state.Items = items
			vm.publishLocked()
		}
		vm.mu.Unlock()
	}
}

func (vm *ViewModel[T]) settle(name string, err error) {
	vm.mu.Lock()
	vm.inFlight--
	vm.state.Loading = vm.inFlight > 0
	if err != nil {
		vm.state.Message = toMessage(err)
	}
	vm.publishLocked()
	vm.mu.Unlock()

	if err != nil {
		vm.logger.Debug("Operation failed",
			slog.String("operation", name),
			slog.Any("error", err))
	}
}

func (vm *ViewModel[T]) fail(err error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.state.Message = toMessage(err)
	vm.publishLocked()
}

// stopLocked cancels the live query and returns its task so the caller can wait outside the lock.
func (vm *ViewModel[T]) stopLocked() *task.Task {
	if vm.scope == nil {
		return nil
	}
	vm.scope.Close()
	live := vm.live
	vm.scope, vm.live = nil, nil

	return live
}

func (vm *ViewModel[T]) snapshotLocked() State[T] {
	s := vm.state
	s.Items = append([]T(nil), vm.state.Items...)
	if vm.state.Message != nil {
		msg := *vm.state.Message
		s.Message = &msg
	}

	return s
}

// publishLocked delivers the new snapshot, replacing any snapshot a subscriber has not read yet.
func (vm *ViewModel[T]) publishLocked() {
	vm.state.Version++
	if len(vm.subs) == 0 {
		return
	}

	snapshot := vm.snapshotLocked()
	for ch := range vm.subs {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

// rejected reports whether the runner refused t without running it.
func rejected(t *task.Task) bool {
	select {
	case <-t.Done():
		return errors.Is(t.Err(), task.ErrRunnerClosed)
	default:
		return false
	}
}

func toMessage(err error) *Message {
	msg := &Message{ID: uuid.NewString()}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		msg.Code = appErr.ErrorCode()
		msg.Text = appErr.Message()

		return msg
	}

	msg.Code = domainerrors.ErrInternalError.ErrorCode()
	msg.Text = err.Error()

	return msg
}
