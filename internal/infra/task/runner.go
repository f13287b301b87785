// Package task runs background work behind explicit handles.
//
// Detached tasks run on the process context and survive the caller; scoped tasks are
// cancelled when their scope closes. Every task reports completion through its handle.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pawsync/config"
	"pawsync/internal/domain/lifecycle"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ErrRunnerClosed is returned by tasks submitted after Shutdown.
var ErrRunnerClosed = errors.New("task runner is shut down")

const defaultRetention = 256

// State is the lifecycle state of a task.
type State string

const (
	StateRunning   State = "RUNNING"
	StateSucceeded State = "SUCCEEDED"
	StateFailed    State = "FAILED"
	StateCancelled State = "CANCELLED"
)

// Func is the body of a task.
type Func func(ctx context.Context) error

// Task is the handle of a submitted unit of work.
type Task struct {
	id      string
	name    string
	started time.Time
	done    chan struct{}

	mu       sync.Mutex
	state    State
	err      error
	finished time.Time
}

// Info is a point-in-time view of a task.
type Info struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	State      State      `json:"state"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func newTask(name string, now time.Time) *Task {
	return &Task{
		id:      uuid.NewString(),
		name:    name,
		started: now,
		done:    make(chan struct{}),
		state:   StateRunning,
	}
}

// ID returns the unique task ID.
func (t *Task) ID() string { return t.id }

// Name returns the task name.
func (t *Task) Name() string { return t.name }

// Done is closed when the task finishes.
func (t *Task) Done() <-chan struct{} { return t.done }

// Err returns the task error once finished.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.err
}

// State returns the current state.
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}

// Wait blocks until the task finishes or ctx is done and returns the task error.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Info returns a snapshot of the task.
func (t *Task) Info() Info {
	t.mu.Lock()
	defer t.mu.Unlock()

	info := Info{
		ID:        t.id,
		Name:      t.name,
		State:     t.state,
		StartedAt: t.started,
	}
	if t.err != nil {
		info.Error = t.err.Error()
	}
	if !t.finished.IsZero() {
		finished := t.finished
		info.FinishedAt = &finished
	}

	return info
}

func (t *Task) finish(err error, now time.Time) {
	t.mu.Lock()
	switch {
	case err == nil:
		t.state = StateSucceeded
	case errors.Is(err, context.Canceled):
		t.state = StateCancelled
	default:
		t.state = StateFailed
	}
	t.err = err
	t.finished = now
	t.mu.Unlock()

	close(t.done)
}

// Scope groups tasks that must stop together, typically the lifetime of one view.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Context returns the scope context.
func (s *Scope) Context() context.Context { return s.ctx }

// Close cancels every task started in the scope.
func (s *Scope) Close() { s.cancel() }

// Runner starts tasks and tracks them until they finish.
type Runner struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger
	wg     sync.WaitGroup

	mu        sync.Mutex
	closed    bool
	tasks     map[string]*Task
	finished  []string
	retention int
	hooks     []func(*Task)
}

// RunnerParams holds dependencies for the task runner, injected by Fx
type RunnerParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewRunner creates the process-wide runner and drains it on shutdown.
func NewRunner(params RunnerParams) *Runner {
	retention := defaultRetention
	if params.Config.Sync != nil && params.Config.Sync.TaskRetention > 0 {
		retention = params.Config.Sync.TaskRetention
	}

	runner := New(params.Logger, retention)

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			drainCtx, cancel := context.WithTimeout(ctx, lifecycle.DrainTimeout)
			defer cancel()

			return runner.Shutdown(drainCtx)
		},
	})

	return runner
}

// New creates a runner keeping up to retention finished tasks for lookup.
func New(logger *slog.Logger, retention int) *Runner {
	if retention <= 0 {
		retention = defaultRetention
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger,
		tasks:     make(map[string]*Task),
		retention: retention,
	}
}

// OnComplete registers a hook invoked after every task finishes.
func (r *Runner) OnComplete(hook func(*Task)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hooks = append(r.hooks, hook)
}

// NewScope creates a scope whose tasks are cancelled on Close or on runner shutdown.
func (r *Runner) NewScope() *Scope {
	ctx, cancel := context.WithCancel(r.ctx)

	return &Scope{ctx: ctx, cancel: cancel}
}

// Go runs fn detached from any caller scope. It is only cancelled by Shutdown.
func (r *Runner) Go(name string, fn Func) *Task {
	return r.start(r.ctx, name, fn)
}

// GoScoped runs fn until it returns or the scope is closed.
func (r *Runner) GoScoped(scope *Scope, name string, fn Func) *Task {
	return r.start(scope.ctx, name, fn)
}

// Lookup returns a running or recently finished task.
func (r *Runner) Lookup(id string) (*Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]

	return t, ok
}

// Shutdown stops accepting tasks, waits for in-flight tasks until ctx is done,
// then cancels the remaining ones and waits for them to return.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	idle := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(idle)
	}()

	select {
	case <-idle:
		r.cancel()

		return nil
	case <-ctx.Done():
		r.cancel()
		<-idle

		return errors.Wrap(ctx.Err(), "task runner drain interrupted")
	}
}

func (r *Runner) start(ctx context.Context, name string, fn Func) *Task {
	t := newTask(name, time.Now())

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		t.finish(ErrRunnerClosed, time.Now())

		return t
	}
	r.tasks[t.id] = t
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()

		err := r.run(ctx, t, fn)
		t.finish(err, time.Now())
		r.complete(t)
	}()

	return t
}

func (r *Runner) run(ctx context.Context, t *Task, fn Func) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Errorf("task %s panicked: %v", t.name, rec)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	return fn(ctx)
}

func (r *Runner) complete(t *Task) {
	r.mu.Lock()
	r.finished = append(r.finished, t.id)
	for len(r.finished) > r.retention {
		delete(r.tasks, r.finished[0])
		r.finished = r.finished[1:]
	}
	hooks := append([]func(*Task){}, r.hooks...)
	r.mu.Unlock()

	if err := t.Err(); err != nil && r.logger != nil {
		r.logger.Warn("Task finished with error",
			slog.String("task_id", t.id),
			slog.String("task", t.name),
			slog.String("state", string(t.State())),
			slog.Any("error", err),
		)
	}

	for _, hook := range hooks {
		hook(t)
	}
}

// String implements fmt.Stringer.
func (t *Task) String() string {
	return fmt.Sprintf("%s(%s)", t.name, t.id)
}
