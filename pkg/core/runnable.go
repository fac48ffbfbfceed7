package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/graft/internal/logging"
)

// Runnable is a composable pipeline stage with an identity and a lifecycle.
//
// Init runs at most once, on the first run, before any Next. Next is the core
// transition and must be supplied by every concrete runnable. OnError is
// invoked instead of Next when the stage's input is already a failure; the
// default re-raises unchanged, and overriding it converts the failure into a
// valid successor state for everything downstream. Stop requests cooperative
// cancellation; in-flight work is never preempted.
//
// Concrete runnables embed Base, which supplies every default and anchors the
// lifecycle bookkeeping.
type Runnable interface {
	Name() string
	Init(ctx context.Context, s *State) error
	Next(ctx context.Context, s *State) (*State, error)
	OnError(ctx context.Context, err error) (*State, error)
	Stop()

	base() *Base
}

// Base anchors the runnable lifecycle and the composition algebra. It does no
// work itself: its Next fails with ErrNotImplemented so a missing concrete
// transition surfaces loudly.
type Base struct {
	name string

	initOnce sync.Once

	mu       sync.Mutex
	stop     chan struct{}
	stopOnce sync.Once
}

// NewBase names a runnable. The zero value is usable and reports "Runnable".
func NewBase(name string) Base {
	return Base{name: name}
}

// Name identifies the runnable for logging and diagnostics.
func (b *Base) Name() string {
	if b.name == "" {
		return "Runnable"
	}
	return b.name
}

// Init is a no-op by default.
func (b *Base) Init(ctx context.Context, s *State) error { return nil }

// Next fails with ErrNotImplemented: the base type exists to anchor the
// algebra, not to do work.
func (b *Base) Next(ctx context.Context, s *State) (*State, error) {
	return nil, fmt.Errorf("%w: %s does not define a transition", ErrNotImplemented, b.Name())
}

// OnError re-raises the captured input failure unchanged. Override to recover.
func (b *Base) OnError(ctx context.Context, err error) (*State, error) {
	return nil, err
}

// Stop requests cooperative cancellation. Long-running transitions poll
// Stopped between externally-visible steps; nothing is preempted.
func (b *Base) Stop() {
	b.stopOnce.Do(func() {
		close(b.stopChan())
	})
}

// Stopped returns a channel closed once Stop has been requested.
func (b *Base) Stopped() <-chan struct{} {
	return b.stopChan()
}

func (b *Base) stopChan() chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stop == nil {
		b.stop = make(chan struct{})
	}
	return b.stop
}

func (b *Base) base() *Base { return b }

func (b *Base) String() string { return b.Name() }

// RunEvent describes one runnable execution for observability hooks.
type RunEvent struct {
	Runnable string
	Started  time.Time
	Duration time.Duration
	Err      error
}

// RunHooks carries optional observability callbacks around runnable
// execution. Nil callbacks are skipped.
type RunHooks struct {
	OnRunStart func(context.Context, *RunEvent)
	OnRunEnd   func(context.Context, *RunEvent)
}

type runConfig struct {
	inline   bool
	executor Executor[*State]
	hooks    RunHooks
	logger   *slog.Logger
}

// RunOption configures a single Run call.
type RunOption func(*runConfig)

// Inline resolves the run synchronously: the returned cell is already
// resolved when Run returns. The default is deferred background execution.
func Inline() RunOption {
	return func(cfg *runConfig) { cfg.inline = true }
}

// WithExecutor overrides the executor the run is dispatched on.
func WithExecutor(e Executor[*State]) RunOption {
	return func(cfg *runConfig) { cfg.executor = e }
}

// WithRunHooks attaches observability hooks to the run.
func WithRunHooks(h RunHooks) RunOption {
	return func(cfg *runConfig) { cfg.hooks = h }
}

// WithLogger attaches a structured logger to the run.
func WithLogger(l *slog.Logger) RunOption {
	return func(cfg *runConfig) { cfg.logger = l }
}

// Run is the public entry point of the runnable lifecycle. The input is a
// *State or a Future[*State]; a pending input is waited on first and a failed
// one dispatches to the runnable's OnError instead of Next. Errors raised
// inside Init or Next are captured into the returned cell, never raised
// synchronously; with Inline() the cell comes back already resolved.
func Run(ctx context.Context, r Runnable, input any, opts ...RunOption) Future[*State] {
	cfg := runConfig{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	executor := cfg.executor
	if executor == nil {
		if cfg.inline {
			executor = ImmediateExecutor[*State]{}
		} else {
			executor = GoroutineExecutor[*State]{}
		}
	}

	return executor.Submit(func() (*State, error) {
		return step(ctx, r, input, &cfg)
	})
}

// step resolves the input and walks one runnable through its lifecycle.
func step(ctx context.Context, r Runnable, input any, cfg *runConfig) (*State, error) {
	state, err := waitInput(input)
	if err != nil {
		logging.Trace(ctx, cfg.logger, "input failed, dispatching to error handler",
			"runnable", r.Name(), "err", err)
		return r.OnError(ctx, err)
	}
	if state == nil {
		return nil, fmt.Errorf("%w: run input must be a *State or a Future, got %T", ErrInvalidType, input)
	}

	var initErr error
	r.base().initOnce.Do(func() {
		initErr = r.Init(ctx, state)
	})
	if initErr != nil {
		return nil, initErr
	}

	event := &RunEvent{Runnable: r.Name(), Started: time.Now()}
	if cfg.hooks.OnRunStart != nil {
		cfg.hooks.OnRunStart(ctx, event)
	}
	logging.Trace(ctx, cfg.logger, "running", "runnable", r.Name())

	next, err := r.Next(ctx, state)

	event.Duration = time.Since(event.Started)
	event.Err = err
	if cfg.hooks.OnRunEnd != nil {
		cfg.hooks.OnRunEnd(ctx, event)
	}
	if err != nil {
		cfg.logger.Debug("runnable failed", "runnable", r.Name(), "err", err)
	}
	return next, err
}

// waitInput normalizes the run input: states pass through, futures are
// resolved (blocking if pending). Anything else yields a nil state, reported
// by the caller as ErrInvalidType.
func waitInput(input any) (*State, error) {
	switch v := input.(type) {
	case *State:
		return v, nil // nil *State falls through to the invalid-type report
	case Future[*State]:
		return v.Result()
	default:
		return nil, nil
	}
}
