package core

import (
	"fmt"
	"sync"
)

// Future is the uniform result cell: a container that is either already
// resolved (value or error) or pending on another execution context.
//
// Done never blocks and is idempotent. Result blocks until the cell resolves,
// then returns the value or the captured error verbatim; the original error
// identity is preserved for errors.Is / errors.As. A resolved cell never
// changes again and is safe for unsynchronized concurrent reads.
type Future[T any] interface {
	Done() bool
	Result() (T, error)
}

// Present is an already-resolved result cell.
type Present[T any] struct {
	value T
	err   error
}

// PresentOption configures NewPresent.
type PresentOption[T any] func(*Present[T]) error

// WithResult resolves the cell to a value.
func WithResult[T any](value T) PresentOption[T] {
	return func(p *Present[T]) error {
		p.value = value
		return nil
	}
}

// WithError resolves the cell to a failure.
func WithError[T any](err error) PresentOption[T] {
	return func(p *Present[T]) error {
		if err == nil {
			return fmt.Errorf("%w: present error must be non-nil", ErrInvalidConstruction)
		}
		p.err = err
		return nil
	}
}

// NewPresent builds a resolved cell from exactly one of WithResult or
// WithError. Zero or two options fail immediately with ErrInvalidConstruction;
// a malformed cell is never observable later at Result time.
func NewPresent[T any](opts ...PresentOption[T]) (*Present[T], error) {
	if len(opts) != 1 {
		return nil, fmt.Errorf("%w: present requires exactly one of a result or an error, got %d options",
			ErrInvalidConstruction, len(opts))
	}
	p := &Present[T]{}
	if err := opts[0](p); err != nil {
		return nil, err
	}
	return p, nil
}

// present is the internal resolved-to-value constructor used on hot paths
// where validation is statically satisfied.
func present[T any](value T) *Present[T] {
	return &Present[T]{value: value}
}

// presentError is the internal resolved-to-failure constructor.
func presentError[T any](err error) *Present[T] {
	return &Present[T]{err: err}
}

// Done implements Future; a Present is born resolved.
func (p *Present[T]) Done() bool { return true }

// Result implements Future; it never blocks.
func (p *Present[T]) Result() (T, error) {
	return p.value, p.err
}

// Deferred is a pending result cell bound to a background execution context.
// It resolves exactly once; afterwards its value is immutable.
type Deferred[T any] struct {
	done chan struct{}
	once sync.Once

	value T
	err   error
}

func newDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{done: make(chan struct{})}
}

// resolve publishes the result. Only the owning executor calls this; repeated
// calls are ignored.
func (d *Deferred[T]) resolve(value T, err error) {
	d.once.Do(func() {
		d.value = value
		d.err = err
		close(d.done)
	})
}

// Done implements Future without blocking.
func (d *Deferred[T]) Done() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// Result implements Future; it blocks until the cell resolves.
func (d *Deferred[T]) Result() (T, error) {
	<-d.done
	return d.value, d.err
}

// Executor dispatches a computation and hands back its result cell.
type Executor[T any] interface {
	Submit(fn func() (T, error)) Future[T]
}

// ImmediateExecutor resolves synchronously: Submit invokes fn before
// returning and yields an already-resolved Present, success or failure
// matching whatever fn returned.
type ImmediateExecutor[T any] struct{}

// Submit implements Executor.
func (ImmediateExecutor[T]) Submit(fn func() (T, error)) Future[T] {
	value, err := fn()
	if err != nil {
		return presentError[T](err)
	}
	return present(value)
}

// GoroutineExecutor dispatches fn to a background goroutine and returns a
// pending cell immediately.
type GoroutineExecutor[T any] struct{}

// Submit implements Executor.
func (GoroutineExecutor[T]) Submit(fn func() (T, error)) Future[T] {
	d := newDeferred[T]()
	go func() {
		d.resolve(fn())
	}()
	return d
}
