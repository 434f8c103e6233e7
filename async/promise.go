package async

import (
	"runtime"

	"github.com/wrenfold/asynctask/executor"
	"github.com/wrenfold/asynctask/internal/state"
)

// Promise is the producer side of a Promise/Future pair (spec.md §3, §4.2).
//
// The spec models Promise as move-only, with the broken-promise rule
// (invariant 5) enforced by its destructor: dropping the last live Promise
// without ever calling SetValue/SetError injects Error(BrokenPromise) into
// the Future. Go has neither move semantics nor deterministic destructors,
// so this is adapted rather than transliterated: Promise wraps a pointer to
// a small handle, and a runtime.SetFinalizer on that handle plays the role
// of the C++ destructor. Calling SetValue/SetError first makes the
// finalizer's release a harmless no-op (internal/state.ReleaseProducer only
// injects BrokenPromise while no result has been set, i.e. while the phase
// is Start or OnlyContinuation). A Promise is
// ordinary Go value otherwise: copying it copies the pointer, same as
// copying the teacher's genericPromise would share its channel fields.
type Promise[T any] struct {
	h *promiseHandle[T]
}

type promiseHandle[T any] struct {
	shared    *state.Shared[T]
	gotFuture bool
}

// NewPromise creates a Promise with no value or error set yet.
func NewPromise[T any]() Promise[T] {
	h := &promiseHandle[T]{shared: state.New[T](ErrBrokenPromise)}
	runtime.SetFinalizer(h, func(h *promiseHandle[T]) {
		h.shared.ReleaseProducer()
	})
	return Promise[T]{h: h}
}

// Valid reports whether this Promise still refers to a shared state.
func (p Promise[T]) Valid() bool { return p.h != nil }

// GetFuture returns the Future paired with this Promise. It is one-shot: a
// second call panics with GetFutureCalledTwice (spec.md §4.2).
func (p Promise[T]) GetFuture() Future[T] {
	if p.h == nil {
		panic(ErrFutureBroken)
	}
	if p.h.gotFuture {
		panic(GetFutureCalledTwice{})
	}
	p.h.gotFuture = true
	return Future[T]{shared: p.h.shared}
}

// SetValue fulfills the Promise with v. Panics if called twice (spec.md §7
// "double set" is a programming error guarded by internal/state).
func (p Promise[T]) SetValue(v T) {
	if p.h == nil {
		panic(ErrFutureBroken)
	}
	p.h.shared.SetResult(state.KindValue, v, nil)
}

// SetError fulfills the Promise with err.
func (p Promise[T]) SetError(err error) {
	if err == nil {
		panic("async: Promise.SetError called with a nil error")
	}
	if p.h == nil {
		panic(ErrFutureBroken)
	}
	var zero T
	p.h.shared.SetResult(state.KindError, zero, err)
}

// Checkout records exec, and the worker it is currently running on, as the
// preferred context for dispatching the eventual continuation (spec.md
// §4.2 promise.checkout). Call it from the producer's own worker before
// doing any work that might finish synchronously.
func (p Promise[T]) Checkout(exec executor.Executor) {
	if p.h == nil {
		panic(ErrFutureBroken)
	}
	p.h.shared.SetExecutor(exec, exec.Checkout(), true)
}

// ForceSchedule forbids in-thread continuation execution: the continuation
// always runs via the executor, never synchronously inside SetValue/
// SetError or SetContinuation (spec.md §4.2 promise.force-schedule).
func (p Promise[T]) ForceSchedule(v bool) {
	if p.h == nil {
		panic(ErrFutureBroken)
	}
	p.h.shared.ForceSchedule(v)
}
