package async

import (
	"github.com/wrenfold/asynctask/executor"
	"github.com/wrenfold/asynctask/internal/state"
)

// Future is the consumer side of a Promise/Future pair (spec.md §3, §4.2).
//
// A Future is consumed exactly once, by Get, Then/ThenValue, or by a Task
// awaiting it (package task). The zero Future is broken: Valid, HasResult
// and PeekResult report false on it, and every other method panics with
// ErrFutureBroken, mirroring the teacher's "use after move"
// guard (asmsh/promise's genericPromise nilling its channel fields on
// Then/Get).
type Future[T any] struct {
	shared *state.Shared[T]
}

// Valid reports whether this Future still refers to a shared state.
func (f Future[T]) Valid() bool { return f.shared != nil }

// HasResult reports whether the Future's result is already available,
// without blocking or consuming the Future.
func (f Future[T]) HasResult() bool {
	if f.shared == nil {
		return false
	}
	_, _, _, ready := f.shared.Peek()
	return ready
}

// PeekResult returns the Future's Result without consuming it, and whether
// one was available.
func (f Future[T]) PeekResult() (Result[T], bool) {
	if f.shared == nil {
		var zero Result[T]
		return zero, false
	}
	kind, val, err, ready := f.shared.Peek()
	if !ready {
		var zero Result[T]
		return zero, false
	}
	return resultFrom(kind, val, err), true
}

// Result returns the Future's Result. It panics with ErrFutureNotReady if
// HasResult is false (spec.md §7 "Future is not ready").
func (f Future[T]) Result() Result[T] {
	r, ok := f.PeekResult()
	if !ok {
		if f.shared == nil {
			panic(ErrFutureBroken)
		}
		panic(ErrFutureNotReady)
	}
	return r
}

// Value is shorthand for Result().Val().
func (f Future[T]) Value() T { return f.Result().Val() }

// Get blocks the calling goroutine until the Future's result is available
// and returns it, consuming the Future. It panics if called from the
// Future's own executor's worker (spec.md §4.2, §8 Boundary behaviors):
// doing so would deadlock a single-threaded executor and starve a pooled
// one.
func (f Future[T]) Get() Result[T] {
	if f.shared == nil {
		panic(ErrFutureBroken)
	}
	if exec := f.shared.Executor(); exec != nil && exec.InCurrentThread() {
		panic("async: Future.Get called from the future's own executor")
	}
	return f.Block()
}

// Block waits for the Future's result the same way Get does, but without
// Get's own-executor guard. It is exported for bridge packages (task,
// uthread, syncawait) that deliberately block a dedicated goroutine — never
// the producer's executor worker itself — on a Future they know is safe to
// wait on from there.
func (f Future[T]) Block() Result[T] {
	if f.shared == nil {
		panic(ErrFutureBroken)
	}
	done := make(chan struct{})
	var res Result[T]
	if !f.shared.SetContinuation(func(kind state.Kind, val T, err error) {
		res = resultFrom(kind, val, err)
		close(done)
	}) {
		panic(ErrAlreadyHasContinuation)
	}
	<-done
	return res
}

// OnReady installs cb as f's continuation without blocking the calling
// goroutine: cb runs whenever f's result becomes available, dispatched
// according to the same rules as Then/Block (internal/state's dispatch).
// It exists for bridge code (syncx.Latch.Wait, task.Suspend callers) that
// needs to attach a resume callback to a Future from inside a register
// closure that must not itself block. Panics with ErrAlreadyHasContinuation
// if a continuation is already installed, the same as Block.
func (f Future[T]) OnReady(cb func(Result[T])) {
	if f.shared == nil {
		panic(ErrFutureBroken)
	}
	if !f.shared.SetContinuation(func(kind state.Kind, val T, err error) {
		cb(resultFrom(kind, val, err))
	}) {
		panic(ErrAlreadyHasContinuation)
	}
}

// Via returns a Future backed by the same shared state, but whose eventual
// continuation dispatch prefers exec (spec.md §4.2 future.via). It does not
// consume f: the original's eventual continuation installation is what
// matters, so Via simply records the preference on the same shared state
// and returns the same handle.
func (f Future[T]) Via(exec executor.Executor) Future[T] {
	if f.shared == nil {
		panic(ErrFutureBroken)
	}
	f.shared.SetExecutor(exec, nil, false)
	return f
}

func resultFrom[T any](kind state.Kind, val T, err error) Result[T] {
	switch kind {
	case state.KindValue:
		return Value(val)
	case state.KindError:
		return Err[T](err)
	default:
		return Empty[T]()
	}
}

// Then installs a continuation on f that runs fn and settles the returned
// Future[U] with its result. fn runs wherever f's own continuation is
// dispatched (internal/state's rules: synchronously if f is already ready,
// otherwise via the executor f prefers, if any, or in whatever thread
// resolves f). A non-nil exec is checked out on the returned Future's
// Promise, so continuations installed on the returned Future prefer exec;
// exec does not decide where fn runs. Corresponds to spec.md's
// future.then-try.
func Then[T, U any](f Future[T], exec executor.Executor, fn func(Result[T]) Result[U]) Future[U] {
	if f.shared == nil {
		panic(ErrFutureBroken)
	}
	p := NewPromise[U]()
	if exec != nil {
		p.Checkout(exec)
	}
	out := p.GetFuture()
	if !f.shared.SetContinuation(func(kind state.Kind, val T, err error) {
		settle(p, fn(resultFrom(kind, val, err)))
	}) {
		panic(ErrAlreadyHasContinuation)
	}
	return out
}

// ThenValue is Then specialized to a plain value transform: fn only runs on
// a Value result, and any Error or Empty result propagates unchanged.
// Corresponds to spec.md's future.then-value.
func ThenValue[T, U any](f Future[T], exec executor.Executor, fn func(T) U) Future[U] {
	return Then(f, exec, func(r Result[T]) Result[U] {
		if err := r.Err(); err != nil {
			return Err[U](err)
		}
		if r.Empty() {
			return Empty[U]()
		}
		return Value(fn(r.Val()))
	})
}

func settle[T any](p Promise[T], r Result[T]) {
	switch {
	case r.Err() != nil:
		p.SetError(r.Err())
	case r.Empty():
		panic("async: Then callback returned an empty Result")
	default:
		p.SetValue(r.Val())
	}
}
