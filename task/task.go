// Package task implements the lazy coroutine layer (component E of the
// design, spec.md §4.4) and its combinators (component G over Tasks,
// spec.md §4.6).
//
// Go has neither first-class stackless coroutines nor symmetric transfer,
// so "await" cannot be a language suspension point the way the source
// models it. Per spec.md §9's own sanctioned alternative, a Task is
// modeled as a state-machine-like body function driven to completion by a
// runtime loop: an ordinary Task's first resume is an in-thread call (the
// closest Go equivalent of symmetric transfer — no extra goroutine, no
// scheduler hop), and nested awaits block the calling goroutine on the
// awaited Task's Future the same way package async's sync bridges do. Go's
// goroutine stacks already grow dynamically, so the property the source
// cares about ("a deep chain of awaits does not overflow the stack") holds
// for free. A Rescheduled-Task instead submits its first resume through its
// executor, per spec.md §4.4.
package task

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wrenfold/asynctask/async"
	"github.com/wrenfold/asynctask/executor"
)

// Runtime is a Task's execution context: its current executor, its
// waiting-ancestor link (used by Dispatch's chain walk), and its
// task-local slot. It is created fresh for every Task.start and handed to
// the Task's body.
type Runtime struct {
	exec   executor.Executor
	parent *Runtime
	local  *Local
}

// Executor returns the Runtime's current executor, or nil.
func (rt *Runtime) Executor() executor.Executor {
	if rt == nil {
		return nil
	}
	return rt.exec
}

// Local returns the Runtime's task-local value, or nil if none is set.
func (rt *Runtime) Local() *Local {
	if rt == nil {
		return nil
	}
	return rt.local
}

// NewRootRuntime creates a detached Runtime with no parent and no local,
// for bridges (package syncawait, and Start below) that need to hand a Task
// a root Runtime from outside the Task layer.
func NewRootRuntime(exec executor.Executor) *Runtime {
	return &Runtime{exec: exec}
}

// Body is the function a Task runs when started.
type Body[T any] func(rt *Runtime) (T, error)

// Task is a suspendable, lazily-started computation (spec.md §4.4): it is
// not run until first awaited or explicitly Started.
type Task[T any] struct {
	body         Body[T]
	explicitExec executor.Executor
	ownLocal     *Local
	rescheduled  bool

	startOnce sync.Once
	prom      async.Promise[T]
	fut       async.Future[T]
}

// New creates a Task that runs body on first resume via an emulated
// symmetric transfer (an in-thread call).
func New[T any](body Body[T]) *Task[T] {
	return newTask(body, false)
}

// Rescheduled creates a Task whose first resume is submitted through its
// executor's schedule instead of running in-thread (spec.md §4.4
// "Rescheduled-Task").
func Rescheduled[T any](body Body[T]) *Task[T] {
	return newTask(body, true)
}

func newTask[T any](body Body[T], rescheduled bool) *Task[T] {
	t := &Task[T]{body: body, rescheduled: rescheduled}
	t.prom = async.NewPromise[T]()
	t.fut = t.prom.GetFuture()
	return t
}

// WithExecutor pins t to exec instead of inheriting its awaiter's executor.
// Must be called before the Task is started.
func (t *Task[T]) WithExecutor(exec executor.Executor) *Task[T] {
	t.explicitExec = exec
	return t
}

// WithLocal pins t's task-local slot to {tag, value} instead of inheriting
// its awaiter's. Awaiting t from a Runtime that already carries a local,
// whatever its tag, panics with ErrConflictingLocal (spec.md §4.4). Must
// be called before the Task is started.
func (t *Task[T]) WithLocal(tag, value any) *Task[T] {
	t.ownLocal = &Local{Tag: tag, Value: value}
	return t
}

func (t *Task[T]) resolveExecutor(parent *Runtime) executor.Executor {
	if t.explicitExec != nil {
		return t.explicitExec
	}
	return parent.Executor()
}

// start runs the Task's body at most once. Safe to call concurrently and
// redundantly; only the first caller's parent/executor choice takes effect.
func (t *Task[T]) start(parent *Runtime) {
	t.startOnce.Do(func() {
		local, err := inheritLocal(parent, t.ownLocal)
		if err != nil {
			panic(err)
		}
		rt := &Runtime{exec: t.resolveExecutor(parent), parent: parent, local: local}

		run := func() {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("task body panicked", zap.Any("panic", rec))
					t.prom.SetError(async.PanicValue{V: rec})
				}
			}()
			v, err := t.body(rt)
			if err != nil {
				t.prom.SetError(err)
				return
			}
			t.prom.SetValue(v)
		}

		if t.rescheduled && rt.exec != nil && rt.exec.Schedule(run) {
			return
		}
		run()
	})
}

// Future returns the Task's result Future, starting it with no parent
// Runtime (so no inherited executor or local; one set by WithExecutor or
// WithLocal still applies) if it has not already started.
// Prefer Await from within another Task's body; use Future directly only
// to observe a Task from outside the Task layer.
func (t *Task[T]) Future() async.Future[T] {
	t.start(nil)
	return t.fut
}

// Await runs t to completion (starting it, inheriting rt's executor and
// task-local, if t has none of its own) and returns its value or error,
// blocking the calling goroutine until it is ready. Corresponds to
// spec.md's consuming `await`.
func Await[T any](rt *Runtime, t *Task[T]) (T, error) {
	t.start(rt)
	r := t.fut.Block()
	if err := r.Err(); err != nil {
		var zero T
		return zero, err
	}
	return r.Val(), nil
}

// TryAwait is Await returning a Result container instead of panicking/
// propagating an error, corresponding to spec.md's `try-await`.
func TryAwait[T any](rt *Runtime, t *Task[T]) async.Result[T] {
	t.start(rt)
	return t.fut.Block()
}

// Start launches t as a detached root computation on its own goroutine:
// the root adapter awaits t with a try-wrapper and invokes cb with the
// Result container (spec.md §4.4 `start(cb)`). Any panic escaping the
// adapter itself (as opposed to t's body, already recovered by start) is
// also surfaced through cb.
func Start[T any](t *Task[T], exec executor.Executor, cb func(async.Result[T])) {
	root := NewRootRuntime(exec)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				cb(async.Err[T](async.PanicValue{V: rec}))
			}
		}()
		cb(TryAwait(root, t))
	}()
}
