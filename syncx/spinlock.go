// Package syncx implements the synchronization primitives of component H
// (spec.md §4.7): SpinLock, Mutex, ConditionVariable, CountingSemaphore and
// Latch, built on the Task/Future layers in packages task and async rather
// than on goroutine-blocking stdlib primitives, so they suspend a Task
// instead of parking an OS thread.
package syncx

import "github.com/wrenfold/asynctask/task"

// SpinLock is an atomic-bool lock with a bounded spin before yielding the
// Task (spec.md §4.7). DefaultSpinLimit mirrors the spec's default of 1024
// attempts.
const DefaultSpinLimit = 1024

type SpinLock struct {
	locked spinFlag
	limit  int
}

// NewSpinLock creates a SpinLock with the default spin limit.
func NewSpinLock() *SpinLock { return &SpinLock{limit: DefaultSpinLimit} }

// WithSpinLimit overrides the number of bounded spin attempts before
// falling back to a Task yield (sync path: a native yield).
func (s *SpinLock) WithSpinLimit(n int) *SpinLock {
	if n > 0 {
		s.limit = n
	}
	return s
}

// TryLock attempts to acquire the lock without spinning or yielding.
func (s *SpinLock) TryLock() bool { return s.locked.tryAcquire() }

// Lock acquires the lock, spinning up to the configured limit; on
// exhaustion it yields the running Task via rt (or a native goroutine
// yield if rt is nil, i.e. called outside a Task).
func (s *SpinLock) Lock(rt *task.Runtime) {
	for {
		for i := 0; i < s.limit; i++ {
			if s.locked.tryAcquire() {
				return
			}
		}
		if rt != nil {
			task.Yield(rt)
		} else {
			goYield()
		}
	}
}

// Unlock releases the lock.
func (s *SpinLock) Unlock() { s.locked.release() }

// Guard acquires the lock and returns a function that releases it, for
// `defer s.Guard(rt)()`-style scoped locking (spec.md's "async scoped-lock
// returning an RAII guard", adapted to Go's defer idiom instead of
// destructors).
func (s *SpinLock) Guard(rt *task.Runtime) func() {
	s.Lock(rt)
	return s.Unlock
}
