package syncx

import "github.com/wrenfold/asynctask/task"

// CountingSemaphore is the SpinLock+ConditionVariable counting semaphore of
// spec.md §4.7.
type CountingSemaphore struct {
	mu      *SpinLock
	locker  Locker
	cv      *ConditionVariable
	counter int
}

type spinLocker struct{ s *SpinLock }

func (p spinLocker) Lock(rt *task.Runtime) { p.s.Lock(rt) }
func (p spinLocker) Unlock()               { p.s.Unlock() }

// NewCountingSemaphore creates a CountingSemaphore with n initial permits.
func NewCountingSemaphore(n int) *CountingSemaphore {
	s := &CountingSemaphore{mu: NewSpinLock(), cv: NewConditionVariable(), counter: n}
	s.locker = spinLocker{s.mu}
	return s
}

// Acquire waits until the counter is > 0, then decrements it. rt is
// threaded through to ConditionVariable.Wait so a Task awaiting a permit
// resumes on its own executor (spec.md §4.5) rather than on whichever
// goroutine called Release.
func (s *CountingSemaphore) Acquire(rt *task.Runtime) {
	s.locker.Lock(rt)
	s.cv.Wait(rt, s.locker, func() bool { return s.counter > 0 })
	s.counter--
	s.locker.Unlock()
}

// Release increments the counter by k, notifying one waiter for k==1 or
// every waiter for k>1 (spec.md §4.7).
func (s *CountingSemaphore) Release(k int) {
	if k <= 0 {
		k = 1
	}
	s.locker.Lock(nil)
	s.counter += k
	s.locker.Unlock()

	if k == 1 {
		s.cv.NotifyOne()
	} else {
		s.cv.NotifyAll()
	}
}
