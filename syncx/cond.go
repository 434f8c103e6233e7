package syncx

import (
	"sync/atomic"

	"github.com/wrenfold/asynctask/task"
)

// Locker is satisfied by Mutex and the spinLocker adapter used by
// CountingSemaphore: Lock takes the Runtime of the awaiting Task (or nil
// outside a Task) so implementations can suspend through task.Suspend.
type Locker interface {
	Lock(rt *task.Runtime)
	Unlock()
}

type cvNode struct {
	next   *cvNode
	resume func()
}

// ConditionVariable is the lock-free LIFO-stack condition variable of
// spec.md §4.7.
type ConditionVariable struct {
	waiters atomic.Pointer[cvNode]
}

// NewConditionVariable creates an empty ConditionVariable.
func NewConditionVariable() *ConditionVariable { return &ConditionVariable{} }

// Wait releases lock, suspends until notified, then reacquires lock before
// re-testing pred, looping until pred reports true (defense against
// spurious wake-ups, spec.md §4.7). rt is threaded through to task.Suspend
// so the waiting Task resumes on its own executor rather than on whichever
// goroutine called NotifyOne/NotifyAll (spec.md §4.5).
func (cv *ConditionVariable) Wait(rt *task.Runtime, lock Locker, pred func() bool) {
	for !pred() {
		task.Suspend(rt, func(resume func()) {
			node := &cvNode{resume: resume}
			for {
				old := cv.waiters.Load()
				node.next = old
				if cv.waiters.CompareAndSwap(old, node) {
					break
				}
			}
			lock.Unlock()
		})
		lock.Lock(rt)
	}
}

// NotifyOne wakes the most recently queued waiter.
func (cv *ConditionVariable) NotifyOne() {
	for {
		old := cv.waiters.Load()
		if old == nil {
			return
		}
		if cv.waiters.CompareAndSwap(old, old.next) {
			old.resume()
			return
		}
	}
}

// NotifyAll atomically swaps the waiter stack to empty and resumes every
// waiter that was on it.
func (cv *ConditionVariable) NotifyAll() {
	old := cv.waiters.Swap(nil)
	for n := old; n != nil; {
		next := n.next
		n.resume()
		n = next
	}
}
