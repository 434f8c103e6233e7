package syncx

import (
	"sync/atomic"

	"github.com/wrenfold/asynctask/async"
	"github.com/wrenfold/asynctask/task"
)

// Latch is the counter+Promise latch of spec.md §4.7: CountDown decrements
// a counter; the decrement that brings it to zero fulfills the underlying
// Promise. Wait awaits that Promise's Future from within a Task. Like the
// rest of this module's Futures, the underlying Future is single-consumer:
// a Latch is meant for exactly one waiter, the same way async.Future.Get is
// a one-shot consuming operation.
type Latch struct {
	remaining atomic.Int64
	fired     atomic.Bool
	prom      async.Promise[bool]
	fut       async.Future[bool]
}

// NewLatch creates a Latch counting down from n.
func NewLatch(n int) *Latch {
	l := &Latch{prom: async.NewPromise[bool]()}
	l.fut = l.prom.GetFuture()
	l.remaining.Store(int64(n))
	if n <= 0 {
		l.trip()
	}
	return l
}

func (l *Latch) trip() {
	if l.fired.CompareAndSwap(false, true) {
		l.prom.SetValue(true)
	}
}

// CountDown decrements the Latch's counter by k (default 1).
func (l *Latch) CountDown(k int) {
	if k <= 0 {
		k = 1
	}
	if l.remaining.Add(-int64(k)) <= 0 {
		l.trip()
	}
}

// Wait suspends the running Task until the Latch reaches zero. It goes
// through task.Suspend rather than blocking directly on l.fut so that the
// Task resumes on an approved worker of its own executor (spec.md §4.5)
// rather than on whichever goroutine called the tripping CountDown.
func (l *Latch) Wait(rt *task.Runtime) {
	var res async.Result[bool]
	task.Suspend(rt, func(resume func()) {
		l.fut.OnReady(func(r async.Result[bool]) {
			res = r
			resume()
		})
	})
	if err := res.Err(); err != nil {
		panic(err)
	}
}
