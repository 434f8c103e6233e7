package syncx

import (
	"sync/atomic"

	"github.com/wrenfold/asynctask/task"
)

// Mutex is the single-atomic-pointer async mutex of spec.md §4.7. Its state
// is one of:
//   - the self sentinel  -> Unlocked
//   - nil                -> Locked, no queued waiters
//   - anything else       -> Locked; heads a LIFO list of newly queued waiters
//
// An owner-only FIFO holds waiters already popped off the LIFO list, so the
// lock is handed off in arrival order even though new waiters push onto a
// LIFO stack.
type Mutex struct {
	state atomic.Pointer[waiterNode]
	self  *waiterNode
	fifo  []*waiterNode // touched only by whichever goroutine currently holds the lock
}

type waiterNode struct {
	next   *waiterNode
	resume func()
}

// NewMutex creates an unlocked Mutex.
func NewMutex() *Mutex {
	m := &Mutex{self: &waiterNode{}}
	m.state.Store(m.self)
	return m
}

// TryLock attempts to acquire the Mutex without suspending.
func (m *Mutex) TryLock() bool {
	return m.state.CompareAndSwap(m.self, nil)
}

// Lock suspends the running Task until the Mutex is acquired. rt is
// threaded through to task.Suspend so that, per spec.md §4.5, the Task
// resumes on an approved worker of its own executor rather than on
// whichever goroutine called Unlock; rt may be nil when called outside a
// Task, in which case the caller's own goroutine simply blocks.
func (m *Mutex) Lock(rt *task.Runtime) {
	if m.TryLock() {
		return
	}

	task.Suspend(rt, func(resume func()) {
		node := &waiterNode{resume: resume}
		for {
			old := m.state.Load()
			if old == m.self {
				if m.state.CompareAndSwap(m.self, nil) {
					resume()
					return
				}
				continue
			}
			node.next = old
			if m.state.CompareAndSwap(old, node) {
				return
			}
		}
	})
}

// Unlock releases the Mutex, handing it directly to a waiter if one is
// queued.
func (m *Mutex) Unlock() {
	if n := m.popFIFO(); n != nil {
		n.resume()
		return
	}

	if m.state.CompareAndSwap(nil, m.self) {
		return
	}

	// Lost the race to newly queued LIFO waiters: drain them all, reverse
	// into arrival order, and hand off to the head.
	old := m.state.Swap(nil)
	var rev []*waiterNode
	for n := old; n != nil; n = n.next {
		rev = append(rev, n)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	m.fifo = rev
	head := m.popFIFO()
	head.resume()
}

// popFIFO dequeues the earliest-arrived waiter still held in m.fifo. The
// drain-and-reverse step in Unlock already leaves m.fifo in arrival order
// (index 0 = earliest), so the front, not the back, is the next in line.
func (m *Mutex) popFIFO() *waiterNode {
	if len(m.fifo) == 0 {
		return nil
	}
	n := m.fifo[0]
	m.fifo = m.fifo[1:]
	return n
}

// Guard acquires the Mutex and returns a function that releases it, for
// `defer m.Guard(rt)()`.
func (m *Mutex) Guard(rt *task.Runtime) func() {
	m.Lock(rt)
	return m.Unlock
}
