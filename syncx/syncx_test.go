package syncx_test

import (
	"sync"
	"testing"
	"time"

	"github.com/wrenfold/asynctask/executor"
	"github.com/wrenfold/asynctask/syncx"
	"github.com/wrenfold/asynctask/task"
)

// fakeExecutor is a minimal executor.Executor double that records how many
// times Checkin was used to deliver a resume, so tests can assert a
// suspension point goes through task.Suspend's checkin path (spec.md §4.5)
// rather than waking the caller directly.
type fakeExecutor struct {
	mu       sync.Mutex
	checkins int
}

func (f *fakeExecutor) Schedule(fn func()) bool                          { go fn(); return true }
func (f *fakeExecutor) ScheduleWithHint(fn func(), _ uint64) bool        { go fn(); return true }
func (f *fakeExecutor) ScheduleAfterDelay(fn func(), _ time.Duration, _ uint64) bool {
	go fn()
	return true
}
func (f *fakeExecutor) InCurrentThread() bool      { return false }
func (f *fakeExecutor) Checkout() executor.Context { return nil }
func (f *fakeExecutor) Checkin(fn func(), _ executor.Context, _ executor.CheckinOptions) bool {
	f.mu.Lock()
	f.checkins++
	f.mu.Unlock()
	go fn()
	return true
}
func (f *fakeExecutor) IOExecutor() executor.IOExecutor { return nil }

func TestMutexMutualExclusion(t *testing.T) {
	m := syncx.NewMutex()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Lock(nil)
			counter++
			m.Unlock()
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("counter = %d, want 50", counter)
	}
}

func TestMutexTryLock(t *testing.T) {
	m := syncx.NewMutex()
	if !m.TryLock() {
		t.Fatal("TryLock must succeed on an unlocked Mutex")
	}
	if m.TryLock() {
		t.Fatal("TryLock must fail on a locked Mutex")
	}
	m.Unlock()
	if !m.TryLock() {
		t.Fatal("TryLock must succeed again after Unlock")
	}
}

func TestMutexFIFOOrder(t *testing.T) {
	m := syncx.NewMutex()
	m.Lock(nil) // own it so the next three goroutines all queue as waiters

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	for i := 1; i <= 3; i++ {
		wg.Add(1)
		started := make(chan struct{})
		go func(i int) {
			defer wg.Done()
			close(started)
			m.Lock(nil)
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			m.Unlock()
		}(i)
		<-started
		time.Sleep(10 * time.Millisecond) // let i park as a waiter before i+1 queues
	}

	m.Unlock() // hand off to the first queued waiter
	wg.Wait()

	want := []int{1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("resume order = %v, want %v", order, want)
	}
	for i, v := range want {
		if order[i] != v {
			t.Fatalf("resume order = %v, want %v (FIFO handoff)", order, want)
		}
	}
}

func TestMutexResumeGoesThroughExecutorCheckin(t *testing.T) {
	fe := &fakeExecutor{}
	rt := task.NewRootRuntime(fe)

	m := syncx.NewMutex()
	m.Lock(nil) // owned by this goroutine, no executor

	unlocked := make(chan struct{})
	go func() {
		m.Lock(rt) // contended: must suspend via task.Suspend(rt, ...)
		close(unlocked)
	}()

	time.Sleep(20 * time.Millisecond) // let it queue as a waiter
	m.Unlock()

	select {
	case <-unlocked:
	case <-time.After(time.Second):
		t.Fatal("Lock(rt) never resumed after Unlock")
	}

	fe.mu.Lock()
	got := fe.checkins
	fe.mu.Unlock()
	if got != 1 {
		t.Fatalf("Checkin calls = %d, want 1 (resume must route through the Task's own executor)", got)
	}
}

func TestSpinLockGuard(t *testing.T) {
	lock := syncx.NewSpinLock()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := lock.Guard(nil)
			counter++
			unlock()
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("counter = %d, want 50", counter)
	}
}

func TestCountingSemaphore(t *testing.T) {
	sem := syncx.NewCountingSemaphore(2)
	sem.Acquire(nil)
	sem.Acquire(nil)

	acquired := make(chan struct{})
	go func() {
		sem.Acquire(nil)
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("Acquire must block while the counter is at zero")
	case <-time.After(20 * time.Millisecond):
	}

	sem.Release(1)
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("Acquire did not unblock after Release")
	}
}

func TestLatch(t *testing.T) {
	l := syncx.NewLatch(3)
	done := make(chan struct{})
	go func() {
		l.Wait(nil)
		close(done)
	}()

	l.CountDown(1)
	l.CountDown(1)
	select {
	case <-done:
		t.Fatal("Latch must not release before its count reaches zero")
	case <-time.After(20 * time.Millisecond):
	}

	l.CountDown(1)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Latch did not release after reaching zero")
	}
}

func TestLatchZero(t *testing.T) {
	l := syncx.NewLatch(0)
	done := make(chan struct{})
	go func() {
		l.Wait(nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("a zero-count Latch must already be released")
	}
}
