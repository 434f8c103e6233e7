package executor

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pool is a fixed-size worker-pool Executor: this module's one reference
// implementation (spec.md §9 "the library itself never spawns threads [...]
// concurrency comes exclusively from the executor(s) configured by the
// application" — Pool is one such application-supplied executor, shipped so
// the rest of the module has something concrete to run against).
//
// Submissions queue on a single priority queue (grounded on b97tsk/async's
// priorityqueue.go: a single slice kept sorted by binary-search insertion,
// cheaper than a heap for
// the small, bursty queues this module produces) and are drained by a fixed
// number of worker goroutines, reserved up front the way the teacher's
// Group reserves goroutines against its Size limit (asmsh/promise/group.go
// reserveGoroutine/freeGoroutine) rather than spawned per submission.
type Pool struct {
	mu      sync.Mutex
	cond    sync.Cond
	pq      priorityQueue
	closed  bool
	workers map[int64]struct{}
	log     *zap.Logger

	wg sync.WaitGroup
}

// PoolOption configures a Pool at construction time.
type PoolOption func(*Pool)

// WithLogger attaches a *zap.Logger a Pool uses to report recovered job
// panics and lifecycle events. The default is zap.NewNop(), matching the
// rest of this module's ambient logging (see SPEC_FULL.md's ambient
// stack).
func WithLogger(log *zap.Logger) PoolOption {
	return func(p *Pool) { p.log = log }
}

type job struct {
	fn       func()
	priority uint64
	seq      uint64
}

func (j *job) less(o *job) bool {
	if j.priority != o.priority {
		return j.priority < o.priority
	}
	return j.seq < o.seq
}

type priorityQueue struct {
	items []*job
	seq   uint64
}

func (q *priorityQueue) push(fn func(), priority uint64) {
	q.seq++
	j := &job{fn: fn, priority: priority, seq: q.seq}
	i := sort.Search(len(q.items), func(i int) bool { return j.less(q.items[i]) })
	q.items = append(q.items, nil)
	copy(q.items[i+1:], q.items[i:])
	q.items[i] = j
}

func (q *priorityQueue) pop() *job {
	j := q.items[0]
	q.items = q.items[1:]
	return j
}

// NewPool creates a Pool with n worker goroutines. n <= 0 is clamped to 1.
func NewPool(n int, opts ...PoolOption) *Pool {
	if n <= 0 {
		n = 1
	}
	p := &Pool{workers: make(map[int64]struct{}, n), log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	p.cond.L = &p.mu
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		id := int64(i + 1)
		p.workers[id] = struct{}{}
		go p.run(id)
	}
	p.log.Debug("executor pool started", zap.Int("workers", n))
	return p
}

// each worker goroutine stashes its own id here for InCurrentThread/Checkout.
type workerID struct{ id int64 }

func (p *Pool) run(id int64) {
	defer p.wg.Done()
	wid := &workerID{id: id}
	workerTLS.set(wid)
	defer workerTLS.clear()

	for {
		p.mu.Lock()
		for len(p.pq.items) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.pq.items) == 0 && p.closed {
			p.mu.Unlock()
			return
		}
		j := p.pq.pop()
		p.mu.Unlock()
		p.runJob(j)
	}
}

// runJob runs a single job, recovering and logging a panic rather than
// taking down the worker goroutine: one bad submission must not stop the
// Pool from draining the rest of its queue.
func (p *Pool) runJob(j *job) {
	defer func() {
		if rec := recover(); rec != nil {
			p.log.Error("executor pool job panicked", zap.Any("panic", rec))
		}
	}()
	j.fn()
}

// Close stops accepting new work and waits for queued work to drain.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	p.wg.Wait()
	p.log.Debug("executor pool stopped")
}

func (p *Pool) Schedule(fn func()) bool { return p.ScheduleWithHint(fn, Default) }

func (p *Pool) ScheduleWithHint(fn func(), hint uint64) bool {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return false
	}
	p.pq.push(fn, Priority(hint))
	p.cond.Signal()
	p.mu.Unlock()
	return true
}

func (p *Pool) ScheduleAfterDelay(fn func(), d time.Duration, hint uint64) bool {
	if d <= 0 {
		return p.ScheduleWithHint(fn, hint)
	}
	timer := time.AfterFunc(d, func() { p.ScheduleWithHint(fn, hint) })
	_ = timer
	return true
}

func (p *Pool) InCurrentThread() bool {
	_, ok := workerTLS.get()
	return ok
}

func (p *Pool) Checkout() Context {
	if w, ok := workerTLS.get(); ok {
		return w.id
	}
	return int64(0)
}

// Checkin schedules fn preferring the worker identified by ctx. Pool's
// workers are fungible (any worker can run any job), so Checkin degrades to
// Schedule unless opts.Prompt is set and the caller is already on the
// preferred worker, in which case it runs fn inline — matching spec.md
// §4.1's intent that checkin "prefers" rather than pins a worker.
func (p *Pool) Checkin(fn func(), ctx Context, opts CheckinOptions) bool {
	if opts.Prompt {
		if w, ok := workerTLS.get(); ok {
			if id, ok2 := ctx.(int64); ok2 && id == w.id {
				fn()
				return true
			}
		}
	}
	return p.Schedule(fn)
}

func (p *Pool) IOExecutor() IOExecutor { return nil }
