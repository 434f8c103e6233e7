package task

import (
	"time"

	"github.com/wrenfold/asynctask/executor"
)

// Yield suspends the running Task and re-submits it to its executor with
// priority Yield, returning once resumed (spec.md §4.4). A Task with no
// executor returns immediately: yielding without a scheduler to hop
// through is a no-op.
func Yield(rt *Runtime) {
	exec := rt.Executor()
	if exec == nil {
		return
	}
	done := make(chan struct{})
	if !exec.ScheduleWithHint(func() { close(done) }, executor.Yield) {
		return
	}
	<-done
}

// CurrentExecutor is the synchronous pseudo-awaitable spec.md §4.4 calls
// `current-executor`.
func CurrentExecutor(rt *Runtime) executor.Executor { return rt.Executor() }

// CurrentLocal is the synchronous pseudo-awaitable spec.md §4.4 calls
// `current-task-local`.
func CurrentLocal(rt *Runtime) *Local { return rt.Local() }

// Sleep suspends the running Task for d. With an executor, it awaits
// executor.ScheduleAfterDelay; without one, or when the calling goroutine
// is itself one of the executor's workers, it falls back to a blocking
// sleep, the documented degradation spec.md §4.6 allows. A worker blocks
// for d either way, and one that waited for a wake-up job on its own
// executor would deadlock once every worker of that executor is asleep.
func Sleep(rt *Runtime, d time.Duration) {
	exec := rt.Executor()
	if exec == nil || exec.InCurrentThread() {
		time.Sleep(d)
		return
	}
	done := make(chan struct{})
	if !exec.ScheduleAfterDelay(func() { close(done) }, d, executor.Default) {
		time.Sleep(d)
		return
	}
	<-done
}

// Dispatch forces rt and every ancestor up its continuation chain onto
// exec (spec.md §4.4 `dispatch`, redesigned per spec.md §9 to walk the
// explicit parent chain this runtime already maintains instead of reaching
// into a coroutine frame by byte offset). If exec refuses the resume
// submission the executor-pointer rewrite is rolled back and
// ErrDispatchFailed is returned (spec.md §9 Open Question).
func Dispatch(rt *Runtime, exec executor.Executor) error {
	type saved struct {
		r   *Runtime
		old executor.Executor
	}
	var chain []saved
	for r := rt; r != nil; r = r.parent {
		chain = append(chain, saved{r, r.exec})
		r.exec = exec
	}

	done := make(chan struct{})
	if !exec.Schedule(func() { close(done) }) {
		for _, s := range chain {
			s.r.exec = s.old
		}
		logger.Warn("task dispatch failed, executor rewrite rolled back")
		return ErrDispatchFailed
	}
	<-done
	return nil
}
