package task_test

import (
	"sync/atomic"
	"testing"

	"github.com/wrenfold/asynctask/async"
	"github.com/wrenfold/asynctask/executor"
	"github.com/wrenfold/asynctask/task"
)

// countingExecutor wraps a Pool and counts Schedule calls, so a test can
// tell a delivery through Executor.Schedule from an in-thread one.
type countingExecutor struct {
	*executor.Pool
	schedules atomic.Int32
}

func (c *countingExecutor) Schedule(fn func()) bool {
	c.schedules.Add(1)
	return c.Pool.Schedule(fn)
}

func TestResumeByScheduleDeliversViaExecutor(t *testing.T) {
	pool := executor.NewPool(1)
	defer pool.Close()
	ce := &countingExecutor{Pool: pool}

	rt := task.NewRootRuntime(ce)
	prom := async.NewPromise[int]()
	fut := prom.GetFuture()

	scheduled := make(chan struct{})
	go func() {
		// Runs on this goroutine, never the Pool; the Schedule count
		// checked below shows delivery went through Executor.Schedule
		// rather than running the continuation in-thread.
		prom.SetValue(7)
		close(scheduled)
	}()
	<-scheduled

	r := task.ResumeBySchedule(rt, fut)
	if r.Err() != nil || r.Val() != 7 {
		t.Fatalf("got %v, %v, want value 7", r.Val(), r.Err())
	}
	if got := ce.schedules.Load(); got != 1 {
		t.Fatalf("Schedule calls = %d, want 1 (delivery must go through the executor)", got)
	}
}

func TestResumeByScheduleWithNoExecutorRunsInline(t *testing.T) {
	rt := task.NewRootRuntime(nil)
	prom := async.NewPromise[int]()
	fut := prom.GetFuture()
	prom.SetValue(3)

	r := task.ResumeBySchedule(rt, fut)
	if r.Err() != nil || r.Val() != 3 {
		t.Fatalf("got %v, %v, want value 3", r.Val(), r.Err())
	}
}
