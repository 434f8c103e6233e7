package task

import "github.com/wrenfold/asynctask/async"

// CollectAll implements spec.md §4.6 "collectAll over a range of Tasks":
// a vector of Result containers, one per input, in input order, regardless
// of completion order or of any individual Task's error. It blocks the
// calling goroutine (the awaiting Task) until the count-event's last
// decrement fires.
//
// Serial: each Task is started and awaited in sequence, on rt's executor.
// Parallel: each Task without its own executor inherits rt's; a Task with
// its own executor (and len(tasks) > 1) is submitted via that executor's
// Schedule, degrading to inline execution if the submission is refused or
// there is no executor to submit through — the aggregate itself never
// fails on a scheduling failure (spec.md §4.6, §9 Open Question).
func CollectAll[T any](rt *Runtime, tasks []*Task[T], parallel bool) []async.Result[T] {
	n := len(tasks)
	out := make([]async.Result[T], n)
	if n == 0 {
		return out
	}
	ce := newCountEvent(n)

	runOne := func(idx int, t *Task[T]) {
		t.start(rt)
		out[idx] = t.fut.Block()
		ce.decrement()
	}

	for i, t := range tasks {
		idx, tt := i, t
		if !parallel {
			runOne(idx, tt)
			continue
		}
		exec := tt.explicitExec
		if exec == nil {
			exec = rt.Executor()
		}
		if exec != nil && n > 1 {
			if !exec.Schedule(func() { runOne(idx, tt) }) {
				runOne(idx, tt)
			}
		} else {
			runOne(idx, tt)
		}
	}

	done := make(chan struct{})
	ce.attach(func() { close(done) })
	<-done
	return out
}
