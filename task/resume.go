package task

import "github.com/wrenfold/asynctask/async"

// ResumeBySchedule is spec.md §4.6's `resume-by-schedule`: an alternative to
// Await/TryAwait that always delivers fut's result via a fresh
// Executor.Schedule submission, never in-thread from whichever goroutine
// produced it. Use it when the producer's thread must not be stolen to run
// the continuation — the ordinary Await/Then dispatch rules
// (internal/state's dispatch) are happy to run a cheap continuation
// in-thread, which is exactly what this bypasses.
//
// Grounded on _examples/original_source/coro/ResumeBySchedule.h's
// FutureResumeByScheduleAwaiter. It degrades to running inline only if rt
// has no executor, or Schedule itself is refused, matching this module's
// established scheduling-failure policy (task/collect.go).
func ResumeBySchedule[T any](rt *Runtime, fut async.Future[T]) async.Result[T] {
	done := make(chan async.Result[T], 1)
	fut.OnReady(func(r async.Result[T]) {
		deliver := func() { done <- r }
		if exec := rt.Executor(); exec != nil && exec.Schedule(deliver) {
			return
		}
		deliver()
	})
	return <-done
}
