package task

import "github.com/wrenfold/asynctask/executor"

// Suspend implements spec.md §4.5's via-coroutine: the adapter a Task uses
// to await an arbitrary blocking primitive (syncx's Mutex, ConditionVariable,
// CountingSemaphore) that knows nothing about executors itself.
//
// register is called synchronously with a resume func() that the primitive
// must invoke exactly once to wake the suspended caller. Suspend checks out
// rt's executor's worker context before calling register, the way spec.md
// §4.5 describes ("ctx captured by checkout() at suspension time"), so that
// whatever resume does, it checks back in on that same worker via
// Executor.Checkin rather than simply continuing on whichever goroutine
// happened to call it — mirroring internal/state.Shared.dispatch's own
// checkout/checkin-mediated delivery, generalized from "deliver a Future's
// result" to "wake an arbitrary suspension point". A Runtime with no
// executor (or a nil Runtime) has nothing to check in on, so resume just
// unblocks the caller directly.
func Suspend(rt *Runtime, register func(resume func())) {
	exec := rt.Executor()
	if exec == nil {
		done := make(chan struct{})
		register(func() { close(done) })
		<-done
		return
	}

	ctx := exec.Checkout()
	done := make(chan struct{})
	register(func() {
		closure := func() { close(done) }
		if !exec.Checkin(closure, ctx, executor.CheckinOptions{Prompt: true}) {
			closure()
		}
	})
	<-done
}
