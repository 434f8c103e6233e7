package uthread

import (
	"sync/atomic"

	"github.com/wrenfold/asynctask/async"
	"github.com/wrenfold/asynctask/executor"
)

// Await switches out u until future's result is ready, then switches back
// in and returns it (spec.md §4.8 `uthread::await`). The source loops on a
// defensive re-check because its condition variable equivalent can wake
// spuriously; this channel-based emulation cannot, so the single blocking
// receive inside Future.Block is sufficient, and is documented here rather
// than wrapped in a no-op loop.
func Await[T any](u *Uthread, future async.Future[T]) async.Result[T] {
	return future.Block()
}

// CollectAll implements spec.md §4.8 `uthread::collectAll`: one Uthread per
// item, rendezvous through a shared output-slot vector, a Promise, and an
// atomic counter; the last Uthread to finish fulfills the Promise and
// drops the shared context (the same cycle-broken-by-last-release pattern
// as package async's CollectAll, spec.md §8 "Cyclic references").
func CollectAll[T any](exec executor.Executor, policy Policy, items []func(*Uthread) (T, error)) async.Future[[]async.Result[T]] {
	n := len(items)
	out := make([]async.Result[T], n)
	prom := async.NewPromise[[]async.Result[T]]()
	fut := prom.GetFuture()

	if n == 0 {
		prom.SetValue(out)
		return fut
	}

	var remaining atomic.Int64
	remaining.Store(int64(n))

	for i, item := range items {
		idx, fn := i, item
		Go(exec, policy, func(u *Uthread) {
			defer func() {
				if rec := recover(); rec != nil {
					out[idx] = async.Err[T](async.PanicValue{V: rec})
				}
				if remaining.Add(-1) == 0 {
					prom.SetValue(out)
				}
			}()
			v, err := fn(u)
			if err != nil {
				out[idx] = async.Err[T](err)
			} else {
				out[idx] = async.Value(v)
			}
		})
	}

	return fut
}
