package async

import (
	"sync/atomic"

	"github.com/wrenfold/asynctask/internal/state"
)

// IdxRes is a positional result: which input index it came from, plus the
// Result itself. Grounded on the teacher's IdxRes (asmsh/promise/extens.go),
// used here by CollectAll to report results in the caller's input order
// regardless of completion order.
type IdxRes[T any] struct {
	Idx int
	Result[T]
}

// CollectAll implements spec.md §4.6 "collectAll over a range of Futures".
//
// Fast path: if every input is already ready, the N-slot vector is built
// and returned as an already-ready Future, synchronously, through one
// Promise/Future pair that holds the output slice (spec.md §8 scenario 1).
//
// Slow path: a shared context is installed as the continuation of every
// not-yet-ready input; the context is kept alive by one reference per
// pending continuation, and the last continuation to run settles the
// aggregate Promise and drops the context — mirroring the teacher's
// reference-cycle-broken-by-the-last-release pattern (spec.md §8 "Cyclic
// references").
func CollectAll[T any](futures ...Future[T]) Future[[]IdxRes[T]] {
	n := len(futures)
	out := make([]IdxRes[T], n)

	var pending []int
	for i, f := range futures {
		if f.shared == nil {
			panic(ErrFutureBroken)
		}
		if r, ok := f.PeekResult(); ok {
			out[i] = IdxRes[T]{Idx: i, Result: r}
		} else {
			pending = append(pending, i)
		}
	}

	if len(pending) == 0 {
		p := NewPromise[[]IdxRes[T]]()
		p.SetValue(out)
		return p.GetFuture()
	}

	ctx := &collectAllCtx[T]{out: out}
	ctx.remaining.Store(int64(len(pending)))
	ctx.promise = NewPromise[[]IdxRes[T]]()

	for _, i := range pending {
		idx := i
		ok := futures[idx].shared.SetContinuation(func(kind state.Kind, val T, err error) {
			ctx.out[idx] = IdxRes[T]{Idx: idx, Result: resultFrom(kind, val, err)}
			if ctx.remaining.Add(-1) == 0 {
				ctx.promise.SetValue(ctx.out)
			}
		})
		if !ok {
			panic(ErrAlreadyHasContinuation)
		}
	}

	return ctx.promise.GetFuture()
}

// collectAllCtx is the shared context kept alive by each installed
// continuation's closure. Once remaining reaches zero the last closure to
// run is the only one still holding a reference to it; it settles the
// promise and returns, and the context becomes garbage.
type collectAllCtx[T any] struct {
	out       []IdxRes[T]
	remaining atomic.Int64
	promise   Promise[[]IdxRes[T]]
}
