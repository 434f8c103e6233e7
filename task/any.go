package task

import "sync/atomic"

import (
	"github.com/wrenfold/asynctask/async"
	"github.com/wrenfold/asynctask/internal/uniquerand"
)

// AnyResult is the outcome of CollectAny: which input won, and its Result.
type AnyResult[T any] struct {
	Index  int
	Result async.Result[T]
}

// CollectAny implements spec.md §4.6 "collectAny over N Tasks" (plain
// variant): every Task is started concurrently; the first to finish trips
// the winner, and every later completion is silently dropped.
//
// Tasks are started in a random permutation of their indices rather than
// input order, the way the teacher's Select combinator (asmsh-promise
// extens.go) draws without replacement from internal/uniquerand: several
// already-ready Tasks would otherwise always resolve in favor of the lowest
// index, since Go's goroutine scheduler tends to run newly spawned
// goroutines close to program order under light load.
func CollectAny[T any](rt *Runtime, tasks []*Task[T]) AnyResult[T] {
	if len(tasks) == 0 {
		panic("task: CollectAny requires at least one Task")
	}

	var tripped atomic.Bool
	winner := make(chan AnyResult[T], 1)

	var picker uniquerand.Int
	picker.Reset(len(tasks))
	order := make([]int, 0, len(tasks))
	for {
		n, ok := picker.Get()
		if !ok {
			break
		}
		order = append(order, n)
	}

	for _, idx := range order {
		idx, tt := idx, tasks[idx]
		go func() {
			tt.start(rt)
			r := tt.fut.Block()
			if tripped.CompareAndSwap(false, true) {
				winner <- AnyResult[T]{Index: idx, Result: r}
			}
		}()
	}

	return <-winner
}

// CollectAnyCallback is CollectAny's callback variant: cb runs exactly once,
// for the winner, and its index is returned.
func CollectAnyCallback[T any](rt *Runtime, tasks []*Task[T], cb func(int, async.Result[T])) int {
	res := CollectAny(rt, tasks)
	cb(res.Index, res.Result)
	return res.Index
}

// Pair couples a Task with a callback that only runs if that Task wins
// CollectAnyPair.
type Pair[T any] struct {
	Task *Task[T]
	Cb   func(async.Result[T])
}

// CollectAnyPair is CollectAny's pair variant: each input's own callback
// runs only for the winning input.
func CollectAnyPair[T any](rt *Runtime, pairs []Pair[T]) int {
	tasks := make([]*Task[T], len(pairs))
	for i, p := range pairs {
		tasks[i] = p.Task
	}
	res := CollectAny(rt, tasks)
	pairs[res.Index].Cb(res.Result)
	return res.Index
}
