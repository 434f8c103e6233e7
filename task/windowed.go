package task

import "github.com/wrenfold/asynctask/async"

// CollectAllWindowed implements spec.md §4.6 collectAllWindowed: the input
// is processed in batches of at most maxConcurrency, each batch awaited via
// CollectAll, yielding between batches when yield is true. Output order
// matches input order.
func CollectAllWindowed[T any](rt *Runtime, tasks []*Task[T], maxConcurrency int, parallel, yield bool) []async.Result[T] {
	if maxConcurrency <= 0 || maxConcurrency > len(tasks) {
		maxConcurrency = len(tasks)
	}
	out := make([]async.Result[T], len(tasks))

	for start := 0; start < len(tasks); start += maxConcurrency {
		end := start + maxConcurrency
		if end > len(tasks) {
			end = len(tasks)
		}
		batch := CollectAll(rt, tasks[start:end], parallel)
		copy(out[start:end], batch)

		if yield && end < len(tasks) {
			Yield(rt)
		}
	}
	return out
}
