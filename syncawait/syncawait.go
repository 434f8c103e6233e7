// Package syncawait implements the sync-await bridge of component J
// (spec.md §4.9): blocking an ordinary native goroutine on a Task's
// completion, as opposed to awaiting it from inside another Task.
package syncawait

import (
	"go.uber.org/zap"

	"github.com/wrenfold/asynctask/async"
	"github.com/wrenfold/asynctask/executor"
	"github.com/wrenfold/asynctask/task"
)

// logger is this package's ambient logger; see task.SetLogger for the same
// convention applied one layer down.
var logger = zap.NewNop()

// SetLogger overrides the logger used to report a blocked sync-await.
func SetLogger(log *zap.Logger) {
	if log != nil {
		logger = log
	}
}

// Await asserts that the calling goroutine is not a worker of exec (the
// deadlock exec's own workers would otherwise risk), installs a
// condition-variable-style notifier as t's final callback by way of
// Future.Block, blocks the calling goroutine until notified, and returns
// the Result container (spec.md §4.9 `sync-await`).
//
// exec may be nil: a Task with no executor of its own still runs via
// emulated symmetric transfer (an in-thread call, package task), so there
// is nothing to guard against.
func Await[T any](t *task.Task[T], exec executor.Executor) async.Result[T] {
	if exec != nil && exec.InCurrentThread() {
		panic("syncawait: Await called from the task's own executor")
	}
	logger.Debug("sync-await blocking calling goroutine")
	return task.TryAwait(task.NewRootRuntime(exec), t)
}
