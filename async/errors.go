package async

import (
	"errors"
	"fmt"
)

// Structural errors (programming errors) are fatal per spec.md §7: they are
// meant to panic, not to be inspected and recovered from. They are still
// exported as sentinel values, the way the teacher exports
// ErrPromiseConsumed/ErrPromiseTimeout (errors.go), so a panic recovered at
// a process boundary can still be matched with errors.Is.
var (
	// ErrResultUnset is raised by Result.Val on an Empty result.
	ErrResultUnset = errors.New("async: result is unset")

	// ErrBrokenPromise is the Result a Future observes when the last
	// Promise handle dropped without ever calling SetValue/SetError
	// (spec.md §3 invariant 5, §8 "Boundary behaviors").
	ErrBrokenPromise = errors.New("async: broken promise")

	// ErrFutureBroken is raised by operations on a moved-from or
	// default-constructed Future.
	ErrFutureBroken = errors.New("async: future is broken")

	// ErrFutureNotReady is raised by Future.Result when Future.HasResult
	// is false.
	ErrFutureNotReady = errors.New("async: future is not ready")

	// ErrAlreadyHasResult/ErrAlreadyHasContinuation/ErrStateTransfer name
	// violations of the shared-state invariants; reaching them is a
	// programming error. This package panics with ErrAlreadyHasContinuation
	// when a second continuation is installed; a double result or an
	// invalid phase transition panics inside internal/state with its own
	// message, so ErrAlreadyHasResult and ErrStateTransfer are not raised.
	ErrAlreadyHasResult       = errors.New("async: shared state already has a result")
	ErrAlreadyHasContinuation = errors.New("async: shared state already has a continuation")
	ErrStateTransfer          = errors.New("async: invalid shared-state transfer")

	// ErrScheduleFailed names an Executor refusing a submission. Nothing in
	// this module returns it: the shared-state layer sees a refusal as a
	// false return from Schedule/Checkin and runs the continuation
	// in-thread instead (spec.md §4.1).
	ErrScheduleFailed = errors.New("async: executor refused the submission")
)

// GetFutureCalledTwice is raised by Promise.GetFuture on its second call:
// GetFuture is a one-shot operation (spec.md §3 Promise).
type GetFutureCalledTwice struct{}

func (GetFutureCalledTwice) Error() string {
	return "async: Promise.GetFuture called more than once"
}

// PanicValue wraps a value recovered from a panic inside a producer
// callback, analogous to the teacher's UncaughtPanic (errors.go), but
// carried as a Result error instead of only surfacing through an
// uncaught-handler callback.
type PanicValue struct{ V any }

func (p PanicValue) Error() string {
	return fmt.Sprintf("async: panic recovered: %v", p.V)
}
