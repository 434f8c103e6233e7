// Package executor defines the Executor contract (component B, spec.md
// §4.1) — the one hard runtime-polymorphic boundary of the module — and
// ships one reference implementation, Pool, used by this module's own
// tests and as a sane default for callers that don't bring their own.
//
// The contract shape (submit a closure, optionally with a priority hint,
// optionally after a delay; checkout/checkin a worker-affinity context) is
// grounded on b97tsk/async's Executor (executor.go) and priority run queue
// (priorityqueue.go) — the only repo in the retrieval pack that models an
// executor as an explicit capability object rather than a goroutine spawned
// ad hoc, matching spec.md §9's redesign note to model the executor as "an
// explicit capability object (a record of function pointers + a context),
// not a class hierarchy".
package executor

import "time"

// Priority hints, packed into the low 4 bits of the schedule hint per
// spec.md §4.1.
const (
	Highest uint64 = 0
	Default uint64 = 7
	Yield   uint64 = 8
	Lowest  uint64 = 15

	priorityMask uint64 = 0xF
)

// Priority extracts the priority hint from a schedule hint value.
func Priority(hint uint64) uint64 { return hint & priorityMask }

// Context is an opaque identifier for a worker thread, returned by
// Checkout and consumed by Checkin.
type Context any

// CheckinOptions configures Checkin.
type CheckinOptions struct {
	// Prompt permits executing in-thread when the caller is already on the
	// preferred worker.
	Prompt bool
}

// IOExecutor accepts asynchronous I/O submissions. It is out of scope for
// this module's core (spec.md §1): the interface is fixed so a core
// combinator can assume one exists, but no implementation ships here.
type IOExecutor interface {
	SubmitRead(fd uintptr, buf []byte, cb func(n int, err error))
	SubmitWrite(fd uintptr, buf []byte, cb func(n int, err error))
	SubmitFsync(fd uintptr, cb func(err error))
}

// Executor is the abstract scheduling surface every executor must provide.
//
// Schedule submissions that return false MUST NOT have run fn and MUST NOT
// run it later: the caller is expected to surface the refusal or fall back
// to running fn itself (spec.md §4.1 "Failure semantics").
type Executor interface {
	// Schedule submits fn to run exactly once, returning false if refused.
	Schedule(fn func()) bool

	// ScheduleWithHint is Schedule plus a priority hint (spec.md §4.1). An
	// executor that would otherwise run fn eagerly in-thread MUST NOT do
	// so when Priority(hint) >= Yield.
	ScheduleWithHint(fn func(), hint uint64) bool

	// ScheduleAfterDelay runs fn no earlier than d from now.
	ScheduleAfterDelay(fn func(), d time.Duration, hint uint64) bool

	// InCurrentThread reports whether the calling goroutine is one of this
	// executor's workers.
	InCurrentThread() bool

	// Checkout returns an opaque Context identifying the calling worker.
	Checkout() Context

	// Checkin schedules fn preferring the worker identified by ctx. If
	// opts.Prompt is true and the caller is already on that worker, fn may
	// run in-thread.
	Checkin(fn func(), ctx Context, opts CheckinOptions) bool

	// IOExecutor returns the sibling I/O executor, or nil if unsupported.
	IOExecutor() IOExecutor
}
