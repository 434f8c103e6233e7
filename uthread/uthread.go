// Package uthread implements the stackful bridge of component I (spec.md
// §4.8): a cooperative user-mode thread with explicit switch-in/switch-out
// primitives in the source.
//
// Go exposes no equivalent of an allocated-stack context switch, so a
// Uthread here is a dedicated goroutine instead: "switching out" is
// emulated by blocking that goroutine on a channel, and "switching in" by
// having some other goroutine close or send on it. This preserves the
// contract the source cares about (a Uthread can suspend mid-function and
// resume later on an approved worker) without the byte-for-byte context
// switch. Go goroutine stacks already grow and shrink dynamically, so there
// is no fixed-size stack to allocate; the UTHREAD_STACK_SIZE_KB setting is
// read and cached per spec.md §9's "read once and cached" rule but is
// informational only, since Go gives programs no way to pin a goroutine's
// stack size.
package uthread

import (
	"os"
	"strconv"
	"sync"

	"github.com/wrenfold/asynctask/executor"
)

// DefaultStackSizeKB is the spec.md §4.8 default.
const DefaultStackSizeKB = 512

var (
	stackSizeOnce sync.Once
	stackSizeKB   int
)

// StackSizeKB returns the configured stack size, reading
// UTHREAD_STACK_SIZE_KB from the environment exactly once and caching the
// result (spec.md §9 "Global state").
func StackSizeKB() int {
	stackSizeOnce.Do(func() {
		stackSizeKB = DefaultStackSizeKB
		if v := os.Getenv("UTHREAD_STACK_SIZE_KB"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				stackSizeKB = n
			}
		}
	})
	return stackSizeKB
}

// Policy selects how a Uthread's goroutine is created relative to its
// caller (spec.md §4.8).
type Policy int

const (
	// Prompt runs the Uthread's function inline, on the calling goroutine.
	Prompt Policy = iota
	// Schedule submits a closure to the executor that constructs and runs
	// the Uthread.
	Schedule
	// Current constructs and detaches the Uthread on a new goroutine
	// spawned directly from the caller, bypassing the executor.
	Current
)

// Uthread is the handle a running Uthread's function body receives.
type Uthread struct {
	exec executor.Executor
}

// Executor returns the executor this Uthread is registered with, if any.
func (u *Uthread) Executor() executor.Executor {
	if u == nil {
		return nil
	}
	return u.exec
}

// Go launches fn as a Uthread under policy, registered with exec.
func Go(exec executor.Executor, policy Policy, fn func(*Uthread)) {
	u := &Uthread{exec: exec}
	switch policy {
	case Prompt:
		fn(u)
	case Schedule:
		if exec == nil || !exec.Schedule(func() { fn(u) }) {
			fn(u)
		}
	default: // Current
		go fn(u)
	}
}
