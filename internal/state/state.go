// Package state implements the shared rendezvous state between one Promise
// producer and one Future consumer: the "hard part" of the module, per
// component C of the design.
//
// It mirrors the bit-packed atomic status used by the teacher package
// (asmsh/promise's internal/status.PromStatus), generalized from that
// package's {chain-mode, fate, state, flags} fields to the phase/refcount
// model this module's spec requires, and moved from a spin-then-swap update
// loop to per-field CAS so the fast path (no continuation installed before
// the result arrives, or vice versa) never blocks.
package state

import (
	"sync/atomic"

	"github.com/wrenfold/asynctask/executor"
)

// Phase is the monotonic lifecycle of a Shared value.
//
// Valid transitions are Start->OnlyResult->Done or Start->OnlyContinuation->Done.
// Done is terminal.
type Phase uint32

const (
	Start Phase = iota
	OnlyResult
	OnlyContinuation
	Done
)

func (p Phase) String() string {
	switch p {
	case Start:
		return "start"
	case OnlyResult:
		return "only-result"
	case OnlyContinuation:
		return "only-continuation"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Kind distinguishes the three possibilities a result container can hold.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindValue
	KindError
)

// Continuation is invoked exactly once, when the phase reaches Done.
type Continuation[T any] func(kind Kind, val T, err error)

// Shared is the single-slot rendezvous state shared by a Promise, its
// Future, and (once installed) one continuation.
type Shared[T any] struct {
	phase atomic.Uint32

	// result fields: written at most once, before the phase transitions to
	// OnlyResult or Done (invariant 1); readable without synchronization
	// once phase has reached one of those values, because the phase CAS
	// release happens-before any acquire-read of phase >= OnlyResult.
	kind Kind
	val  T
	err  error

	cont    Continuation[T]
	exec    executor.Executor
	execCtx executor.Context
	hasCtx  bool
	force   atomic.Bool

	strong       atomic.Int64
	continuation atomic.Int64
	producer     atomic.Int64

	brokenErr error
}

// New creates a Shared value with strong=1 (the Future) and producer=1 (the
// Promise), per the teacher's convention of allocating refcounts at
// construction rather than lazily.
func New[T any](brokenErr error) *Shared[T] {
	s := &Shared[T]{brokenErr: brokenErr}
	s.strong.Store(1)
	s.producer.Store(1)
	return s
}

func (s *Shared[T]) Phase() Phase { return Phase(s.phase.Load()) }

// RetainStrong/ReleaseStrong manage the "strong" refcount (producer +
// consumer + continuation-guard holders). ReleaseStrong returns true when
// this was the last reference, at which point the caller must stop using s.
func (s *Shared[T]) RetainStrong() { s.strong.Add(1) }
func (s *Shared[T]) ReleaseStrong() bool {
	return s.strong.Add(-1) == 0
}

// RetainProducer/ReleaseProducer track live Promise handles. When the last
// one drops without a result having been set, the state is broken per
// invariant 5 — whether or not a consumer has already installed a
// continuation (Start, with no consumer yet; or OnlyContinuation, with a
// consumer already blocked in SetContinuation waiting for a result that
// will now never arrive).
func (s *Shared[T]) RetainProducer() { s.producer.Add(1) }
func (s *Shared[T]) ReleaseProducer() {
	if s.producer.Add(-1) != 0 {
		return
	}
	if p := Phase(s.phase.Load()); p == Start || p == OnlyContinuation {
		s.SetResult(KindError, *new(T), s.brokenErr)
	}
}

// SetExecutor records the producer's chosen executor, the context checked
// out at Promise.Checkout time (if any), and whether force-schedule was
// requested. Must be called before SetResult/SetContinuation race.
func (s *Shared[T]) SetExecutor(exec executor.Executor, ctx executor.Context, hasCtx bool) {
	s.exec = exec
	s.execCtx = ctx
	s.hasCtx = hasCtx
}

func (s *Shared[T]) ForceSchedule(v bool) { s.force.Store(v) }

// Executor returns the executor installed by SetExecutor, or nil.
func (s *Shared[T]) Executor() executor.Executor { return s.exec }

// SetResult implements spec §4.3's set-result protocol.
func (s *Shared[T]) SetResult(kind Kind, val T, err error) {
	if p := Phase(s.phase.Load()); p == OnlyResult || p == Done {
		panic("state: set-result called on a state that already has a result")
	}
	s.kind, s.val, s.err = kind, val, err

	if s.phase.CompareAndSwap(uint32(Start), uint32(OnlyResult)) {
		return
	}

	// phase must be OnlyContinuation; move to Done and dispatch.
	if !s.phase.CompareAndSwap(uint32(OnlyContinuation), uint32(Done)) {
		panic("state: internal: set-result raced with an unexpected phase")
	}
	s.dispatch(false)
}

// SetContinuation implements spec §4.3's set-continuation protocol. Returns
// false if a continuation was already installed (invariant 2 violation).
func (s *Shared[T]) SetContinuation(cb Continuation[T]) bool {
	if s.cont != nil {
		return false
	}
	s.cont = cb

	if s.phase.CompareAndSwap(uint32(Start), uint32(OnlyContinuation)) {
		return true
	}

	if !s.phase.CompareAndSwap(uint32(OnlyResult), uint32(Done)) {
		panic("state: internal: set-continuation raced with an unexpected phase")
	}
	s.dispatch(true)
	return true
}

// dispatch runs s.cont according to spec §4.3's dispatch rules.
func (s *Shared[T]) dispatch(triggeredByContinuationInstall bool) {
	cb := s.cont
	kind, val, err := s.kind, s.val, s.err

	runInThread := !s.force.Load() &&
		(s.exec == nil || triggeredByContinuationInstall || s.exec.InCurrentThread())

	if runInThread {
		s.RetainStrong() // guard ref, survives any nested SetContinuation
		cb(kind, val, err)
		s.ReleaseStrong()
		return
	}

	s.RetainStrong()
	closure := func() {
		cb(kind, val, err)
		s.ReleaseStrong()
	}

	var ok bool
	if s.hasCtx {
		ok = s.exec.Checkin(closure, s.execCtx, executor.CheckinOptions{Prompt: !s.force.Load()})
	} else if s.exec != nil {
		ok = s.exec.Schedule(closure)
	}
	if !ok {
		closure()
	}
}

// Peek returns the result without blocking; ready reports whether the phase
// has reached Done (or OnlyResult, i.e. a result exists even if no
// continuation has consumed it yet).
func (s *Shared[T]) Peek() (kind Kind, val T, err error, ready bool) {
	p := Phase(s.phase.Load())
	if p == OnlyResult || p == Done {
		return s.kind, s.val, s.err, true
	}
	return KindEmpty, val, nil, false
}
