// Package async implements the Future/Promise pair (component C/D of the
// design) and the Future-level combinators built directly on top of them
// (component G's Future-of-vector variant).
//
// It is grounded on github.com/asmsh/promise's genericPromise/Promise split
// (promise.go, interface.go), generalized from that package's four-state
// Promise (Fulfilled/Rejected/Panicked/unknown) to the three-way Result
// container spec.md §3 requires (Empty/Value/Error), and from its
// syncChan-closed-on-resolve signaling to the phase/refcount state machine
// in internal/state.
package async

import "fmt"

// Result is exactly one of {Empty, Value(T), Error(err)}, per spec.md §3.
type Result[T any] interface {
	// Empty reports whether this Result carries neither a value nor an error.
	Empty() bool

	// Val returns the held value. It panics with ErrResultUnset if this
	// Result is Empty, and with the held error if this Result is an Error.
	Val() T

	// Err returns the held error, or nil if this Result is Empty or holds
	// a value.
	Err() error
}

type emptyResult[T any] struct{}

func (emptyResult[T]) Empty() bool { return true }
func (emptyResult[T]) Val() T      { panic(ErrResultUnset) }
func (emptyResult[T]) Err() error  { return nil }
func (r emptyResult[T]) String() string { return "empty" }

type valueResult[T any] struct{ v T }

func (valueResult[T]) Empty() bool    { return false }
func (r valueResult[T]) Val() T       { return r.v }
func (valueResult[T]) Err() error     { return nil }
func (r valueResult[T]) String() string { return fmt.Sprintf("value(%v)", r.v) }

type errorResult[T any] struct{ err error }

func (errorResult[T]) Empty() bool { return false }
func (r errorResult[T]) Val() T    { panic(r.err) }
func (r errorResult[T]) Err() error { return r.err }
func (r errorResult[T]) String() string { return fmt.Sprintf("error(%s)", r.err) }

// Empty returns the empty Result[T].
func Empty[T any]() Result[T] { return emptyResult[T]{} }

// Value wraps v as a fulfilled Result[T].
func Value[T any](v T) Result[T] { return valueResult[T]{v: v} }

// Err wraps err as a failed Result[T]. Err(nil) panics: a nil error is not
// a valid Error-kind result, use Empty or Value instead.
func Err[T any](err error) Result[T] {
	if err == nil {
		panic("async: Err called with a nil error")
	}
	return errorResult[T]{err: err}
}
