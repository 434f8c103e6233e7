package state_test

import (
	"errors"
	"testing"
	"time"

	"github.com/wrenfold/asynctask/internal/state"
)

func TestSetResultThenContinuation(t *testing.T) {
	s := state.New[int](errors.New("broken"))
	s.SetResult(state.KindValue, 7, nil)

	var got int
	ok := s.SetContinuation(func(kind state.Kind, val int, err error) {
		if kind != state.KindValue || err != nil {
			t.Fatalf("unexpected dispatch: kind=%v val=%v err=%v", kind, val, err)
		}
		got = val
	})
	if !ok {
		t.Fatal("first SetContinuation must succeed")
	}
	if got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
	if s.Phase() != state.Done {
		t.Fatalf("phase = %v, want Done", s.Phase())
	}
}

func TestSetContinuationThenResult(t *testing.T) {
	s := state.New[int](errors.New("broken"))

	done := make(chan int, 1)
	s.SetContinuation(func(kind state.Kind, val int, err error) { done <- val })
	s.SetResult(state.KindValue, 9, nil)

	if got := <-done; got != 9 {
		t.Fatalf("got %d, want 9", got)
	}
}

func TestSecondContinuationRejected(t *testing.T) {
	s := state.New[int](errors.New("broken"))
	s.SetContinuation(func(state.Kind, int, error) {})
	if s.SetContinuation(func(state.Kind, int, error) {}) {
		t.Fatal("a second SetContinuation must be rejected")
	}
}

func TestBrokenOnLastProducerRelease(t *testing.T) {
	brokenErr := errors.New("broken promise")
	s := state.New[int](brokenErr)
	s.ReleaseProducer()

	kind, _, err, ready := s.Peek()
	if !ready || kind != state.KindError || err != brokenErr {
		t.Fatalf("expected broken-promise result, got kind=%v err=%v ready=%v", kind, err, ready)
	}
}

func TestBrokenOnProducerReleaseAfterContinuationInstalled(t *testing.T) {
	brokenErr := errors.New("broken promise")
	s := state.New[int](brokenErr)
	s.RetainProducer() // simulate a second live producer handle, as New() already holds one

	done := make(chan error, 1)
	s.SetContinuation(func(kind state.Kind, val int, err error) { done <- err })
	if s.Phase() != state.OnlyContinuation {
		t.Fatalf("phase = %v, want OnlyContinuation", s.Phase())
	}

	// Drop both producer handles without ever calling SetResult: the phase
	// is OnlyContinuation, not Start, but the consumer already blocked on
	// this continuation must still be unblocked with a broken-promise error
	// rather than hang forever.
	s.ReleaseProducer()
	s.ReleaseProducer()

	select {
	case err := <-done:
		if err != brokenErr {
			t.Fatalf("got err=%v, want %v", err, brokenErr)
		}
	case <-time.After(time.Second):
		t.Fatal("continuation was never dispatched; ReleaseProducer left a blocked consumer hanging")
	}
}

func TestPeekBeforeResult(t *testing.T) {
	s := state.New[int](errors.New("broken"))
	if _, _, _, ready := s.Peek(); ready {
		t.Fatal("Peek must report not-ready before any result is set")
	}
}
