package task

import "sync/atomic"

// countEvent is a one-shot barrier of initial count N+1 (glossary
// "Count-event"): N decrements for N producers, plus one for the awaiter
// attaching itself. Whichever decrement brings the counter to zero runs
// the stored continuation, synchronously, from inside that call.
type countEvent struct {
	remaining atomic.Int64
	cont      atomic.Pointer[func()]
}

func newCountEvent(n int) *countEvent {
	ce := &countEvent{}
	ce.remaining.Store(int64(n) + 1)
	return ce
}

func (ce *countEvent) decrement() {
	if ce.remaining.Add(-1) == 0 {
		if p := ce.cont.Load(); p != nil {
			(*p)()
		}
	}
}

// attach installs cb as the continuation and performs the awaiter's own
// decrement. If every producer had already decremented, cb runs
// synchronously from within attach.
func (ce *countEvent) attach(cb func()) {
	ce.cont.Store(&cb)
	ce.decrement()
}
