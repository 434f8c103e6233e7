package syncx

import (
	"runtime"
	"sync/atomic"
)

type spinFlag struct {
	v atomic.Bool
}

func (f *spinFlag) tryAcquire() bool { return f.v.CompareAndSwap(false, true) }
func (f *spinFlag) release()         { f.v.Store(false) }

func goYield() { runtime.Gosched() }
