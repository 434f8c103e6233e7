package executor

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// Go has no native goroutine-local storage, which Pool needs for
// InCurrentThread/Checkout/Checkin to recognize "the calling worker" without
// threading a context through every call site. goroutineID parses the id out
// of runtime.Stack's header line, the same safe (if unusual) trick used by a
// handful of tracing libraries that need goroutine identity without unsafe.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseInt(string(b), 10, 64)
	return id
}

type goroutineLocal struct {
	mu sync.Mutex
	m  map[int64]*workerID
}

func (t *goroutineLocal) set(w *workerID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.m == nil {
		t.m = make(map[int64]*workerID)
	}
	t.m[goroutineID()] = w
}

func (t *goroutineLocal) get() (*workerID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, ok := t.m[goroutineID()]
	return w, ok
}

func (t *goroutineLocal) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.m, goroutineID())
}

var workerTLS goroutineLocal
