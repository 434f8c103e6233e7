package executor_test

import (
	"sync"
	"testing"
	"time"

	"github.com/wrenfold/asynctask/executor"
)

func TestPoolSchedule(t *testing.T) {
	p := executor.NewPool(2)
	defer p.Close()

	done := make(chan int, 1)
	if !p.Schedule(func() { done <- 1 }) {
		t.Fatal("Schedule must succeed on an open Pool")
	}
	if <-done != 1 {
		t.Fatal("scheduled job did not run")
	}
}

func TestPoolPriorityOrder(t *testing.T) {
	p := executor.NewPool(1)
	defer p.Close()

	var mu sync.Mutex
	var order []string
	block := make(chan struct{})

	// Occupy the single worker so both submissions queue before either runs.
	p.Schedule(func() { <-block })

	var wg sync.WaitGroup
	wg.Add(2)
	p.ScheduleWithHint(func() {
		mu.Lock()
		order = append(order, "low")
		mu.Unlock()
		wg.Done()
	}, executor.Lowest)
	p.ScheduleWithHint(func() {
		mu.Lock()
		order = append(order, "high")
		mu.Unlock()
		wg.Done()
	}, executor.Highest)

	close(block)
	wg.Wait()

	if len(order) != 2 || order[0] != "high" {
		t.Fatalf("expected high-priority job first, got %v", order)
	}
}

func TestPoolScheduleAfterClose(t *testing.T) {
	p := executor.NewPool(1)
	p.Close()

	if p.Schedule(func() {}) {
		t.Fatal("Schedule must refuse submissions after Close")
	}
}

func TestPoolInCurrentThread(t *testing.T) {
	p := executor.NewPool(1)
	defer p.Close()

	result := make(chan bool, 1)
	p.Schedule(func() { result <- p.InCurrentThread() })
	if !<-result {
		t.Fatal("InCurrentThread must report true from inside a worker")
	}
	if p.InCurrentThread() {
		t.Fatal("InCurrentThread must report false from the test goroutine")
	}
}

func TestPoolScheduleAfterDelay(t *testing.T) {
	p := executor.NewPool(1)
	defer p.Close()

	start := time.Now()
	done := make(chan struct{})
	p.ScheduleAfterDelay(func() { close(done) }, 20*time.Millisecond, executor.Default)
	<-done
	if time.Since(start) < 15*time.Millisecond {
		t.Fatal("delayed job ran too early")
	}
}
