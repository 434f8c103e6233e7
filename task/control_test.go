package task_test

import (
	"testing"
	"time"

	"github.com/wrenfold/asynctask/executor"
	"github.com/wrenfold/asynctask/task"
)

// refusingExecutor refuses every submission, for exercising Dispatch's
// rollback path (task/control.go's Dispatch, spec.md §9 Open Question).
type refusingExecutor struct{}

func (refusingExecutor) Schedule(func()) bool                                 { return false }
func (refusingExecutor) ScheduleWithHint(func(), uint64) bool                 { return false }
func (refusingExecutor) ScheduleAfterDelay(func(), time.Duration, uint64) bool { return false }
func (refusingExecutor) InCurrentThread() bool                                { return false }
func (refusingExecutor) Checkout() executor.Context                          { return nil }
func (refusingExecutor) Checkin(func(), executor.Context, executor.CheckinOptions) bool {
	return false
}
func (refusingExecutor) IOExecutor() executor.IOExecutor { return nil }

// TestDispatchChangesCurrentExecutor exercises spec.md §8 scenario 6: a
// Task running on E1 dispatches itself onto E2, then observes
// CurrentExecutor reflecting the switch.
func TestDispatchChangesCurrentExecutor(t *testing.T) {
	e1 := executor.NewPool(1)
	defer e1.Close()
	e2 := executor.NewPool(1)
	defer e2.Close()

	root := task.NewRootRuntime(e1)
	tk := task.New(func(rt *task.Runtime) (executor.Executor, error) {
		if err := task.Dispatch(rt, e2); err != nil {
			return nil, err
		}
		return task.CurrentExecutor(rt), nil
	})

	got, err := task.Await(root, tk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != executor.Executor(e2) {
		t.Fatalf("CurrentExecutor after Dispatch = %v, want e2", got)
	}
}

// TestDispatchRollsBackOnRefusal exercises control.go:68-74: when the
// target executor refuses the confirming schedule, the executor-pointer
// rewrite must be rolled back and ErrDispatchFailed returned.
func TestDispatchRollsBackOnRefusal(t *testing.T) {
	e1 := executor.NewPool(1)
	defer e1.Close()
	refusing := refusingExecutor{}

	root := task.NewRootRuntime(e1)
	var gotExec executor.Executor
	tk := task.New(func(rt *task.Runtime) (int, error) {
		err := task.Dispatch(rt, refusing)
		gotExec = task.CurrentExecutor(rt)
		return 0, err
	})

	if _, err := task.Await(root, tk); err != task.ErrDispatchFailed {
		t.Fatalf("err = %v, want ErrDispatchFailed", err)
	}
	if gotExec != executor.Executor(e1) {
		t.Fatalf("CurrentExecutor after a refused Dispatch = %v, want e1 (rolled back)", gotExec)
	}
}
