package task

import (
	"go.uber.org/multierr"

	"github.com/wrenfold/asynctask/async"
)

// JoinErrors combines the errors held by every Error Result in results into
// one error via go.uber.org/multierr, for callers of CollectAll/
// CollectAllWindowed that want a single combined failure instead of
// inspecting every slot (spec.md §4.6 "the aggregate never fails, errors
// surface per-slot" — this is the opt-in aggregate view on top of that).
func JoinErrors[T any](results []async.Result[T]) error {
	var err error
	for _, r := range results {
		if e := r.Err(); e != nil {
			err = multierr.Append(err, e)
		}
	}
	return err
}
