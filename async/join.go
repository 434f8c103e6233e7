package async

import "go.uber.org/multierr"

// JoinErrors combines the errors held by every non-Value Result in results
// into one error via go.uber.org/multierr, skipping Value and Empty
// results. It returns nil if no Result held an error — the aggregate
// counterpart to CollectAll's per-slot error reporting (spec.md §4.6
// "individual errors appear in their Result slots"), for callers that want
// a single combined failure instead of inspecting every slot themselves.
func JoinErrors[T any](results []IdxRes[T]) error {
	var err error
	for _, r := range results {
		if e := r.Err(); e != nil {
			err = multierr.Append(err, e)
		}
	}
	return err
}
