package task

// Local is a task-local value carried implicitly down a chain of awaits
// (spec.md §4.4, glossary "Task-local"). The source looks these up by
// pointer-identity of the value's static type; spec.md §9 redesigns that as
// lookup-by-tag, so Local carries an explicit, comparable Tag instead.
type Local struct {
	Tag   any
	Value any
}

// inheritLocal implements the "inherit task-local downward" rule: a task
// started with no local of its own inherits its parent's; a task that
// already has one of its own fails fast rather than silently shadowing or
// being shadowed by the parent's. This is a blanket "forbidden to set
// twice" (spec.md §4.4), not a tag-equality check: both sides already
// having a local is itself the violation, regardless of whether the tags
// happen to match.
func inheritLocal(parent *Runtime, own *Local) (*Local, error) {
	var parentLocal *Local
	if parent != nil {
		parentLocal = parent.local
	}
	if parentLocal == nil {
		return own, nil
	}
	if own != nil {
		return nil, ErrConflictingLocal
	}
	return parentLocal, nil
}
