package task

import "errors"

var (
	// ErrConflictingLocal is raised when a Task already carrying a
	// task-local value is awaited from a context trying to hand it a
	// different one (spec.md §4.4 "Forbidden to set twice").
	ErrConflictingLocal = errors.New("task: conflicting task-local value")

	// ErrDispatchFailed is returned by Dispatch when the target executor
	// refuses the submission; the executor-pointer rewrite is rolled back
	// before this is returned (spec.md §9 Open Question).
	ErrDispatchFailed = errors.New("task: dispatch failed")
)
