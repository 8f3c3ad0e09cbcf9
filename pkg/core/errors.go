package core

import "errors"

// Common errors.
var (
	// ErrUnavailable is returned by write operations when the workspace
	// storage is not configured or not writable (e.g. cloud mode).
	ErrUnavailable = errors.New("learner storage is unavailable")

	// ErrGoalNotFound is returned when a goal id does not exist in the ledger.
	ErrGoalNotFound = errors.New("goal not found in ledger")

	// ErrNoActiveGoal is returned by operations that require an active goal
	// when the ledger has none.
	ErrNoActiveGoal = errors.New("no active goal")
)
