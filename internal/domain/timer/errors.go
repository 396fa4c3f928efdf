package timer

import "errors"

var (
	// ErrNoProject is returned when starting or saving without a selected
	// project.
	ErrNoProject = errors.New("no project selected")

	// ErrNotRunning is returned for transitions valid only while running.
	ErrNotRunning = errors.New("timer is not running")

	// ErrStaleEntry signals that the accrued time spans the stale threshold
	// and the save needs explicit confirmation before committing.
	ErrStaleEntry = errors.New("time entry exceeds stale threshold, confirmation required")
)
