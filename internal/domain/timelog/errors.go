package timelog

import "errors"

var (
	// ErrInvalidInput is returned when an entry is missing a project code
	// or has a non-positive duration.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEntryNotFound is returned when the referenced entry doesn't exist.
	ErrEntryNotFound = errors.New("time log entry not found")
)
