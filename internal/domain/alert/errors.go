package alert

import "errors"

var (
	// ErrAlertNotFound is returned when the referenced alert doesn't exist.
	ErrAlertNotFound = errors.New("alert not found")
)
