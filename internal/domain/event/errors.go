package event

import "errors"

var (
	// ErrInvalidInput is returned when an entry is missing its type.
	ErrInvalidInput = errors.New("invalid input")
)
