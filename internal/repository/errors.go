package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrCorruptData is returned when a stored collection fails to decode
	ErrCorruptData = errors.New("corrupt stored data")
)
