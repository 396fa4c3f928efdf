package project

import "errors"

var (
	// ErrInvalidInput is returned when a required field is missing.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCode is returned when a project code doesn't match the
	// LETTERS-NNN format.
	ErrInvalidCode = errors.New("invalid project code format")

	// ErrDuplicateCode is returned when a project code already exists.
	ErrDuplicateCode = errors.New("project code already exists")

	// ErrProjectNotFound is returned when the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
)
