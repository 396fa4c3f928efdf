package event

import "context"

// Repository provides persistence operations for event log entries.
type Repository interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context) ([]Entry, error)
	Clear(ctx context.Context) error
}
