package timelog

import "context"

// Repository provides persistence operations for time log entries.
type Repository interface {
	Add(ctx context.Context, entry Entry) error
	List(ctx context.Context) ([]Entry, error)
	Update(ctx context.Context, entry Entry) error
	Delete(ctx context.Context, id string) error
}
