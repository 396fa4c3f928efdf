package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service handles event log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new event log service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListOptions provides filtering options for listing events.
type ListOptions struct {
	Type        Type
	ProjectCode string
	Username    string
	Limit       int
}

// Append records an event, stamping the current time if missing.
func (s *Service) Append(ctx context.Context, entry Entry) error {
	if entry.Type == "" {
		return ErrInvalidInput
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("appending event: %w", err)
	}
	return nil
}

// List returns event entries matching opts, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	filtered := make([]Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if opts.Type != "" && entry.Type != opts.Type {
			continue
		}
		if opts.ProjectCode != "" && entry.ProjectCode != opts.ProjectCode {
			continue
		}
		if opts.Username != "" && entry.Username != opts.Username {
			continue
		}
		filtered = append(filtered, entry)
		if opts.Limit > 0 && len(filtered) >= opts.Limit {
			break
		}
	}
	return filtered, nil
}

// Clear empties the event log. Only explicit clear actions prune history.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clearing events: %w", err)
	}
	return nil
}
