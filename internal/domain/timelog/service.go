package timelog

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/ganot/tempus-mcp/internal/domain/event"
	"github.com/google/uuid"
)

// Service handles time log operations.
type Service struct {
	repo   Repository
	events EventRecorder
	logger *slog.Logger
}

// EventRecorder appends entries to the activity event log.
type EventRecorder interface {
	Append(ctx context.Context, entry event.Entry) error
}

// NewService creates a new time log service.
func NewService(repo Repository, events EventRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, events: events, logger: logger}
}

// AddRequest describes a new time log entry.
type AddRequest struct {
	ProjectCode      string
	TimeSpentSeconds int64
	Timestamp        time.Time
	Username         string
	Notes            string
}

// Add creates a new entry. The timestamp defaults to now; derived fields
// (minutes, date, formatted time) are filled from the duration.
func (s *Service) Add(ctx context.Context, req AddRequest) (*Entry, error) {
	if strings.TrimSpace(req.ProjectCode) == "" || req.TimeSpentSeconds <= 0 {
		return nil, ErrInvalidInput
	}

	ts := req.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	username := req.Username
	if username == "" {
		username = "unknown"
	}

	entry := Entry{
		ID:               uuid.NewString(),
		ProjectCode:      req.ProjectCode,
		TimeSpentSeconds: req.TimeSpentSeconds,
		Minutes:          int64(math.Round(float64(req.TimeSpentSeconds) / 60)),
		Date:             ts.UTC().Format("2006-01-02"),
		Timestamp:        ts,
		FormattedTime:    FormatDuration(req.TimeSpentSeconds),
		Username:         username,
		Notes:            req.Notes,
	}

	if err := s.repo.Add(ctx, entry); err != nil {
		return nil, fmt.Errorf("adding time log: %w", err)
	}
	return &entry, nil
}

// List returns all entries in insertion order.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.repo.List(ctx)
}

// ListByProject returns entries for one project code.
func (s *Service) ListByProject(ctx context.Context, projectCode string) ([]Entry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing time logs: %w", err)
	}
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.ProjectCode == projectCode {
			out = append(out, entry)
		}
	}
	return out, nil
}

// EditRequest rewrites the mutable fields of an entry. ID and the original
// timestamp are preserved.
type EditRequest struct {
	ID               string
	ProjectCode      string
	TimeSpentSeconds int64
	Notes            string
	Username         string
}

// Edit updates projectCode, duration, and notes in place.
func (s *Service) Edit(ctx context.Context, req EditRequest) (*Entry, error) {
	if strings.TrimSpace(req.ProjectCode) == "" || req.TimeSpentSeconds <= 0 {
		return nil, ErrInvalidInput
	}

	entry, err := s.get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	entry.ProjectCode = req.ProjectCode
	entry.TimeSpentSeconds = req.TimeSpentSeconds
	entry.Minutes = int64(math.Round(float64(req.TimeSpentSeconds) / 60))
	entry.FormattedTime = FormatDuration(req.TimeSpentSeconds)
	entry.Notes = req.Notes

	if err := s.repo.Update(ctx, *entry); err != nil {
		return nil, fmt.Errorf("updating time log: %w", err)
	}

	s.recordEvent(ctx, event.Entry{
		Type:        event.TypeLogEdited,
		Username:    req.Username,
		ProjectCode: entry.ProjectCode,
		TimeSpent:   entry.TimeSpentSeconds,
		Message:     fmt.Sprintf("Time entry %s edited (%s for %s)", entry.ID, entry.FormattedTime, entry.ProjectCode),
	})
	return entry, nil
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, id, username string) error {
	entry, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting time log: %w", err)
	}

	s.recordEvent(ctx, event.Entry{
		Type:        event.TypeLogDeleted,
		Username:    username,
		ProjectCode: entry.ProjectCode,
		TimeSpent:   entry.TimeSpentSeconds,
		Message:     fmt.Sprintf("Time entry %s deleted (%s for %s)", entry.ID, entry.FormattedTime, entry.ProjectCode),
	})
	return nil
}

// UsageStats aggregates all logged hours for a project. Hours are rounded
// to two decimals.
func (s *Service) UsageStats(ctx context.Context, projectCode string) (UsageStats, error) {
	entries, err := s.ListByProject(ctx, projectCode)
	if err != nil {
		return UsageStats{}, err
	}

	var totalHours float64
	users := make(map[string]struct{})
	var last *time.Time
	for _, entry := range entries {
		totalHours += float64(entry.TimeSpentSeconds) / 3600
		users[entry.Username] = struct{}{}
		if last == nil || entry.Timestamp.After(*last) {
			ts := entry.Timestamp
			last = &ts
		}
	}

	return UsageStats{
		TotalHours:   round2(totalHours),
		TotalEntries: len(entries),
		UniqueUsers:  len(users),
		LastActivity: last,
	}, nil
}

// DailySeries returns per-day hour totals for the trailing days window,
// oldest first, with zero-activity days filled in. Day boundaries are UTC.
func (s *Service) DailySeries(ctx context.Context, projectCode string, days int, now time.Time) ([]float64, error) {
	entries, err := s.ListByProject(ctx, projectCode)
	if err != nil {
		return nil, err
	}

	cutoff := now.AddDate(0, 0, -days)
	daily := make(map[string]float64)
	for _, entry := range entries {
		if entry.Timestamp.Before(cutoff) {
			continue
		}
		key := entry.Timestamp.UTC().Format("2006-01-02")
		daily[key] += float64(entry.TimeSpentSeconds) / 3600
	}

	series := make([]float64, days)
	for i := 0; i < days; i++ {
		key := now.AddDate(0, 0, -(days - 1 - i)).UTC().Format("2006-01-02")
		series[i] = daily[key]
	}
	return series, nil
}

func (s *Service) get(ctx context.Context, id string) (*Entry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing time logs: %w", err)
	}
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}
	return nil, ErrEntryNotFound
}

func (s *Service) recordEvent(ctx context.Context, entry event.Entry) {
	if s.events == nil {
		return
	}
	if err := s.events.Append(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("failed to record event", "type", entry.Type, "error", err)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
