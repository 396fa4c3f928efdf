package timelog_test

import (
	"context"
	"testing"
	"time"

	"github.com/ganot/tempus-mcp/internal/domain/event"
	"github.com/ganot/tempus-mcp/internal/domain/timelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	entries []timelog.Entry
}

func (m *memRepo) Add(_ context.Context, entry timelog.Entry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memRepo) List(context.Context) ([]timelog.Entry, error) {
	out := make([]timelog.Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *memRepo) Update(_ context.Context, entry timelog.Entry) error {
	for i := range m.entries {
		if m.entries[i].ID == entry.ID {
			m.entries[i] = entry
			return nil
		}
	}
	return timelog.ErrEntryNotFound
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return timelog.ErrEntryNotFound
}

type stubEvents struct {
	entries []event.Entry
}

func (s *stubEvents) Append(_ context.Context, entry event.Entry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00", timelog.FormatDuration(0))
	assert.Equal(t, "00:01:05", timelog.FormatDuration(65))
	assert.Equal(t, "02:30:00", timelog.FormatDuration(9000))
	assert.Equal(t, "27:46:40", timelog.FormatDuration(100000))
}

func TestAddFillsDerivedFields(t *testing.T) {
	svc := timelog.NewService(&memRepo{}, nil, nil)
	ts := time.Date(2026, 8, 27, 23, 30, 0, 0, time.UTC)

	entry, err := svc.Add(context.Background(), timelog.AddRequest{
		ProjectCode:      "DEV-001",
		TimeSpentSeconds: 3725,
		Timestamp:        ts,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, int64(62), entry.Minutes) // round(3725/60)
	assert.Equal(t, "2026-08-27", entry.Date)
	assert.Equal(t, "01:02:05", entry.FormattedTime)
	assert.Equal(t, "unknown", entry.Username)
}

func TestAddRejectsInvalid(t *testing.T) {
	svc := timelog.NewService(&memRepo{}, nil, nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, timelog.AddRequest{TimeSpentSeconds: 60})
	assert.ErrorIs(t, err, timelog.ErrInvalidInput)

	_, err = svc.Add(ctx, timelog.AddRequest{ProjectCode: "DEV-001", TimeSpentSeconds: 0})
	assert.ErrorIs(t, err, timelog.ErrInvalidInput)
}

func TestEditPreservesIdentityAndTimestamp(t *testing.T) {
	repo := &memRepo{}
	events := &stubEvents{}
	svc := timelog.NewService(repo, events, nil)
	ctx := context.Background()

	ts := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	entry, err := svc.Add(ctx, timelog.AddRequest{ProjectCode: "DEV-001", TimeSpentSeconds: 600, Timestamp: ts, Username: "alice"})
	require.NoError(t, err)

	edited, err := svc.Edit(ctx, timelog.EditRequest{
		ID:               entry.ID,
		ProjectCode:      "DEV-002",
		TimeSpentSeconds: 1200,
		Notes:            "moved",
		Username:         "alice",
	})
	require.NoError(t, err)

	assert.Equal(t, entry.ID, edited.ID)
	assert.Equal(t, ts, edited.Timestamp)
	assert.Equal(t, "DEV-002", edited.ProjectCode)
	assert.Equal(t, int64(20), edited.Minutes)
	assert.Equal(t, "00:20:00", edited.FormattedTime)

	require.Len(t, events.entries, 1)
	assert.Equal(t, event.TypeLogEdited, events.entries[0].Type)

	_, err = svc.Edit(ctx, timelog.EditRequest{ID: "missing", ProjectCode: "DEV-001", TimeSpentSeconds: 60})
	assert.ErrorIs(t, err, timelog.ErrEntryNotFound)
}

func TestDelete(t *testing.T) {
	repo := &memRepo{}
	events := &stubEvents{}
	svc := timelog.NewService(repo, events, nil)
	ctx := context.Background()

	entry, err := svc.Add(ctx, timelog.AddRequest{ProjectCode: "DEV-001", TimeSpentSeconds: 300})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, entry.ID, "alice"))
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.Len(t, events.entries, 1)
	assert.Equal(t, event.TypeLogDeleted, events.entries[0].Type)

	assert.ErrorIs(t, svc.Delete(ctx, entry.ID, "alice"), timelog.ErrEntryNotFound)
}

func TestUsageStats(t *testing.T) {
	svc := timelog.NewService(&memRepo{}, nil, nil)
	ctx := context.Background()

	t1 := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	_, err := svc.Add(ctx, timelog.AddRequest{ProjectCode: "DEV-001", TimeSpentSeconds: 3600, Timestamp: t1, Username: "alice"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, timelog.AddRequest{ProjectCode: "DEV-001", TimeSpentSeconds: 1800, Timestamp: t2, Username: "bob"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, timelog.AddRequest{ProjectCode: "DEV-002", TimeSpentSeconds: 7200, Timestamp: t2, Username: "alice"})
	require.NoError(t, err)

	stats, err := svc.UsageStats(ctx, "DEV-001")
	require.NoError(t, err)
	assert.Equal(t, 1.5, stats.TotalHours)
	assert.Equal(t, 2, stats.TotalEntries)
	assert.Equal(t, 2, stats.UniqueUsers)
	require.NotNil(t, stats.LastActivity)
	assert.Equal(t, t2, *stats.LastActivity)
}

func TestDailySeries(t *testing.T) {
	svc := timelog.NewService(&memRepo{}, nil, nil)
	ctx := context.Background()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	// Two entries on the same day sum; days without activity stay zero.
	_, err := svc.Add(ctx, timelog.AddRequest{ProjectCode: "DEV-001", TimeSpentSeconds: 3600, Timestamp: now.AddDate(0, 0, -1)})
	require.NoError(t, err)
	_, err = svc.Add(ctx, timelog.AddRequest{ProjectCode: "DEV-001", TimeSpentSeconds: 1800, Timestamp: now.AddDate(0, 0, -1)})
	require.NoError(t, err)
	_, err = svc.Add(ctx, timelog.AddRequest{ProjectCode: "DEV-001", TimeSpentSeconds: 7200, Timestamp: now})
	require.NoError(t, err)
	// Outside the window, must be excluded.
	_, err = svc.Add(ctx, timelog.AddRequest{ProjectCode: "DEV-001", TimeSpentSeconds: 3600, Timestamp: now.AddDate(0, 0, -10)})
	require.NoError(t, err)

	series, err := svc.DailySeries(ctx, "DEV-001", 7, now)
	require.NoError(t, err)
	require.Len(t, series, 7)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 1.5, 2}, series)
}
