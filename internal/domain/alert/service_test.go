package alert_test

import (
	"context"
	"testing"

	"github.com/ganot/tempus-mcp/internal/domain/alert"
	"github.com/ganot/tempus-mcp/internal/domain/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memLedger struct {
	alerts []alert.Alert
}

func (m *memLedger) List(context.Context) ([]alert.Alert, error) {
	out := make([]alert.Alert, len(m.alerts))
	copy(out, m.alerts)
	return out, nil
}

func (m *memLedger) Save(_ context.Context, alerts []alert.Alert) error {
	m.alerts = alerts
	return nil
}

type stubDirectory struct {
	projects []project.Project
	statuses map[string]project.BudgetStatus
}

func (s *stubDirectory) List(context.Context) ([]project.Project, error) {
	return s.projects, nil
}

func (s *stubDirectory) BudgetStatusFor(_ context.Context, code string) (project.BudgetStatus, error) {
	return s.statuses[code], nil
}

func overBudgetDirectory() *stubDirectory {
	return &stubDirectory{
		projects: []project.Project{
			{Code: "DEV-001", Name: "Frontend", Budget: 10, Status: project.StatusActive},
			{Code: "DEV-002", Name: "Backend", Budget: 10, Status: project.StatusActive},
			{Code: "MEET-001", Name: "Meetings", Budget: 0, Status: project.StatusActive},
		},
		statuses: map[string]project.BudgetStatus{
			"DEV-001": {Status: project.BudgetOver, Percentage: 120, Used: 12, Remaining: -2, Budget: 10},
			"DEV-002": {Status: project.BudgetNear, Percentage: 85, Used: 8.5, Remaining: 1.5, Budget: 10},
		},
	}
}

func TestCheckClassifiesBudgets(t *testing.T) {
	svc := alert.NewService(&memLedger{}, overBudgetDirectory(), nil)

	alerts, err := svc.Check(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	assert.Equal(t, alert.TypeBudgetExceeded, alerts[0].Type)
	assert.Equal(t, alert.SeverityHigh, alerts[0].Severity)
	assert.Equal(t, "Frontend has exceeded its budget of 10 hours (12 hours used)", alerts[0].Message)

	assert.Equal(t, alert.TypeBudgetWarning, alerts[1].Type)
	assert.Equal(t, alert.SeverityMedium, alerts[1].Severity)
	assert.Equal(t, "Backend is approaching its budget limit (85% used)", alerts[1].Message)
}

func TestCheckSkipsUnbudgeted(t *testing.T) {
	dir := &stubDirectory{projects: []project.Project{
		{Code: "MEET-001", Name: "Meetings", Budget: 0, Status: project.StatusActive},
	}}
	svc := alert.NewService(&memLedger{}, dir, nil)

	alerts, err := svc.Check(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestRecordDedupesUnread(t *testing.T) {
	ledger := &memLedger{}
	svc := alert.NewService(ledger, overBudgetDirectory(), nil)
	ctx := context.Background()

	first, err := svc.CheckAndRecord(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)

	// Re-checking with the same findings replaces the unread entries
	// instead of stacking duplicates.
	second, err := svc.CheckAndRecord(ctx)
	require.NoError(t, err)
	require.Len(t, second, 2)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.NotEqual(t, first[0].ID, second[0].ID)
}

func TestRecordKeepsReadAlertsAsHistory(t *testing.T) {
	ledger := &memLedger{}
	svc := alert.NewService(ledger, overBudgetDirectory(), nil)
	ctx := context.Background()

	first, err := svc.CheckAndRecord(ctx)
	require.NoError(t, err)
	for _, a := range first {
		_, err := svc.MarkRead(ctx, a.ID)
		require.NoError(t, err)
	}

	_, err = svc.CheckAndRecord(ctx)
	require.NoError(t, err)

	// Two read historic alerts plus two fresh unread ones.
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	unread, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)
}

func TestRecordEmptyIsNoOp(t *testing.T) {
	ledger := &memLedger{}
	svc := alert.NewService(ledger, &stubDirectory{}, nil)

	recorded, err := svc.Record(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, recorded)
	assert.Empty(t, ledger.alerts)
}

func TestMarkRead(t *testing.T) {
	svc := alert.NewService(&memLedger{}, overBudgetDirectory(), nil)
	ctx := context.Background()

	recorded, err := svc.CheckAndRecord(ctx)
	require.NoError(t, err)

	marked, err := svc.MarkRead(ctx, recorded[0].ID)
	require.NoError(t, err)
	assert.True(t, marked.Read)
	require.NotNil(t, marked.ReadAt)

	unread, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	_, err = svc.MarkRead(ctx, "missing")
	assert.ErrorIs(t, err, alert.ErrAlertNotFound)
}

func TestClearAll(t *testing.T) {
	svc := alert.NewService(&memLedger{}, overBudgetDirectory(), nil)
	ctx := context.Background()

	_, err := svc.CheckAndRecord(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.ClearAll(ctx))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
