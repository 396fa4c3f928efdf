package timer_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ganot/tempus-mcp/internal/domain/alert"
	"github.com/ganot/tempus-mcp/internal/domain/event"
	"github.com/ganot/tempus-mcp/internal/domain/project"
	"github.com/ganot/tempus-mcp/internal/domain/timelog"
	"github.com/ganot/tempus-mcp/internal/domain/timer"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type memStates struct {
	state *timer.State
}

func (m *memStates) Load(context.Context) (*timer.State, error) { return m.state, nil }
func (m *memStates) Store(_ context.Context, s timer.State) error {
	m.state = &s
	return nil
}
func (m *memStates) Clear(context.Context) error {
	m.state = nil
	return nil
}

type memSelection struct {
	code string
}

func (m *memSelection) Load(context.Context) (string, error) { return m.code, nil }
func (m *memSelection) Store(_ context.Context, code string) error {
	m.code = code
	return nil
}

type stubLogs struct {
	requests []timelog.AddRequest
}

func (s *stubLogs) Add(_ context.Context, req timelog.AddRequest) (*timelog.Entry, error) {
	s.requests = append(s.requests, req)
	return &timelog.Entry{
		ID:               uuid.NewString(),
		ProjectCode:      req.ProjectCode,
		TimeSpentSeconds: req.TimeSpentSeconds,
		Timestamp:        req.Timestamp,
		FormattedTime:    timelog.FormatDuration(req.TimeSpentSeconds),
		Username:         req.Username,
		Notes:            req.Notes,
	}, nil
}

type stubDirectory struct {
	codes map[string]bool
}

func (s *stubDirectory) Get(_ context.Context, code string) (*project.Project, error) {
	if !s.codes[code] {
		return nil, project.ErrProjectNotFound
	}
	return &project.Project{Code: code, Name: code, Status: project.StatusActive}, nil
}

type stubEvents struct {
	entries []event.Entry
}

func (s *stubEvents) Append(_ context.Context, entry event.Entry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubEvents) ofType(t event.Type) []event.Entry {
	var out []event.Entry
	for _, e := range s.entries {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type stubAlerts struct {
	calls int
}

func (s *stubAlerts) CheckAndRecord(context.Context) ([]alert.Alert, error) {
	s.calls++
	return nil, nil
}

type env struct {
	clock     *fakeClock
	states    *memStates
	selection *memSelection
	logs      *stubLogs
	directory *stubDirectory
	events    *stubEvents
	alerts    *stubAlerts
	svc       *timer.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		clock:     newFakeClock(),
		states:    &memStates{},
		selection: &memSelection{},
		logs:      &stubLogs{},
		directory: &stubDirectory{codes: map[string]bool{"DEV-001": true, "DEV-002": true}},
		events:    &stubEvents{},
		alerts:    &stubAlerts{},
	}
	e.svc = timer.NewService(context.Background(), e.states, e.selection, e.logs, e.directory, e.events, e.alerts, e.clock, timer.DefaultOptions(), nil)
	return e
}

func TestStartRequiresProject(t *testing.T) {
	e := newEnv(t)
	err := e.svc.Start(context.Background(), "alice")
	assert.ErrorIs(t, err, timer.ErrNoProject)
}

func TestStartResetsElapsed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.SetProject(ctx, "DEV-001", "alice")
	require.NoError(t, err)
	require.NoError(t, e.svc.Start(ctx, "alice"))
	e.clock.advance(10 * time.Second)
	require.NoError(t, e.svc.Pause(ctx, "alice"))

	// A second Start counts from zero, never resumes the paused value.
	require.NoError(t, e.svc.Start(ctx, "alice"))
	snap := e.svc.Status()
	assert.True(t, snap.Running)
	assert.Equal(t, int64(0), snap.ElapsedSeconds)
}

func TestElapsedReconstructedFromWallClock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.SetProject(ctx, "DEV-001", "alice")
	require.NoError(t, err)
	require.NoError(t, e.svc.Start(ctx, "alice"))

	e.clock.advance(5 * time.Second)
	e.svc.Tick(ctx)
	assert.Equal(t, int64(5), e.svc.Status().ElapsedSeconds)

	// A multi-minute gap with no ticks (suspended host) still lands on the
	// wall-clock delta.
	e.clock.advance(10 * time.Minute)
	e.svc.Tick(ctx)
	assert.Equal(t, int64(605), e.svc.Status().ElapsedSeconds)
	assert.Equal(t, "00:10:05", e.svc.Status().FormattedTime)
}

func TestPauseFreezesElapsed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.SetProject(ctx, "DEV-001", "alice")
	require.NoError(t, err)
	require.NoError(t, e.svc.Start(ctx, "alice"))
	e.clock.advance(3 * time.Second)
	require.NoError(t, e.svc.Pause(ctx, "alice"))

	e.clock.advance(time.Hour)
	snap := e.svc.Status()
	assert.False(t, snap.Running)
	assert.Equal(t, int64(3), snap.ElapsedSeconds)
}

func TestPauseWhileStoppedIsReportedNoOp(t *testing.T) {
	e := newEnv(t)
	err := e.svc.Pause(context.Background(), "alice")
	assert.ErrorIs(t, err, timer.ErrNotRunning)
	assert.True(t, timer.IsNoOp(err))
}

func TestSaveWithZeroElapsedIsNoOp(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.SetProject(ctx, "DEV-001", "alice")
	require.NoError(t, err)

	entry, err := e.svc.Save(ctx, timer.SaveRequest{Username: "alice"})
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.Empty(t, e.logs.requests)
}

func TestSaveCommitsAndResets(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.SetProject(ctx, "DEV-001", "alice")
	require.NoError(t, err)
	require.NoError(t, e.svc.Start(ctx, "alice"))
	e.clock.advance(90 * time.Second)

	entry, err := e.svc.Save(ctx, timer.SaveRequest{Username: "alice", Notes: "sprint work"})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "DEV-001", entry.ProjectCode)
	assert.Equal(t, int64(90), entry.TimeSpentSeconds)
	assert.Equal(t, "sprint work", entry.Notes)

	snap := e.svc.Status()
	assert.False(t, snap.Running)
	assert.Equal(t, int64(0), snap.ElapsedSeconds)

	assert.Len(t, e.events.ofType(event.TypeTimeSaved), 1)
	assert.Len(t, e.events.ofType(event.TypeTimerReset), 1)
	assert.Equal(t, 1, e.alerts.calls)
}

func TestSaveWhilePausedCommitsFrozenValue(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.SetProject(ctx, "DEV-001", "alice")
	require.NoError(t, err)
	require.NoError(t, e.svc.Start(ctx, "alice"))
	e.clock.advance(42 * time.Second)
	require.NoError(t, e.svc.Pause(ctx, "alice"))
	e.clock.advance(time.Hour)

	entry, err := e.svc.Save(ctx, timer.SaveRequest{Username: "alice"})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(42), entry.TimeSpentSeconds)
}

func TestSaveStaleRequiresConfirmation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.SetProject(ctx, "DEV-001", "alice")
	require.NoError(t, err)
	require.NoError(t, e.svc.Start(ctx, "alice"))
	e.clock.advance(25 * time.Hour)

	_, err = e.svc.Save(ctx, timer.SaveRequest{Username: "alice"})
	assert.ErrorIs(t, err, timer.ErrStaleEntry)
	assert.Empty(t, e.logs.requests)

	entry, err := e.svc.Save(ctx, timer.SaveRequest{Username: "alice", ConfirmStale: true})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(25*3600), entry.TimeSpentSeconds)
}

func TestFirstAssignmentOnlyEstablishesBaseline(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	saved, err := e.svc.SetProject(ctx, "DEV-001", "alice")
	require.NoError(t, err)
	assert.Nil(t, saved)
	assert.Empty(t, e.logs.requests)
	assert.Empty(t, e.events.ofType(event.TypeProjectSwitch))
	assert.Equal(t, "DEV-001", e.svc.CurrentProject())
}

func TestReassignmentAutoSavesAndRestarts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.SetProject(ctx, "DEV-001", "alice")
	require.NoError(t, err)
	require.NoError(t, e.svc.Start(ctx, "alice"))
	e.clock.advance(5 * time.Second)

	saved, err := e.svc.SetProject(ctx, "DEV-002", "alice")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "DEV-001", saved.ProjectCode)
	assert.Equal(t, int64(5), saved.TimeSpentSeconds)
	assert.Equal(t, "auto-saved when switching to DEV-002", saved.Notes)

	snap := e.svc.Status()
	assert.True(t, snap.Running)
	assert.Equal(t, int64(0), snap.ElapsedSeconds)
	assert.Equal(t, "DEV-002", snap.ProjectCode)

	assert.Len(t, e.events.ofType(event.TypeTimeAutoSaved), 1)
	assert.Len(t, e.events.ofType(event.TypeProjectSwitch), 1)

	// Conservation: time accrued after the switch belongs to the new
	// project and starts from zero.
	e.clock.advance(3 * time.Second)
	e.svc.Tick(ctx)
	assert.Equal(t, int64(3), e.svc.Status().ElapsedSeconds)
}

func TestReassignmentWhileStoppedDoesNotAutoSave(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.SetProject(ctx, "DEV-001", "alice")
	require.NoError(t, err)

	saved, err := e.svc.SetProject(ctx, "DEV-002", "alice")
	require.NoError(t, err)
	assert.Nil(t, saved)
	assert.Empty(t, e.logs.requests)
	assert.Len(t, e.events.ofType(event.TypeProjectSwitch), 1)
}

func TestReassignmentToUnknownProjectFails(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.SetProject(ctx, "DEV-001", "alice")
	require.NoError(t, err)
	require.NoError(t, e.svc.Start(ctx, "alice"))
	e.clock.advance(5 * time.Second)

	_, err = e.svc.SetProject(ctx, "NOPE-999", "alice")
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
	assert.Equal(t, "DEV-001", e.svc.CurrentProject())
	assert.Empty(t, e.logs.requests)
}

func TestRecoveryRunningRecomputesFromWallClock(t *testing.T) {
	clock := newFakeClock()
	startedAt := clock.Now().Add(-100 * time.Second).UnixMilli()
	states := &memStates{state: &timer.State{
		Running:          true,
		ElapsedSeconds:   7, // stale counter, must be ignored
		StartedAtEpochMs: &startedAt,
	}}
	selection := &memSelection{code: "DEV-001"}

	svc := timer.NewService(context.Background(), states, selection, &stubLogs{}, &stubDirectory{codes: map[string]bool{"DEV-001": true}}, &stubEvents{}, nil, clock, timer.DefaultOptions(), nil)

	snap := svc.Status()
	assert.True(t, snap.Running)
	assert.Equal(t, int64(100), snap.ElapsedSeconds)
	assert.Equal(t, "DEV-001", snap.ProjectCode)
}

func TestRecoveryStoppedRestoresFrozenCounter(t *testing.T) {
	clock := newFakeClock()
	states := &memStates{state: &timer.State{Running: false, ElapsedSeconds: 42}}

	svc := timer.NewService(context.Background(), states, &memSelection{}, &stubLogs{}, &stubDirectory{}, &stubEvents{}, nil, clock, timer.DefaultOptions(), nil)

	snap := svc.Status()
	assert.False(t, snap.Running)
	assert.Equal(t, int64(42), snap.ElapsedSeconds)
	assert.Nil(t, snap.StartedAt)
}

func TestIdleCheckRaisesSingleAlert(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.SetProject(ctx, "DEV-001", "alice")
	require.NoError(t, err)
	require.NoError(t, e.svc.Start(ctx, "alice"))

	e.clock.advance(29 * time.Minute)
	e.svc.IdleCheck(ctx, "alice")
	assert.False(t, e.svc.Status().IdleAlert)

	e.clock.advance(2 * time.Minute)
	e.svc.IdleCheck(ctx, "alice")
	assert.True(t, e.svc.Status().IdleAlert)
	assert.Len(t, e.events.ofType(event.TypeIdleAlert), 1)

	// The alert does not repeat while unacknowledged.
	e.clock.advance(10 * time.Minute)
	e.svc.IdleCheck(ctx, "alice")
	assert.Len(t, e.events.ofType(event.TypeIdleAlert), 1)

	e.svc.AcknowledgeIdle()
	assert.False(t, e.svc.Status().IdleAlert)
}

func TestStatePersistedAcrossOperations(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.SetProject(ctx, "DEV-001", "alice")
	require.NoError(t, err)
	require.NoError(t, e.svc.Start(ctx, "alice"))
	e.clock.advance(8 * time.Second)
	e.svc.OnSuspendHint(ctx)

	require.NotNil(t, e.states.state)
	assert.True(t, e.states.state.Running)
	assert.Equal(t, int64(8), e.states.state.ElapsedSeconds)
	require.NotNil(t, e.states.state.StartedAtEpochMs)

	// A fresh service over the same stores resumes seamlessly.
	e.clock.advance(12 * time.Second)
	revived := timer.NewService(ctx, e.states, e.selection, e.logs, e.directory, e.events, e.alerts, e.clock, timer.DefaultOptions(), nil)
	snap := revived.Status()
	assert.True(t, snap.Running)
	assert.Equal(t, int64(20), snap.ElapsedSeconds)
}
