package timer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ganot/tempus-mcp/internal/domain/event"
	"github.com/ganot/tempus-mcp/internal/domain/timelog"
)

// Options tune the state machine's thresholds and scheduling intervals.
type Options struct {
	StaleThreshold    time.Duration // save confirmation boundary
	IdleThreshold     time.Duration // inactivity before an idle alert
	TickInterval      time.Duration // elapsed-time recomputation cadence
	IdleCheckInterval time.Duration // idle monitoring cadence
}

// DefaultOptions mirror the 24h stale / 30min idle / 1s tick behavior.
func DefaultOptions() Options {
	return Options{
		StaleThreshold:    24 * time.Hour,
		IdleThreshold:     30 * time.Minute,
		TickInterval:      time.Second,
		IdleCheckInterval: time.Minute,
	}
}

// Service is the timer state machine. A single mutex serializes ticks,
// user transitions, and project reassignment: no tick can observe the
// window between an auto-save snapshot and the restart that follows it.
type Service struct {
	states    StateRepository
	selection SelectionRepository
	logs      TimeLogWriter
	directory Directory
	events    EventRecorder
	alerts    AlertChecker
	clock     Clock
	opts      Options
	logger    *slog.Logger

	mu               sync.Mutex
	running          bool
	elapsedSeconds   int64
	startedAt        *time.Time
	lastActivity     time.Time
	idleAlert        bool
	currentProject   string
	projectBaselined bool
}

// NewService creates the timer and recovers any persisted state: a running
// timer resumes from the wall-clock delta, a stopped one from its frozen
// counter.
func NewService(
	ctx context.Context,
	states StateRepository,
	selection SelectionRepository,
	logs TimeLogWriter,
	directory Directory,
	events EventRecorder,
	alerts AlertChecker,
	clock Clock,
	opts Options,
	logger *slog.Logger,
) *Service {
	if clock == nil {
		clock = SystemClock()
	}
	if opts.TickInterval == 0 {
		opts = DefaultOptions()
	}
	s := &Service{
		states:    states,
		selection: selection,
		logs:      logs,
		directory: directory,
		events:    events,
		alerts:    alerts,
		clock:     clock,
		opts:      opts,
		logger:    logger,
	}
	s.recover(ctx)
	return s
}

func (s *Service) recover(ctx context.Context) {
	now := s.clock.Now()
	s.lastActivity = now

	if code, err := s.selection.Load(ctx); err == nil && code != "" {
		s.currentProject = code
		s.projectBaselined = true
	}

	state, err := s.states.Load(ctx)
	if err != nil || state == nil {
		return
	}

	if state.Running && state.StartedAtEpochMs != nil {
		started := time.UnixMilli(*state.StartedAtEpochMs)
		s.running = true
		s.startedAt = &started
		// Recompute from wall clock; the saved counter is stale by however
		// long the process was gone.
		s.elapsedSeconds = int64(now.Sub(started) / time.Second)
		if s.elapsedSeconds < 0 {
			s.elapsedSeconds = 0
		}
		if s.logger != nil {
			s.logger.Info("recovered running timer", "elapsed", s.elapsedSeconds, "project", s.currentProject)
		}
	} else {
		s.running = false
		s.elapsedSeconds = state.ElapsedSeconds
		s.startedAt = nil
	}
}

// Start begins counting from zero for the selected project. Starting never
// resumes a previous stopped value.
func (s *Service) Start(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentProject == "" {
		return ErrNoProject
	}

	now := s.clock.Now()
	s.running = true
	s.startedAt = &now
	s.elapsedSeconds = 0
	s.lastActivity = now
	s.idleAlert = false
	s.persistLocked(ctx)

	s.recordEvent(ctx, event.Entry{
		Type:        event.TypeTimerStart,
		Username:    username,
		ProjectCode: s.currentProject,
		Message:     fmt.Sprintf("Started timer for project %s", s.currentProject),
	})
	return nil
}

// Pause freezes the current elapsed value.
func (s *Service) Pause(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return ErrNotRunning
	}

	s.recomputeLocked()
	s.running = false
	s.persistLocked(ctx)

	s.recordEvent(ctx, event.Entry{
		Type:        event.TypeTimerPause,
		Username:    username,
		ProjectCode: s.currentProject,
		Message:     fmt.Sprintf("Paused timer at %s", timelog.FormatDuration(s.elapsedSeconds)),
	})
	return nil
}

// Reset returns to Stopped(0) from any state.
func (s *Service) Reset(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked(ctx)
	s.recordEvent(ctx, event.Entry{
		Type:        event.TypeTimerReset,
		Username:    username,
		ProjectCode: s.currentProject,
		Message:     "Timer reset",
	})
	return nil
}

// SaveRequest carries the actor and the stale-entry confirmation flag.
type SaveRequest struct {
	Username     string
	Notes        string
	ConfirmStale bool
}

// Save commits the accrued time as a TimeLogEntry. Saving with nothing
// accrued is a no-op. When the time since start exceeds the stale threshold
// the save aborts with ErrStaleEntry until confirmed.
func (s *Service) Save(ctx context.Context, req SaveRequest) (*timelog.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.recomputeLocked()
	}
	if s.elapsedSeconds <= 0 {
		return nil, nil
	}
	if s.currentProject == "" {
		return nil, ErrNoProject
	}

	now := s.clock.Now()
	if s.startedAt != nil && !req.ConfirmStale {
		if now.Sub(*s.startedAt) > s.opts.StaleThreshold {
			return nil, ErrStaleEntry
		}
	}

	entry, err := s.logs.Add(ctx, timelog.AddRequest{
		ProjectCode:      s.currentProject,
		TimeSpentSeconds: s.elapsedSeconds,
		Timestamp:        now,
		Username:         req.Username,
		Notes:            req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("saving time entry: %w", err)
	}

	s.recordEvent(ctx, event.Entry{
		Type:        event.TypeTimeSaved,
		Username:    req.Username,
		ProjectCode: s.currentProject,
		TimeSpent:   entry.TimeSpentSeconds,
		Message:     fmt.Sprintf("Saved %s for project %s", entry.FormattedTime, s.currentProject),
	})

	s.resetLocked(ctx)
	s.recordEvent(ctx, event.Entry{
		Type:        event.TypeTimerReset,
		Username:    req.Username,
		ProjectCode: s.currentProject,
		Message:     "Timer reset",
	})

	if s.alerts != nil {
		if _, err := s.alerts.CheckAndRecord(ctx); err != nil && s.logger != nil {
			s.logger.Warn("budget alert reevaluation failed", "error", err)
		}
	}
	return entry, nil
}

// SetProject records the externally-selected project. The first assignment
// establishes the baseline only; later changes while running with accrued
// time auto-save against the old project and restart at zero for the new
// one, atomically with respect to ticks.
func (s *Service) SetProject(ctx context.Context, code, username string) (*timelog.Entry, error) {
	if code != "" {
		if _, err := s.directory.Get(ctx, code); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.currentProject
	if !s.projectBaselined {
		s.projectBaselined = true
		s.currentProject = code
		s.storeSelectionLocked(ctx, code)
		return nil, nil
	}
	if code == previous {
		return nil, nil
	}

	var saved *timelog.Entry
	if s.running && previous != "" {
		s.recomputeLocked()
		if s.elapsedSeconds > 0 {
			now := s.clock.Now()
			entry, err := s.logs.Add(ctx, timelog.AddRequest{
				ProjectCode:      previous,
				TimeSpentSeconds: s.elapsedSeconds,
				Timestamp:        now,
				Username:         username,
				Notes:            fmt.Sprintf("auto-saved when switching to %s", code),
			})
			if err != nil {
				return nil, fmt.Errorf("auto-saving time entry: %w", err)
			}
			saved = entry

			s.recordEvent(ctx, event.Entry{
				Type:        event.TypeTimeAutoSaved,
				Username:    username,
				ProjectCode: previous,
				NewProject:  code,
				TimeSpent:   entry.TimeSpentSeconds,
				Message:     fmt.Sprintf("Auto-saved %s for project %s when switching to %s", entry.FormattedTime, previous, code),
			})

			// Restart for the new project before releasing the lock so no
			// tick can observe the old start time.
			s.startedAt = &now
			s.elapsedSeconds = 0
			s.lastActivity = now
			s.idleAlert = false
		}
	}

	s.currentProject = code
	s.storeSelectionLocked(ctx, code)
	s.persistLocked(ctx)

	if previous != "" {
		s.recordEvent(ctx, event.Entry{
			Type:            event.TypeProjectSwitch,
			Username:        username,
			ProjectCode:     code,
			PreviousProject: previous,
			Message:         fmt.Sprintf("Switched from %s to %s", previous, code),
		})
	}
	return saved, nil
}

// Tick recomputes elapsed time from the wall clock. Counting by increments
// would drift under host suspension; the delta from startedAt cannot.
func (s *Service) Tick(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.recomputeLocked()
	s.persistLocked(ctx)
}

// IdleCheck raises a single idle alert after the inactivity threshold.
func (s *Service) IdleCheck(ctx context.Context, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.idleAlert {
		return
	}
	if s.clock.Now().Sub(s.lastActivity) < s.opts.IdleThreshold {
		return
	}

	s.idleAlert = true
	s.recordEvent(ctx, event.Entry{
		Type:        event.TypeIdleAlert,
		Username:    username,
		ProjectCode: s.currentProject,
		Message:     fmt.Sprintf("Timer has been running for %d+ minutes without activity", int(s.opts.IdleThreshold.Minutes())),
	})
}

// AcknowledgeIdle clears the idle flag and counts as fresh activity.
func (s *Service) AcknowledgeIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.idleAlert = false
	s.lastActivity = s.clock.Now()
}

// OnForeground recomputes elapsed time when the host regains visibility.
func (s *Service) OnForeground(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.recomputeLocked()
	s.persistLocked(ctx)
}

// OnSuspendHint synchronously persists a running timer before the host
// goes away; there is no guaranteed async completion after unload.
func (s *Service) OnSuspendHint(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.recomputeLocked()
	s.persistLocked(ctx)
}

// Status reports the current snapshot.
func (s *Service) Status() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.recomputeLocked()
	}
	return Snapshot{
		Running:        s.running,
		ElapsedSeconds: s.elapsedSeconds,
		FormattedTime:  timelog.FormatDuration(s.elapsedSeconds),
		ProjectCode:    s.currentProject,
		StartedAt:      s.startedAt,
		IdleAlert:      s.idleAlert,
	}
}

// CurrentProject returns the selected project code.
func (s *Service) CurrentProject() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentProject
}

// Run drives the periodic tick and idle check until ctx is cancelled.
// Cancellation also persists an in-progress running state best-effort.
func (s *Service) Run(ctx context.Context, username string) {
	tick := time.NewTicker(s.opts.TickInterval)
	idle := time.NewTicker(s.opts.IdleCheckInterval)
	defer tick.Stop()
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			s.OnSuspendHint(context.WithoutCancel(ctx))
			return
		case <-tick.C:
			s.Tick(ctx)
		case <-idle.C:
			s.IdleCheck(ctx, username)
		}
	}
}

// IsNoOp reports whether err is one of the benign invalid-transition
// results that callers surface as information rather than failure.
func IsNoOp(err error) bool {
	return errors.Is(err, ErrNotRunning)
}

func (s *Service) recomputeLocked() {
	if s.startedAt == nil {
		return
	}
	elapsed := int64(s.clock.Now().Sub(*s.startedAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	s.elapsedSeconds = elapsed
}

func (s *Service) resetLocked(ctx context.Context) {
	s.running = false
	s.elapsedSeconds = 0
	s.startedAt = nil
	s.idleAlert = false
	s.persistLocked(ctx)
}

// persistLocked writes the state best-effort: a failed write degrades
// recovery, not the running timer.
func (s *Service) persistLocked(ctx context.Context) {
	state := State{
		Running:        s.running,
		ElapsedSeconds: s.elapsedSeconds,
	}
	if s.startedAt != nil {
		ms := s.startedAt.UnixMilli()
		state.StartedAtEpochMs = &ms
	}
	if err := s.states.Store(ctx, state); err != nil && s.logger != nil {
		s.logger.Warn("failed to persist timer state", "error", err)
	}
}

func (s *Service) storeSelectionLocked(ctx context.Context, code string) {
	if err := s.selection.Store(ctx, code); err != nil && s.logger != nil {
		s.logger.Warn("failed to persist project selection", "error", err)
	}
}

func (s *Service) recordEvent(ctx context.Context, entry event.Entry) {
	if s.events == nil {
		return
	}
	if entry.Username == "" {
		entry.Username = "unknown"
	}
	if err := s.events.Append(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("failed to record event", "type", entry.Type, "error", err)
	}
}
