package mocks

import (
	"context"

	"github.com/ganot/tempus-mcp/internal/domain/alert"
	"github.com/ganot/tempus-mcp/internal/domain/event"
	"github.com/ganot/tempus-mcp/internal/domain/project"
	"github.com/ganot/tempus-mcp/internal/domain/timelog"
	"github.com/ganot/tempus-mcp/internal/domain/timer"
	"github.com/stretchr/testify/mock"
)

// TimeLogRepository is a mock for repository.TimeLogRepository.
type TimeLogRepository struct {
	mock.Mock
}

func (m *TimeLogRepository) Add(ctx context.Context, entry timelog.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *TimeLogRepository) List(ctx context.Context) ([]timelog.Entry, error) {
	args := m.Called(ctx)
	if entries, ok := args.Get(0).([]timelog.Entry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimeLogRepository) Update(ctx context.Context, entry timelog.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *TimeLogRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if projects, ok := args.Get(0).([]project.Project); ok {
		return projects, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Save(ctx context.Context, projects []project.Project) error {
	args := m.Called(ctx, projects)
	return args.Error(0)
}

// EventLogRepository is a mock for repository.EventLogRepository.
type EventLogRepository struct {
	mock.Mock
}

func (m *EventLogRepository) Append(ctx context.Context, entry event.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *EventLogRepository) List(ctx context.Context) ([]event.Entry, error) {
	args := m.Called(ctx)
	if entries, ok := args.Get(0).([]event.Entry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventLogRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// AlertRepository is a mock for repository.AlertRepository.
type AlertRepository struct {
	mock.Mock
}

func (m *AlertRepository) List(ctx context.Context) ([]alert.Alert, error) {
	args := m.Called(ctx)
	if alerts, ok := args.Get(0).([]alert.Alert); ok {
		return alerts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AlertRepository) Save(ctx context.Context, alerts []alert.Alert) error {
	args := m.Called(ctx, alerts)
	return args.Error(0)
}

// TimerStateRepository is a mock for repository.TimerStateRepository.
type TimerStateRepository struct {
	mock.Mock
}

func (m *TimerStateRepository) Load(ctx context.Context) (*timer.State, error) {
	args := m.Called(ctx)
	if state, ok := args.Get(0).(*timer.State); ok {
		return state, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimerStateRepository) Store(ctx context.Context, state timer.State) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *TimerStateRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// SelectionRepository is a mock for repository.SelectionRepository.
type SelectionRepository struct {
	mock.Mock
}

func (m *SelectionRepository) Load(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *SelectionRepository) Store(ctx context.Context, projectCode string) error {
	args := m.Called(ctx, projectCode)
	return args.Error(0)
}
