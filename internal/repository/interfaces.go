package repository

import (
	"context"

	"github.com/ganot/tempus-mcp/internal/domain/alert"
	"github.com/ganot/tempus-mcp/internal/domain/event"
	"github.com/ganot/tempus-mcp/internal/domain/project"
	"github.com/ganot/tempus-mcp/internal/domain/timelog"
	"github.com/ganot/tempus-mcp/internal/domain/timer"
)

// TimeLogRepository manages the time log collection
type TimeLogRepository interface {
	Add(ctx context.Context, entry timelog.Entry) error
	List(ctx context.Context) ([]timelog.Entry, error)
	Update(ctx context.Context, entry timelog.Entry) error
	Delete(ctx context.Context, id string) error
}

// ProjectRepository manages the project directory collection
type ProjectRepository interface {
	List(ctx context.Context) ([]project.Project, error)
	Save(ctx context.Context, projects []project.Project) error
}

// EventLogRepository manages the append-only event log
type EventLogRepository interface {
	Append(ctx context.Context, entry event.Entry) error
	List(ctx context.Context) ([]event.Entry, error)
	Clear(ctx context.Context) error
}

// AlertRepository manages the budget alert ledger
type AlertRepository interface {
	List(ctx context.Context) ([]alert.Alert, error)
	Save(ctx context.Context, alerts []alert.Alert) error
}

// TimerStateRepository persists the single timer state record
type TimerStateRepository interface {
	Load(ctx context.Context) (*timer.State, error)
	Store(ctx context.Context, state timer.State) error
	Clear(ctx context.Context) error
}

// SelectionRepository persists the currently selected project code
type SelectionRepository interface {
	Load(ctx context.Context) (string, error)
	Store(ctx context.Context, projectCode string) error
}
