package timer

import (
	"context"

	"github.com/ganot/tempus-mcp/internal/domain/alert"
	"github.com/ganot/tempus-mcp/internal/domain/event"
	"github.com/ganot/tempus-mcp/internal/domain/project"
	"github.com/ganot/tempus-mcp/internal/domain/timelog"
)

// StateRepository persists the single timer state record.
type StateRepository interface {
	Load(ctx context.Context) (*State, error)
	Store(ctx context.Context, state State) error
	Clear(ctx context.Context) error
}

// SelectionRepository persists the currently selected project code.
type SelectionRepository interface {
	Load(ctx context.Context) (string, error)
	Store(ctx context.Context, projectCode string) error
}

// TimeLogWriter creates time log entries on save and auto-save.
type TimeLogWriter interface {
	Add(ctx context.Context, req timelog.AddRequest) (*timelog.Entry, error)
}

// Directory looks up project metadata by code.
type Directory interface {
	Get(ctx context.Context, code string) (*project.Project, error)
}

// EventRecorder appends entries to the activity event log.
type EventRecorder interface {
	Append(ctx context.Context, entry event.Entry) error
}

// AlertChecker reevaluates budget alerts after time is committed.
type AlertChecker interface {
	CheckAndRecord(ctx context.Context) ([]alert.Alert, error)
}
