package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// KV is a key to JSON-string mapping with last-writer-wins semantics.
// All application state lives under a handful of well-known keys; values
// are whole JSON-encoded collections rewritten on every mutation.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Well-known store keys.
const (
	KeyTimeLogs       = "timesheetLogs"
	KeyEventLogs      = "timesheetEventLogs"
	KeyProjects       = "timesheetProjects"
	KeyTimerState     = "timesheetTimerState"
	KeyBudgetAlerts   = "timesheetBudgetAlerts"
	KeyCurrentProject = "timesheetCurrentProject"
)
