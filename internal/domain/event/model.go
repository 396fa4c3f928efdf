package event

import "time"

// Type represents the kind of activity recorded in the event log
type Type string

const (
	TypeTimerStart     Type = "TIMER_START"
	TypeTimerPause     Type = "TIMER_PAUSE"
	TypeTimerReset     Type = "TIMER_RESET"
	TypeTimeSaved      Type = "TIME_SAVED"
	TypeTimeAutoSaved  Type = "TIME_AUTO_SAVED"
	TypeIdleAlert      Type = "IDLE_ALERT"
	TypeProjectSwitch  Type = "PROJECT_SWITCH"
	TypeProjectAdded   Type = "PROJECT_ADDED"
	TypeProjectUpdated Type = "PROJECT_UPDATED"
	TypeProjectDeleted Type = "PROJECT_DELETED"
	TypeBudgetUpdated  Type = "BUDGET_UPDATED"
	TypeLogEdited      Type = "LOG_EDITED"
	TypeLogDeleted     Type = "LOG_DELETED"
)

// Entry is one append-only record in the activity audit trail. Entries are
// never mutated or reordered once written.
type Entry struct {
	Type            Type      `json:"type"`
	Timestamp       time.Time `json:"timestamp"`
	Username        string    `json:"username"`
	Message         string    `json:"message"`
	ProjectCode     string    `json:"projectCode,omitempty"`
	ProjectName     string    `json:"projectName,omitempty"`
	PreviousProject string    `json:"previousProject,omitempty"`
	NewProject      string    `json:"newProject,omitempty"`
	TimeSpent       int64     `json:"timeSpent,omitempty"`
	Budget          float64   `json:"budget,omitempty"`
}
