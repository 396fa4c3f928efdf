package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/tempus-mcp/internal/domain/alert"
	"github.com/ganot/tempus-mcp/internal/domain/project"
	"github.com/ganot/tempus-mcp/internal/domain/timelog"
	"github.com/ganot/tempus-mcp/internal/domain/timer"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check project code spelling"}
	case errors.Is(err, project.ErrInvalidCode):
		return &APIError{Code: "INVALID_PROJECT_CODE", Message: "project code must match PREFIX-NNN (e.g. DEV-001)", RecoveryHint: "Use 2+ uppercase letters, a dash, and 3 digits"}
	case errors.Is(err, project.ErrDuplicateCode):
		return &APIError{Code: "DUPLICATE_PROJECT_CODE", Message: "a project with this code already exists", RecoveryHint: "Pick a different code or call generate_project_code"}
	case errors.Is(err, timelog.ErrEntryNotFound):
		return &APIError{Code: "ENTRY_NOT_FOUND", Message: "time log entry not found", RecoveryHint: "Check entry ID"}
	case errors.Is(err, timer.ErrNoProject):
		return &APIError{Code: "NO_PROJECT_SELECTED", Message: "no project selected", RecoveryHint: "Call select_project first"}
	case errors.Is(err, timer.ErrNotRunning):
		return &APIError{Code: "TIMER_NOT_RUNNING", Message: "timer is not running", RecoveryHint: "Start the timer first"}
	case errors.Is(err, timer.ErrStaleEntry):
		return &APIError{Code: "STALE_TIMER_ENTRY", Message: "timer entry is older than the staleness threshold", RecoveryHint: "Retry with confirm_stale=true to save anyway, or reset_timer to discard"}
	case errors.Is(err, alert.ErrAlertNotFound):
		return &APIError{Code: "ALERT_NOT_FOUND", Message: "alert not found", RecoveryHint: "Check alert ID"}
	default:
		return nil
	}
}

// toolError converts a domain error into the error returned to the MCP
// client, preferring the mapped APIError form when one applies.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
