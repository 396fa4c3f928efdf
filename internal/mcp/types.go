package mcp

import (
	"time"

	"github.com/ganot/tempus-mcp/internal/domain/alert"
	"github.com/ganot/tempus-mcp/internal/domain/event"
	"github.com/ganot/tempus-mcp/internal/domain/forecast"
	"github.com/ganot/tempus-mcp/internal/domain/project"
	"github.com/ganot/tempus-mcp/internal/domain/timelog"
)

// Timer

type EmptyParams struct{}

type SaveTimerParams struct {
	Notes        string `json:"notes,omitempty"`
	ConfirmStale bool   `json:"confirm_stale,omitempty"`
}

type SelectProjectParams struct {
	ProjectCode string `json:"project_code"`
}

type TimerStatusResponse struct {
	Running        bool       `json:"running"`
	ElapsedSeconds int64      `json:"elapsed_seconds"`
	FormattedTime  string     `json:"formatted_time"`
	ProjectCode    string     `json:"project_code,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	IdleAlert      bool       `json:"idle_alert"`
}

type SaveTimerResponse struct {
	Saved bool           `json:"saved"`
	Entry *timelog.Entry `json:"entry,omitempty"`
}

type SelectProjectResponse struct {
	ProjectCode string         `json:"project_code"`
	AutoSaved   *timelog.Entry `json:"auto_saved,omitempty"`
}

// Projects

type CreateProjectParams struct {
	Code        string  `json:"code,omitempty"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Budget      float64 `json:"budget,omitempty"`
	Description string  `json:"description,omitempty"`
}

type GetProjectParams struct {
	Code string `json:"code"`
}

type ListProjectsParams struct {
	ActiveOnly bool   `json:"active_only,omitempty"`
	Search     string `json:"search,omitempty"`
}

type UpdateProjectParams struct {
	Code        string   `json:"code"`
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`
	Description *string  `json:"description,omitempty"`
}

type DeleteProjectParams struct {
	Code string `json:"code"`
}

type SetBudgetParams struct {
	Code   string  `json:"code"`
	Budget float64 `json:"budget"`
}

type GenerateProjectCodeParams struct {
	Category string `json:"category"`
}

type ListProjectsResponse struct {
	Projects []project.Project `json:"projects"`
}

type DeleteProjectResponse struct {
	Project  *project.Project `json:"project,omitempty"`
	Archived bool             `json:"archived"`
}

type GenerateProjectCodeResponse struct {
	Code string `json:"code"`
}

type BudgetStatusResponse struct {
	ProjectCode string               `json:"project_code"`
	Status      project.BudgetStatus `json:"status"`
}

// Time logs

type LogTimeParams struct {
	ProjectCode      string `json:"project_code"`
	TimeSpentSeconds int64  `json:"time_spent_seconds"`
	Timestamp        string `json:"timestamp,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

type ListTimeLogsParams struct {
	ProjectCode string `json:"project_code,omitempty"`
}

type EditTimeLogParams struct {
	ID               string `json:"id"`
	ProjectCode      string `json:"project_code"`
	TimeSpentSeconds int64  `json:"time_spent_seconds"`
	Notes            string `json:"notes,omitempty"`
}

type DeleteTimeLogParams struct {
	ID string `json:"id"`
}

type UsageStatsParams struct {
	ProjectCode string `json:"project_code"`
}

type ListTimeLogsResponse struct {
	Entries []timelog.Entry `json:"entries"`
}

type DeleteTimeLogResponse struct {
	Deleted bool `json:"deleted"`
}

type UsageStatsResponse struct {
	ProjectCode string             `json:"project_code"`
	Stats       timelog.UsageStats `json:"stats"`
}

// Events

type ListEventsParams struct {
	Type        string `json:"type,omitempty"`
	ProjectCode string `json:"project_code,omitempty"`
	Username    string `json:"username,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

type ListEventsResponse struct {
	Events []event.Entry `json:"events"`
}

type ClearedResponse struct {
	Cleared bool `json:"cleared"`
}

// Alerts

type MarkAlertReadParams struct {
	ID string `json:"id"`
}

type ListAlertsResponse struct {
	Alerts      []alert.Alert `json:"alerts"`
	UnreadCount int           `json:"unread_count"`
}

type CheckAlertsResponse struct {
	Triggered []alert.Alert `json:"triggered"`
}

type MarkAlertReadResponse struct {
	Alert *alert.Alert `json:"alert"`
}

// Forecasting

type BudgetForecastParams struct {
	ProjectCode string `json:"project_code"`
	HorizonDays int    `json:"horizon_days,omitempty"`
}

type CompletionForecastParams struct {
	ProjectCode string `json:"project_code"`
}

type ResourceDemandParams struct {
	HorizonDays int `json:"horizon_days,omitempty"`
}

type BudgetForecastResponse struct {
	Forecast *forecast.Budget `json:"forecast"`
	Reason   string           `json:"reason,omitempty"`
}

type CompletionForecastResponse struct {
	Forecast *forecast.Completion `json:"forecast"`
	Reason   string               `json:"reason,omitempty"`
}

// Export

type ExportForecastParams struct {
	HorizonDays     int    `json:"horizon_days,omitempty"`
	SelectedProject string `json:"selected_project,omitempty"`
}

type ExportForecastResponse struct {
	Filename string `json:"filename"`
	CSV      string `json:"csv"`
}
