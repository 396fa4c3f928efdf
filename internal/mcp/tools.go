package mcp

import (
	"context"
	"time"

	"github.com/ganot/tempus-mcp/internal/domain/event"
	"github.com/ganot/tempus-mcp/internal/domain/forecast"
	"github.com/ganot/tempus-mcp/internal/domain/project"
	"github.com/ganot/tempus-mcp/internal/domain/timelog"
	"github.com/ganot/tempus-mcp/internal/domain/timer"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools wires every tool handler to the domain services.
// CallToolResult lets the SDK marshal the typed response as structured
// content.
func registerTools(server *sdkmcp.Server, svcs Services) {
	registerTimerTools(server, svcs)
	registerProjectTools(server, svcs)
	registerTimeLogTools(server, svcs)
	registerEventTools(server, svcs)
	registerAlertTools(server, svcs)
	registerForecastTools(server, svcs)
	registerExportTools(server, svcs)
}

func registerTimerTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "start_timer",
		Description: "Start the timer from zero for the currently selected project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, TimerStatusResponse, error) {
		if err := svcs.Timer.Start(ctx, getUsername(ctx)); err != nil {
			return nil, TimerStatusResponse{}, toolError(err)
		}
		return nil, timerStatus(svcs), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "pause_timer",
		Description: "Pause the running timer, freezing the elapsed time",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, TimerStatusResponse, error) {
		if err := svcs.Timer.Pause(ctx, getUsername(ctx)); err != nil && !timer.IsNoOp(err) {
			return nil, TimerStatusResponse{}, toolError(err)
		}
		return nil, timerStatus(svcs), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reset_timer",
		Description: "Reset the timer to zero, discarding unsaved time",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, TimerStatusResponse, error) {
		if err := svcs.Timer.Reset(ctx, getUsername(ctx)); err != nil {
			return nil, TimerStatusResponse{}, toolError(err)
		}
		return nil, timerStatus(svcs), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_timer",
		Description: "Save the accrued timer duration as a time log entry and reset the timer. Saving with zero elapsed time is a no-op.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params SaveTimerParams) (*sdkmcp.CallToolResult, SaveTimerResponse, error) {
		entry, err := svcs.Timer.Save(ctx, timer.SaveRequest{
			Username:     getUsername(ctx),
			Notes:        params.Notes,
			ConfirmStale: params.ConfirmStale,
		})
		if err != nil {
			return nil, SaveTimerResponse{}, toolError(err)
		}
		return nil, SaveTimerResponse{Saved: entry != nil, Entry: entry}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "timer_status",
		Description: "Get the current timer state: running flag, elapsed time, selected project, idle alert",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, TimerStatusResponse, error) {
		return nil, timerStatus(svcs), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "select_project",
		Description: "Select the project the timer tracks against. Switching while running auto-saves accrued time to the previous project and restarts at zero.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params SelectProjectParams) (*sdkmcp.CallToolResult, SelectProjectResponse, error) {
		saved, err := svcs.Timer.SetProject(ctx, params.ProjectCode, getUsername(ctx))
		if err != nil {
			return nil, SelectProjectResponse{}, toolError(err)
		}
		return nil, SelectProjectResponse{ProjectCode: params.ProjectCode, AutoSaved: saved}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "acknowledge_idle",
		Description: "Dismiss the idle alert and mark the timer as active again",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, TimerStatusResponse, error) {
		svcs.Timer.AcknowledgeIdle()
		return nil, timerStatus(svcs), nil
	})
}

func timerStatus(svcs Services) TimerStatusResponse {
	snap := svcs.Timer.Status()
	return TimerStatusResponse{
		Running:        snap.Running,
		ElapsedSeconds: snap.ElapsedSeconds,
		FormattedTime:  snap.FormattedTime,
		ProjectCode:    snap.ProjectCode,
		StartedAt:      snap.StartedAt,
		IdleAlert:      snap.IdleAlert,
	}
}

func registerProjectTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a project. Code must match PREFIX-NNN (e.g. DEV-001); omit it to have one generated from the category.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params CreateProjectParams) (*sdkmcp.CallToolResult, *project.Project, error) {
		code := params.Code
		if code == "" {
			generated, err := svcs.Projects.GenerateCode(ctx, params.Category)
			if err != nil {
				return nil, nil, toolError(err)
			}
			code = generated
		}
		proj, err := svcs.Projects.Create(ctx, project.CreateRequest{
			Code:        code,
			Name:        params.Name,
			Category:    params.Category,
			Budget:      params.Budget,
			Description: params.Description,
			CreatedBy:   getUsername(ctx),
		})
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a project by code",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params GetProjectParams) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := svcs.Projects.Get(ctx, params.Code)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List projects, optionally restricted to active ones or filtered by a search term",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params ListProjectsParams) (*sdkmcp.CallToolResult, ListProjectsResponse, error) {
		var (
			projects []project.Project
			err      error
		)
		switch {
		case params.Search != "":
			projects, err = svcs.Projects.Search(ctx, params.Search)
		case params.ActiveOnly:
			projects, err = svcs.Projects.ListActive(ctx)
		default:
			projects, err = svcs.Projects.List(ctx)
		}
		if err != nil {
			return nil, ListProjectsResponse{}, toolError(err)
		}
		return nil, ListProjectsResponse{Projects: projects}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_project",
		Description: "Update a project's name, category, status, budget, or description",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params UpdateProjectParams) (*sdkmcp.CallToolResult, *project.Project, error) {
		req := project.UpdateRequest{
			Code:        params.Code,
			Name:        params.Name,
			Category:    params.Category,
			Budget:      params.Budget,
			Description: params.Description,
			UpdatedBy:   getUsername(ctx),
		}
		if params.Status != nil {
			status := project.Status(*params.Status)
			req.Status = &status
		}
		proj, err := svcs.Projects.Update(ctx, req)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project. Projects with logged time are archived instead of removed.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params DeleteProjectParams) (*sdkmcp.CallToolResult, DeleteProjectResponse, error) {
		proj, err := svcs.Projects.Remove(ctx, params.Code, getUsername(ctx))
		if err != nil {
			return nil, DeleteProjectResponse{}, toolError(err)
		}
		archived := proj != nil && proj.Status == project.StatusArchived
		return nil, DeleteProjectResponse{Project: proj, Archived: archived}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_project_budget",
		Description: "Set a project's budget in hours and reevaluate budget alerts",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params SetBudgetParams) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := svcs.Projects.SetBudget(ctx, params.Code, params.Budget, getUsername(ctx))
		if err != nil {
			return nil, nil, toolError(err)
		}
		if _, err := svcs.Alerts.CheckAndRecord(ctx); err != nil {
			return nil, nil, toolError(err)
		}
		return nil, proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_budget_status",
		Description: "Get a project's budget consumption: status, percentage used, hours used and remaining",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params GetProjectParams) (*sdkmcp.CallToolResult, BudgetStatusResponse, error) {
		status, err := svcs.Projects.BudgetStatusFor(ctx, params.Code)
		if err != nil {
			return nil, BudgetStatusResponse{}, toolError(err)
		}
		return nil, BudgetStatusResponse{ProjectCode: params.Code, Status: status}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "generate_project_code",
		Description: "Generate the next available project code for a category (e.g. Development -> DEV-004)",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params GenerateProjectCodeParams) (*sdkmcp.CallToolResult, GenerateProjectCodeResponse, error) {
		code, err := svcs.Projects.GenerateCode(ctx, params.Category)
		if err != nil {
			return nil, GenerateProjectCodeResponse{}, toolError(err)
		}
		return nil, GenerateProjectCodeResponse{Code: code}, nil
	})
}

func registerTimeLogTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "log_time",
		Description: "Record a manual time log entry against a project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params LogTimeParams) (*sdkmcp.CallToolResult, *timelog.Entry, error) {
		req := timelog.AddRequest{
			ProjectCode:      params.ProjectCode,
			TimeSpentSeconds: params.TimeSpentSeconds,
			Username:         getUsername(ctx),
			Notes:            params.Notes,
		}
		if params.Timestamp != "" {
			ts, err := time.Parse(time.RFC3339, params.Timestamp)
			if err != nil {
				return nil, nil, &APIError{Code: "INVALID_TIMESTAMP", Message: "timestamp must be RFC 3339", RecoveryHint: "Use e.g. 2026-08-28T09:00:00Z"}
			}
			req.Timestamp = ts
		}
		entry, err := svcs.TimeLogs.Add(ctx, req)
		if err != nil {
			return nil, nil, toolError(err)
		}
		if _, err := svcs.Alerts.CheckAndRecord(ctx); err != nil {
			return nil, nil, toolError(err)
		}
		return nil, entry, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_time_logs",
		Description: "List time log entries, optionally filtered by project code",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params ListTimeLogsParams) (*sdkmcp.CallToolResult, ListTimeLogsResponse, error) {
		var (
			entries []timelog.Entry
			err     error
		)
		if params.ProjectCode != "" {
			entries, err = svcs.TimeLogs.ListByProject(ctx, params.ProjectCode)
		} else {
			entries, err = svcs.TimeLogs.List(ctx)
		}
		if err != nil {
			return nil, ListTimeLogsResponse{}, toolError(err)
		}
		return nil, ListTimeLogsResponse{Entries: entries}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "edit_time_log",
		Description: "Edit an existing time log entry's project, duration, or notes",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params EditTimeLogParams) (*sdkmcp.CallToolResult, *timelog.Entry, error) {
		entry, err := svcs.TimeLogs.Edit(ctx, timelog.EditRequest{
			ID:               params.ID,
			ProjectCode:      params.ProjectCode,
			TimeSpentSeconds: params.TimeSpentSeconds,
			Notes:            params.Notes,
			Username:         getUsername(ctx),
		})
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, entry, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_time_log",
		Description: "Delete a time log entry by ID",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params DeleteTimeLogParams) (*sdkmcp.CallToolResult, DeleteTimeLogResponse, error) {
		if err := svcs.TimeLogs.Delete(ctx, params.ID, getUsername(ctx)); err != nil {
			return nil, DeleteTimeLogResponse{}, toolError(err)
		}
		return nil, DeleteTimeLogResponse{Deleted: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_usage_stats",
		Description: "Get aggregated usage for a project: total hours, entry count, unique users, last activity",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params UsageStatsParams) (*sdkmcp.CallToolResult, UsageStatsResponse, error) {
		stats, err := svcs.TimeLogs.UsageStats(ctx, params.ProjectCode)
		if err != nil {
			return nil, UsageStatsResponse{}, toolError(err)
		}
		return nil, UsageStatsResponse{ProjectCode: params.ProjectCode, Stats: stats}, nil
	})
}

func registerEventTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_events",
		Description: "List audit trail events newest first, optionally filtered by type, project, or user",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params ListEventsParams) (*sdkmcp.CallToolResult, ListEventsResponse, error) {
		events, err := svcs.Events.List(ctx, event.ListOptions{
			Type:        event.Type(params.Type),
			ProjectCode: params.ProjectCode,
			Username:    params.Username,
			Limit:       params.Limit,
		})
		if err != nil {
			return nil, ListEventsResponse{}, toolError(err)
		}
		return nil, ListEventsResponse{Events: events}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "clear_events",
		Description: "Clear the entire event log",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, ClearedResponse, error) {
		if err := svcs.Events.Clear(ctx); err != nil {
			return nil, ClearedResponse{}, toolError(err)
		}
		return nil, ClearedResponse{Cleared: true}, nil
	})
}

func registerAlertTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_alerts",
		Description: "List budget alerts newest first with the unread count",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, ListAlertsResponse, error) {
		alerts, err := svcs.Alerts.List(ctx)
		if err != nil {
			return nil, ListAlertsResponse{}, toolError(err)
		}
		unread, err := svcs.Alerts.UnreadCount(ctx)
		if err != nil {
			return nil, ListAlertsResponse{}, toolError(err)
		}
		return nil, ListAlertsResponse{Alerts: alerts, UnreadCount: unread}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "check_budget_alerts",
		Description: "Reevaluate budget thresholds for every project with a budget and record any triggered alerts",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, CheckAlertsResponse, error) {
		triggered, err := svcs.Alerts.CheckAndRecord(ctx)
		if err != nil {
			return nil, CheckAlertsResponse{}, toolError(err)
		}
		return nil, CheckAlertsResponse{Triggered: triggered}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "mark_alert_read",
		Description: "Mark a budget alert as read",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params MarkAlertReadParams) (*sdkmcp.CallToolResult, MarkAlertReadResponse, error) {
		marked, err := svcs.Alerts.MarkRead(ctx, params.ID)
		if err != nil {
			return nil, MarkAlertReadResponse{}, toolError(err)
		}
		return nil, MarkAlertReadResponse{Alert: marked}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "clear_alerts",
		Description: "Clear the entire budget alert ledger",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, ClearedResponse, error) {
		if err := svcs.Alerts.ClearAll(ctx); err != nil {
			return nil, ClearedResponse{}, toolError(err)
		}
		return nil, ClearedResponse{Cleared: true}, nil
	})
}

func registerForecastTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "forecast_budget",
		Description: "Project a budgeted project's spend over a horizon: daily rate, exhaustion date, variance, trend",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params BudgetForecastParams) (*sdkmcp.CallToolResult, BudgetForecastResponse, error) {
		fc, err := svcs.Forecasts.BudgetForecast(ctx, params.ProjectCode, params.HorizonDays)
		if err != nil {
			return nil, BudgetForecastResponse{}, toolError(err)
		}
		resp := BudgetForecastResponse{Forecast: fc}
		if fc == nil {
			resp.Reason = "no forecast available: project has no budget or insufficient history"
		}
		return nil, resp, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "forecast_completion",
		Description: "Project when a budgeted project's remaining work will complete",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params CompletionForecastParams) (*sdkmcp.CallToolResult, CompletionForecastResponse, error) {
		fc, err := svcs.Forecasts.CompletionForecast(ctx, params.ProjectCode)
		if err != nil {
			return nil, CompletionForecastResponse{}, toolError(err)
		}
		resp := CompletionForecastResponse{Forecast: fc}
		if fc == nil {
			resp.Reason = "no forecast available: project has no budget or insufficient history"
		}
		return nil, resp, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "forecast_resource_demand",
		Description: "Forecast resource demand across all active budgeted projects: priorities, utilisation, recommendations",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params ResourceDemandParams) (*sdkmcp.CallToolResult, *forecast.Demand, error) {
		demand, err := svcs.Forecasts.ResourceDemand(ctx, params.HorizonDays)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, demand, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "forecast_summary",
		Description: "Get the condensed portfolio forecast: totals, critical and delayed project counts",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, *forecast.Summary, error) {
		summary, err := svcs.Forecasts.PortfolioSummary(ctx)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, summary, nil
	})
}

func registerExportTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_forecast_csv",
		Description: "Export forecasting data as sectioned CSV, optionally with a detailed section for one project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params ExportForecastParams) (*sdkmcp.CallToolResult, ExportForecastResponse, error) {
		csv, err := svcs.Export.ForecastCSV(ctx, params.HorizonDays, params.SelectedProject)
		if err != nil {
			return nil, ExportForecastResponse{}, toolError(err)
		}
		return nil, ExportForecastResponse{Filename: svcs.Export.Filename(), CSV: csv}, nil
	})
}
