package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `tempus tracks time against projects with budgets, and forecasts spend.

Core concepts (keep this mental model small):
- Project: code like DEV-001 with a name, category, status, and an hour budget.
- Timer: a single stopwatch tied to the selected project. It survives restarts by reconstructing elapsed time from wall-clock timestamps.
- TimeLogEntry: a saved duration against a project. Created by save_timer, project switches, or log_time.
- EventLog: append-only audit trail of timer, project, and budget activity.
- BudgetAlert: raised when a project crosses 80% (warning) or 100% (exceeded) of its budget.
- Forecasts: pure reads over the time log history; they never modify state.

Rules of engagement (default workflow):
1) Orient: timer_status and list_projects (active_only=true) to see where things stand.
2) Track: select_project, then start_timer / pause_timer. Switching projects while running auto-saves the accrued time to the old project.
3) Commit: save_timer to persist the duration as a time log entry. A save rejected with STALE_TIMER_ENTRY means the timer ran for over a day; retry with confirm_stale=true or reset_timer.
4) Administer: create_project / update_project / set_project_budget; get_budget_status for consumption.
5) Analyze: forecast_budget / forecast_completion per project, forecast_resource_demand for the portfolio, export_forecast_csv for spreadsheets.
6) Audit: list_events for the trail, list_alerts / mark_alert_read for budget alerts.

Docs (progressive disclosure):
- tempus://docs/index (what to read when)
- tempus://docs/timer (timer state machine and recovery)
- tempus://docs/forecasting (how projections are computed)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "tempus://docs/index",
		Name:        "docs_index",
		Title:       "tempus docs index",
		Description: "Entry point for agent-facing docs: what exists and what to read.",
		Content: `# tempus: Agent Docs Index

This server is designed for **progressive disclosure**: keep your baseline context small and load deeper docs only when needed.

## Quick start (no deep docs)

1. ` + "`timer_status`" + ` and ` + "`list_projects`" + ` to orient.
2. ` + "`select_project`" + ` then ` + "`start_timer`" + ` to track.
3. ` + "`save_timer`" + ` to commit accrued time as a log entry.
4. ` + "`get_budget_status`" + ` and ` + "`list_alerts`" + ` to watch budgets.
5. ` + "`forecast_budget`" + ` / ` + "`forecast_resource_demand`" + ` to project spend.

## Docs (read on demand)

- ` + "`tempus://docs/timer`" + `: the timer state machine (persistence, recovery, auto-save on project switch, staleness).
- ` + "`tempus://docs/forecasting`" + `: how the realistic daily rate and the budget/completion projections are computed.

## Capabilities & intentional limitations

- The timer is a single shared stopwatch, not per-user: concurrent writers are out of scope.
- Forecasts need a project budget and at least two days of history; otherwise they return a reason instead of numbers.
`,
	},
	{
		URI:         "tempus://docs/timer",
		Name:        "docs_timer",
		Title:       "Timer state machine",
		Description: "Persistence, recovery, auto-save on project switch, and staleness rules.",
		Content: `# Timer state machine

## States

Stopped(elapsed=0) → Running → Paused(elapsed=N) → Running → … Save commits and returns to Stopped(0).

## Ground truth

A running timer's elapsed time is always ` + "`floor((now - startedAt) / 1s)`" + `, recomputed from the wall clock on every tick. Counting ticks would drift whenever the process is suspended; the wall-clock delta cannot.

On recovery the asymmetry matters: a timer persisted as running resumes from the wall-clock delta (the saved counter is stale), while a stopped timer restores its frozen counter verbatim.

## Project switching

The first project selection after startup only establishes the baseline. A later switch while running with accrued time:

1. Auto-saves the elapsed time against the OLD project (note: "auto-saved when switching to <new>").
2. Emits TIME_AUTO_SAVED.
3. Restarts at zero for the NEW project, atomically. No time is gained or lost across a switch.

## Staleness and idleness

- A save whose start is more than 24h ago is rejected with STALE_TIMER_ENTRY until confirmed with ` + "`confirm_stale=true`" + `.
- A timer running 30+ minutes without activity raises a single idle alert; ` + "`acknowledge_idle`" + ` clears it.

## Failure semantics

Invalid transitions (pause while stopped) are reported no-ops, never fatal. Persistence write failures are logged and swallowed: the timer keeps running, it just won't survive a restart.
`,
	},
	{
		URI:         "tempus://docs/forecasting",
		Name:        "docs_forecasting",
		Title:       "Forecasting engine",
		Description: "Realistic daily rate, budget exhaustion, completion projection, and priority scoring.",
		Content: `# Forecasting engine

All forecasts are pure reads over the trailing 30-day daily-hours series (missing days filled with 0).

## Realistic daily rate

A naive average overweights weekends and holidays. The engine instead computes:

    rate = mean(hours on active days) × (active days / total days)

where an active day logged more than zero hours. This frequency-weighted rate drives every forward projection.

## Budget forecast

Requires a budget and ≥2 days of history. Produces current and predicted usage, remaining budget, ` + "`floor(remaining / rate)`" + ` days to exhaustion (when both are positive), variance against budget, and a trend: rate > 2 h/day is increasing, > 0.5 stable, else decreasing.

## Completion forecast

If usage already meets the budget the project reports completed at 100%. Otherwise ` + "`ceil(remaining / rate)`" + ` days to completion, with accelerating/steady/slowing mirroring the budget trend cutoffs.

## Priority scoring

Per project: +3 if exhaustion ≤7 days (else +2 if ≤14, else +1 if variance >20%), +3 if completion ≤7 days (else +2 if ≤14), +1 if progress >80%. Score ≥5 is critical, ≥3 high, ≥1 medium, else low. Recommendations flag predicted overruns (>10% variance), more than three simultaneous critical projects, and slowing projects.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
