package mcp

import (
	"context"
	"log/slog"

	"github.com/ganot/tempus-mcp/internal/domain/alert"
	"github.com/ganot/tempus-mcp/internal/domain/event"
	"github.com/ganot/tempus-mcp/internal/domain/forecast"
	"github.com/ganot/tempus-mcp/internal/domain/project"
	"github.com/ganot/tempus-mcp/internal/domain/timelog"
	"github.com/ganot/tempus-mcp/internal/domain/timer"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// TimerService defines timer operations needed by MCP.
type TimerService interface {
	Start(ctx context.Context, username string) error
	Pause(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
	Save(ctx context.Context, req timer.SaveRequest) (*timelog.Entry, error)
	SetProject(ctx context.Context, code, username string) (*timelog.Entry, error)
	AcknowledgeIdle()
	Status() timer.Snapshot
}

// ProjectService defines project directory operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	Get(ctx context.Context, code string) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
	ListActive(ctx context.Context) ([]project.Project, error)
	Search(ctx context.Context, term string) ([]project.Project, error)
	Update(ctx context.Context, req project.UpdateRequest) (*project.Project, error)
	Remove(ctx context.Context, code, removedBy string) (*project.Project, error)
	SetBudget(ctx context.Context, code string, budget float64, setBy string) (*project.Project, error)
	BudgetStatusFor(ctx context.Context, code string) (project.BudgetStatus, error)
	GenerateCode(ctx context.Context, category string) (string, error)
}

// TimeLogService defines time log operations needed by MCP.
type TimeLogService interface {
	Add(ctx context.Context, req timelog.AddRequest) (*timelog.Entry, error)
	List(ctx context.Context) ([]timelog.Entry, error)
	ListByProject(ctx context.Context, projectCode string) ([]timelog.Entry, error)
	Edit(ctx context.Context, req timelog.EditRequest) (*timelog.Entry, error)
	Delete(ctx context.Context, id, username string) error
	UsageStats(ctx context.Context, projectCode string) (timelog.UsageStats, error)
}

// EventService defines event log operations needed by MCP.
type EventService interface {
	List(ctx context.Context, opts event.ListOptions) ([]event.Entry, error)
	Clear(ctx context.Context) error
}

// AlertService defines budget alert operations needed by MCP.
type AlertService interface {
	CheckAndRecord(ctx context.Context) ([]alert.Alert, error)
	List(ctx context.Context) ([]alert.Alert, error)
	MarkRead(ctx context.Context, id string) (*alert.Alert, error)
	ClearAll(ctx context.Context) error
	UnreadCount(ctx context.Context) (int, error)
}

// ForecastService defines forecasting operations needed by MCP.
type ForecastService interface {
	BudgetForecast(ctx context.Context, projectCode string, horizonDays int) (*forecast.Budget, error)
	CompletionForecast(ctx context.Context, projectCode string) (*forecast.Completion, error)
	ResourceDemand(ctx context.Context, horizonDays int) (*forecast.Demand, error)
	PortfolioSummary(ctx context.Context) (*forecast.Summary, error)
}

// ExportService defines data export operations needed by MCP.
type ExportService interface {
	Filename() string
	ForecastCSV(ctx context.Context, horizonDays int, selectedProject string) (string, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Timer     TimerService
	Projects  ProjectService
	TimeLogs  TimeLogService
	Events    EventService
	Alerts    AlertService
	Forecasts ForecastService
	Export    ExportService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      UserResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "tempus",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio mode: always disable auth (local dev only)
	if cfg.TransportMode == "stdio" {
		server.AddReceivingMiddleware(noAuthMiddleware("default"))
	} else {
		if cfg.AuthEnabled {
			server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
		} else {
			server.AddReceivingMiddleware(noAuthMiddleware("default"))
		}
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
