// tempusctl is the operator CLI: inspect timer and budget state, seed
// default projects, run forecast reports, and export CSV without going
// through the MCP transport.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ganot/tempus-mcp/internal/config"
	"github.com/ganot/tempus-mcp/internal/domain/alert"
	"github.com/ganot/tempus-mcp/internal/domain/event"
	"github.com/ganot/tempus-mcp/internal/domain/forecast"
	"github.com/ganot/tempus-mcp/internal/domain/project"
	"github.com/ganot/tempus-mcp/internal/domain/timelog"
	"github.com/ganot/tempus-mcp/internal/export"
	"github.com/ganot/tempus-mcp/internal/localstore"
	"github.com/ganot/tempus-mcp/internal/sqlite"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tempusctl",
	Short: "Operate a tempus timesheet database",
	Long: `tempusctl works directly against the tempus database configured via
TEMPUS_DB_PATH (or a TEMPUS_CONFIG_PATH yaml file), bypassing the MCP
transport. Useful for bootstrap, reporting, and exports.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(statusCmd, projectsCmd, reportCmd, exportCmd, seedCmd, userCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// env bundles the services a command needs, built over the configured DB.
type env struct {
	db        *sqlite.DB
	kv        *sqlite.KV
	projects  *project.Service
	timeLogs  *timelog.Service
	events    *event.Service
	alerts    *alert.Service
	forecasts *forecast.Service
	exporter  *export.Exporter
}

func newEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	kv := sqlite.NewKV(db)
	eventSvc := event.NewService(localstore.NewEventLogStore(kv), logger)
	timeLogSvc := timelog.NewService(localstore.NewTimeLogStore(kv), eventSvc, logger)
	projectSvc := project.NewService(localstore.NewProjectStore(kv), timeLogSvc, eventSvc, project.Thresholds{
		Warning:  cfg.Tracking.BudgetWarning,
		Exceeded: cfg.Tracking.BudgetExceeded,
	}, logger)
	alertSvc := alert.NewService(localstore.NewAlertStore(kv), projectSvc, logger)
	forecastSvc := forecast.NewService(projectSvc, timeLogSvc, forecast.Options{
		HistoryDays:         cfg.Forecast.HistoryDays,
		HorizonDays:         cfg.Forecast.HorizonDays,
		MovingAverageWindow: cfg.Forecast.MovingAverageWindow,
		IncreasingThreshold: cfg.Forecast.IncreasingThreshold,
		StableThreshold:     cfg.Forecast.StableThreshold,
	}, logger)

	return &env{
		db:        db,
		kv:        kv,
		projects:  projectSvc,
		timeLogs:  timeLogSvc,
		events:    eventSvc,
		alerts:    alertSvc,
		forecasts: forecastSvc,
		exporter:  export.NewExporter(forecastSvc),
	}, nil
}

func (e *env) close() {
	e.db.Close()
}
