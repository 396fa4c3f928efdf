package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ganot/tempus-mcp/internal/domain/project"
	"github.com/ganot/tempus-mcp/internal/domain/timelog"
	"github.com/ganot/tempus-mcp/internal/domain/timer"
	"github.com/ganot/tempus-mcp/internal/storage"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show persisted timer state and unread alert count",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()
		ctx := cmd.Context()

		raw, err := e.kv.Get(ctx, storage.KeyTimerState)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			fmt.Println("timer: no persisted state")
		case err != nil:
			return err
		default:
			var state timer.State
			if err := json.Unmarshal(raw, &state); err != nil {
				return fmt.Errorf("decoding timer state: %w", err)
			}
			if state.Running && state.StartedAtEpochMs != nil {
				started := time.UnixMilli(*state.StartedAtEpochMs)
				elapsed := int64(time.Since(started) / time.Second)
				fmt.Printf("timer: running, %s elapsed (started %s)\n",
					timelog.FormatDuration(elapsed), started.Format(time.RFC3339))
			} else {
				fmt.Printf("timer: stopped at %s\n", timelog.FormatDuration(state.ElapsedSeconds))
			}
		}

		if raw, err := e.kv.Get(ctx, storage.KeyCurrentProject); err == nil {
			fmt.Printf("selected project: %s\n", string(raw))
		}

		unread, err := e.alerts.UnreadCount(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("unread budget alerts: %d\n", unread)
		return nil
	},
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects with budget consumption",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()
		ctx := cmd.Context()

		projects, err := e.projects.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range projects {
			status, err := e.projects.BudgetStatusFor(ctx, p.Code)
			if err != nil {
				return err
			}
			if status.Status == project.BudgetNone {
				fmt.Printf("%-14s %-30s %-10s no budget\n", p.Code, p.Name, p.Status)
				continue
			}
			fmt.Printf("%-14s %-30s %-10s %6.1f/%.1fh (%5.1f%%, %s)\n",
				p.Code, p.Name, p.Status, status.Used, status.Budget, status.Percentage, status.Status)
		}
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the portfolio forecast report",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()
		ctx := cmd.Context()

		days, _ := cmd.Flags().GetInt("days")
		summary, err := e.forecasts.PortfolioSummary(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("projects with budgets: %d\ncritical: %d\ndelayed: %d\npredicted hours: %.2f\n\n",
			summary.TotalProjects, summary.CriticalProjects, summary.DelayedProjects, summary.TotalPredictedHours)

		demand, err := e.forecasts.ResourceDemand(ctx, days)
		if err != nil {
			return err
		}
		for _, f := range demand.ProjectForecasts {
			exhaustion := "-"
			trend := "-"
			if f.BudgetForecast != nil {
				trend = string(f.BudgetForecast.Trend)
				if f.BudgetForecast.ExhaustionDays != nil {
					exhaustion = fmt.Sprintf("%dd", *f.BudgetForecast.ExhaustionDays)
				}
			}
			fmt.Printf("%-14s priority=%-8s exhaustion=%-6s trend=%s\n",
				f.ProjectCode, f.Priority, exhaustion, trend)
		}
		for _, r := range demand.Recommendations {
			fmt.Printf("[%s] %s: %s %v\n", r.Severity, r.Type, r.Message, r.Projects)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the forecasting CSV export to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()
		ctx := cmd.Context()

		days, _ := cmd.Flags().GetInt("days")
		selected, _ := cmd.Flags().GetString("project")
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = e.exporter.Filename()
		}

		csv, err := e.exporter.ForecastCSV(ctx, days, selected)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, []byte(csv), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		fmt.Printf("wrote %s\n", out)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the default project directory (no-op if projects exist)",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		if err := e.projects.Seed(cmd.Context(), project.DefaultProjects(time.Now())); err != nil {
			return err
		}
		projects, err := e.projects.List(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("project directory has %d projects\n", len(projects))
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage API users",
}

var userAddCmd = &cobra.Command{
	Use:   "add <username> <token>",
	Short: "Register a bearer token for a username",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		sum := sha256.Sum256([]byte(args[1]))
		hash := hex.EncodeToString(sum[:])
		_, err = e.db.ExecContext(cmd.Context(),
			`INSERT INTO api_users (token_hash, username) VALUES (?, ?)
			 ON CONFLICT(token_hash) DO UPDATE SET username = excluded.username`,
			hash, args[0])
		if err != nil {
			return fmt.Errorf("registering user: %w", err)
		}
		fmt.Printf("registered token for %s\n", args[0])
		return nil
	},
}

func init() {
	reportCmd.Flags().Int("days", 30, "forecast horizon in days")
	exportCmd.Flags().Int("days", 30, "forecast horizon in days")
	exportCmd.Flags().String("project", "", "append a detailed section for this project code")
	exportCmd.Flags().String("out", "", "output path (default: dated filename)")
	userCmd.AddCommand(userAddCmd)
}
