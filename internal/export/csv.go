// Package export renders forecasting results as the sectioned CSV layout
// used for spreadsheet handoff: a titled header, then Metric,Value and
// tabular sections separated by blank lines.
package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ganot/tempus-mcp/internal/domain/forecast"
)

// Forecaster is the slice of the forecasting service the exporter needs.
type Forecaster interface {
	PortfolioSummary(ctx context.Context) (*forecast.Summary, error)
	ResourceDemand(ctx context.Context, horizonDays int) (*forecast.Demand, error)
	BudgetForecast(ctx context.Context, projectCode string, horizonDays int) (*forecast.Budget, error)
	CompletionForecast(ctx context.Context, projectCode string) (*forecast.Completion, error)
}

// Exporter builds forecasting CSV documents.
type Exporter struct {
	forecaster Forecaster
	now        func() time.Time
}

func NewExporter(forecaster Forecaster) *Exporter {
	return &Exporter{forecaster: forecaster, now: time.Now}
}

// SetNow overrides the clock. Intended for tests.
func (e *Exporter) SetNow(now func() time.Time) {
	e.now = now
}

// Filename returns the dated export filename, e.g.
// forecasting-data-2026-08-28.csv.
func (e *Exporter) Filename() string {
	return fmt.Sprintf("forecasting-data-%s.csv", e.now().UTC().Format("2006-01-02"))
}

// ForecastCSV renders the portfolio forecast. When selectedProject is
// non-empty a detailed section for that project is appended.
func (e *Exporter) ForecastCSV(ctx context.Context, horizonDays int, selectedProject string) (string, error) {
	summary, err := e.forecaster.PortfolioSummary(ctx)
	if err != nil {
		return "", fmt.Errorf("building summary: %w", err)
	}
	demand, err := e.forecaster.ResourceDemand(ctx, horizonDays)
	if err != nil {
		return "", fmt.Errorf("building resource demand: %w", err)
	}

	var b strings.Builder
	b.WriteString("Forecasting Data Export\n")
	fmt.Fprintf(&b, "Generated: %s\n", e.now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Forecast Period: %d days\n\n", horizonDays)

	b.WriteString("SUMMARY STATISTICS\n")
	b.WriteString("Metric,Value\n")
	fmt.Fprintf(&b, "Total Projects,%d\n", summary.TotalProjects)
	fmt.Fprintf(&b, "Critical Projects,%d\n", summary.CriticalProjects)
	fmt.Fprintf(&b, "Delayed Projects,%d\n", summary.DelayedProjects)
	fmt.Fprintf(&b, "Total Predicted Hours,%.1f\n\n", summary.TotalPredictedHours)

	if len(demand.ProjectForecasts) > 0 {
		b.WriteString("PROJECT FORECASTS\n")
		b.WriteString("Project Code,Project Name,Current Budget (hours),Predicted Usage (hours),Budget Variance,Completion Date,Priority\n")
		for _, f := range demand.ProjectForecasts {
			var predicted, variance float64
			if f.BudgetForecast != nil {
				predicted = f.BudgetForecast.PredictedTotalUsage
				variance = f.BudgetForecast.Variance
			}
			completion := "N/A"
			if f.CompletionForecast != nil && f.CompletionForecast.CompletionDate != nil {
				completion = f.CompletionForecast.CompletionDate.UTC().Format("2006-01-02")
			}
			var budget float64
			if f.BudgetForecast != nil {
				budget = f.BudgetForecast.CurrentBudget
			}
			fmt.Fprintf(&b, "%s,%q,%.1f,%.1f,%.1f,%s,%s\n",
				f.ProjectCode, f.ProjectName, budget, predicted, variance, completion, f.Priority)
		}
		b.WriteString("\n")
	}

	if len(demand.Recommendations) > 0 {
		b.WriteString("RECOMMENDATIONS\n")
		b.WriteString("Type,Severity,Message,Projects\n")
		for _, r := range demand.Recommendations {
			fmt.Fprintf(&b, "%s,%s,%q,%q\n", r.Type, r.Severity, r.Message, strings.Join(r.Projects, " "))
		}
		b.WriteString("\n")
	}

	if selectedProject != "" {
		if err := e.writeProjectDetail(ctx, &b, selectedProject, horizonDays); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

func (e *Exporter) writeProjectDetail(ctx context.Context, b *strings.Builder, projectCode string, horizonDays int) error {
	budget, err := e.forecaster.BudgetForecast(ctx, projectCode, horizonDays)
	if err != nil {
		return fmt.Errorf("building budget forecast for %s: %w", projectCode, err)
	}
	completion, err := e.forecaster.CompletionForecast(ctx, projectCode)
	if err != nil {
		return fmt.Errorf("building completion forecast for %s: %w", projectCode, err)
	}

	if budget != nil {
		b.WriteString("SELECTED PROJECT DETAILED FORECAST\n")
		b.WriteString("Project Code,Project Name,Current Budget,Predicted Usage,Variance,Trend\n")
		fmt.Fprintf(b, "%s,%q,%.1f,%.1f,%.1f,%s\n\n",
			budget.ProjectCode, budget.ProjectName, budget.CurrentBudget,
			budget.PredictedTotalUsage, budget.Variance, budget.Trend)
	}

	if completion != nil {
		b.WriteString("COMPLETION FORECAST DETAILS\n")
		b.WriteString("Metric,Value\n")
		fmt.Fprintf(b, "Current Progress,%.1f%%\n", completion.CurrentProgress)
		date := "N/A"
		if completion.CompletionDate != nil {
			date = completion.CompletionDate.UTC().Format("2006-01-02")
		}
		fmt.Fprintf(b, "Predicted Completion Date,%s\n", date)
		days := "N/A"
		if completion.DaysToCompletion != nil {
			days = fmt.Sprintf("%d", *completion.DaysToCompletion)
		}
		fmt.Fprintf(b, "Days Remaining,%s\n", days)
		fmt.Fprintf(b, "Trend,%s\n\n", completion.Trend)
	}

	if budget != nil && len(budget.HistoricalData) > 0 {
		b.WriteString("HISTORICAL DATA (Selected Project)\n")
		b.WriteString("Day Offset,Hours Logged,Moving Average\n")
		for i, hours := range budget.HistoricalData {
			avg := 0.0
			if i < len(budget.MovingAverage) {
				avg = budget.MovingAverage[i]
			}
			fmt.Fprintf(b, "%d,%.2f,%.2f\n", i, hours, avg)
		}
	}

	return nil
}
