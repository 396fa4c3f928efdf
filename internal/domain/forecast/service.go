package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ganot/tempus-mcp/internal/domain/project"
)

// Options hold the tunable forecasting constants. The trend cutoffs are
// hours per calendar day.
type Options struct {
	HistoryDays         int
	HorizonDays         int
	MovingAverageWindow int
	IncreasingThreshold float64
	StableThreshold     float64
}

func DefaultOptions() Options {
	return Options{
		HistoryDays:         30,
		HorizonDays:         30,
		MovingAverageWindow: 3,
		IncreasingThreshold: 2.0,
		StableThreshold:     0.5,
	}
}

// Service computes budget, completion, and resource demand forecasts.
// Every method is a pure read over the directory and time log history.
type Service struct {
	directory Directory
	history   History
	opts      Options
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(directory Directory, history History, opts Options, logger *slog.Logger) *Service {
	if opts.HistoryDays == 0 {
		opts = DefaultOptions()
	}
	return &Service{
		directory: directory,
		history:   history,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// SetNow overrides the clock. Intended for tests.
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

// BudgetForecast projects spend for one project over horizonDays. It
// returns (nil, nil) when the project has no budget or the history is too
// thin to fit a trend.
func (s *Service) BudgetForecast(ctx context.Context, projectCode string, horizonDays int) (*Budget, error) {
	if horizonDays <= 0 {
		horizonDays = s.opts.HorizonDays
	}

	proj, err := s.directory.Get(ctx, projectCode)
	if err != nil {
		return nil, err
	}
	if proj.Budget == 0 {
		return nil, nil
	}

	historical, err := s.history.DailySeries(ctx, projectCode, s.opts.HistoryDays, s.now())
	if err != nil {
		return nil, fmt.Errorf("loading daily series for %s: %w", projectCode, err)
	}
	if LinearRegression(historical) == nil {
		return nil, nil
	}

	stats, err := s.history.UsageStats(ctx, projectCode)
	if err != nil {
		return nil, fmt.Errorf("loading usage stats for %s: %w", projectCode, err)
	}

	currentUsage := stats.TotalHours
	remaining := proj.Budget - currentUsage
	dailyRate := RealisticDailyRate(historical)
	predictedTotal := currentUsage + dailyRate*float64(horizonDays)

	var exhaustionDays *int
	if remaining > 0 && dailyRate > 0 {
		days := int(math.Floor(remaining / dailyRate))
		exhaustionDays = &days
	}

	variance := predictedTotal - proj.Budget

	return &Budget{
		ProjectCode:         projectCode,
		ProjectName:         proj.Name,
		CurrentBudget:       proj.Budget,
		CurrentUsage:        currentUsage,
		RemainingBudget:     remaining,
		PredictedDailyUsage: math.Max(0, dailyRate),
		PredictedTotalUsage: math.Max(currentUsage, predictedTotal),
		ExhaustionDays:      exhaustionDays,
		Variance:            variance,
		VariancePercentage:  variance / proj.Budget * 100,
		Trend:               s.spendTrend(dailyRate),
		HistoricalData:      historical,
		MovingAverage:       MovingAverage(historical, s.opts.MovingAverageWindow),
	}, nil
}

// CompletionForecast projects when a project's budgeted work runs out.
func (s *Service) CompletionForecast(ctx context.Context, projectCode string) (*Completion, error) {
	proj, err := s.directory.Get(ctx, projectCode)
	if err != nil {
		return nil, err
	}
	if proj.Budget == 0 {
		return nil, nil
	}

	historical, err := s.history.DailySeries(ctx, projectCode, s.opts.HistoryDays, s.now())
	if err != nil {
		return nil, fmt.Errorf("loading daily series for %s: %w", projectCode, err)
	}
	if LinearRegression(historical) == nil {
		return nil, nil
	}

	stats, err := s.history.UsageStats(ctx, projectCode)
	if err != nil {
		return nil, fmt.Errorf("loading usage stats for %s: %w", projectCode, err)
	}

	currentUsage := stats.TotalHours
	remaining := proj.Budget - currentUsage
	now := s.now()

	if remaining <= 0 {
		completedAt := now
		zero := 0
		return &Completion{
			ProjectCode:            projectCode,
			ProjectName:            proj.Name,
			Status:                 "completed",
			CurrentProgress:        100,
			RemainingWork:          0,
			PredictedDailyProgress: 0,
			DaysToCompletion:       &zero,
			CompletionDate:         &completedAt,
			ActualHours:            currentUsage,
			EstimatedHours:         proj.Budget,
			Variance:               currentUsage - proj.Budget,
			Trend:                  TrendCompleted,
		}, nil
	}

	dailyRate := RealisticDailyRate(historical)

	var daysToCompletion *int
	var completionDate *time.Time
	if dailyRate > 0 {
		days := int(math.Ceil(remaining / dailyRate))
		daysToCompletion = &days
		date := now.Add(time.Duration(days) * 24 * time.Hour)
		completionDate = &date
	}

	return &Completion{
		ProjectCode:            projectCode,
		ProjectName:            proj.Name,
		Status:                 "in-progress",
		CurrentProgress:        currentUsage / proj.Budget * 100,
		RemainingWork:          remaining,
		PredictedDailyProgress: math.Max(0, dailyRate),
		DaysToCompletion:       daysToCompletion,
		CompletionDate:         completionDate,
		Trend:                  s.progressTrend(dailyRate),
	}, nil
}

// ResourceDemand forecasts the whole active portfolio: per-project budget
// and completion forecasts, priority ranking, utilisation, and
// recommendations.
func (s *Service) ResourceDemand(ctx context.Context, horizonDays int) (*Demand, error) {
	projects, err := s.directory.List(ctx)
	if err != nil {
		return nil, err
	}

	forecasts := make([]ProjectDemand, 0, len(projects))
	for _, proj := range projects {
		if proj.Status != project.StatusActive || proj.Budget <= 0 {
			continue
		}

		budget, err := s.BudgetForecast(ctx, proj.Code, horizonDays)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("budget forecast failed", "project", proj.Code, "error", err)
			}
			continue
		}
		completion, err := s.CompletionForecast(ctx, proj.Code)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("completion forecast failed", "project", proj.Code, "error", err)
			}
			continue
		}

		forecasts = append(forecasts, ProjectDemand{
			ProjectCode:        proj.Code,
			ProjectName:        proj.Name,
			Category:           proj.Category,
			BudgetForecast:     budget,
			CompletionForecast: completion,
			Priority:           projectPriority(budget, completion),
		})
	}

	var totalPredicted float64
	var critical, high int
	for _, f := range forecasts {
		if f.BudgetForecast != nil {
			totalPredicted += f.BudgetForecast.PredictedTotalUsage
		}
		switch f.Priority {
		case PriorityCritical:
			critical++
		case PriorityHigh:
			high++
		}
	}

	return &Demand{
		TotalPredictedHours:  totalPredicted,
		CriticalProjects:     critical,
		HighPriorityProjects: high,
		ProjectForecasts:     forecasts,
		ResourceUtilisation:  utilisation(forecasts),
		Recommendations:      recommendations(forecasts),
	}, nil
}

// PortfolioSummary condenses the active-portfolio forecasts.
func (s *Service) PortfolioSummary(ctx context.Context) (*Summary, error) {
	projects, err := s.directory.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	var totalPredicted float64
	for _, proj := range projects {
		if proj.Status != project.StatusActive || proj.Budget <= 0 {
			continue
		}
		summary.TotalProjects++

		budget, err := s.BudgetForecast(ctx, proj.Code, 0)
		if err != nil || budget == nil {
			continue
		}
		totalPredicted += budget.PredictedTotalUsage
		if (budget.ExhaustionDays != nil && *budget.ExhaustionDays <= 7) || budget.VariancePercentage > 20 {
			summary.CriticalProjects++
		}

		completion, err := s.CompletionForecast(ctx, proj.Code)
		if err == nil && completion != nil && completion.Trend == TrendSlowing {
			summary.DelayedProjects++
		}
	}
	summary.TotalPredictedHours = math.Round(totalPredicted*100) / 100
	return summary, nil
}

func (s *Service) spendTrend(dailyRate float64) Trend {
	switch {
	case dailyRate > s.opts.IncreasingThreshold:
		return TrendIncreasing
	case dailyRate > s.opts.StableThreshold:
		return TrendStable
	default:
		return TrendDecreasing
	}
}

func (s *Service) progressTrend(dailyRate float64) Trend {
	switch {
	case dailyRate > s.opts.IncreasingThreshold:
		return TrendAccelerating
	case dailyRate > s.opts.StableThreshold:
		return TrendSteady
	default:
		return TrendSlowing
	}
}

// projectPriority scores urgency from both forecasts. Only the highest
// matching bracket in each dimension contributes.
func projectPriority(budget *Budget, completion *Completion) Priority {
	if budget == nil || completion == nil {
		return PriorityMedium
	}

	score := 0
	switch {
	case budget.ExhaustionDays != nil && *budget.ExhaustionDays <= 7:
		score += 3
	case budget.ExhaustionDays != nil && *budget.ExhaustionDays <= 14:
		score += 2
	case budget.VariancePercentage > 20:
		score++
	}
	switch {
	case completion.DaysToCompletion != nil && *completion.DaysToCompletion <= 7:
		score += 3
	case completion.DaysToCompletion != nil && *completion.DaysToCompletion <= 14:
		score += 2
	}
	if completion.CurrentProgress > 80 {
		score++
	}

	switch {
	case score >= 5:
		return PriorityCritical
	case score >= 3:
		return PriorityHigh
	case score >= 1:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func utilisation(forecasts []ProjectDemand) Utilisation {
	var u Utilisation
	for _, f := range forecasts {
		if f.BudgetForecast == nil {
			continue
		}
		u.TotalBudget += f.BudgetForecast.CurrentBudget
		u.TotalPredicted += f.BudgetForecast.PredictedTotalUsage
	}
	if u.TotalBudget > 0 {
		u.UtilisationRate = u.TotalPredicted / u.TotalBudget * 100
	}
	if u.TotalPredicted > 0 {
		u.Efficiency = u.TotalBudget / u.TotalPredicted * 100
	}
	return u
}

func recommendations(forecasts []ProjectDemand) []Recommendation {
	recs := []Recommendation{}

	var overBudget []string
	for _, f := range forecasts {
		if f.BudgetForecast != nil && f.BudgetForecast.VariancePercentage > 10 {
			overBudget = append(overBudget, f.ProjectCode)
		}
	}
	if len(overBudget) > 0 {
		recs = append(recs, Recommendation{
			Type:     "budget_overrun",
			Severity: "high",
			Message:  fmt.Sprintf("%d project(s) are predicted to exceed budget", len(overBudget)),
			Projects: overBudget,
		})
	}

	var critical []string
	for _, f := range forecasts {
		if f.Priority == PriorityCritical {
			critical = append(critical, f.ProjectCode)
		}
	}
	if len(critical) > 3 {
		recs = append(recs, Recommendation{
			Type:     "resource_conflict",
			Severity: "medium",
			Message:  "Multiple critical projects may require resource reallocation",
			Projects: critical,
		})
	}

	var slowing []string
	for _, f := range forecasts {
		if f.CompletionForecast != nil && f.CompletionForecast.Trend == TrendSlowing {
			slowing = append(slowing, f.ProjectCode)
		}
	}
	if len(slowing) > 0 {
		recs = append(recs, Recommendation{
			Type:     "completion_delay",
			Severity: "medium",
			Message:  fmt.Sprintf("%d project(s) show slowing progress", len(slowing)),
			Projects: slowing,
		})
	}

	return recs
}
