package forecast

import "time"

// Trend classifies the direction of a project's daily spend.
type Trend string

const (
	TrendIncreasing   Trend = "increasing"
	TrendStable       Trend = "stable"
	TrendDecreasing   Trend = "decreasing"
	TrendAccelerating Trend = "accelerating"
	TrendSteady       Trend = "steady"
	TrendSlowing      Trend = "slowing"
	TrendCompleted    Trend = "completed"
)

// Priority ranks a project's forecasted urgency.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Regression holds an ordinary least squares fit over a daily series.
type Regression struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Budget projects spend against a project's budget over a horizon.
// ExhaustionDays is nil when the budget is already gone or no spend is
// predicted.
type Budget struct {
	ProjectCode         string    `json:"projectCode"`
	ProjectName         string    `json:"projectName"`
	CurrentBudget       float64   `json:"currentBudget"`
	CurrentUsage        float64   `json:"currentUsage"`
	RemainingBudget     float64   `json:"remainingBudget"`
	PredictedDailyUsage float64   `json:"predictedDailyUsage"`
	PredictedTotalUsage float64   `json:"predictedTotalUsage"`
	ExhaustionDays      *int      `json:"budgetExhaustionDate"`
	Variance            float64   `json:"budgetVariance"`
	VariancePercentage  float64   `json:"budgetVariancePercentage"`
	Trend               Trend     `json:"trend"`
	HistoricalData      []float64 `json:"historicalData"`
	MovingAverage       []float64 `json:"movingAverage"`
}

// Completion projects when a project's remaining budgeted work runs out.
type Completion struct {
	ProjectCode            string     `json:"projectCode"`
	ProjectName            string     `json:"projectName"`
	Status                 string     `json:"status"`
	CurrentProgress        float64    `json:"currentProgress"`
	RemainingWork          float64    `json:"remainingWork"`
	PredictedDailyProgress float64    `json:"predictedDailyProgress"`
	DaysToCompletion       *int       `json:"daysToCompletion"`
	CompletionDate         *time.Time `json:"completionDate,omitempty"`
	ActualHours            float64    `json:"actualHours,omitempty"`
	EstimatedHours         float64    `json:"estimatedHours,omitempty"`
	Variance               float64    `json:"variance,omitempty"`
	Trend                  Trend      `json:"trend"`
}

// ProjectDemand pairs both forecasts for one project with its priority.
type ProjectDemand struct {
	ProjectCode        string      `json:"projectCode"`
	ProjectName        string      `json:"projectName"`
	Category           string      `json:"category"`
	BudgetForecast     *Budget     `json:"budgetForecast"`
	CompletionForecast *Completion `json:"completionForecast"`
	Priority           Priority    `json:"priority"`
}

// Utilisation aggregates predicted spend against total budget.
type Utilisation struct {
	TotalBudget     float64 `json:"totalBudget"`
	TotalPredicted  float64 `json:"totalPredicted"`
	UtilisationRate float64 `json:"utilisationRate"`
	Efficiency      float64 `json:"efficiency"`
}

// Recommendation flags a condition the forecasts surfaced.
type Recommendation struct {
	Type     string   `json:"type"`
	Severity string   `json:"severity"`
	Message  string   `json:"message"`
	Projects []string `json:"projects"`
}

// Demand is the portfolio-wide resource demand forecast.
type Demand struct {
	TotalPredictedHours  float64          `json:"totalPredictedHours"`
	CriticalProjects     int              `json:"criticalProjects"`
	HighPriorityProjects int              `json:"highPriorityProjects"`
	ProjectForecasts     []ProjectDemand  `json:"projectForecasts"`
	ResourceUtilisation  Utilisation      `json:"resourceUtilisation"`
	Recommendations      []Recommendation `json:"recommendations"`
}

// Summary condenses the portfolio forecasts for a dashboard view.
type Summary struct {
	TotalProjects       int     `json:"totalProjects"`
	CriticalProjects    int     `json:"criticalProjects"`
	DelayedProjects     int     `json:"delayedProjects"`
	TotalPredictedHours float64 `json:"totalPredictedHours"`
}
