package alert

import (
	"time"

	"github.com/ganot/tempus-mcp/internal/domain/project"
)

// Type is the kind of budget alert
type Type string

const (
	TypeBudgetExceeded Type = "BUDGET_EXCEEDED"
	TypeBudgetWarning  Type = "BUDGET_WARNING"
)

// Severity ranks alerts for display
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// Alert is one entry in the budget alert ledger.
type Alert struct {
	ID           string                `json:"id"`
	Type         Type                  `json:"type"`
	Severity     Severity              `json:"severity"`
	ProjectCode  string                `json:"projectCode"`
	ProjectName  string                `json:"projectName"`
	Message      string                `json:"message"`
	Timestamp    time.Time             `json:"timestamp"`
	CreatedAt    time.Time             `json:"createdAt"`
	Read         bool                  `json:"read"`
	ReadAt       *time.Time            `json:"readAt,omitempty"`
	BudgetStatus *project.BudgetStatus `json:"budgetStatus,omitempty"`
}
