package project

import "time"

// Status is a project lifecycle state
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOnHold    Status = "on-hold"
	StatusCancelled Status = "cancelled"
	StatusArchived  Status = "archived"
)

// Categories available for new projects.
var Categories = []string{
	"Development",
	"Design",
	"Testing",
	"Documentation",
	"Meeting",
	"Research",
	"Maintenance",
	"Other",
}

// Project represents a tracked project with an hour budget. A budget of 0
// means unlimited.
type Project struct {
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Status      Status     `json:"status"`
	Budget      float64    `json:"budget"`
	Description string     `json:"description,omitempty"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedBy   string     `json:"updatedBy,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	BudgetSetBy string     `json:"budgetSetBy,omitempty"`
	BudgetSetAt *time.Time `json:"budgetSetAt,omitempty"`
}

// BudgetState classifies usage against the budget.
type BudgetState string

const (
	BudgetNone  BudgetState = "no-budget"
	BudgetUnder BudgetState = "under-budget"
	BudgetNear  BudgetState = "near-limit"
	BudgetOver  BudgetState = "over-budget"
)

// BudgetStatus reports where a project's logged hours stand relative to its
// budget. Percentage, used and remaining are rounded to two decimals.
type BudgetStatus struct {
	Status     BudgetState `json:"status"`
	Percentage float64     `json:"percentage"`
	Used       float64     `json:"used"`
	Remaining  float64     `json:"remaining"`
	Budget     float64     `json:"budget"`
}
