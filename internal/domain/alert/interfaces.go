package alert

import (
	"context"

	"github.com/ganot/tempus-mcp/internal/domain/project"
)

// Repository provides persistence operations for the alert ledger.
type Repository interface {
	List(ctx context.Context) ([]Alert, error)
	Save(ctx context.Context, alerts []Alert) error
}

// ProjectDirectory exposes the project listing and budget classification
// the engine checks against.
type ProjectDirectory interface {
	List(ctx context.Context) ([]project.Project, error)
	BudgetStatusFor(ctx context.Context, code string) (project.BudgetStatus, error)
}
