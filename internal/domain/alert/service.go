package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganot/tempus-mcp/internal/domain/project"
	"github.com/google/uuid"
)

// Service is the budget alert engine: it computes fresh alerts from current
// usage and maintains the read/unread ledger.
type Service struct {
	repo     Repository
	projects ProjectDirectory
	logger   *slog.Logger
}

// NewService creates a new budget alert engine.
func NewService(repo Repository, projects ProjectDirectory, logger *slog.Logger) *Service {
	return &Service{repo: repo, projects: projects, logger: logger}
}

// Check computes the current alert set for every budgeted project. The
// result is freshly derived each call and not yet recorded in the ledger.
func (s *Service) Check(ctx context.Context) ([]Alert, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}

	var alerts []Alert
	for _, proj := range projects {
		if proj.Budget <= 0 {
			continue
		}
		status, err := s.projects.BudgetStatusFor(ctx, proj.Code)
		if err != nil {
			return nil, fmt.Errorf("budget status for %s: %w", proj.Code, err)
		}

		st := status
		switch status.Status {
		case project.BudgetOver:
			alerts = append(alerts, Alert{
				Type:         TypeBudgetExceeded,
				Severity:     SeverityHigh,
				ProjectCode:  proj.Code,
				ProjectName:  proj.Name,
				Message:      fmt.Sprintf("%s has exceeded its budget of %g hours (%g hours used)", proj.Name, proj.Budget, status.Used),
				Timestamp:    time.Now(),
				BudgetStatus: &st,
			})
		case project.BudgetNear:
			alerts = append(alerts, Alert{
				Type:         TypeBudgetWarning,
				Severity:     SeverityMedium,
				ProjectCode:  proj.Code,
				ProjectName:  proj.Name,
				Message:      fmt.Sprintf("%s is approaching its budget limit (%g%% used)", proj.Name, status.Percentage),
				Timestamp:    time.Now(),
				BudgetStatus: &st,
			})
		}
	}
	return alerts, nil
}

// Record merges freshly computed alerts into the ledger. An unread alert
// with the same (projectCode, type) is replaced in place rather than
// duplicated; read alerts stay as history.
func (s *Service) Record(ctx context.Context, fresh []Alert) ([]Alert, error) {
	if len(fresh) == 0 {
		return nil, nil
	}

	ledger, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading alert ledger: %w", err)
	}

	var recorded []Alert
	for _, a := range fresh {
		a.ID = uuid.NewString()
		a.CreatedAt = time.Now()

		replaced := false
		for i := range ledger {
			if !ledger[i].Read && ledger[i].ProjectCode == a.ProjectCode && ledger[i].Type == a.Type {
				ledger[i] = a
				replaced = true
				break
			}
		}
		if !replaced {
			ledger = append([]Alert{a}, ledger...)
		}
		recorded = append(recorded, a)
	}

	if err := s.repo.Save(ctx, ledger); err != nil {
		return nil, fmt.Errorf("saving alert ledger: %w", err)
	}
	return recorded, nil
}

// CheckAndRecord runs Check and merges the results into the ledger.
func (s *Service) CheckAndRecord(ctx context.Context) ([]Alert, error) {
	fresh, err := s.Check(ctx)
	if err != nil {
		return nil, err
	}
	return s.Record(ctx, fresh)
}

// List returns the ledger, newest first.
func (s *Service) List(ctx context.Context) ([]Alert, error) {
	return s.repo.List(ctx)
}

// MarkRead flips an alert to read and stamps readAt.
func (s *Service) MarkRead(ctx context.Context, id string) (*Alert, error) {
	ledger, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading alert ledger: %w", err)
	}
	for i := range ledger {
		if ledger[i].ID == id {
			now := time.Now()
			ledger[i].Read = true
			ledger[i].ReadAt = &now
			if err := s.repo.Save(ctx, ledger); err != nil {
				return nil, fmt.Errorf("saving alert ledger: %w", err)
			}
			out := ledger[i]
			return &out, nil
		}
	}
	return nil, ErrAlertNotFound
}

// ClearAll empties the ledger.
func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.repo.Save(ctx, []Alert{}); err != nil {
		return fmt.Errorf("saving alert ledger: %w", err)
	}
	return nil
}

// UnreadCount counts alerts not yet marked read.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	ledger, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading alert ledger: %w", err)
	}
	count := 0
	for _, a := range ledger {
		if !a.Read {
			count++
		}
	}
	return count, nil
}
