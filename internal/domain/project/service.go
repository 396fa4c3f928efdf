package project

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ganot/tempus-mcp/internal/domain/event"
)

var codePattern = regexp.MustCompile(`^[A-Z]{2,}-\d{3}$`)

// Thresholds for budget status classification, as fractions of the budget.
type Thresholds struct {
	Warning  float64 // near-limit at or above (default 0.8)
	Exceeded float64 // over-budget at or above (default 1.0)
}

// DefaultThresholds mirror the 80%/100% budget boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{Warning: 0.8, Exceeded: 1.0}
}

// Service handles project directory operations.
type Service struct {
	repo       Repository
	usage      UsageProvider
	events     EventRecorder
	thresholds Thresholds
	logger     *slog.Logger

	mu          sync.Mutex
	subscribers []func()
}

// EventRecorder appends entries to the activity event log.
type EventRecorder interface {
	Append(ctx context.Context, entry event.Entry) error
}

// NewService creates a new project directory service.
func NewService(repo Repository, usage UsageProvider, events EventRecorder, thresholds Thresholds, logger *slog.Logger) *Service {
	if thresholds.Warning == 0 {
		thresholds = DefaultThresholds()
	}
	return &Service{
		repo:       repo,
		usage:      usage,
		events:     events,
		thresholds: thresholds,
		logger:     logger,
	}
}

// OnChange registers a callback invoked after every directory mutation.
// The hosting environment wires platform change notification to this.
func (s *Service) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Code        string
	Name        string
	Category    string
	Status      Status
	Budget      float64
	Description string
	CreatedBy   string
}

// Create adds a new project. Codes must be unique and match LETTERS-NNN.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}
	if !ValidateCode(req.Code) {
		return nil, ErrInvalidCode
	}

	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	for _, p := range projects {
		if p.Code == req.Code {
			return nil, ErrDuplicateCode
		}
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}
	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = "unknown"
	}

	proj := Project{
		Code:        req.Code,
		Name:        req.Name,
		Category:    req.Category,
		Status:      status,
		Budget:      req.Budget,
		Description: req.Description,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Save(ctx, append(projects, proj)); err != nil {
		return nil, fmt.Errorf("saving projects: %w", err)
	}

	s.recordEvent(ctx, event.Entry{
		Type:        event.TypeProjectAdded,
		Username:    createdBy,
		ProjectCode: proj.Code,
		ProjectName: proj.Name,
		Message:     fmt.Sprintf("Project %s (%s) was created", proj.Name, proj.Code),
	})
	s.notify()
	return &proj, nil
}

// Get fetches a project by code.
func (s *Service) Get(ctx context.Context, code string) (*Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	for i := range projects {
		if projects[i].Code == code {
			return &projects[i], nil
		}
	}
	return nil, ErrProjectNotFound
}

// List returns the full directory in stored order.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.repo.List(ctx)
}

// ListActive returns projects with status active.
func (s *Service) ListActive(ctx context.Context) ([]Project, error) {
	return s.filter(ctx, func(p Project) bool { return p.Status == StatusActive })
}

// ListByCategory returns projects in one category.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]Project, error) {
	return s.filter(ctx, func(p Project) bool { return p.Category == category })
}

// Search matches code, name, or category, case-insensitively.
func (s *Service) Search(ctx context.Context, term string) ([]Project, error) {
	needle := strings.ToLower(term)
	return s.filter(ctx, func(p Project) bool {
		return strings.Contains(strings.ToLower(p.Code), needle) ||
			strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle)
	})
}

// UpdateRequest rewrites mutable project fields. Nil pointers leave fields
// untouched.
type UpdateRequest struct {
	Code        string
	Name        *string
	Category    *string
	Status      *Status
	Budget      *float64
	Description *string
	UpdatedBy   string
}

// Update modifies an existing project and stamps updatedBy/updatedAt.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}

	idx := indexOf(projects, req.Code)
	if idx < 0 {
		return nil, ErrProjectNotFound
	}

	proj := &projects[idx]
	if req.Name != nil {
		proj.Name = *req.Name
	}
	if req.Category != nil {
		proj.Category = *req.Category
	}
	if req.Status != nil {
		proj.Status = *req.Status
	}
	if req.Budget != nil {
		proj.Budget = *req.Budget
	}
	if req.Description != nil {
		proj.Description = *req.Description
	}
	updatedBy := req.UpdatedBy
	if updatedBy == "" {
		updatedBy = "unknown"
	}
	proj.UpdatedBy = updatedBy
	now := time.Now()
	proj.UpdatedAt = &now

	if err := s.repo.Save(ctx, projects); err != nil {
		return nil, fmt.Errorf("saving projects: %w", err)
	}

	s.recordEvent(ctx, event.Entry{
		Type:        event.TypeProjectUpdated,
		Username:    updatedBy,
		ProjectCode: proj.Code,
		ProjectName: proj.Name,
		Message:     fmt.Sprintf("Project %s was updated", proj.Name),
	})
	s.notify()
	out := *proj
	return &out, nil
}

// Remove deletes a project. When any time log references the code, the
// project is archived instead of removed so history stays resolvable.
func (s *Service) Remove(ctx context.Context, code, removedBy string) (*Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	idx := indexOf(projects, code)
	if idx < 0 {
		return nil, ErrProjectNotFound
	}

	entries, err := s.usage.ListByProject(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("checking project usage: %w", err)
	}
	if len(entries) > 0 {
		archived := StatusArchived
		return s.Update(ctx, UpdateRequest{Code: code, Status: &archived, UpdatedBy: removedBy})
	}

	removed := projects[idx]
	projects = append(projects[:idx], projects[idx+1:]...)
	if err := s.repo.Save(ctx, projects); err != nil {
		return nil, fmt.Errorf("saving projects: %w", err)
	}

	if removedBy == "" {
		removedBy = "unknown"
	}
	s.recordEvent(ctx, event.Entry{
		Type:        event.TypeProjectDeleted,
		Username:    removedBy,
		ProjectCode: removed.Code,
		ProjectName: removed.Name,
		Message:     fmt.Sprintf("Project %s was deleted", removed.Name),
	})
	s.notify()
	return &removed, nil
}

// SetBudget sets the hour budget and stamps budgetSetBy/budgetSetAt.
func (s *Service) SetBudget(ctx context.Context, code string, budget float64, setBy string) (*Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	idx := indexOf(projects, code)
	if idx < 0 {
		return nil, ErrProjectNotFound
	}

	if setBy == "" {
		setBy = "unknown"
	}
	proj := &projects[idx]
	proj.Budget = budget
	proj.BudgetSetBy = setBy
	now := time.Now()
	proj.BudgetSetAt = &now

	if err := s.repo.Save(ctx, projects); err != nil {
		return nil, fmt.Errorf("saving projects: %w", err)
	}

	s.recordEvent(ctx, event.Entry{
		Type:        event.TypeBudgetUpdated,
		Username:    setBy,
		ProjectCode: proj.Code,
		ProjectName: proj.Name,
		Budget:      budget,
		Message:     fmt.Sprintf("Budget for %s set to %g hours", proj.Name, budget),
	})
	s.notify()
	out := *proj
	return &out, nil
}

// BudgetStatusFor classifies logged usage against the project's budget.
func (s *Service) BudgetStatusFor(ctx context.Context, code string) (BudgetStatus, error) {
	proj, err := s.Get(ctx, code)
	if err != nil {
		return BudgetStatus{}, err
	}
	if proj.Budget == 0 {
		return BudgetStatus{Status: BudgetNone}, nil
	}

	stats, err := s.usage.UsageStats(ctx, code)
	if err != nil {
		return BudgetStatus{}, fmt.Errorf("loading usage stats: %w", err)
	}

	used := stats.TotalHours
	percentage := used / proj.Budget * 100

	status := BudgetUnder
	switch {
	case percentage >= s.thresholds.Exceeded*100:
		status = BudgetOver
	case percentage >= s.thresholds.Warning*100:
		status = BudgetNear
	}

	return BudgetStatus{
		Status:     status,
		Percentage: round2(percentage),
		Used:       round2(used),
		Remaining:  round2(proj.Budget - used),
		Budget:     proj.Budget,
	}, nil
}

// GenerateCode proposes the next free code for a category: first three
// letters uppercased plus the next sequence number.
func (s *Service) GenerateCode(ctx context.Context, category string) (string, error) {
	if strings.TrimSpace(category) == "" {
		return "", ErrInvalidInput
	}
	projects, err := s.repo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("loading projects: %w", err)
	}

	prefix := strings.ToUpper(category)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}

	max := 0
	for _, p := range projects {
		if !strings.HasPrefix(p.Code, prefix) {
			continue
		}
		dash := strings.LastIndex(p.Code, "-")
		if dash < 0 {
			continue
		}
		if n, err := strconv.Atoi(p.Code[dash+1:]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, max+1), nil
}

// Seed installs the given projects when the directory is empty.
func (s *Service) Seed(ctx context.Context, projects []Project) error {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading projects: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	if err := s.repo.Save(ctx, projects); err != nil {
		return fmt.Errorf("saving projects: %w", err)
	}
	s.notify()
	return nil
}

// ValidateCode reports whether code matches the LETTERS-NNN format.
func ValidateCode(code string) bool {
	return codePattern.MatchString(code)
}

func (s *Service) filter(ctx context.Context, keep func(Project) bool) ([]Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (s *Service) recordEvent(ctx context.Context, entry event.Entry) {
	if s.events == nil {
		return
	}
	if err := s.events.Append(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("failed to record event", "type", entry.Type, "error", err)
	}
}

func indexOf(projects []Project, code string) int {
	for i := range projects {
		if projects[i].Code == code {
			return i
		}
	}
	return -1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
