package project

import (
	"context"

	"github.com/ganot/tempus-mcp/internal/domain/timelog"
)

// Repository provides persistence operations for the project directory.
type Repository interface {
	List(ctx context.Context) ([]Project, error)
	Save(ctx context.Context, projects []Project) error
}

// UsageProvider reports logged time per project.
type UsageProvider interface {
	UsageStats(ctx context.Context, projectCode string) (timelog.UsageStats, error)
	ListByProject(ctx context.Context, projectCode string) ([]timelog.Entry, error)
}
