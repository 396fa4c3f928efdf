package forecast

import (
	"context"
	"time"

	"github.com/ganot/tempus-mcp/internal/domain/project"
	"github.com/ganot/tempus-mcp/internal/domain/timelog"
)

// Directory supplies the projects being forecast.
type Directory interface {
	Get(ctx context.Context, code string) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
}

// History supplies per-project logged-time aggregates.
type History interface {
	UsageStats(ctx context.Context, projectCode string) (timelog.UsageStats, error)
	DailySeries(ctx context.Context, projectCode string, days int, now time.Time) ([]float64, error)
}
