package timelog

import (
	"fmt"
	"time"
)

// Entry is a single saved block of time against a project.
type Entry struct {
	ID               string    `json:"id"`
	ProjectCode      string    `json:"projectCode"`
	TimeSpentSeconds int64     `json:"timeSpentSeconds"`
	Minutes          int64     `json:"minutes"`
	Date             string    `json:"date"` // YYYY-MM-DD
	Timestamp        time.Time `json:"timestamp"`
	FormattedTime    string    `json:"formattedTime"`
	Username         string    `json:"username"`
	Notes            string    `json:"notes,omitempty"`
}

// UsageStats summarizes all logged time for one project.
type UsageStats struct {
	TotalHours   float64    `json:"totalHours"`
	TotalEntries int        `json:"totalEntries"`
	UniqueUsers  int        `json:"uniqueUsers"`
	LastActivity *time.Time `json:"lastActivity,omitempty"`
}

// FormatDuration renders seconds as HH:MM:SS.
func FormatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
