package timer

import "time"

// State is the persisted timer record. While running, the wall-clock delta
// from StartedAtEpochMs is the ground truth for elapsed time; while stopped,
// ElapsedSeconds is the authoritative frozen value.
type State struct {
	Running          bool   `json:"running"`
	ElapsedSeconds   int64  `json:"elapsedSeconds"`
	StartedAtEpochMs *int64 `json:"startedAtEpochMs"`
}

// Snapshot is the in-memory timer status reported to callers.
type Snapshot struct {
	Running        bool       `json:"running"`
	ElapsedSeconds int64      `json:"elapsedSeconds"`
	FormattedTime  string     `json:"formattedTime"`
	ProjectCode    string     `json:"projectCode,omitempty"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	IdleAlert      bool       `json:"idleAlert"`
}
