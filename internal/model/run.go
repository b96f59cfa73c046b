package model

import "time"

// RunStatus represents the state of a recorded batch run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is a recorded batch resolution.
type Run struct {
	ID        string         `json:"id"`
	Status    RunStatus      `json:"status"`
	Total     int            `json:"total"`
	Found     int            `json:"found"`
	Queries   []Query        `json:"queries"`
	Results   []SearchResult `json:"results,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CountFound returns how many results succeeded.
func CountFound(results []SearchResult) int {
	n := 0
	for _, r := range results {
		if r.Success {
			n++
		}
	}
	return n
}
