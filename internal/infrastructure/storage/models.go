package storage

import "time"

// Run statuses
const (
	StatusRunning    = "running"
	StatusCompleted  = "completed"
	StatusNoSolution = "no_solution"
	StatusFailed     = "failed"
)

// MatchRun is the history record of one reconciliation
type MatchRun struct {
	ID            int64      `json:"id"`
	RunID         string     `json:"run_id"`
	Source        string     `json:"source"` // "cli", "api", ...
	Status        string     `json:"status"`
	OrderCount    int        `json:"order_count"`
	ChargeCount   int        `json:"charge_count"`
	OrderTotal    int64      `json:"order_total_cents"`
	ChargeTotal   int64      `json:"charge_total_cents"`
	MaxSolutions  int        `json:"max_solutions"`
	SolutionCount int        `json:"solution_count"`
	Explored      int        `json:"explored"`
	Truncated     bool       `json:"truncated"`
	ErrorMessage  string     `json:"error_message,omitempty"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	DurationMs    int64      `json:"duration_ms"`
}

// RunOutcome is what a finished run reports back
type RunOutcome struct {
	SolutionCount int
	Explored      int
	Truncated     bool
}

// Stats holds aggregate run statistics
type Stats struct {
	TotalRuns       int        `json:"total_runs"`
	CompletedCount  int        `json:"completed_count"`
	NoSolutionCount int        `json:"no_solution_count"`
	FailedCount     int        `json:"failed_count"`
	TotalSolutions  int        `json:"total_solutions"`
	TotalCharges    int        `json:"total_charges"`
	AverageMs       float64    `json:"average_duration_ms"`
	LastRunAt       *time.Time `json:"last_run_at,omitempty"`
}

// status picks the terminal status for a finished run
func (o RunOutcome) status() string {
	if o.SolutionCount == 0 {
		return StatusNoSolution
	}
	return StatusCompleted
}
