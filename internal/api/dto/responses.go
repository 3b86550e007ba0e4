package dto

import "time"

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ItemResponse is an order or charge in API responses.
type ItemResponse struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
	Cents  uint64 `json:"cents"`
}

// AssignmentResponse pairs an order with the charges allocated to it.
type AssignmentResponse struct {
	Order   ItemResponse   `json:"order"`
	Charges []ItemResponse `json:"charges"`
}

// SolutionResponse is one complete allocation.
type SolutionResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
}

// BalanceResponse compares the totals of orders and charges.
type BalanceResponse struct {
	Balanced    bool   `json:"balanced"`
	OrderTotal  string `json:"order_total"`
	ChargeTotal string `json:"charge_total"`
	Reason      string `json:"reason,omitempty"`
}

// MatchResponse is returned by POST /api/match.
type MatchResponse struct {
	RunID           string             `json:"run_id"`
	SolutionCount   int                `json:"solution_count"`
	Truncated       bool               `json:"truncated"`
	CandidateCounts []int              `json:"candidate_counts"`
	Balance         BalanceResponse    `json:"balance"`
	DurationMs      int64              `json:"duration_ms"`
	Solutions       []SolutionResponse `json:"solutions"`
}

// MatchRunResponse represents a match run in API responses.
type MatchRunResponse struct {
	RunID         string `json:"run_id"`
	Source        string `json:"source"`
	Status        string `json:"status"`
	StartedAt     string `json:"started_at"`
	CompletedAt   string `json:"completed_at,omitempty"`
	DurationMs    int64  `json:"duration_ms"`
	OrderCount    int    `json:"order_count"`
	ChargeCount   int    `json:"charge_count"`
	OrderTotal    string `json:"order_total"`
	ChargeTotal   string `json:"charge_total"`
	MaxSolutions  int    `json:"max_solutions"`
	SolutionCount int    `json:"solution_count"`
	Explored      int    `json:"explored"`
	Truncated     bool   `json:"truncated"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

// RunListResponse is returned when listing runs.
type RunListResponse struct {
	Runs  []MatchRunResponse `json:"runs"`
	Count int                `json:"count"`
}

// StatsResponse is returned by the stats endpoint.
type StatsResponse struct {
	TotalRuns       int     `json:"total_runs"`
	CompletedCount  int     `json:"completed_count"`
	NoSolutionCount int     `json:"no_solution_count"`
	FailedCount     int     `json:"failed_count"`
	TotalSolutions  int     `json:"total_solutions"`
	TotalCharges    int     `json:"total_charges"`
	AverageMs       float64 `json:"average_duration_ms"`
	LastRunAt       string  `json:"last_run_at,omitempty"`
}
