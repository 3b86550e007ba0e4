package storage

import "errors"

// ErrRunNotFound is returned when no run has the requested ID
var ErrRunNotFound = errors.New("run not found")

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, in-memory, etc.)
// and makes testing with mocks straightforward.
type Repository interface {
	RunRepository
	Close() error
}

// RunRepository handles match run tracking. Only run metadata is stored,
// never the orders or charges themselves.
type RunRepository interface {
	// StartRun records the start of a run. The caller sets RunID.
	StartRun(run *MatchRun) error

	// CompleteRun records a finished run and its outcome
	CompleteRun(runID string, outcome RunOutcome) error

	// FailRun records a run that stopped with an error
	FailRun(runID string, errMsg string) error

	// GetRun retrieves a run by ID, or ErrRunNotFound
	GetRun(runID string) (*MatchRun, error)

	// ListRuns returns the most recent runs first (limit 0 = default 20)
	ListRuns(limit int) ([]MatchRun, error)

	// GetStats returns aggregate statistics over all runs
	GetStats() (*Stats, error)
}
