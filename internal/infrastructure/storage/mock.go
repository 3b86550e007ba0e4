package storage

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps and slices, making tests fast and isolated.
type MockRepository struct {
	mu     sync.Mutex
	runs   map[string]*MatchRun
	nextID int64

	// Hooks for test assertions
	StartRunCalled    bool
	CompleteRunCalled bool
	FailRunCalled     bool
	LastOutcome       RunOutcome

	// Error injection for testing error paths
	StartRunErr    error
	CompleteRunErr error
	FailRunErr     error
	GetRunErr      error
	ListRunsErr    error
	GetStatsErr    error
}

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		runs:   make(map[string]*MatchRun),
		nextID: 1,
	}
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// Close does nothing for mock
func (m *MockRepository) Close() error {
	return nil
}

// StartRun stores a copy of the run
func (m *MockRepository) StartRun(run *MatchRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartRunCalled = true
	if m.StartRunErr != nil {
		return m.StartRunErr
	}

	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.Status = StatusRunning
	run.ID = m.nextID
	m.nextID++

	copied := *run
	m.runs[run.RunID] = &copied
	return nil
}

// CompleteRun marks a stored run as finished
func (m *MockRepository) CompleteRun(runID string, outcome RunOutcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CompleteRunCalled = true
	m.LastOutcome = outcome
	if m.CompleteRunErr != nil {
		return m.CompleteRunErr
	}

	r, ok := m.runs[runID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	m.close(r)
	r.SolutionCount = outcome.SolutionCount
	r.Explored = outcome.Explored
	r.Truncated = outcome.Truncated
	r.Status = outcome.status()
	return nil
}

// FailRun marks a stored run as failed
func (m *MockRepository) FailRun(runID string, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FailRunCalled = true
	if m.FailRunErr != nil {
		return m.FailRunErr
	}

	r, ok := m.runs[runID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	m.close(r)
	r.ErrorMessage = errMsg
	r.Status = StatusFailed
	return nil
}

func (m *MockRepository) close(r *MatchRun) {
	now := time.Now()
	r.CompletedAt = &now
	r.DurationMs = now.Sub(r.StartedAt).Milliseconds()
}

// GetRun retrieves a copy of a stored run
func (m *MockRepository) GetRun(runID string) (*MatchRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetRunErr != nil {
		return nil, m.GetRunErr
	}
	r, ok := m.runs[runID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	copied := *r
	return &copied, nil
}

// ListRuns returns stored runs, newest first
func (m *MockRepository) ListRuns(limit int) ([]MatchRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListRunsErr != nil {
		return nil, m.ListRunsErr
	}
	if limit <= 0 {
		limit = 20
	}

	runs := make([]MatchRun, 0, len(m.runs))
	for _, r := range m.runs {
		runs = append(runs, *r)
	}
	slices.SortFunc(runs, func(a, b MatchRun) int {
		if c := b.StartedAt.Compare(a.StartedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})

	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// GetStats computes statistics over stored runs
func (m *MockRepository) GetStats() (*Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetStatsErr != nil {
		return nil, m.GetStatsErr
	}

	stats := &Stats{}
	var finished int
	var totalMs int64
	for _, r := range m.runs {
		stats.TotalRuns++
		stats.TotalSolutions += r.SolutionCount
		stats.TotalCharges += r.ChargeCount
		switch r.Status {
		case StatusCompleted:
			stats.CompletedCount++
		case StatusNoSolution:
			stats.NoSolutionCount++
		case StatusFailed:
			stats.FailedCount++
		}
		if r.CompletedAt != nil {
			finished++
			totalMs += r.DurationMs
		}
		if stats.LastRunAt == nil || r.StartedAt.After(*stats.LastRunAt) {
			started := r.StartedAt
			stats.LastRunAt = &started
		}
	}
	if finished > 0 {
		stats.AverageMs = float64(totalMs) / float64(finished)
	}
	return stats, nil
}

// Helper methods for test setup

// AddRun adds a run directly (for test setup)
func (m *MockRepository) AddRun(run *MatchRun) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if run.ID == 0 {
		run.ID = m.nextID
		m.nextID++
	}
	copied := *run
	m.runs[run.RunID] = &copied
}
