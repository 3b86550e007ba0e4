package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const runColumns = `
	id, run_id, source, status, order_count, charge_count, order_total,
	charge_total, max_solutions, solution_count, explored, truncated,
	error_message, started_at, completed_at, duration_ms`

// StartRun records the start of a match run
func (s *Storage) StartRun(run *MatchRun) error {
	if run.RunID == "" {
		return errors.New("run ID is required")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.Status = StatusRunning

	query := `
		INSERT INTO match_runs
		(run_id, source, status, order_count, charge_count, order_total,
		 charge_total, max_solutions, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.Exec(query,
		run.RunID,
		run.Source,
		run.Status,
		run.OrderCount,
		run.ChargeCount,
		run.OrderTotal,
		run.ChargeTotal,
		run.MaxSolutions,
		run.StartedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to start run %s: %w", run.RunID, err)
	}

	run.ID, err = result.LastInsertId()
	return err
}

// CompleteRun records the completion of a match run
func (s *Storage) CompleteRun(runID string, outcome RunOutcome) error {
	query := `
		UPDATE match_runs
		SET completed_at = ?,
		    duration_ms = ?,
		    solution_count = ?,
		    explored = ?,
		    truncated = ?,
		    status = ?
		WHERE run_id = ?
	`

	return s.finish(runID, query, outcome.SolutionCount, outcome.Explored, outcome.Truncated, outcome.status())
}

// FailRun records a match run that ended with an error
func (s *Storage) FailRun(runID string, errMsg string) error {
	query := `
		UPDATE match_runs
		SET completed_at = ?,
		    duration_ms = ?,
		    error_message = ?,
		    status = ?
		WHERE run_id = ?
	`

	return s.finish(runID, query, errMsg, StatusFailed)
}

// finish runs an update that closes out a run. The completion time and
// duration come first in args, the run ID last.
func (s *Storage) finish(runID, query string, args ...any) error {
	var startedAt time.Time
	err := s.db.QueryRow(`SELECT started_at FROM match_runs WHERE run_id = ?`, runID).Scan(&startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	params := append([]any{now, now.Sub(startedAt).Milliseconds()}, args...)
	params = append(params, runID)

	_, err = s.db.Exec(query, params...)
	return err
}

// GetRun retrieves a match run by its run ID
func (s *Storage) GetRun(runID string) (*MatchRun, error) {
	query := `SELECT` + runColumns + ` FROM match_runs WHERE run_id = ?`

	run, err := scanRun(s.db.QueryRow(query, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns recent match runs, newest first
func (s *Storage) ListRuns(limit int) ([]MatchRun, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT` + runColumns + ` FROM match_runs ORDER BY started_at DESC, id DESC LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	runs := make([]MatchRun, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

// GetStats returns aggregate statistics over all runs
func (s *Storage) GetStats() (*Stats, error) {
	stats := &Stats{}

	query := `
	SELECT
		COUNT(*) as total,
		COUNT(CASE WHEN status = 'completed' THEN 1 END) as completed,
		COUNT(CASE WHEN status = 'no_solution' THEN 1 END) as no_solution,
		COUNT(CASE WHEN status = 'failed' THEN 1 END) as failed,
		COALESCE(SUM(solution_count), 0) as total_solutions,
		COALESCE(SUM(charge_count), 0) as total_charges,
		COALESCE(AVG(CASE WHEN completed_at IS NOT NULL THEN duration_ms END), 0) as avg_ms
	FROM match_runs
	`

	err := s.db.QueryRow(query).Scan(
		&stats.TotalRuns,
		&stats.CompletedCount,
		&stats.NoSolutionCount,
		&stats.FailedCount,
		&stats.TotalSolutions,
		&stats.TotalCharges,
		&stats.AverageMs,
	)
	if err != nil {
		return nil, err
	}

	if stats.TotalRuns > 0 {
		var last time.Time
		err := s.db.QueryRow(`SELECT started_at FROM match_runs ORDER BY started_at DESC LIMIT 1`).Scan(&last)
		if err != nil {
			return nil, err
		}
		stats.LastRunAt = &last
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*MatchRun, error) {
	run := &MatchRun{}
	var completedAt sql.NullTime

	err := row.Scan(
		&run.ID,
		&run.RunID,
		&run.Source,
		&run.Status,
		&run.OrderCount,
		&run.ChargeCount,
		&run.OrderTotal,
		&run.ChargeTotal,
		&run.MaxSolutions,
		&run.SolutionCount,
		&run.Explored,
		&run.Truncated,
		&run.ErrorMessage,
		&run.StartedAt,
		&completedAt,
		&run.DurationMs,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		t := completedAt.Time
		run.CompletedAt = &t
	}
	return run, nil
}
