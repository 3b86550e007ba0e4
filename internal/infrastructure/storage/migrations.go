package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/pressly/goose/v3"
)

// allMigrations defines all migrations in order. Versions are never reused.
func allMigrations() []*goose.Migration {
	return []*goose.Migration{
		goose.NewGoMigration(1, &goose.GoFunc{RunTx: migration001MatchRuns}, nil),
		goose.NewGoMigration(2, &goose.GoFunc{RunTx: migration002AddSearchStats}, nil),
	}
}

// runMigrations applies all pending migrations, tracked in goose_db_version
func (s *Storage) runMigrations() error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, nil,
		goose.WithGoMigrations(allMigrations()...),
		goose.WithDisableGlobalRegistry(true),
	)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(context.Background())
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, r := range results {
		log.Printf("Applied migration %d in %s", r.Source.Version, r.Duration)
	}

	return nil
}

// ================================================================
// MIGRATION FUNCTIONS
// ================================================================

// migration001MatchRuns creates the match_runs table
func migration001MatchRuns(ctx context.Context, tx *sql.Tx) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS match_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT UNIQUE NOT NULL,
			source TEXT NOT NULL DEFAULT 'cli',
			status TEXT NOT NULL DEFAULT 'running',
			order_count INTEGER NOT NULL DEFAULT 0,
			charge_count INTEGER NOT NULL DEFAULT 0,
			order_total INTEGER NOT NULL DEFAULT 0,
			charge_total INTEGER NOT NULL DEFAULT 0,
			solution_count INTEGER NOT NULL DEFAULT 0,
			error_message TEXT NOT NULL DEFAULT '',
			started_at TIMESTAMP NOT NULL,
			completed_at TIMESTAMP,
			duration_ms INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE INDEX IF NOT EXISTS idx_match_runs_started_at
		 ON match_runs(started_at DESC)`,

		`CREATE INDEX IF NOT EXISTS idx_match_runs_status
		 ON match_runs(status)`,
	}

	for _, query := range queries {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create match_runs: %w", err)
		}
	}

	return nil
}

// migration002AddSearchStats records how the search was bounded
func migration002AddSearchStats(ctx context.Context, tx *sql.Tx) error {
	queries := []string{
		`ALTER TABLE match_runs ADD COLUMN max_solutions INTEGER NOT NULL DEFAULT 0`,
		`ALTER TABLE match_runs ADD COLUMN explored INTEGER NOT NULL DEFAULT 0`,
		`ALTER TABLE match_runs ADD COLUMN truncated BOOLEAN NOT NULL DEFAULT 0`,
	}

	for _, query := range queries {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to add search stats columns: %w", err)
		}
	}

	return nil
}
