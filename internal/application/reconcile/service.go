// Package reconcile runs one matching job end to end: it applies the
// configured limits, runs the matcher and records the run in the history
// store.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/eshaffer321/chargematch/internal/domain/matcher"
	"github.com/eshaffer321/chargematch/internal/domain/validator"
	"github.com/eshaffer321/chargematch/internal/infrastructure/storage"
)

// Request holds the inputs of one reconciliation.
type Request struct {
	Orders       []matcher.Order
	Charges      []matcher.Charge
	Source       string // "cli", "api"
	MaxSolutions int    // Overrides the configured limit when > 0
}

// Result holds the outcome of one reconciliation.
type Result struct {
	RunID           string
	Solutions       matcher.SolutionSet
	CandidateCounts []int
	Explored        int
	Truncated       bool
	Balance         *validator.Balance
	Duration        time.Duration
}

// Service reconciles orders against charges.
type Service struct {
	config  matcher.Config
	storage storage.Repository // nil disables run history
	logger  *slog.Logger
}

// NewService creates a new reconcile service. store may be nil.
func NewService(config matcher.Config, store storage.Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		config:  config,
		storage: store,
		logger:  logger,
	}
}

// Config returns the matcher limits applied to every run.
func (s *Service) Config() matcher.Config {
	return s.config
}

// Reconcile finds every exact allocation of req.Charges to req.Orders.
// An empty solution set is a normal result. Errors come from the charge
// limit (matcher.ErrTooManyCharges) or from ctx.
func (s *Service) Reconcile(ctx context.Context, req Request) (*Result, error) {
	cfg := s.config
	if req.MaxSolutions > 0 {
		cfg.MaxSolutions = req.MaxSolutions
	}

	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)
	start := time.Now()
	balance := validator.CheckBalance(req.Orders, req.Charges)

	s.recordStart(logger, &storage.MatchRun{
		RunID:        runID,
		Source:       req.Source,
		OrderCount:   len(req.Orders),
		ChargeCount:  len(req.Charges),
		OrderTotal:   int64(balance.OrderTotal),
		ChargeTotal:  int64(balance.ChargeTotal),
		MaxSolutions: cfg.MaxSolutions,
		StartedAt:    start,
	})

	logger.Info("reconciliation started",
		"source", req.Source,
		"orders", len(req.Orders),
		"charges", len(req.Charges),
	)

	m := matcher.NewMatcher(cfg, logger.With("system", "matcher"))
	found, err := m.Match(ctx, req.Orders, req.Charges)
	if err != nil {
		s.recordFailure(logger, runID, err)
		logger.Warn("reconciliation failed", "error", err)
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	result := &Result{
		RunID:           runID,
		Solutions:       found.Solutions,
		CandidateCounts: found.CandidateCounts,
		Explored:        found.Explored,
		Truncated:       found.Truncated,
		Balance:         balance,
		Duration:        time.Since(start),
	}

	s.recordCompletion(logger, runID, storage.RunOutcome{
		SolutionCount: len(result.Solutions),
		Explored:      result.Explored,
		Truncated:     result.Truncated,
	})

	if !balance.Balanced {
		logger.Debug("totals differ", "reason", balance.Reason)
	}

	logger.Info("reconciliation complete",
		"solutions", len(result.Solutions),
		"truncated", result.Truncated,
		"duration", result.Duration,
	)

	return result, nil
}

// History failures never fail a run; they are logged and the run goes on.

func (s *Service) recordStart(logger *slog.Logger, run *storage.MatchRun) {
	if s.storage == nil {
		return
	}
	if err := s.storage.StartRun(run); err != nil {
		logger.Warn("failed to record run start", "error", err)
	}
}

func (s *Service) recordCompletion(logger *slog.Logger, runID string, outcome storage.RunOutcome) {
	if s.storage == nil {
		return
	}
	if err := s.storage.CompleteRun(runID, outcome); err != nil && !errors.Is(err, storage.ErrRunNotFound) {
		logger.Warn("failed to record run completion", "error", err)
	}
}

func (s *Service) recordFailure(logger *slog.Logger, runID string, cause error) {
	if s.storage == nil {
		return
	}
	if err := s.storage.FailRun(runID, cause.Error()); err != nil && !errors.Is(err, storage.ErrRunNotFound) {
		logger.Warn("failed to record run failure", "error", err)
	}
}
