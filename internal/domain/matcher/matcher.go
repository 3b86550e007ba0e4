// Package matcher reconciles orders (amounts owed) against charges (amounts
// paid) by exact cover.
//
// A solution assigns every charge to exactly one order so that each order's
// charges sum exactly to its value. The matcher finds all such solutions:
//
//   - FindExactSubset follows one include/skip path for a single target
//   - EnumerateFits walks the power set of charges for one order and keeps
//     every distinct exact fit
//   - Match combines the per-order fits (one per order) and keeps the
//     combinations that use each charge exactly once
//
// The search is exponential in the number of charges. Config.MaxCharges
// guards callers against inputs that would never finish.
//
// Example usage:
//
//	m := matcher.NewMatcher(matcher.DefaultConfig(), logger)
//	result, err := m.Match(ctx, orders, charges)
//	if err != nil {
//		return err
//	}
//	for _, solution := range result.Solutions {
//		// one complete allocation
//	}
package matcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eshaffer321/chargematch/internal/domain/money"
)

// ErrTooManyCharges is returned when the input exceeds Config.MaxCharges
var ErrTooManyCharges = errors.New("too many charges")

// Matcher finds exact-cover allocations of charges to orders
type Matcher struct {
	config Config
	logger *slog.Logger
}

// NewMatcher creates a new matcher with the given config
func NewMatcher(config Config, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{
		config: config,
		logger: logger,
	}
}

// Config returns the matcher's configuration
func (m *Matcher) Config() Config {
	return m.config
}

// MatchAll returns every exact allocation of charges to orders using an
// unlimited, sequential matcher.
func MatchAll(orders []Order, charges []Charge) SolutionSet {
	m := NewMatcher(Config{}, nil)
	result, err := m.Match(context.Background(), orders, charges)
	if err != nil {
		// Unreachable without limits or cancellation
		return nil
	}
	return result.Solutions
}

// Match finds every allocation that assigns each charge to exactly one order
// with each order's charges summing exactly to its value.
//
// No allocation is a normal outcome and yields an empty solution set. An
// empty charge list always yields no solutions, whatever the orders. The
// input slices are not modified.
func (m *Matcher) Match(ctx context.Context, orders []Order, charges []Charge) (*Result, error) {
	result := &Result{
		CandidateCounts: make([]int, len(orders)),
	}

	if len(charges) == 0 {
		return result, nil
	}

	if m.config.MaxCharges > 0 && len(charges) > m.config.MaxCharges {
		return nil, fmt.Errorf("%w: %d charges exceeds limit of %d",
			ErrTooManyCharges, len(charges), m.config.MaxCharges)
	}

	start := time.Now()
	snapshot := SortCharges(charges)

	candidates, err := m.candidatesPerOrder(ctx, orders, snapshot)
	if err != nil {
		return nil, err
	}

	for i, fits := range candidates {
		result.CandidateCounts[i] = len(fits)
		m.logger.Debug("enumerated fits",
			"order", orders[i].Label,
			"value", orders[i].Value.String(),
			"candidates", len(fits),
		)
	}

	for i, fits := range candidates {
		if len(fits) == 0 {
			m.logger.Debug("order has no exact fit", "order", orders[i].Label)
			return result, nil
		}
	}

	if !balanced(orders, snapshot) {
		m.logger.Debug("order and charge totals differ, no cover possible")
		return result, nil
	}

	c := newCombiner(orders, snapshot, candidates, m.config.MaxSolutions)
	if err := c.walk(ctx, 0); err != nil {
		return nil, err
	}

	result.Solutions = c.ranked()
	result.Explored = c.explored
	result.Truncated = c.truncated

	m.logger.Debug("matching complete",
		"orders", len(orders),
		"charges", len(charges),
		"solutions", len(result.Solutions),
		"explored", c.explored,
		"truncated", c.truncated,
		"duration", time.Since(start),
	)

	return result, nil
}

// candidatesPerOrder enumerates fits once per distinct order value, on up to
// Config.Workers goroutines, and fans them back out in order.
func (m *Matcher) candidatesPerOrder(ctx context.Context, orders []Order, snapshot []Charge) ([][]Candidate, error) {
	index := make(map[money.Cents]int)
	var values []money.Cents
	for _, o := range orders {
		if _, ok := index[o.Value]; !ok {
			index[o.Value] = len(values)
			values = append(values, o.Value)
		}
	}

	workers := m.config.Workers
	if workers < 1 {
		workers = 1
	}

	fitsByValue := make([][]Candidate, len(values))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			fits, err := enumerateFits(gctx, Order{Value: v}, snapshot)
			if err != nil {
				return err
			}
			fitsByValue[i] = fits
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := make([][]Candidate, len(orders))
	for i, o := range orders {
		candidates[i] = fitsByValue[index[o.Value]]
	}
	return candidates, nil
}

// balanced reports whether the orders and charges have the same total.
// Every exact cover needs this, so an imbalance rules out all solutions.
func balanced(orders []Order, charges []Charge) bool {
	return TotalOrders(orders) == TotalCharges(charges)
}
