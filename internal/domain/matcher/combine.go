package matcher

import (
	"context"
	"slices"
)

// combiner walks the Cartesian product of per-order candidates depth first,
// one order per level. A branch is cut as soon as it would use a charge more
// often than it appears in the input, so only partial allocations that can
// still be an exact cover are extended.
type combiner struct {
	orders     []Order
	snapshot   []Charge
	candidates [][]Candidate
	ids        [][][]int // candidate charges as indexes into avail
	groups     [][]int   // positions of orders sharing label and value

	avail     []int
	used      []int
	usedTotal int
	choice    []int

	limit     int
	seen      map[string]struct{}
	found     []Solution
	explored  int
	truncated bool
}

func newCombiner(orders []Order, snapshot []Charge, candidates [][]Candidate, limit int) *combiner {
	index := make(map[string]int)
	var avail []int
	for _, ch := range snapshot {
		k := ch.key()
		id, ok := index[k]
		if !ok {
			id = len(avail)
			index[k] = id
			avail = append(avail, 0)
		}
		avail[id]++
	}

	ids := make([][][]int, len(candidates))
	for i, fits := range candidates {
		ids[i] = make([][]int, len(fits))
		for j, fit := range fits {
			ids[i][j] = make([]int, len(fit))
			for k, ch := range fit {
				ids[i][j][k] = index[ch.key()]
			}
		}
	}

	return &combiner{
		orders:     orders,
		snapshot:   snapshot,
		candidates: candidates,
		ids:        ids,
		groups:     identicalOrders(orders),
		avail:      avail,
		used:       make([]int, len(avail)),
		choice:     make([]int, len(orders)),
		limit:      limit,
		seen:       make(map[string]struct{}),
	}
}

// walk chooses a candidate for orders[depth:] in product order.
func (c *combiner) walk(ctx context.Context, depth int) error {
	c.explored++
	if c.explored%1024 == 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	if depth == len(c.orders) {
		if c.usedTotal == len(c.snapshot) {
			c.accept()
		}
		return nil
	}

	for j := range c.candidates[depth] {
		if !c.take(c.ids[depth][j]) {
			continue
		}
		c.choice[depth] = j

		err := c.walk(ctx, depth+1)
		c.release(c.ids[depth][j])
		if err != nil {
			return err
		}
		if c.truncated {
			return nil
		}
	}

	return nil
}

// take reserves the charges of one candidate. It reserves nothing and
// returns false if any charge is already used up.
func (c *combiner) take(ids []int) bool {
	for k, id := range ids {
		if c.used[id] == c.avail[id] {
			for _, taken := range ids[:k] {
				c.used[taken]--
			}
			return false
		}
		c.used[id]++
	}
	c.usedTotal += len(ids)
	return true
}

func (c *combiner) release(ids []int) {
	for _, id := range ids {
		c.used[id]--
	}
	c.usedTotal -= len(ids)
}

// accept records the current choice if it is a new exact cover.
func (c *combiner) accept() {
	solution := make(Solution, len(c.orders))
	for i, o := range c.orders {
		solution[i] = Assignment{Order: o, Charges: c.candidates[i][c.choice[i]]}
	}
	c.canonicalize(solution)

	if !coversExactly(c.snapshot, solution) {
		return
	}

	key := solution.key()
	if _, dup := c.seen[key]; dup {
		return
	}
	c.seen[key] = struct{}{}
	c.found = append(c.found, solution)

	if c.limit > 0 && len(c.found) >= c.limit {
		c.truncated = true
	}
}

// canonicalize sorts the candidates among interchangeable orders so that
// swapping them produces the same solution.
func (c *combiner) canonicalize(solution Solution) {
	for _, positions := range c.groups {
		fits := make([]Candidate, len(positions))
		for k, p := range positions {
			fits[k] = solution[p].Charges
		}
		slices.SortFunc(fits, Candidate.Compare)
		for k, p := range positions {
			solution[p].Charges = fits[k]
		}
	}
}

// ranked returns the solutions found, in solution order.
func (c *combiner) ranked() SolutionSet {
	solutions := slices.Clone(c.found)
	slices.SortFunc(solutions, Solution.Compare)
	return SolutionSet(solutions)
}

// coversExactly reports whether the solution's charges, as a multiset, equal
// the canonically sorted snapshot.
func coversExactly(snapshot []Charge, solution Solution) bool {
	return slices.Equal(snapshot, solution.Charges())
}

// identicalOrders groups the positions of orders with equal label and value.
// Only groups with more than one position are returned.
func identicalOrders(orders []Order) [][]int {
	byOrder := make(map[Order][]int)
	var keys []Order
	for i, o := range orders {
		if _, ok := byOrder[o]; !ok {
			keys = append(keys, o)
		}
		byOrder[o] = append(byOrder[o], i)
	}

	var groups [][]int
	for _, o := range keys {
		if len(byOrder[o]) > 1 {
			groups = append(groups, byOrder[o])
		}
	}
	return groups
}
