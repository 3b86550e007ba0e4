package matcher

import (
	"context"
	"slices"
)

// EnumerateFits returns every distinct group of charges that sums exactly to
// the order's value, in candidate order.
//
// The whole power set of charges is walked and each subset is checked with
// FindExactSubset. Groups are deduplicated by charge identity (label and
// value), so charges that only share a value stay separate candidates.
// A zero-value order yields exactly one candidate: the empty group.
func EnumerateFits(order Order, charges []Charge) []Candidate {
	fits, _ := enumerateFits(context.Background(), order, SortCharges(charges))
	return fits
}

// enumerateFits expects charges already in canonical order.
func enumerateFits(ctx context.Context, order Order, charges []Charge) ([]Candidate, error) {
	seen := make(map[string]struct{})
	var fits []Candidate
	var err error

	visited := 0
	Subsets(charges).ForEach(func(subset []Charge) bool {
		visited++
		if visited%4096 == 0 {
			if err = ctx.Err(); err != nil {
				return false
			}
		}

		picked, ok := FindExactSubset(order.Value, subset)
		if !ok {
			return true
		}

		fit := Candidate(slices.Clone(picked))
		slices.SortFunc(fit, Charge.Compare)

		key := fit.key()
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}
		fits = append(fits, fit)
		return true
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(fits, Candidate.Compare)
	return fits, nil
}
