package matcher

import "github.com/eshaffer321/chargematch/internal/domain/money"

// FindExactSubset looks for charges summing exactly to target.
//
// Charges are taken in the order given; the caller sorts them. Each charge is
// included when it still fits in the remaining target and skipped when it
// would overshoot. Once a charge has been included the search never backs
// out of that choice, so a single call follows one path only. Completeness
// comes from EnumerateFits, which calls this once per subset of the power set.
//
// A zero target always succeeds with an empty subset, even when charges
// remain. The returned charges keep their input order.
func FindExactSubset(target money.Cents, charges []Charge) ([]Charge, bool) {
	picked := make([]Charge, 0, len(charges))

	for _, c := range charges {
		if target.IsZero() {
			break
		}

		// target < c.Value: including c would overshoot
		rest, ok := target.Sub(c.Value)
		if !ok {
			continue
		}

		target = rest
		picked = append(picked, c)
	}

	if !target.IsZero() {
		return nil, false
	}
	return picked, true
}
