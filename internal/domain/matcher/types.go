package matcher

import (
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/eshaffer321/chargematch/internal/domain/money"
)

// Config holds matcher configuration
type Config struct {
	MaxCharges   int // Reject inputs with more charges (0 = unlimited)
	MaxSolutions int // Stop after this many distinct solutions (0 = all)
	Workers      int // Parallel per-order enumeration (<= 1 = sequential)
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		MaxCharges:   24,
		MaxSolutions: 0,
		Workers:      runtime.NumCPU(),
	}
}

// Order is an amount owed. Matching only looks at Value; Label is for display.
type Order struct {
	Label string
	Value money.Cents
}

// Compare orders by label, then value.
func (o Order) Compare(p Order) int {
	if r := strings.Compare(o.Label, p.Label); r != 0 {
		return r
	}
	return o.Value.Compare(p.Value)
}

// Charge is an observed payment. Two charges are the same item only when
// both label and value are equal.
type Charge struct {
	Label string
	Value money.Cents
}

// Compare charges by value, then label. This is the canonical charge order.
func (c Charge) Compare(d Charge) int {
	if r := c.Value.Compare(d.Value); r != 0 {
		return r
	}
	return strings.Compare(c.Label, d.Label)
}

// key identifies a charge independently of its position.
func (c Charge) key() string {
	return strconv.Quote(c.Label) + ":" + strconv.FormatUint(uint64(c.Value), 10)
}

// Candidate is a canonically sorted group of charges that sums exactly to
// one order's value.
type Candidate []Charge

// Sum returns the total value of the charges.
func (c Candidate) Sum() money.Cents {
	var total money.Cents
	for _, ch := range c {
		total = total.Add(ch.Value)
	}
	return total
}

// Compare candidates lexicographically under the charge order.
func (c Candidate) Compare(d Candidate) int {
	return slices.CompareFunc(c, d, Charge.Compare)
}

func (c Candidate) key() string {
	var b strings.Builder
	for _, ch := range c {
		b.WriteString(ch.key())
		b.WriteByte(',')
	}
	return b.String()
}

// Assignment pairs an order with the charges allocated to it.
type Assignment struct {
	Order   Order
	Charges Candidate
}

// Compare assignments by order, then by charges.
func (a Assignment) Compare(b Assignment) int {
	if r := a.Order.Compare(b.Order); r != 0 {
		return r
	}
	return a.Charges.Compare(b.Charges)
}

// Solution allocates every charge to exactly one order. Assignments follow
// the order of the input orders.
type Solution []Assignment

// Compare solutions lexicographically over their assignments.
func (s Solution) Compare(t Solution) int {
	return slices.CompareFunc(s, t, Assignment.Compare)
}

// Charges returns every charge used by the solution, in canonical order.
func (s Solution) Charges() []Charge {
	var all []Charge
	for _, a := range s {
		all = append(all, a.Charges...)
	}
	slices.SortFunc(all, Charge.Compare)
	return all
}

func (s Solution) key() string {
	var b strings.Builder
	for _, a := range s {
		b.WriteString(strconv.Quote(a.Order.Label))
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(a.Order.Value), 10))
		b.WriteByte('=')
		b.WriteString(a.Charges.key())
		b.WriteByte(';')
	}
	return b.String()
}

// SolutionSet is the ranked, deduplicated output of one matching run.
type SolutionSet []Solution

// Result contains solutions plus bookkeeping from one matching run.
type Result struct {
	Solutions       SolutionSet
	CandidateCounts []int // Exact fits found per order (same order as input)
	Explored        int   // Partial combinations visited by the combiner
	Truncated       bool  // True if MaxSolutions stopped the search early
}

// SortCharges returns a sorted copy of charges in canonical order.
func SortCharges(charges []Charge) []Charge {
	sorted := slices.Clone(charges)
	slices.SortFunc(sorted, Charge.Compare)
	return sorted
}

// TotalOrders returns the combined value owed.
func TotalOrders(orders []Order) money.Cents {
	var total money.Cents
	for _, o := range orders {
		total = total.Add(o.Value)
	}
	return total
}

// TotalCharges returns the combined value paid.
func TotalCharges(charges []Charge) money.Cents {
	return Candidate(charges).Sum()
}
