// Package money provides an exact integral representation of monetary
// amounts in minor units (cents).
//
// Reconciliation compares sums for exact equality, so amounts never pass
// through floating point. Text amounts are parsed with shopspring/decimal
// and must carry at most two fractional digits.
//
// Example usage:
//
//	amount, err := money.Parse("10.99")
//	if err != nil {
//		return err
//	}
//	fmt.Println(amount)         // 10.99
//	fmt.Println(uint64(amount)) // 1099
package money

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Cents is a non-negative amount in minor units.
type Cents uint64

var (
	// ErrInvalidAmount is returned for text that is not a two-place decimal amount
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNegativeAmount is returned for amounts below zero
	ErrNegativeAmount = errors.New("negative amount")
)

var maxCents = decimal.NewFromInt(math.MaxInt64)

// Parse converts a dollars.cents string (e.g. "10.99", "3", "0.5") into Cents.
// Amounts with sub-cent precision are rejected rather than rounded.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %s", ErrNegativeAmount, s)
	}
	if !d.Equal(d.Truncate(2)) {
		return 0, fmt.Errorf("%w: %q has more than two decimal places", ErrInvalidAmount, s)
	}

	minor := d.Shift(2)
	if minor.GreaterThan(maxCents) {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, s)
	}

	return Cents(minor.IntPart()), nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Cents {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromDollars builds an amount from whole dollars and cents (cents < 100).
func FromDollars(dollars, cents uint64) Cents {
	return Cents(dollars*100 + cents)
}

// IsZero reports whether the amount is zero.
func (c Cents) IsZero() bool {
	return c == 0
}

// Add returns c + o.
func (c Cents) Add(o Cents) Cents {
	return c + o
}

// Sub returns c - o. ok is false, and the result zero, when o > c.
func (c Cents) Sub(o Cents) (diff Cents, ok bool) {
	if o > c {
		return 0, false
	}
	return c - o, true
}

// Compare returns -1, 0 or +1 depending on whether c is less than, equal to
// or greater than o.
func (c Cents) Compare(o Cents) int {
	return cmp.Compare(c, o)
}

// Decimal returns the amount in major units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats the amount as dollars.cents with exactly two decimals.
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Sum adds up a list of amounts.
func Sum(amounts ...Cents) Cents {
	var total Cents
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
