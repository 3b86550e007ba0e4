// Package validator checks reconciliation inputs before and after matching.
//
// The balance check compares the total owed with the total paid. Every
// exact allocation needs the two to be equal, so an imbalance explains an
// empty result: a charge has not posted yet, or a charge belongs elsewhere.
package validator

import (
	"fmt"

	"github.com/eshaffer321/chargematch/internal/domain/matcher"
	"github.com/eshaffer321/chargematch/internal/domain/money"
)

// Balance contains the result of comparing order and charge totals.
type Balance struct {
	// Balanced is true if the charges sum exactly to the orders
	Balanced bool

	OrderTotal  money.Cents
	ChargeTotal money.Cents

	// Missing is how much more the charges would need (zero unless short)
	Missing money.Cents

	// Excess is how much the charges overshoot (zero unless over)
	Excess money.Cents

	// Reason explains the imbalance (empty if balanced)
	Reason string
}

// CheckBalance compares the total of orders with the total of charges.
// Amounts are exact cents, so there is no rounding tolerance.
func CheckBalance(orders []matcher.Order, charges []matcher.Charge) *Balance {
	b := &Balance{
		OrderTotal:  matcher.TotalOrders(orders),
		ChargeTotal: matcher.TotalCharges(charges),
	}

	if missing, ok := b.OrderTotal.Sub(b.ChargeTotal); ok && !missing.IsZero() {
		b.Missing = missing
		b.Reason = fmt.Sprintf("charges ($%s) are less than orders ($%s) - missing $%s, likely a charge hasn't posted yet",
			b.ChargeTotal, b.OrderTotal, missing)
		return b
	}

	if excess, ok := b.ChargeTotal.Sub(b.OrderTotal); ok && !excess.IsZero() {
		b.Excess = excess
		b.Reason = fmt.Sprintf("charges ($%s) exceed orders ($%s) by $%s - possible duplicate or extra charge",
			b.ChargeTotal, b.OrderTotal, excess)
		return b
	}

	b.Balanced = true
	return b
}
