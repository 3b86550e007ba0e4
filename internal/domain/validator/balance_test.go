package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eshaffer321/chargematch/internal/domain/matcher"
	"github.com/eshaffer321/chargematch/internal/domain/money"
)

func order(label, amount string) matcher.Order {
	return matcher.Order{Label: label, Value: money.MustParse(amount)}
}

func charge(label, amount string) matcher.Charge {
	return matcher.Charge{Label: label, Value: money.MustParse(amount)}
}

func TestCheckBalance_Balanced(t *testing.T) {
	// Two shipments for one order
	orders := []matcher.Order{order("order", "103.27")}
	charges := []matcher.Charge{charge("03-01", "52.55"), charge("03-04", "50.72")}

	result := CheckBalance(orders, charges)

	assert.True(t, result.Balanced)
	assert.Equal(t, money.MustParse("103.27"), result.OrderTotal)
	assert.Equal(t, money.MustParse("103.27"), result.ChargeTotal)
	assert.Zero(t, result.Missing)
	assert.Zero(t, result.Excess)
	assert.Empty(t, result.Reason)
}

func TestCheckBalance_MissingCharge(t *testing.T) {
	orders := []matcher.Order{order("order", "103.27")}
	charges := []matcher.Charge{charge("03-01", "52.55")}

	result := CheckBalance(orders, charges)

	assert.False(t, result.Balanced)
	assert.Equal(t, money.MustParse("50.72"), result.Missing)
	assert.Zero(t, result.Excess)
	assert.Contains(t, result.Reason, "less than orders")
	assert.Contains(t, result.Reason, "missing $50.72")
}

func TestCheckBalance_ExtraCharge(t *testing.T) {
	orders := []matcher.Order{order("a", "50.00"), order("b", "50.00")}
	charges := []matcher.Charge{charge("x", "50.00"), charge("y", "50.00"), charge("z", "50.00")}

	result := CheckBalance(orders, charges)

	assert.False(t, result.Balanced)
	assert.Equal(t, money.MustParse("50.00"), result.Excess)
	assert.Contains(t, result.Reason, "exceed orders ($100.00) by $50.00")
}

func TestCheckBalance_OneCentIsNotTolerated(t *testing.T) {
	result := CheckBalance([]matcher.Order{order("a", "100.00")}, []matcher.Charge{charge("x", "99.99")})

	assert.False(t, result.Balanced)
	assert.Equal(t, money.Cents(1), result.Missing)
}

func TestCheckBalance_Empty(t *testing.T) {
	result := CheckBalance(nil, nil)

	assert.True(t, result.Balanced)
	assert.Zero(t, result.OrderTotal)
}

func TestCheckBalance_NoCharges(t *testing.T) {
	result := CheckBalance([]matcher.Order{order("a", "1.00")}, nil)

	assert.False(t, result.Balanced)
	assert.Contains(t, result.Reason, "less than orders")
}
