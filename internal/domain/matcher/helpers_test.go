package matcher

import "github.com/eshaffer321/chargematch/internal/domain/money"

func cents(v uint64) money.Cents {
	return money.Cents(v)
}

// valued builds indistinguishable charges: equal values are the same item.
func valued(values ...uint64) []Charge {
	charges := make([]Charge, len(values))
	for i, v := range values {
		charges[i] = Charge{Value: money.Cents(v)}
	}
	return charges
}

func orders(values ...uint64) []Order {
	out := make([]Order, len(values))
	for i, v := range values {
		out[i] = Order{Value: money.Cents(v)}
	}
	return out
}

func charge(label string, value uint64) Charge {
	return Charge{Label: label, Value: money.Cents(value)}
}

func order(label string, value uint64) Order {
	return Order{Label: label, Value: money.Cents(value)}
}

// candidateValues flattens candidates into their values for easy comparison.
func candidateValues(fits []Candidate) [][]uint64 {
	out := make([][]uint64, len(fits))
	for i, fit := range fits {
		out[i] = make([]uint64, len(fit))
		for j, ch := range fit {
			out[i][j] = uint64(ch.Value)
		}
	}
	return out
}
