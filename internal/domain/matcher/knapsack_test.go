package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindExactSubset(t *testing.T) {
	tests := []struct {
		name    string
		target  uint64
		charges []uint64
		want    []uint64 // nil = not found
	}{
		{name: "zero target, no charges", target: 0, charges: nil, want: []uint64{}},
		{name: "zero target ignores leftovers", target: 0, charges: []uint64{1}, want: []uint64{}},
		{name: "no charges", target: 1, charges: nil, want: nil},
		{name: "single exact", target: 1, charges: []uint64{1}, want: []uint64{1}},
		{name: "stops once satisfied", target: 1, charges: []uint64{1, 2}, want: []uint64{1}},
		{name: "too large", target: 1, charges: []uint64{2}, want: nil},
		{name: "skips overshooting charges", target: 7, charges: []uint64{1, 3, 1, 5, 2, 1}, want: []uint64{1, 3, 1, 2}},
		{name: "no backtracking after inclusion", target: 5, charges: []uint64{2, 2, 5}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindExactSubset(cents(tt.target), valued(tt.charges...))

			if tt.want == nil {
				assert.False(t, ok)
				assert.Nil(t, got)
				return
			}

			assert.True(t, ok)
			assert.Equal(t, valued(tt.want...), got)
		})
	}
}

func TestFindExactSubset_SumsToTarget(t *testing.T) {
	charges := []Charge{
		{Label: "2025-01-02", Value: 1299},
		{Label: "2025-01-03", Value: 501},
		{Label: "2025-01-04", Value: 4200},
	}

	got, ok := FindExactSubset(1800, charges)

	assert.True(t, ok)
	assert.Equal(t, cents(1800), Candidate(got).Sum())
	assert.Equal(t, []Charge{charges[0], charges[1]}, got)
}

func TestFindExactSubset_DoesNotModifyInput(t *testing.T) {
	charges := valued(5, 3, 1)
	before := append([]Charge(nil), charges...)

	_, _ = FindExactSubset(4, charges)

	assert.Equal(t, before, charges)
}
