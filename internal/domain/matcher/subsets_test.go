package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collectSubsets(entries []string) [][]string {
	var out [][]string
	Subsets(entries).ForEach(func(subset []string) bool {
		out = append(out, append([]string{}, subset...))
		return true
	})
	return out
}

func TestSubsets_ForEach(t *testing.T) {
	t.Run("empty set has only the empty subset", func(t *testing.T) {
		assert.Equal(t, [][]string{{}}, collectSubsets(nil))
	})

	t.Run("singleton", func(t *testing.T) {
		assert.Equal(t, [][]string{{}, {"a"}}, collectSubsets([]string{"a"}))
	})

	t.Run("lexicographic order over three elements", func(t *testing.T) {
		got := collectSubsets([]string{"a", "b", "c"})
		want := [][]string{
			{},
			{"a"},
			{"a", "b"},
			{"a", "b", "c"},
			{"a", "c"},
			{"b"},
			{"b", "c"},
			{"c"},
		}
		assert.Equal(t, want, got)
	})

	t.Run("visits 2^n subsets", func(t *testing.T) {
		got := collectSubsets([]string{"a", "b", "c", "d", "e", "f"})
		assert.Len(t, got, 64)
	})

	t.Run("stops when callback returns false", func(t *testing.T) {
		calls := 0
		Subsets([]int{1, 2, 3}).ForEach(func([]int) bool {
			calls++
			return calls < 3
		})
		assert.Equal(t, 3, calls)
	})
}
