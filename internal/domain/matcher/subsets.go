package matcher

// subsets walks every subset of a slice in lexicographic index order,
// starting with the empty set. Nothing is materialised up front.
type subsets[T any] []T

// Subsets prepares entries for power-set iteration.
func Subsets[T any](entries []T) subsets[T] {
	return entries
}

// ForEach calls do once per subset until do returns false. Elements keep
// their relative order from the input. The slice passed to do is reused
// between calls and must not be retained.
func (S subsets[T]) ForEach(do func([]T) bool) {
	last := len(S) - 1
	ss := make([]int, 0, len(S))
	subset := make([]T, 0, len(S))

	for {
		subset = subset[:0]
		for _, i := range ss {
			subset = append(subset, S[i])
		}

		if !do(subset) {
			return
		}

		switch {
		// Only the empty set exists, and it was just visited.
		case len(S) == 0:
			return
		// The empty set was visited, start on the non-empty ones.
		case len(ss) == 0:
			ss = append(ss, 0)
		// The last singleton is the final subset.
		case len(ss) == 1 && ss[0] == last:
			return
		// Drop the last element and advance the one before it.
		case ss[len(ss)-1] == last:
			ss = ss[:len(ss)-1]
			ss[len(ss)-1]++
		// Extend with the next element.
		default:
			ss = append(ss, ss[len(ss)-1]+1)
		}
	}
}
