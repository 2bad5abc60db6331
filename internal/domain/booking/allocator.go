package booking

// nextStudioNumber returns the smallest positive integer absent from the
// ascending-sorted slice of allocated numbers. Walking 1-indexed positions,
// the first position whose value differs from its index is a gap left by a
// deleted or re-assigned booking; with no gap the next number is count+1.
func nextStudioNumber(allocated []int) int {
	for i, n := range allocated {
		if n != i+1 {
			return i + 1
		}
	}
	return len(allocated) + 1
}

// fallbackStudioNumber returns max(allocated)+1, used when the first-fit
// candidate collides with a concurrent allocation.
func fallbackStudioNumber(allocated []int) int {
	max := 0
	for _, n := range allocated {
		if n > max {
			max = n
		}
	}
	return max + 1
}
