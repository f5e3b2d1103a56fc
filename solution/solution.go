package solution

// Solution is one (assignment, score) pair held in a Store, plus how
// many times an equal assignment has been offered to it.
type Solution struct {
	Assignment []int
	Score      float64
	TimesSeen  int
}

// StorageMode selects which intermediate states an optimizer offers to
// a Store during a single attempt, per spec.md §4.6.
type StorageMode int

const (
	// CheckEveryStep considers every incremental state the optimizer
	// produces, accepted or not.
	CheckEveryStep StorageMode = iota

	// CheckOnAcceptance considers only accepted Metropolis states.
	CheckOnAcceptance

	// CheckOnFinalOnly considers only each attempt's best assignment.
	CheckOnFinalOnly
)

// compareAssignment returns -1, 0, or 1 per the usual lexicographic
// order over a's and b's entries (equal-length prefixes win ties by
// length). This is the "canonical assignment order" spec.md §4.4 and
// §4.6 use to make tied scores deterministic.
func compareAssignment(a, b []int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
