package solution

// entry is one kept candidate: both the heap slice and the dedupe
// index map hold the same *entry, so incrementing TimesSeen through
// the index is visible from the heap without a Fix.
type entry struct {
	assignment []int
	score      float64
	timesSeen  int
}

// worstFirstHeap is a container/heap.Interface over *entry, ordered so
// that the root (index 0) is the single worst (highest-score) kept
// candidate, breaking ties by canonical assignment order. This is the
// standard max-heap-via-inverted-Less trick, mirroring the teacher's
// dijkstra package's lazy-decrease-key heap usage adapted to a
// bounded-size eviction heap instead of an unbounded priority queue.
type worstFirstHeap []*entry

func (h worstFirstHeap) Len() int { return len(h) }

func (h worstFirstHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score > h[j].score
	}
	return compareAssignment(h[i].assignment, h[j].assignment) > 0
}

func (h worstFirstHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *worstFirstHeap) Push(x interface{}) { *h = append(*h, x.(*entry)) }

func (h *worstFirstHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}
