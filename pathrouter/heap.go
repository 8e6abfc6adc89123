package pathrouter

// cellItem is a heap entry: a cell index, its priority and the order in which
// it was pushed. seq breaks priority ties so the earliest discovery wins.
type cellItem struct {
	idx  int
	prio float64
	seq  uint64
}

// cellPQ is a min-heap of cellItem ordered by (prio, seq). Stale entries are
// left in place and skipped when popped ("lazy decrease-key").
type cellPQ []cellItem

// Len returns the number of items in the heap.
func (pq cellPQ) Len() int { return len(pq) }

// Less orders by priority, then by discovery sequence.
func (pq cellPQ) Less(i, j int) bool {
	if pq[i].prio != pq[j].prio {
		return pq[i].prio < pq[j].prio
	}
	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq cellPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *cellPQ) Push(x interface{}) { *pq = append(*pq, x.(cellItem)) }

// Pop removes and returns the last element.
func (pq *cellPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
