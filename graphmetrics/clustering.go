package graphmetrics

import "github.com/katalvlaran/spanflow/matrix"

// neighborLists returns ascending neighbor indices per node of adj.
func neighborLists(adj *matrix.Dense) [][]int {
	n := adj.Rows()
	out := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && adj.Get(i, j) > 0 {
				out[i] = append(out[i], j)
			}
		}
	}
	return out
}

// Clustering averages, over nodes with at least two neighbors, the fraction
// of neighbor pairs that are themselves linked. Returns 0 if no node qualifies.
func Clustering(adj *matrix.Dense) float64 {
	nb := neighborLists(adj)
	var sum float64
	counted := 0
	for _, ns := range nb {
		k := len(ns)
		if k < 2 {
			continue
		}
		links := 0
		for a := 0; a < k; a++ {
			for b := a + 1; b < k; b++ {
				if adj.Get(ns[a], ns[b]) > 0 {
					links++
				}
			}
		}
		sum += float64(links) / float64(k*(k-1)/2)
		counted++
	}
	if counted == 0 {
		return 0
	}
	return sum / float64(counted)
}
