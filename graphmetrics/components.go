package graphmetrics

import "github.com/katalvlaran/spanflow/matrix"

// dsu is a disjoint-set forest with path compression and union by rank.
type dsu struct {
	parent []int
	rank   []int
	sets   int
}

func newDSU(n int) *dsu {
	d := &dsu{parent: make([]int, n), rank: make([]int, n), sets: n}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

// find walks to the root, pointing each visited node at its grandparent.
func (d *dsu) find(u int) int {
	for d.parent[u] != u {
		d.parent[u] = d.parent[d.parent[u]]
		u = d.parent[u]
	}
	return u
}

// union merges the sets of u and v and reports whether they were distinct.
func (d *dsu) union(u, v int) bool {
	ru, rv := d.find(u), d.find(v)
	if ru == rv {
		return false
	}
	switch {
	case d.rank[ru] < d.rank[rv]:
		d.parent[ru] = rv
	case d.rank[ru] > d.rank[rv]:
		d.parent[rv] = ru
	default:
		d.parent[rv] = ru
		d.rank[ru]++
	}
	d.sets--
	return true
}

// Components counts connected components of the symmetric adjacency adj,
// considering only nodes with alive[i] (nil means all).
// It returns the component count and the size of the largest one.
func Components(adj *matrix.Dense, alive []bool) (count, largest int) {
	n := adj.Rows()
	d := newDSU(n)
	for i := 0; i < n; i++ {
		if alive != nil && !alive[i] {
			continue
		}
		for j := i + 1; j < n; j++ {
			if alive != nil && !alive[j] {
				continue
			}
			if adj.Get(i, j) > 0 {
				d.union(i, j)
			}
		}
	}
	size := make([]int, n)
	for i := 0; i < n; i++ {
		if alive != nil && !alive[i] {
			continue
		}
		r := d.find(i)
		if size[r] == 0 {
			count++
		}
		size[r]++
		if size[r] > largest {
			largest = size[r]
		}
	}
	return count, largest
}

// Connectivity returns 1 − components/n (0 for an empty graph).
func Connectivity(components, n int) float64 {
	if n == 0 {
		return 0
	}
	return 1 - float64(components)/float64(n)
}
