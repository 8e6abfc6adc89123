package graphmetrics

import (
	"context"
	"math"

	"github.com/katalvlaran/spanflow/matrix"
)

// Degree returns neighbor counts normalized by n−1 (zeros when n < 2).
func Degree(adj *matrix.Dense) []float64 {
	n := adj.Rows()
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	for i, ns := range neighborLists(adj) {
		out[i] = float64(len(ns)) / float64(n-1)
	}
	return out
}

// sameLength compares finite path lengths with a relative tolerance so that
// sums accumulated in different orders still tie.
func sameLength(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// Betweenness returns, per node, the fraction of shortest paths between other
// ordered pairs that pass through it, normalized by (n−1)(n−2).
// It follows Brandes' accumulation with a dense O(n²) Dijkstra per source.
func Betweenness(ctx context.Context, adj *matrix.Dense, policy WeightPolicy) ([]float64, error) {
	n := adj.Rows()
	cb := make([]float64, n)
	if n < 3 {
		return cb, nil
	}
	conv := policy.convert()
	length := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if w := adj.Get(i, j); i != j && w > 0 {
				length[i*n+j] = conv(w)
			} else {
				length[i*n+j] = math.Inf(1)
			}
		}
	}

	dist := make([]float64, n)
	sigma := make([]float64, n)
	delta := make([]float64, n)
	done := make([]bool, n)
	preds := make([][]int, n)
	order := make([]int, 0, n)

	for s := 0; s < n; s++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			dist[i] = math.Inf(1)
			sigma[i], delta[i] = 0, 0
			done[i] = false
			preds[i] = preds[i][:0]
		}
		order = order[:0]
		dist[s], sigma[s] = 0, 1

		for {
			u := -1
			for i := 0; i < n; i++ {
				if !done[i] && !math.IsInf(dist[i], 1) && (u < 0 || dist[i] < dist[u]) {
					u = i
				}
			}
			if u < 0 {
				break
			}
			done[u] = true
			order = append(order, u)
			for v := 0; v < n; v++ {
				l := length[u*n+v]
				if done[v] || math.IsInf(l, 1) {
					continue
				}
				nd := dist[u] + l
				switch {
				case !math.IsInf(dist[v], 1) && sameLength(nd, dist[v]):
					sigma[v] += sigma[u]
					preds[v] = append(preds[v], u)
				case nd < dist[v]:
					dist[v] = nd
					sigma[v] = sigma[u]
					preds[v] = append(preds[v][:0], u)
				}
			}
		}

		for k := len(order) - 1; k >= 0; k-- {
			w := order[k]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				cb[w] += delta[w]
			}
		}
	}

	norm := float64((n - 1) * (n - 2))
	for i := range cb {
		cb[i] /= norm
	}
	return cb, nil
}

// Eigenvector runs power iteration on adj + I and returns the principal
// eigenvector scaled so its largest entry is 1. The identity shift keeps
// bipartite graphs (all supply→demand networks) from oscillating without
// changing the eigenvectors.
//
// An edgeless graph returns zeros with converged = true. Hitting maxIter
// returns zeros with converged = false.
func Eigenvector(ctx context.Context, adj *matrix.Dense, maxIter int, tol float64) ([]float64, bool, error) {
	n := adj.Rows()
	if n == 0 {
		return nil, true, nil
	}
	shifted := adj.Clone()
	edges := false
	shifted.Do(func(i, j int, v float64) bool {
		if i != j && v > 0 {
			edges = true
			return false
		}
		return true
	})
	if !edges {
		return make([]float64, n), true, nil
	}
	for i := 0; i < n; i++ {
		_ = shifted.Set(i, i, shifted.Get(i, i)+1)
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = 1
	}
	for it := 0; it < maxIter; it++ {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		y, err := matrix.MatVec(shifted, x)
		if err != nil {
			return nil, false, err
		}
		m := 0.0
		for _, v := range y {
			if math.Abs(v) > m {
				m = math.Abs(v)
			}
		}
		if m == 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			return make([]float64, n), false, nil
		}
		diff := 0.0
		for i := range y {
			y[i] /= m
			if d := math.Abs(y[i] - x[i]); d > diff {
				diff = d
			}
		}
		x = y
		if diff < tol {
			return x, true, nil
		}
	}
	return make([]float64, n), false, nil
}
