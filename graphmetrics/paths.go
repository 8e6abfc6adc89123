package graphmetrics

import (
	"context"
	"math"

	"github.com/katalvlaran/spanflow/matrix"
)

// Distances runs Floyd–Warshall over the symmetric adjacency under policy.
func Distances(ctx context.Context, adj *matrix.Dense, policy WeightPolicy) (*matrix.Dense, error) {
	d, err := matrix.DistancesFromWeights(adj, policy.convert())
	if err != nil {
		return nil, err
	}
	if err := matrix.FloydWarshall(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// PathStats summarizes a distance table over reachable ordered pairs i≠j:
// average length, diameter and global efficiency (mean of 1/d). With no
// reachable pair the average is NaN and the others are 0.
func PathStats(dist *matrix.Dense, alive []bool) (avg, diameter, efficiency float64) {
	n := dist.Rows()
	var sum, inv float64
	pairs := 0
	for i := 0; i < n; i++ {
		if alive != nil && !alive[i] {
			continue
		}
		for j := 0; j < n; j++ {
			if i == j || (alive != nil && !alive[j]) {
				continue
			}
			d := dist.Get(i, j)
			if math.IsInf(d, 1) || math.IsNaN(d) {
				continue
			}
			pairs++
			sum += d
			if d > 0 {
				inv += 1 / d
			}
			if d > diameter {
				diameter = d
			}
		}
	}
	if pairs == 0 {
		return math.NaN(), 0, 0
	}
	return sum / float64(pairs), diameter, inv / float64(pairs)
}

// Density returns directed edges / (n(n−1)), 0 when n < 2.
func Density(edges, n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(edges) / float64(n*(n-1))
}
