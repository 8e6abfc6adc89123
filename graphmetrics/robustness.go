package graphmetrics

import (
	"context"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/spanflow/matrix"
)

// Attack removes nodes in descending degree-centrality order (ties by lower
// index) and tracks the largest component after each removal.
// Degenerate graphs (n < 2 or no links) return CriticalFraction = NaN.
func Attack(adj *matrix.Dense, degree []float64) Robustness {
	n := adj.Rows()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return degree[order[a]] > degree[order[b]] })

	r := Robustness{RemovalOrder: order, CriticalFraction: math.NaN()}
	_, largest := Components(adj, nil)
	if n < 2 || largest < 2 {
		return r
	}

	alive := make([]bool, n)
	for i := range alive {
		alive[i] = true
	}
	r.LargestComponent = make([]int, 0, n+1)
	r.LargestComponent = append(r.LargestComponent, largest)
	half := 0.5 * float64(n)
	for k, v := range order {
		alive[v] = false
		_, largest = Components(adj, alive)
		r.LargestComponent = append(r.LargestComponent, largest)
		if math.IsNaN(r.CriticalFraction) && float64(largest) < half {
			r.CriticalFraction = float64(k+1) / float64(n)
		}
	}
	return r
}

// efficiency returns the mean of 1/d over reachable ordered pairs among alive
// nodes, with distances from a fresh Floyd–Warshall on the induced subgraph.
func efficiency(ctx context.Context, adj *matrix.Dense, policy WeightPolicy, alive []bool) (float64, error) {
	var keep []int
	for i := 0; i < adj.Rows(); i++ {
		if alive == nil || alive[i] {
			keep = append(keep, i)
		}
	}
	if len(keep) < 2 {
		return 0, nil
	}
	sub, err := adj.Induced(keep, keep)
	if err != nil {
		return 0, err
	}
	dist, err := Distances(ctx, sub, policy)
	if err != nil {
		return 0, err
	}
	_, _, eff := PathStats(dist, nil)
	return eff, nil
}

// Vulnerability returns, per node, (E − E_without)/E where E is the global
// efficiency of the intact graph. Nodes are scanned on up to workers
// goroutines. A graph with E = 0 yields all zeros.
func Vulnerability(ctx context.Context, adj *matrix.Dense, policy WeightPolicy, base float64, workers int) ([]float64, error) {
	n := adj.Rows()
	out := make([]float64, n)
	if n < 2 || base == 0 {
		return out, nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for v := 0; v < n; v++ {
		v := v
		g.Go(func() error {
			alive := make([]bool, n)
			for i := range alive {
				alive[i] = i != v
			}
			e, err := efficiency(gctx, adj, policy, alive)
			if err != nil {
				return err
			}
			out[v] = (base - e) / base
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
