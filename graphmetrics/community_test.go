package graphmetrics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spanflow/graphmetrics"
	"github.com/katalvlaran/spanflow/matrix"
	"github.com/katalvlaran/spanflow/network"
)

// twoBlocks is two disjoint complete 2×2 supply–demand blocks.
func twoBlocks(t *testing.T) *network.Graph {
	var edges []network.Edge
	for _, e := range [][2]int{{0, 4}, {0, 5}, {1, 4}, {1, 5}, {2, 6}, {2, 7}, {3, 6}, {3, 7}} {
		edges = append(edges, network.Edge{From: e[0], To: e[1], Weight: 1})
	}
	return mustGraph(t, 4, 4, edges)
}

// TestCommunities_Blocks recovers the two blocks.
func TestCommunities_Blocks(t *testing.T) {
	adj := twoBlocks(t).Undirected()
	p, err := graphmetrics.Communities(context.Background(), adj, 7, 100, 1e-9)
	require.NoError(t, err)
	require.True(t, p.Converged)
	require.Equal(t, 2, p.Count)
	require.Equal(t, []int{0, 0, 1, 1, 0, 0, 1, 1}, p.Membership)
	require.InDelta(t, 0.5, p.Modularity, eps)
	require.InDelta(t, p.Modularity, graphmetrics.Modularity(adj, p.Membership), eps)
}

// TestCommunities_Deterministic yields the same partition for a fixed seed.
func TestCommunities_Deterministic(t *testing.T) {
	adj := complete33(t).Undirected()
	a, err := graphmetrics.Communities(context.Background(), adj, 42, 100, 1e-9)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		b, err := graphmetrics.Communities(context.Background(), adj, 42, 100, 1e-9)
		require.NoError(t, err)
		require.Equal(t, a, b)
	}
}

// TestCommunities_FixedPoint re-running on a converged partition changes nothing:
// every seed lands on a partition no single move or merge improves.
func TestCommunities_FixedPoint(t *testing.T) {
	adj := twoBlocks(t).Undirected()
	for seed := int64(0); seed < 10; seed++ {
		p, err := graphmetrics.Communities(context.Background(), adj, seed, 100, 1e-9)
		require.NoError(t, err)
		require.Equal(t, []int{0, 0, 1, 1, 0, 0, 1, 1}, p.Membership, "seed %d", seed)
	}
}

// TestModularity_Singletons matches −Σk²/(2m)² for singletons.
func TestModularity_Singletons(t *testing.T) {
	adj := complete33(t).Undirected()
	q := graphmetrics.Modularity(adj, []int{0, 1, 2, 3, 4, 5})
	require.InDelta(t, -1.0/6, q, eps)
	require.InDelta(t, 0.0, graphmetrics.Modularity(adj, make([]int, 6)), eps)
}

// TestParseWeightPolicy round-trips names.
func TestParseWeightPolicy(t *testing.T) {
	for _, p := range []graphmetrics.WeightPolicy{graphmetrics.WeightInverted, graphmetrics.WeightAsDistance} {
		got, err := graphmetrics.ParseWeightPolicy(p.String())
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
	_, err := graphmetrics.ParseWeightPolicy("log")
	require.Error(t, err)
}

// symmetric builds an undirected unit-weight adjacency from edge pairs.
func symmetric(t *testing.T, n int, edges [][2]int) *matrix.Dense {
	t.Helper()
	adj, err := matrix.NewSquare(n)
	require.NoError(t, err)
	for _, e := range edges {
		require.NoError(t, adj.Set(e[0], e[1], 1))
		require.NoError(t, adj.Set(e[1], e[0], 1))
	}
	return adj
}

// TestBetweenness_Path puts every end-to-end path through the middle node.
func TestBetweenness_Path(t *testing.T) {
	adj := symmetric(t, 3, [][2]int{{0, 1}, {1, 2}})
	b, err := graphmetrics.Betweenness(context.Background(), adj, graphmetrics.WeightInverted)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0, 1, 0}, b, eps)
}

// TestBetweenness_CycleSplitsTies shares opposite-corner paths on a 4-cycle.
func TestBetweenness_CycleSplitsTies(t *testing.T) {
	adj := symmetric(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}})
	for _, policy := range []graphmetrics.WeightPolicy{graphmetrics.WeightInverted, graphmetrics.WeightAsDistance} {
		b, err := graphmetrics.Betweenness(context.Background(), adj, policy)
		require.NoError(t, err)
		require.InDeltaSlice(t, []float64{1.0 / 6, 1.0 / 6, 1.0 / 6, 1.0 / 6}, b, eps, policy.String())
	}
}

// TestCommunities_FallbackModularity scores the singleton fallback.
func TestCommunities_FallbackModularity(t *testing.T) {
	adj := complete33(t).Undirected()
	p, err := graphmetrics.Communities(context.Background(), adj, 1, 1, 1e-9)
	require.NoError(t, err)
	if !p.Converged {
		require.Equal(t, []int{0, 1, 2, 3, 4, 5}, p.Membership)
		require.InDelta(t, -1.0/6, p.Modularity, eps)
	}
	require.InDelta(t, graphmetrics.Modularity(adj, p.Membership), p.Modularity, eps)
}
