package graphmetrics_test

import (
	"context"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/spanflow/graphmetrics"
	"github.com/katalvlaran/spanflow/network"
	"github.com/katalvlaran/spanflow/raster"
)

const eps = 1e-9

func points(n, row int) []raster.Point {
	out := make([]raster.Point, n)
	for i := range out {
		out[i] = raster.Point{Row: row, Col: i}
	}
	return out
}

func mustGraph(t *testing.T, nSupply, nDemand int, edges []network.Edge) *network.Graph {
	t.Helper()
	g, err := network.FromEdges(network.NewNodes(points(nSupply, 0), points(nDemand, 5)), edges)
	require.NoError(t, err)
	return g
}

// complete33 links every supply node to every demand node with weight 1.
func complete33(t *testing.T) *network.Graph {
	var edges []network.Edge
	for s := 0; s < 3; s++ {
		for d := 3; d < 6; d++ {
			edges = append(edges, network.Edge{From: s, To: d, Weight: 1})
		}
	}
	return mustGraph(t, 3, 3, edges)
}

// star has one supply hub feeding three demand leaves.
func star(t *testing.T, w float64) *network.Graph {
	return mustGraph(t, 1, 3, []network.Edge{
		{From: 0, To: 1, Weight: w},
		{From: 0, To: 2, Weight: w},
		{From: 0, To: 3, Weight: w},
	})
}

// MetricsSuite checks Compute against hand-derived values.
type MetricsSuite struct {
	suite.Suite
	ctx    context.Context
	logger *logrus.Logger
	hook   *logtest.Hook
}

func (s *MetricsSuite) SetupTest() {
	s.ctx = context.Background()
	s.logger, s.hook = logtest.NewNullLogger()
}

func (s *MetricsSuite) compute(g *network.Graph, opts ...graphmetrics.Option) *graphmetrics.Metrics {
	opts = append(opts, graphmetrics.WithLogger(s.logger))
	m, err := graphmetrics.Compute(s.ctx, g, opts...)
	require.NoError(s.T(), err)
	return m
}

// TestCompleteBipartite covers the fully linked 3×3 network.
func (s *MetricsSuite) TestCompleteBipartite() {
	t := s.T()
	m := s.compute(complete33(t))

	require.Equal(t, 6, m.Nodes)
	require.Equal(t, 9, m.Edges)
	require.InDelta(t, 0.3, m.Density, eps)
	require.Equal(t, 1, m.Components)
	require.InDelta(t, 1-1.0/6, m.Connectivity, eps)
	require.Zero(t, m.Clustering)

	// cross pairs at distance 1, same-side pairs at distance 2
	require.InDelta(t, 1.4, m.AveragePathLength, eps)
	require.InDelta(t, 2.0, m.Diameter, eps)
	require.InDelta(t, 0.8, m.GlobalEfficiency, eps)

	for i := 0; i < 6; i++ {
		require.InDelta(t, 0.6, m.Degree[i], eps)
		require.InDelta(t, 0.1, m.Betweenness[i], eps)
		require.InDelta(t, 1.0, m.Eigenvector[i], 1e-6)
		require.InDelta(t, 0.0, m.Vulnerability[i], eps)
	}

	require.True(t, m.Communities.Converged)
	require.LessOrEqual(t, m.Communities.Modularity, eps)

	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, m.Robustness.RemovalOrder)
	require.Equal(t, []int{6, 5, 4, 1, 1, 1, 0}, m.Robustness.LargestComponent)
	require.InDelta(t, 0.5, m.Robustness.CriticalFraction, eps)
	require.Empty(t, m.Skipped)
}

// TestStar covers a hub with three leaves.
func (s *MetricsSuite) TestStar() {
	t := s.T()
	m := s.compute(star(t, 1))

	require.InDelta(t, 3.0/12, m.Density, eps)
	require.InDelta(t, 1.5, m.AveragePathLength, eps)
	require.InDelta(t, 0.75, m.GlobalEfficiency, eps)

	require.Equal(t, []float64{1, 1.0 / 3, 1.0 / 3, 1.0 / 3}, m.Degree)
	require.InDelta(t, 1.0, m.Betweenness[0], eps)
	require.InDelta(t, 0.0, m.Betweenness[1], eps)
	require.InDelta(t, 1.0, m.Eigenvector[0], 1e-6)
	require.InDelta(t, 1/math.Sqrt(3), m.Eigenvector[2], 1e-6)

	// removing the hub disconnects everything; removing a leaf leaves
	// closer pairs, so efficiency rises
	require.InDelta(t, 1.0, m.Vulnerability[0], eps)
	require.InDelta(t, -1.0/9, m.Vulnerability[1], eps)

	require.Equal(t, 0, m.Robustness.RemovalOrder[0])
	require.Equal(t, []int{4, 1, 1, 1, 0}, m.Robustness.LargestComponent)
	require.InDelta(t, 0.25, m.Robustness.CriticalFraction, eps)
}

// TestWeightPolicy switches how strength maps to length.
func (s *MetricsSuite) TestWeightPolicy() {
	t := s.T()
	g := star(t, 2)

	inv := s.compute(g)
	require.InDelta(t, 0.75, inv.AveragePathLength, eps)
	require.InDelta(t, 1.0, inv.Diameter, eps)

	dist := s.compute(g, graphmetrics.WithWeightPolicy(graphmetrics.WeightAsDistance))
	require.InDelta(t, 3.0, dist.AveragePathLength, eps)
	require.InDelta(t, 4.0, dist.Diameter, eps)

	// structure-only descriptors ignore the policy
	require.Equal(t, inv.Betweenness, dist.Betweenness)
	require.Equal(t, inv.Degree, dist.Degree)
}

// TestEdgeless returns neutral values and logs a warning.
func (s *MetricsSuite) TestEdgeless() {
	t := s.T()
	m := s.compute(mustGraph(t, 2, 2, nil))

	require.Zero(t, m.Density)
	require.Equal(t, 4, m.Components)
	require.Zero(t, m.Connectivity)
	require.Zero(t, m.Clustering)
	require.True(t, math.IsNaN(m.AveragePathLength))
	require.Zero(t, m.GlobalEfficiency)
	require.Equal(t, []float64{0, 0, 0, 0}, m.Eigenvector)
	require.Equal(t, []int{0, 1, 2, 3}, m.Communities.Membership)
	require.Zero(t, m.Communities.Modularity)
	require.True(t, math.IsNaN(m.Robustness.CriticalFraction))
	require.Equal(t, []float64{0, 0, 0, 0}, m.Vulnerability)

	require.NotEmpty(t, s.hook.AllEntries())
	require.Equal(t, logrus.WarnLevel, s.hook.LastEntry().Level)
}

// TestEmpty accepts a graph without nodes.
func (s *MetricsSuite) TestEmpty() {
	m := s.compute(mustGraph(s.T(), 0, 0, nil))
	require.Zero(s.T(), m.Nodes)
	require.Zero(s.T(), m.Connectivity)
	require.True(s.T(), math.IsNaN(m.Robustness.CriticalFraction))
}

// TestSizeLimits skips all-pairs work above the configured caps.
func (s *MetricsSuite) TestSizeLimits() {
	t := s.T()
	m := s.compute(star(t, 1), graphmetrics.WithMaxNodes(3))
	require.Nil(t, m.Distances)
	require.Contains(t, m.Skipped, "distances")
	require.Contains(t, m.Skipped, "vulnerability")
	require.InDelta(t, 1.0, m.Degree[0], eps)

	m = s.compute(star(t, 1), graphmetrics.WithMaxVulnerabilityNodes(2))
	require.NotNil(t, m.Distances)
	require.Equal(t, []string{"vulnerability"}, m.Skipped)
	require.InDelta(t, 1.0, m.Betweenness[0], eps)
}

// TestNonConvergence falls back and warns.
func (s *MetricsSuite) TestNonConvergence() {
	t := s.T()
	m := s.compute(star(t, 1), graphmetrics.WithMaxIterations(1))
	require.Equal(t, []float64{0, 0, 0, 0}, m.Eigenvector)
	require.False(t, m.Communities.Converged)
	require.Equal(t, 4, m.Communities.Count)
	require.InDelta(t, -1.0/3, m.Communities.Modularity, eps)
	require.GreaterOrEqual(t, len(s.hook.AllEntries()), 2)
}

// TestNilAndCancel covers the only error paths.
func (s *MetricsSuite) TestNilAndCancel() {
	_, err := graphmetrics.Compute(s.ctx, nil)
	require.ErrorIs(s.T(), err, graphmetrics.ErrNilGraph)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err = graphmetrics.Compute(ctx, complete33(s.T()), graphmetrics.WithLogger(s.logger))
	require.ErrorIs(s.T(), err, context.Canceled)
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsSuite))
}
