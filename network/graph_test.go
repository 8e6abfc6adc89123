package network_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/spanflow/network"
	"github.com/katalvlaran/spanflow/raster"
)

// GraphSuite covers Graph construction and accessors.
type GraphSuite struct {
	suite.Suite
	nodes []network.Node
}

func (s *GraphSuite) SetupTest() {
	s.nodes = network.NewNodes(
		[]raster.Point{{Row: 0, Col: 0}, {Row: 0, Col: 1}},
		[]raster.Point{{Row: 3, Col: 3}, {Row: 3, Col: 4}, {Row: 4, Col: 4}},
	)
}

// TestNewNodes assigns IDs supply-first.
func (s *GraphSuite) TestNewNodes() {
	require.Len(s.T(), s.nodes, 5)
	require.Equal(s.T(), network.Supply, s.nodes[1].Role)
	require.Equal(s.T(), network.Demand, s.nodes[2].Role)
	require.Equal(s.T(), 4, s.nodes[4].ID)
	require.Equal(s.T(), "demand", s.nodes[4].Role.String())
}

// TestFromEdges checks counts, symmetric view and neighbor lists.
func (s *GraphSuite) TestFromEdges() {
	g, err := network.FromEdges(s.nodes, []network.Edge{
		{From: 0, To: 2, Weight: 1.5},
		{From: 1, To: 2, Weight: 0.5},
		{From: 1, To: 4, Weight: 2},
	})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, g.EdgeCount())
	require.Equal(s.T(), 2, g.SupplyCount())
	require.Equal(s.T(), 3, g.DemandCount())
	require.Equal(s.T(), 1.5, g.Weight(0, 2))
	require.Zero(s.T(), g.Weight(2, 0))

	u := g.Undirected()
	require.Equal(s.T(), 2.0, u.Get(4, 1))
	require.Equal(s.T(), u.Get(1, 4), u.Get(4, 1))
	require.Equal(s.T(), []int{2, 4}, g.Neighbors(1))
	require.Equal(s.T(), []int{0, 1}, g.Neighbors(2))

	edges := g.Edges()
	require.Equal(s.T(), network.Edge{From: 0, To: 2, Weight: 1.5}, edges[0])
	require.Len(s.T(), edges, 3)
}

// TestFromEdges_Errors enforces Supply→Demand only.
func (s *GraphSuite) TestFromEdges_Errors() {
	_, err := network.FromEdges(s.nodes, []network.Edge{{From: 2, To: 0, Weight: 1}})
	require.ErrorIs(s.T(), err, network.ErrEdgeDirection)
	_, err = network.FromEdges(s.nodes, []network.Edge{{From: 0, To: 1, Weight: 1}})
	require.ErrorIs(s.T(), err, network.ErrEdgeDirection)
	_, err = network.FromEdges(s.nodes, []network.Edge{{From: 0, To: 9, Weight: 1}})
	require.ErrorIs(s.T(), err, network.ErrNodeIndex)
	_, err = network.FromEdges(s.nodes, []network.Edge{{From: 0, To: 2, Weight: math.NaN()}})
	require.ErrorIs(s.T(), err, network.ErrBadWeight)

	bad := []network.Node{{ID: 0, Role: network.Demand}, {ID: 1, Role: network.Supply}}
	_, err = network.FromEdges(bad, nil)
	require.ErrorIs(s.T(), err, network.ErrNodeIndex)
}

// TestEdgeCountOverwrite keeps the count consistent when an edge is reset.
func (s *GraphSuite) TestEdgeCountOverwrite() {
	g, err := network.FromEdges(s.nodes, []network.Edge{
		{From: 0, To: 2, Weight: 1},
		{From: 0, To: 2, Weight: 3},
		{From: 1, To: 3, Weight: 1},
		{From: 1, To: 3, Weight: 0},
	})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, g.EdgeCount())
	require.Equal(s.T(), 3.0, g.Weight(0, 2))
}

// TestEmpty yields a valid 0-node graph.
func (s *GraphSuite) TestEmpty() {
	g, err := network.FromEdges(nil, nil)
	require.NoError(s.T(), err)
	require.Zero(s.T(), g.Len())
	require.Zero(s.T(), g.EdgeCount())
	require.Empty(s.T(), g.Edges())
}

func TestGraphSuite(t *testing.T) {
	suite.Run(t, new(GraphSuite))
}
