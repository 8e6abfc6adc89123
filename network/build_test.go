package network_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spanflow/network"
	"github.com/katalvlaran/spanflow/pathrouter"
	"github.com/katalvlaran/spanflow/raster"
)

// corridor returns a 5×7 intensity raster carrying flow along row 0 from
// column 0 to column 4 (value 2) and nothing near column 6.
func corridor(t *testing.T) *raster.Raster {
	t.Helper()
	like, _ := raster.New(5, 7)
	var pts []raster.Point
	for c := 0; c <= 4; c++ {
		pts = append(pts, raster.Point{Row: 0, Col: c})
	}
	in, err := network.Intensity(like, []pathrouter.Path{{Points: pts, Cost: 4}}, []float64{2})
	require.NoError(t, err)
	return in
}

// TestIntensity accumulates per-pair amounts and skips unreachable paths.
func TestIntensity(t *testing.T) {
	like, _ := raster.New(2, 2)
	p := pathrouter.Path{Points: []raster.Point{{Row: 0, Col: 0}, {Row: 1, Col: 1}}, Cost: 1}
	in, err := network.Intensity(like,
		[]pathrouter.Path{p, p, pathrouter.Unreachable()},
		[]float64{1, 0.5, 9})
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, 0, 0, 1.5}, in.Values())

	_, err = network.Intensity(like, []pathrouter.Path{p}, nil)
	require.ErrorIs(t, err, network.ErrLengthMismatch)
}

// TestBuild_Overlap links the supply only to the demand touched by the corridor.
//
//	S = = = D1 . D2     (row 0; '=' carries intensity 2)
func TestBuild_Overlap(t *testing.T) {
	in := corridor(t)
	nodes := network.NewNodes(
		[]raster.Point{{Row: 0, Col: 0}},
		[]raster.Point{{Row: 0, Col: 4}, {Row: 4, Col: 6}},
	)
	g, err := network.Build(nodes, in, nil)
	require.NoError(t, err)
	require.Equal(t, 1, g.EdgeCount())
	require.Equal(t, 2.0, g.Weight(0, 1))
	require.Zero(t, g.Weight(0, 2))
}

// TestBuild_ReachableFilter drops pairs the router could not connect.
func TestBuild_ReachableFilter(t *testing.T) {
	in := corridor(t)
	nodes := network.NewNodes([]raster.Point{{Row: 0, Col: 0}}, []raster.Point{{Row: 0, Col: 4}})
	g, err := network.Build(nodes, in, func(s, d int) bool { return false })
	require.NoError(t, err)
	require.Zero(t, g.EdgeCount())
}

// TestBuild_Cutoff ignores weak intensity cells.
func TestBuild_Cutoff(t *testing.T) {
	like, _ := raster.New(1, 5)
	strong := pathrouter.Path{Points: []raster.Point{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, Cost: 1}
	weak := pathrouter.Path{Points: []raster.Point{{Row: 0, Col: 3}, {Row: 0, Col: 4}}, Cost: 1}
	in, err := network.Intensity(like, []pathrouter.Path{strong, weak}, []float64{10, 1})
	require.NoError(t, err)
	nodes := network.NewNodes([]raster.Point{{Row: 0, Col: 0}}, []raster.Point{{Row: 0, Col: 4}})

	g, err := network.Build(nodes, in, nil, network.WithCutoff(0.5))
	require.NoError(t, err)
	require.Zero(t, g.EdgeCount())

	g, err = network.Build(nodes, in, nil)
	require.NoError(t, err)
	// union of overlapping cells: (0,0)=10 (0,1)=10 (0,3)=1 (0,4)=1
	require.InDelta(t, 5.5, g.Weight(0, 1), 1e-12)
}

// TestBuild_Degenerate returns edgeless graphs for one-sided node sets.
func TestBuild_Degenerate(t *testing.T) {
	in := corridor(t)
	for _, nodes := range [][]network.Node{
		nil,
		network.NewNodes([]raster.Point{{Row: 0, Col: 0}}, nil),
		network.NewNodes(nil, []raster.Point{{Row: 0, Col: 4}}),
	} {
		g, err := network.Build(nodes, in, nil)
		require.NoError(t, err)
		require.Zero(t, g.EdgeCount())
		require.Equal(t, len(nodes), g.Len())
	}
}
