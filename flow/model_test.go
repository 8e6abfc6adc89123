package flow_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spanflow/flow"
	"github.com/katalvlaran/spanflow/pathrouter"
	"github.com/katalvlaran/spanflow/raster"
)

// TestReachableModel_Scenario runs the 5×5 single supply / single demand case
// with unit resistance and k = 0.1 under 4-connected movement (cost 8).
func TestReachableModel_Scenario(t *testing.T) {
	supply, _ := raster.New(5, 5)
	demand, _ := raster.New(5, 5)
	src, dst := raster.Point{Row: 0, Col: 0}, raster.Point{Row: 4, Col: 4}
	require.NoError(t, supply.Set(src, 1))
	require.NoError(t, demand.Set(dst, 1))
	res, _ := raster.Filled(5, 5, 1)

	field, err := pathrouter.CostField(context.Background(), res, []raster.Point{dst},
		pathrouter.WithConnectivity(raster.Conn4))
	require.NoError(t, err)
	require.Equal(t, 8.0, field.Cost.At(src))

	model, err := flow.Lookup(flow.ModelReachable)
	require.NoError(t, err)
	sp, dp, err := model.Potentials(flow.Inputs{
		Supply: supply, Demand: demand,
		SupplyCells: []raster.Point{src}, DemandCells: []raster.Point{dst},
		Nearest: field.Nearest,
	})
	require.NoError(t, err)

	f, err := flow.Quantify(sp, dp, field.Cost, 0.1)
	require.NoError(t, err)
	require.Equal(t, 1.0, f.Theoretical.At(src))
	require.InDelta(t, math.Exp(-0.8), f.Actual.At(src), 1e-12)
	require.InDelta(t, 0.449, f.Actual.At(src), 1e-3)
	require.InDelta(t, 0.449, f.Efficiency.At(src), 1e-3)

	s := flow.Summarize(f, 0)
	require.InDelta(t, 0.551, s.TotalBlocked, 1e-3)
	require.InDelta(t, 1.0, s.TotalTheoretical, 1e-12)
}

// TestLocalModel keeps raw rasters cell by cell.
func TestLocalModel(t *testing.T) {
	s, _ := raster.FromRows([][]float64{{4, 0}})
	d, _ := raster.FromRows([][]float64{{1, 3}})
	m, err := flow.Lookup(flow.ModelLocal)
	require.NoError(t, err)
	sp, dp, err := m.Potentials(flow.Inputs{Supply: s, Demand: d})
	require.NoError(t, err)
	c, _ := raster.New(1, 2)
	f, err := flow.Quantify(sp, dp, c, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 0}, f.Theoretical.Values())
}

// TestRegistry covers lookup failures and custom registration.
func TestRegistry(t *testing.T) {
	_, err := flow.Lookup("sediment-v9")
	require.ErrorIs(t, err, flow.ErrUnknownModel)

	flow.Register("constant", flow.ModelFunc(func(in flow.Inputs) (*raster.Raster, *raster.Raster, error) {
		one, _ := raster.Filled(in.Supply.Rows, in.Supply.Cols, 1)
		return one, one.Clone(), nil
	}))
	require.Contains(t, flow.Models(), "constant")
	require.Contains(t, flow.Models(), flow.ModelReachable)
}
