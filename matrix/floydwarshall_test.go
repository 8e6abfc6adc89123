package matrix_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spanflow/matrix"
)

// weights builds a square weight table from a literal.
func weights(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewSquare(len(rows))
	require.NoError(t, err)
	for i, r := range rows {
		for j, v := range r {
			require.NoError(t, m.Set(i, j, v))
		}
	}
	return m
}

func TestFloydWarshall_Errors(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, matrix.FloydWarshall(context.Background(), nil), matrix.ErrNilMatrix)
	ns, _ := matrix.NewDense(3, 4)
	require.ErrorIs(t, matrix.FloydWarshall(context.Background(), ns), matrix.ErrNonSquare)
}

// Directed chain 0→1→2 plus a long shortcut 0→2.
//
//	0 --1--> 1 --2--> 2
//	 \________5_______/
func TestFloydWarshall_Chain(t *testing.T) {
	t.Parallel()

	w := weights(t, [][]float64{
		{0, 1, 5},
		{0, 0, 2},
		{0, 0, 0},
	})
	d, err := matrix.DistancesFromWeights(w, func(v float64) float64 { return v })
	require.NoError(t, err)
	require.NoError(t, matrix.FloydWarshall(context.Background(), d))

	require.Equal(t, 3.0, d.Get(0, 2))
	require.Equal(t, 2.0, d.Get(1, 2))
	require.True(t, math.IsInf(d.Get(2, 0), 1))
	for i := 0; i < 3; i++ {
		require.Zero(t, d.Get(i, i))
	}
}

// Inverted strengths: a strong two-hop route beats a weak direct edge.
func TestFloydWarshall_InvertedStrength(t *testing.T) {
	t.Parallel()

	w := weights(t, [][]float64{
		{0, 4, 0.1},
		{4, 0, 4},
		{0.1, 4, 0},
	})
	d, err := matrix.DistancesFromWeights(w, func(v float64) float64 { return 1 / v })
	require.NoError(t, err)
	require.NoError(t, matrix.FloydWarshall(context.Background(), d))
	require.InDelta(t, 0.5, d.Get(0, 2), 1e-12)
}

func TestFloydWarshall_Cancelled(t *testing.T) {
	t.Parallel()

	d, _ := matrix.NewSquare(4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, matrix.FloydWarshall(ctx, d), context.Canceled)
}
