package spatial_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spanflow/raster"
	"github.com/katalvlaran/spanflow/spatial"
)

func gradient(t *testing.T, rows, cols int) *raster.Raster {
	t.Helper()
	r, err := raster.New(rows, cols)
	require.NoError(t, err)
	for i := 0; i < r.Len(); i++ {
		p := r.Point(i)
		r.SetIndex(i, float64(p.Row+p.Col))
	}
	return r
}

// TestMoranI_Pair checks the two-cell closed form.
func TestMoranI_Pair(t *testing.T) {
	r, err := raster.FromRows([][]float64{{0, 1}})
	require.NoError(t, err)
	m, err := spatial.MoranI(r)
	require.NoError(t, err)
	require.InDelta(t, -1.0, m.I, 1e-12)
	require.InDelta(t, -1.0, m.Expected, 1e-12)
	require.Equal(t, 2, m.N)
}

// TestMoranI_Gradient finds strong positive autocorrelation.
func TestMoranI_Gradient(t *testing.T) {
	m, err := spatial.MoranI(gradient(t, 20, 20))
	require.NoError(t, err)
	require.Greater(t, m.I, 0.8)
	require.Greater(t, m.Z, 10.0)
	require.Less(t, m.P, 1e-6)
	require.InDelta(t, -1.0/399, m.Expected, 1e-12)
}

// TestMoranI_ShuffledConverges averages I over seeded shuffles.
func TestMoranI_ShuffledConverges(t *testing.T) {
	base := gradient(t, 20, 20)
	rng := rand.New(rand.NewSource(11))
	const trials = 200
	var sum float64
	for i := 0; i < trials; i++ {
		m, err := spatial.MoranI(raster.Shuffle(rng, base))
		require.NoError(t, err)
		sum += m.I
	}
	require.InDelta(t, -1.0/399, sum/trials, 0.01)
}

// TestMoranI_Constant avoids dividing by zero variance.
func TestMoranI_Constant(t *testing.T) {
	r, _ := raster.Filled(6, 6, 3)
	m, err := spatial.MoranI(r)
	require.NoError(t, err)
	require.Zero(t, m.I)
	require.Zero(t, m.Z)
	require.Equal(t, 1.0, m.P)
}

// TestMoranI_NoData skips NaN cells.
func TestMoranI_NoData(t *testing.T) {
	r := gradient(t, 5, 5)
	r.SetIndex(12, math.NaN())
	m, err := spatial.MoranI(r)
	require.NoError(t, err)
	require.Equal(t, 24, m.N)
	require.Greater(t, m.I, 0.5)

	_, err = spatial.MoranI(nil)
	require.ErrorIs(t, err, spatial.ErrNilRaster)
}

// TestGetisOrd_Constant reports no hot spots.
func TestGetisOrd_Constant(t *testing.T) {
	r, _ := raster.Filled(10, 10, 7)
	h, err := spatial.GetisOrd(context.Background(), r)
	require.NoError(t, err)
	require.Empty(t, h.Hot)
	require.Empty(t, h.Cold)
	for _, v := range h.Gi.Values() {
		require.Zero(t, v)
	}
}

// TestGetisOrd_Block flags the center of a high-value block.
func TestGetisOrd_Block(t *testing.T) {
	r, _ := raster.New(15, 15)
	for row := 5; row < 10; row++ {
		for col := 5; col < 10; col++ {
			require.NoError(t, r.Set(raster.Point{Row: row, Col: col}, 10))
		}
	}
	h, err := spatial.GetisOrd(context.Background(), r)
	require.NoError(t, err)
	center := raster.Point{Row: 7, Col: 7}
	require.Contains(t, h.Hot, center)
	require.Greater(t, h.Gi.At(center), 10.0)
	require.Empty(t, h.Cold)
	require.NotContains(t, h.Hot, raster.Point{Row: 0, Col: 0})

	// a 1×1 window makes every block cell hot on its own
	h, err = spatial.GetisOrd(context.Background(), r, spatial.WithRadius(0), spatial.WithZCritical(1))
	require.NoError(t, err)
	require.Len(t, h.Hot, 25)
}

// TestGetisOrd_Errors covers invalid input and cancellation.
func TestGetisOrd_Errors(t *testing.T) {
	r := gradient(t, 4, 4)
	_, err := spatial.GetisOrd(context.Background(), r, spatial.WithRadius(-1))
	require.ErrorIs(t, err, spatial.ErrBadRadius)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = spatial.GetisOrd(ctx, r)
	require.ErrorIs(t, err, context.Canceled)

	r.SetIndex(0, math.NaN())
	h, err := spatial.GetisOrd(context.Background(), r)
	require.NoError(t, err)
	require.True(t, math.IsNaN(h.Gi.AtIndex(0)))
}

// TestAnalyze combines both statistics.
func TestAnalyze(t *testing.T) {
	st, err := spatial.Analyze(context.Background(), gradient(t, 12, 12))
	require.NoError(t, err)
	require.Greater(t, st.Moran.I, 0.8)
	require.NotEmpty(t, st.HotSpots.Hot)
	require.NotEmpty(t, st.HotSpots.Cold)
	require.Contains(t, st.HotSpots.Hot, raster.Point{Row: 11, Col: 11})
	require.Contains(t, st.HotSpots.Cold, raster.Point{Row: 0, Col: 0})

	_, err = spatial.Analyze(context.Background(), nil)
	require.ErrorIs(t, err, spatial.ErrNilRaster)
}
