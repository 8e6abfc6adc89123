package engine_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spanflow/engine"
	"github.com/katalvlaran/spanflow/raster"
)

func newRand(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }

// randomInputs draws a landscape with a handful of strong supply and demand
// cells and resistance in [1,5).
func randomInputs(t *testing.T, rng *rand.Rand, rows, cols int) engine.Inputs {
	t.Helper()
	supply, err := raster.New(rows, cols)
	require.NoError(t, err)
	demand, _ := raster.New(rows, cols)
	res, _ := raster.Random(rng, rows, cols)
	for i := 0; i < res.Len(); i++ {
		res.SetIndex(i, 1+4*res.AtIndex(i))
		switch u := rng.Float64(); {
		case u < 0.08:
			supply.SetIndex(i, 0.5+rng.Float64())
		case u < 0.16:
			demand.SetIndex(i, 0.5+rng.Float64())
		}
	}
	return engine.Inputs{Supply: supply, Demand: demand, Resistance: res}
}
