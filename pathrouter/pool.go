package pathrouter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/spanflow/raster"
)

// Pair is one routing request.
type Pair struct {
	Src, Dst raster.Point
}

// RouteAll routes every pair on a pool of at most workers goroutines
// (runtime.NumCPU() when workers ≤ 0). Results keep the order of pairs.
// The first structural error cancels the remaining work and is returned.
func RouteAll(ctx context.Context, router Router, pairs []Pair, workers int) ([]Path, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	out := make([]Path, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range pairs {
		i := i
		g.Go(func() error {
			p, err := router.Route(gctx, pairs[i].Src, pairs[i].Dst)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
