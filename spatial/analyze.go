package spatial

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/spanflow/raster"
)

// Analyze computes Moran's I and Gi* hot spots of r concurrently.
func Analyze(ctx context.Context, r *raster.Raster, opts ...Option) (*Statistics, error) {
	if r == nil {
		return nil, ErrNilRaster
	}
	var st Statistics
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := MoranI(r)
		st.Moran = m
		return err
	})
	g.Go(func() error {
		h, err := GetisOrd(gctx, r, opts...)
		st.HotSpots = h
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &st, nil
}
