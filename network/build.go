package network

import (
	"fmt"

	"github.com/katalvlaran/spanflow/pathrouter"
	"github.com/katalvlaran/spanflow/raster"
)

// Intensity adds amounts[i] to every cell of paths[i] on a raster shaped like
// like. Unreachable paths and non-positive amounts contribute nothing.
func Intensity(like *raster.Raster, paths []pathrouter.Path, amounts []float64) (*raster.Raster, error) {
	if like == nil {
		return nil, raster.ErrNilRaster
	}
	if len(paths) != len(amounts) {
		return nil, fmt.Errorf("%w: %d paths, %d amounts", ErrLengthMismatch, len(paths), len(amounts))
	}
	out := raster.NewLike(like)
	for i, p := range paths {
		a := amounts[i]
		if !p.Reachable() || !(a > 0) {
			continue
		}
		for _, pt := range p.Points {
			if !out.InBounds(pt) {
				return nil, fmt.Errorf("path %d: %w", i, raster.ErrOutOfBounds)
			}
			out.AddIndex(out.Index(pt), a)
		}
	}
	return out, nil
}

// Reachable reports whether supply index s can reach demand index d.
type Reachable func(s, d int) bool

// Build links supply and demand nodes whose neighborhoods both overlap the
// realized flow intensity.
//
// Behavior:
//  1. For each node, collect window cells (radius opts.Radius) whose
//     intensity is positive and whose normalized intensity ≥ opts.Cutoff.
//  2. For each (s,d) with reachable(s,d) (nil means all pairs), if both
//     neighborhoods overlap, add s→d weighted by the mean intensity over the
//     union of the overlapping cells.
func Build(nodes []Node, intensity *raster.Raster, reachable Reachable, opts ...Option) (*Graph, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if intensity == nil {
		return nil, raster.ErrNilRaster
	}
	g, err := newGraph(nodes)
	if err != nil {
		return nil, err
	}
	if g.nSupply == 0 || g.nSupply == len(nodes) {
		return g, nil
	}

	norm := raster.Normalize(intensity)
	overlap := make([][]int, len(nodes))
	for i, n := range nodes {
		if !intensity.InBounds(n.Pos) {
			return nil, fmt.Errorf("node %d at %s: %w", i, n.Pos, raster.ErrOutOfBounds)
		}
		for _, q := range intensity.Window(n.Pos, cfg.Radius) {
			idx := intensity.Index(q)
			if intensity.AtIndex(idx) > 0 && norm.AtIndex(idx) >= cfg.Cutoff {
				overlap[i] = append(overlap[i], idx)
			}
		}
	}

	seen := make(map[int]struct{})
	for s := 0; s < g.nSupply; s++ {
		if len(overlap[s]) == 0 {
			continue
		}
		for d := g.nSupply; d < len(nodes); d++ {
			if len(overlap[d]) == 0 {
				continue
			}
			if reachable != nil && !reachable(s, d-g.nSupply) {
				continue
			}
			for k := range seen {
				delete(seen, k)
			}
			var sum float64
			for _, idx := range overlap[s] {
				seen[idx] = struct{}{}
				sum += intensity.AtIndex(idx)
			}
			for _, idx := range overlap[d] {
				if _, ok := seen[idx]; ok {
					continue
				}
				seen[idx] = struct{}{}
				sum += intensity.AtIndex(idx)
			}
			if err := g.link(s, d, sum/float64(len(seen))); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
