package pathrouter

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/LdDl/ch"

	"github.com/katalvlaran/spanflow/raster"
)

// CHRouter answers Route queries from a contraction hierarchy prepared once
// over the whole grid. Vertex labels are row-major cell indices; every move
// into a passable cell becomes a directed edge weighted by its resistance.
//
// Path costs equal those of AStar. When several optimal paths exist the
// chosen cell sequence may differ from AStar's.
type CHRouter struct {
	res   *raster.Raster
	mu    sync.Mutex
	graph *ch.Graph
}

// NewCHRouter builds and contracts the grid graph.
// Complexity: O(N·d) edges plus contraction preprocessing.
func NewCHRouter(resistance *raster.Raster, opts ...Option) (*CHRouter, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateResistance(resistance); err != nil {
		return nil, err
	}

	g := &ch.Graph{}
	n := resistance.Len()
	for i := 0; i < n; i++ {
		if err := g.CreateVertex(int64(i)); err != nil {
			return nil, fmt.Errorf("pathrouter: create vertex %d: %w", i, err)
		}
	}
	offs := cfg.Conn.Offsets()
	for u := 0; u < n; u++ {
		up := resistance.Point(u)
		for _, d := range offs {
			vp := raster.Point{Row: up.Row + d[0], Col: up.Col + d[1]}
			if !resistance.InBounds(vp) {
				continue
			}
			v := resistance.Index(vp)
			w := resistance.AtIndex(v)
			if !passable(w) {
				continue
			}
			if err := g.AddEdge(int64(u), int64(v), w); err != nil {
				return nil, fmt.Errorf("pathrouter: add edge %s->%s: %w", up, vp, err)
			}
		}
	}
	g.PrepareContractionHierarchies()

	return &CHRouter{res: resistance, graph: g}, nil
}

// Route implements Router. Queries are serialized because the hierarchy's
// query buffers are shared.
func (c *CHRouter) Route(ctx context.Context, src, dst raster.Point) (Path, error) {
	if !c.res.InBounds(src) || !c.res.InBounds(dst) {
		return Path{}, fmt.Errorf("%w: %s -> %s", ErrOutOfBounds, src, dst)
	}
	if err := ctx.Err(); err != nil {
		return Path{}, err
	}
	if src == dst {
		return Path{Points: []raster.Point{src}, Cost: 0}, nil
	}

	c.mu.Lock()
	cost, labels := c.graph.ShortestPath(int64(c.res.Index(src)), int64(c.res.Index(dst)))
	c.mu.Unlock()

	if cost < 0 || math.IsInf(cost, 1) || len(labels) == 0 {
		return Unreachable(), nil
	}
	pts := make([]raster.Point, len(labels))
	for i, l := range labels {
		pts[i] = c.res.Point(int(l))
	}
	return Path{Points: pts, Cost: cost}, nil
}
