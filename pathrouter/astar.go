package pathrouter

import (
	"container/heap"
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/spanflow/raster"
)

// AStar routes over a read-only resistance raster. It holds no mutable state
// between calls and is safe for concurrent use.
type AStar struct {
	res     *raster.Raster
	options Options
}

// NewAStar validates the resistance raster once and returns a router.
//
// Preconditions and validation (in order):
//  1. resistance must be non-nil (ErrNilResistance).
//  2. No cell may be negative (ErrNegativeResistance).
func NewAStar(resistance *raster.Raster, opts ...Option) (*AStar, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateResistance(resistance); err != nil {
		return nil, err
	}
	return &AStar{res: resistance, options: cfg}, nil
}

// Route returns the minimum accumulated-cost path from src to dst.
// An unreachable dst yields Unreachable() and a nil error.
// A src equal to dst yields the single-cell path with cost 0.
func (a *AStar) Route(ctx context.Context, src, dst raster.Point) (Path, error) {
	if !a.res.InBounds(src) || !a.res.InBounds(dst) {
		return Path{}, fmt.Errorf("%w: %s -> %s", ErrOutOfBounds, src, dst)
	}
	if src == dst {
		return Path{Points: []raster.Point{src}, Cost: 0}, nil
	}

	r := newSearch(a.res, a.options)
	if err := r.run(ctx, src, dst); err != nil {
		return Path{}, err
	}
	target := a.res.Index(dst)
	if math.IsInf(r.dist[target], 1) {
		return Unreachable(), nil
	}
	return Path{Points: r.trace(target), Cost: r.dist[target]}, nil
}

// Cost is a convenience wrapper returning only the accumulated cost.
func (a *AStar) Cost(ctx context.Context, src, dst raster.Point) (float64, error) {
	p, err := a.Route(ctx, src, dst)
	if err != nil {
		return math.NaN(), err
	}
	return p.Cost, nil
}

// search holds the mutable state for a single A* execution.
type search struct {
	res     *raster.Raster
	options Options
	dist    []float64 // best-known cost from source per cell
	prev    []int     // predecessor per cell, -1 for none
	closed  []bool    // finalized cells
	pq      cellPQ
	seq     uint64
}

func newSearch(res *raster.Raster, opts Options) *search {
	n := res.Len()
	s := &search{
		res:     res,
		options: opts,
		dist:    make([]float64, n),
		prev:    make([]int, n),
		closed:  make([]bool, n),
		pq:      make(cellPQ, 0, 64),
	}
	for i := range s.dist {
		s.dist[i] = math.Inf(1)
		s.prev[i] = -1
	}
	return s
}

func (s *search) push(idx int, prio float64) {
	heap.Push(&s.pq, cellItem{idx: idx, prio: prio, seq: s.seq})
	s.seq++
}

// run expands cells until dst is finalized or the frontier is exhausted.
func (s *search) run(ctx context.Context, src, dst raster.Point) error {
	h := s.options.Heuristic
	start, target := s.res.Index(src), s.res.Index(dst)
	s.dist[start] = 0
	s.push(start, h(src, dst))

	offs := s.options.Conn.Offsets()
	pops := 0
	for s.pq.Len() > 0 {
		item := heap.Pop(&s.pq).(cellItem)
		u := item.idx
		if s.closed[u] {
			continue
		}
		pops++
		if pops%s.options.CheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		s.closed[u] = true
		if u == target {
			return nil
		}

		up := s.res.Point(u)
		for _, d := range offs {
			vp := raster.Point{Row: up.Row + d[0], Col: up.Col + d[1]}
			if !s.res.InBounds(vp) {
				continue
			}
			v := s.res.Index(vp)
			if s.closed[v] {
				continue
			}
			w := s.res.AtIndex(v)
			if !passable(w) {
				continue
			}
			nd := s.dist[u] + w
			// Strict improvement keeps the first-discovered predecessor on ties.
			if nd >= s.dist[v] {
				continue
			}
			s.dist[v] = nd
			s.prev[v] = u
			s.push(v, nd+h(vp, dst))
		}
	}
	return nil
}

// trace rebuilds the path ending at target from the predecessor chain.
func (s *search) trace(target int) []raster.Point {
	var rev []raster.Point
	for at := target; at >= 0; at = s.prev[at] {
		rev = append(rev, s.res.Point(at))
	}
	out := make([]raster.Point, len(rev))
	for i, p := range rev {
		out[len(rev)-1-i] = p
	}
	return out
}
