package pathrouter

import (
	"container/heap"
	"context"
	"math"

	"github.com/katalvlaran/spanflow/raster"
)

// Field is the result of CostField: for every cell, the accumulated cost of
// the cheapest path from that cell to any target, and which target it is.
type Field struct {
	// Cost holds +Inf for cells that reach no target.
	Cost *raster.Raster
	// Nearest holds, per row-major cell index, the index into the target slice
	// of the cheapest target, or -1.
	Nearest []int
}

// NearestOf returns the target index nearest to p, or -1.
func (f *Field) NearestOf(p raster.Point) int {
	if !f.Cost.InBounds(p) {
		return -1
	}
	return f.Nearest[f.Cost.Index(p)]
}

// CostField runs one multi-source search seeded at every target and returns
// the cost-to-nearest-target field.
//
// Costs follow the Route contract: moving from a cell pays the resistance of
// each cell entered, targets included. The search therefore runs backwards:
// popping v relaxes each neighbor u with dist[v] + resistance(v).
//
// Ties between targets go to the earliest-discovered one, which for equal
// costs is the target listed first.
func CostField(ctx context.Context, resistance *raster.Raster, targets []raster.Point, opts ...Option) (*Field, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateResistance(resistance); err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}

	n := resistance.Len()
	cost := raster.NewLike(resistance)
	cost.Fill(math.Inf(1))
	nearest := make([]int, n)
	closed := make([]bool, n)
	for i := range nearest {
		nearest[i] = -1
	}

	var (
		pq  cellPQ
		seq uint64
	)
	for ti, t := range targets {
		if !resistance.InBounds(t) {
			return nil, ErrOutOfBounds
		}
		idx := resistance.Index(t)
		if nearest[idx] >= 0 {
			continue
		}
		cost.SetIndex(idx, 0)
		nearest[idx] = ti
		heap.Push(&pq, cellItem{idx: idx, prio: 0, seq: seq})
		seq++
	}

	offs := cfg.Conn.Offsets()
	pops := 0
	for pq.Len() > 0 {
		item := heap.Pop(&pq).(cellItem)
		v := item.idx
		if closed[v] {
			continue
		}
		pops++
		if pops%cfg.CheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		closed[v] = true

		w := resistance.AtIndex(v)
		if !passable(w) {
			// Nothing can enter v, so it cannot relay cost to its neighbors.
			continue
		}
		nd := cost.AtIndex(v) + w
		vp := resistance.Point(v)
		for _, d := range offs {
			up := raster.Point{Row: vp.Row + d[0], Col: vp.Col + d[1]}
			if !resistance.InBounds(up) {
				continue
			}
			u := resistance.Index(up)
			if closed[u] || nd >= cost.AtIndex(u) {
				continue
			}
			cost.SetIndex(u, nd)
			nearest[u] = nearest[v]
			heap.Push(&pq, cellItem{idx: u, prio: nd, seq: seq})
			seq++
		}
	}

	return &Field{Cost: cost, Nearest: nearest}, nil
}
