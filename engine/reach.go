package engine

import (
	"math"

	"github.com/katalvlaran/spanflow/raster"
)

// regions labels contiguous passable cells (finite resistance) under conn.
// Impassable cells get label -1.
//
// Time: O(R·C·d), d = 4 or 8.
type regions struct {
	res   *raster.Raster
	conn  raster.Connectivity
	label []int
}

func newRegions(res *raster.Raster, conn raster.Connectivity) *regions {
	n := res.Len()
	rg := &regions{res: res, conn: conn, label: make([]int, n)}
	for i := range rg.label {
		rg.label[i] = -1
	}
	next := 0
	for i0 := 0; i0 < n; i0++ {
		if rg.label[i0] >= 0 || !open(res.AtIndex(i0)) {
			continue
		}
		queue := []int{i0}
		rg.label[i0] = next
		for qi := 0; qi < len(queue); qi++ {
			for _, q := range res.Neighbors(res.Point(queue[qi]), conn) {
				vi := res.Index(q)
				if rg.label[vi] < 0 && open(res.AtIndex(vi)) {
					rg.label[vi] = next
					queue = append(queue, vi)
				}
			}
		}
		next++
	}
	return rg
}

func open(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 1) }

// exits returns the labels a walk starting at src can enter: its own, if
// passable, and those of its passable neighbors. The start cell is never
// paid for, so an impassable source can still leave.
func (rg *regions) exits(src raster.Point) map[int]struct{} {
	out := make(map[int]struct{}, 2)
	if l := rg.label[rg.res.Index(src)]; l >= 0 {
		out[l] = struct{}{}
	}
	for _, q := range rg.res.Neighbors(src, rg.conn) {
		if l := rg.label[rg.res.Index(q)]; l >= 0 {
			out[l] = struct{}{}
		}
	}
	return out
}

// reachable reports whether a finite path src→dst exists.
func (rg *regions) reachable(exits map[int]struct{}, src, dst raster.Point) bool {
	if src == dst {
		return true
	}
	l := rg.label[rg.res.Index(dst)]
	if l < 0 {
		return false
	}
	_, ok := exits[l]
	return ok
}
