// Package pathrouter computes least-cost paths across a resistance raster.
//
// A path moves between neighboring cells (8-connected by default) and pays
// the resistance of every cell it enters; the start cell is free and no extra
// diagonal-distance factor is applied. Cells holding +Inf or NaN resistance
// are impassable.
//
// Routers:
//
//   - AStar: A* search with an admissible heuristic (zero by default, which
//     degrades to Dijkstra and stays optimal under any non-negative
//     resistance). Heap ties are broken by discovery order so results are
//     deterministic.
//   - CHRouter: the same contract answered by a contraction hierarchy
//     (github.com/LdDl/ch) prepared once over the whole grid; cheaper when a
//     run issues many pair queries.
//   - CachedRouter: read-through (source, destination) cache shared by the
//     workers of one run.
//
// Unreachable destinations are data, not errors: Route returns a Path with an
// empty point list and Cost = +Inf.
//
// CostField runs a single multi-source search from a target set and records,
// for every cell, the cost of reaching the nearest reachable target.
//
// RouteAll fans pair queries out over a fixed-size worker pool. The resistance
// raster is read-only for the lifetime of a router, so no locking is needed.
//
// Complexity:
//
//   - Route (AStar):  O(N log N) for N cells, Memory O(N).
//   - CostField:      O(N log N), Memory O(N).
//   - NewCHRouter:    contraction preprocessing, then near-constant queries.
//
// Errors:
//
//   - ErrNilResistance: resistance raster is nil.
//   - ErrNegativeResistance: a cell has negative resistance.
//   - ErrOutOfBounds: source or destination lies outside the grid.
//   - ErrNoTargets: CostField called with an empty target set.
package pathrouter
