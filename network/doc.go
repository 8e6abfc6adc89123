// Package network discretizes routed flow into a weighted, directed
// supply→demand graph.
//
// What:
//
//   - Node: one classified cell with a role (Supply or Demand) and a stable ID.
//     Supply nodes take IDs 0..|S|-1, demand nodes follow.
//   - Graph: the node set plus an (|S|+|D|)² strength table in which only the
//     Supply×Demand block is populated. A Graph never changes after Build.
//   - Intensity: accumulates realized per-pair flow along routed paths.
//   - Build: links a supply and a demand node when realized flow intensity
//     overlaps both nodes' neighborhoods; the edge weight is the mean
//     intensity over the overlapping cells.
//
// Degenerate inputs (no supply or no demand nodes) produce a valid, edgeless
// graph.
//
// Complexity:
//
//   - Intensity: O(Σ|path|).
//   - Build:     O(n·w + |S|·|D|·w) for neighborhood size w.
//
// Errors:
//
//   - ErrNodeIndex: an edge references a node that does not exist.
//   - ErrEdgeDirection: an edge is not Supply→Demand.
//   - ErrBadWeight: an edge weight is negative or not finite.
//   - ErrLengthMismatch: paths and amounts differ in length.
package network
