// SPDX-License-Identifier: MIT

// Package matrix provides the dense row-major matrix used for graph strength
// and distance tables, plus the dense all-pairs shortest path kernel.
//
// Purpose:
//   - Dense: r×c float64 storage with the explicit index formula i*cols + j.
//     Public At/Set return errors instead of panicking.
//   - FloydWarshall: in-place APSP closure with fixed k → i → j loop order.
//   - DistancesFromWeights: turn a weight table into a distance table under a
//     caller-supplied conversion, ready for FloydWarshall.
//   - MatVec: y = A·x for power iterations.
//
// Determinism:
//   - Every loop runs in fixed row → column order; no map iteration.
//
// Complexity quicksheet:
//   - NewDense/NewSquare: O(r*c); At/Set: O(1); Clone: O(r*c).
//   - FloydWarshall: O(n³) time, O(1) extra space.
//   - MatVec: O(r*c).
package matrix
