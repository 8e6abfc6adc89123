// Package spatial computes spatial-autocorrelation statistics over a
// raster.Raster, independent of any network.
//
// What:
//
//   - MoranI: global Moran's I with binary 8-neighbor weights over valid
//     (non-NaN, finite) cells. Significance uses E[I] = −1/(n−1) and the
//     variance under the normality assumption; P is two-sided.
//   - GetisOrd: local Gi* over a square window (default 5×5, the cell
//     itself included). |Gi*| above the critical z (default 1.96, α = 0.05)
//     flags a hot (positive) or cold (negative) spot.
//   - Analyze: both, evaluated concurrently.
//
// Both statistics are pure functions of the raster. A constant raster has
// zero variance and yields I = 0, Z = 0, P = 1 and Gi* = 0 everywhere.
//
// Complexity:
//
//   - MoranI: O(R×C).
//   - GetisOrd: O(R×C) via summed-area tables, independent of window size.
package spatial
