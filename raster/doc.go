// Package raster models the landscape grids consumed by spanflow: equal-shaped
// 2-D float64 fields (supply, demand, resistance, landcover) plus cell size
// metadata.
//
// What:
//
//   - Raster stores Rows×Cols values in a row-major flat buffer; NaN is no-data.
//   - Point addresses a cell by (Row, Col).
//   - Connectivity selects 4- or 8-neighborhoods with precomputed offsets.
//   - Normalize and Mask classify cells against [0,1] thresholds.
//   - Random and Shuffle build reproducible fields from an explicit *rand.Rand.
//
// Why:
//
//   - Every stage of a run (routing, flow quantification, network building,
//     spatial statistics) reads the same grids; shape checks happen once, here.
//
// Complexity:
//
//   - New, FromRows, Clone, Normalize, Mask: O(R×C) time and memory.
//   - At, Set, InBounds, Index, Point: O(1).
//
// Errors:
//
//   - ErrEmptyGrid: input has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrShapeMismatch: rasters of one run disagree on dimensions.
//   - ErrOutOfBounds: a point lies outside the grid.
package raster
