package raster

import (
	"errors"
	"fmt"
)

// Sentinel errors for raster operations.
var (
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("raster: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("raster: all rows must have the same length")
	// ErrShapeMismatch indicates rasters of one run have different dimensions.
	ErrShapeMismatch = errors.New("raster: raster dimensions do not match")
	// ErrOutOfBounds indicates a point outside the grid.
	ErrOutOfBounds = errors.New("raster: point out of bounds")
	// ErrNilRaster indicates a nil *Raster was passed.
	ErrNilRaster = errors.New("raster: raster is nil")
)

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8 Connectivity = iota
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4
)

// String implements fmt.Stringer.
func (c Connectivity) String() string {
	if c == Conn4 {
		return "conn4"
	}
	return "conn8"
}

var (
	offsets8 = [][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}
	offsets4 = [][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
)

// Offsets returns the (dRow, dCol) neighbor offsets for c in a fixed clockwise
// order starting north. The returned slice must not be modified.
func (c Connectivity) Offsets() [][2]int {
	if c == Conn4 {
		return offsets4
	}
	return offsets8
}

// Point is an integer grid coordinate.
type Point struct {
	Row, Col int
}

// String formats the point as "(row,col)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Shape holds raster dimensions.
type Shape struct {
	Rows, Cols int
}

// Size returns Rows×Cols.
func (s Shape) Size() int { return s.Rows * s.Cols }

// Raster is a rectangular grid of float64 values stored row-major.
// CellWidth and CellHeight carry physical cell size and are informational.
type Raster struct {
	Rows, Cols            int
	CellWidth, CellHeight float64
	data                  []float64
}
