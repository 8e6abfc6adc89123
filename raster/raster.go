package raster

import (
	"fmt"
	"math"
)

// New allocates a zero-filled rows×cols raster with unit cell size.
// Returns ErrEmptyGrid if either dimension is not positive.
func New(rows, cols int) (*Raster, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyGrid
	}
	return &Raster{
		Rows:       rows,
		Cols:       cols,
		CellWidth:  1,
		CellHeight: 1,
		data:       make([]float64, rows*cols),
	}, nil
}

// FromRows builds a raster from a non-empty rectangular 2D slice.
// It deep-copies the input.
// Returns ErrEmptyGrid if values has no rows or no columns,
// ErrNonRectangular if any row length differs.
func FromRows(values [][]float64) (*Raster, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(values), len(values[0])
	for _, row := range values {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
	}
	r, _ := New(rows, cols)
	for i, row := range values {
		copy(r.data[i*cols:(i+1)*cols], row)
	}
	return r, nil
}

// Filled returns a rows×cols raster with every cell set to v.
func Filled(rows, cols int, v float64) (*Raster, error) {
	r, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	r.Fill(v)
	return r, nil
}

// NewLike allocates a zero raster with the shape and cell size of r.
func NewLike(r *Raster) *Raster {
	return &Raster{
		Rows:       r.Rows,
		Cols:       r.Cols,
		CellWidth:  r.CellWidth,
		CellHeight: r.CellHeight,
		data:       make([]float64, len(r.data)),
	}
}

// Shape returns the raster dimensions.
func (r *Raster) Shape() Shape { return Shape{Rows: r.Rows, Cols: r.Cols} }

// Len returns the number of cells.
func (r *Raster) Len() int { return len(r.data) }

// InBounds reports whether p lies within the grid boundaries.
func (r *Raster) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < r.Rows && p.Col >= 0 && p.Col < r.Cols
}

// Index maps p to its row-major index: Row*Cols + Col.
func (r *Raster) Index(p Point) int {
	return p.Row*r.Cols + p.Col
}

// Point converts a row-major index back to a Point.
func (r *Raster) Point(idx int) Point {
	return Point{Row: idx / r.Cols, Col: idx % r.Cols}
}

// At returns the value at p. Out-of-range points yield NaN.
func (r *Raster) At(p Point) float64 {
	if !r.InBounds(p) {
		return math.NaN()
	}
	return r.data[r.Index(p)]
}

// AtIndex returns the value at row-major index idx.
func (r *Raster) AtIndex(idx int) float64 { return r.data[idx] }

// Set writes v at p. Returns ErrOutOfBounds if p is outside the grid.
func (r *Raster) Set(p Point, v float64) error {
	if !r.InBounds(p) {
		return fmt.Errorf("Set%s: %w", p, ErrOutOfBounds)
	}
	r.data[r.Index(p)] = v
	return nil
}

// SetIndex writes v at row-major index idx.
func (r *Raster) SetIndex(idx int, v float64) { r.data[idx] = v }

// AddIndex adds v to the cell at row-major index idx.
func (r *Raster) AddIndex(idx int, v float64) { r.data[idx] += v }

// Fill sets every cell to v.
func (r *Raster) Fill(v float64) {
	for i := range r.data {
		r.data[i] = v
	}
}

// Clone returns a deep copy of r.
func (r *Raster) Clone() *Raster {
	c := NewLike(r)
	copy(c.data, r.data)
	return c
}

// Values returns a copy of the row-major buffer.
func (r *Raster) Values() []float64 {
	out := make([]float64, len(r.data))
	copy(out, r.data)
	return out
}

// ToRows returns the raster as a freshly allocated 2D slice.
func (r *Raster) ToRows() [][]float64 {
	out := make([][]float64, r.Rows)
	for i := range out {
		out[i] = make([]float64, r.Cols)
		copy(out[i], r.data[i*r.Cols:(i+1)*r.Cols])
	}
	return out
}

// Neighbors returns the in-bounds neighbors of p under conn, in offset order.
func (r *Raster) Neighbors(p Point, conn Connectivity) []Point {
	offs := conn.Offsets()
	out := make([]Point, 0, len(offs))
	for _, d := range offs {
		q := Point{Row: p.Row + d[0], Col: p.Col + d[1]}
		if r.InBounds(q) {
			out = append(out, q)
		}
	}
	return out
}

// Window returns the in-bounds cells of the (2·radius+1)² square centered on p,
// p included, in row-major order.
func (r *Raster) Window(p Point, radius int) []Point {
	out := make([]Point, 0, (2*radius+1)*(2*radius+1))
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			q := Point{Row: p.Row + dr, Col: p.Col + dc}
			if r.InBounds(q) {
				out = append(out, q)
			}
		}
	}
	return out
}

// Sum returns the sum of all finite cells.
func (r *Raster) Sum() float64 {
	var s float64
	for _, v := range r.data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			s += v
		}
	}
	return s
}

// Max returns the largest finite value, or NaN when no cell is finite.
func (r *Raster) Max() float64 {
	m := math.NaN()
	for _, v := range r.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if math.IsNaN(m) || v > m {
			m = v
		}
	}
	return m
}

// MeanStd returns the population mean and standard deviation over finite
// cells together with their count. With no finite cell both are NaN.
func (r *Raster) MeanStd() (mean, std float64, n int) {
	var sum float64
	for _, v := range r.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN(), math.NaN(), 0
	}
	mean = sum / float64(n)
	var ss float64
	for _, v := range r.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		d := v - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(n)), n
}
