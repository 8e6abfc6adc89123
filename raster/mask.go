package raster

import (
	"fmt"
	"math"
)

// CheckSameShape fails fast with ErrShapeMismatch unless every raster shares
// the dimensions of the first one. Nil rasters yield ErrNilRaster.
func CheckSameShape(rs ...*Raster) error {
	if len(rs) == 0 {
		return nil
	}
	for i, r := range rs {
		if r == nil {
			return fmt.Errorf("raster #%d: %w", i, ErrNilRaster)
		}
	}
	want := rs[0].Shape()
	for i, r := range rs[1:] {
		if got := r.Shape(); got != want {
			return fmt.Errorf("raster #%d is %dx%d, want %dx%d: %w",
				i+1, got.Rows, got.Cols, want.Rows, want.Cols, ErrShapeMismatch)
		}
	}
	return nil
}

// Normalize returns r scaled by its largest finite value so positive cells
// fall in (0,1]. If no cell is positive the result is all zeros.
// NaN cells stay NaN.
func Normalize(r *Raster) *Raster {
	out := NewLike(r)
	m := r.Max()
	for i, v := range r.data {
		switch {
		case math.IsNaN(v):
			out.data[i] = math.NaN()
		case math.IsNaN(m) || m <= 0 || v <= 0:
			out.data[i] = 0
		case math.IsInf(v, 1):
			out.data[i] = 1
		default:
			out.data[i] = v / m
		}
	}
	return out
}

// Mask returns, in row-major order, the cells whose raw value is positive and
// whose normalized value is at least threshold.
func Mask(r *Raster, threshold float64) []Point {
	norm := Normalize(r)
	var pts []Point
	for i, v := range norm.data {
		if r.data[i] > 0 && v >= threshold {
			pts = append(pts, r.Point(i))
		}
	}
	return pts
}

// Above returns the cells whose normalized value strictly exceeds threshold.
func Above(r *Raster, threshold float64) []Point {
	norm := Normalize(r)
	var pts []Point
	for i, v := range norm.data {
		if v > threshold {
			pts = append(pts, r.Point(i))
		}
	}
	return pts
}
