// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"strings"
)

// Dense is a row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c (offset = i*c + j).
type Dense struct {
	r, c int
	data []float64
}

var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix. Both dimensions must be positive.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewSquare creates an n×n zero matrix. Unlike NewDense, n == 0 is legal so
// that empty graphs have a well-formed (0×0) table.
func NewSquare(n int) (*Dense, error) {
	if n < 0 {
		return nil, ErrInvalidDimensions
	}
	return &Dense{r: n, c: n, data: make([]float64, n*n)}, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// indexOf validates (row,col) and returns the flat offset.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, fmt.Errorf("Dense(%d,%d) in %dx%d: %w", row, col, m.r, m.c, ErrOutOfRange)
	}
	return row*m.c + col, nil
}

// At returns m[row,col] or ErrOutOfRange.
func (m *Dense) At(row, col int) (float64, error) {
	i, err := m.indexOf(row, col)
	if err != nil {
		return 0, err
	}
	return m.data[i], nil
}

// Set writes m[row,col] = v or returns ErrOutOfRange.
func (m *Dense) Set(row, col int, v float64) error {
	i, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	m.data[i] = v
	return nil
}

// Get is At without bounds reporting; callers must pass valid indices.
func (m *Dense) Get(row, col int) float64 { return m.data[row*m.c+col] }

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	out := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data))}
	copy(out.data, m.data)
	return out
}

// Do calls f for every entry in row-major order until f returns false.
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for j := 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// Induced copies the submatrix picked by rowsIdx × colsIdx.
func (m *Dense) Induced(rowsIdx, colsIdx []int) (*Dense, error) {
	out := &Dense{r: len(rowsIdx), c: len(colsIdx), data: make([]float64, len(rowsIdx)*len(colsIdx))}
	for i, ri := range rowsIdx {
		for j, cj := range colsIdx {
			v, err := m.At(ri, cj)
			if err != nil {
				return nil, matrixErrorf("Induced", err)
			}
			out.data[i*out.c+j] = v
		}
	}
	return out, nil
}

// String renders rows as "[a, b, c]" lines.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString("[")
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
