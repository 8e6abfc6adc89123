package spatial

import (
	"context"
	"math"

	"github.com/katalvlaran/spanflow/raster"
)

// table is a summed-area table over valid cells: sums and counts.
type table struct {
	cols       int
	sum, count []float64
}

func newTable(r *raster.Raster) *table {
	t := &table{
		cols:  r.Cols + 1,
		sum:   make([]float64, (r.Rows+1)*(r.Cols+1)),
		count: make([]float64, (r.Rows+1)*(r.Cols+1)),
	}
	for i := 1; i <= r.Rows; i++ {
		for j := 1; j <= r.Cols; j++ {
			v, c := r.At(raster.Point{Row: i - 1, Col: j - 1}), 1.0
			if !valid(v) {
				v, c = 0, 0
			}
			at, up, left, diag := i*t.cols+j, (i-1)*t.cols+j, i*t.cols+j-1, (i-1)*t.cols+j-1
			t.sum[at] = v + t.sum[up] + t.sum[left] - t.sum[diag]
			t.count[at] = c + t.count[up] + t.count[left] - t.count[diag]
		}
	}
	return t
}

// rect returns sum and count over rows [r0,r1] × cols [c0,c1], inclusive.
func (t *table) rect(r0, c0, r1, c1 int) (sum, count float64) {
	a := (r1+1)*t.cols + c1 + 1
	b := r0*t.cols + c1 + 1
	c := (r1+1)*t.cols + c0
	d := r0*t.cols + c0
	return t.sum[a] - t.sum[b] - t.sum[c] + t.sum[d],
		t.count[a] - t.count[b] - t.count[c] + t.count[d]
}

// GetisOrd computes Gi* for every valid cell with binary window weights:
//
//	Gi* = (Σ_j∈W x_j − x̄·|W|) / (S · sqrt((n·|W| − |W|²)/(n−1)))
//
// where x̄ and S are the population mean and standard deviation of valid
// cells. Zero variance yields Gi* = 0 everywhere. ctx is checked once per row.
func GetisOrd(ctx context.Context, r *raster.Raster, opts ...Option) (HotSpots, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if r == nil {
		return HotSpots{}, ErrNilRaster
	}
	if cfg.Radius < 0 {
		return HotSpots{}, ErrBadRadius
	}

	gi := raster.NewLike(r)
	mean, std, n := r.MeanStd()
	t := newTable(r)
	nf := float64(n)
	for row := 0; row < r.Rows; row++ {
		if err := ctx.Err(); err != nil {
			return HotSpots{}, err
		}
		for col := 0; col < r.Cols; col++ {
			p := raster.Point{Row: row, Col: col}
			idx := r.Index(p)
			if !valid(r.AtIndex(idx)) {
				gi.SetIndex(idx, math.NaN())
				continue
			}
			if n < 2 || std == 0 {
				continue
			}
			sum, w := t.rect(
				max(row-cfg.Radius, 0), max(col-cfg.Radius, 0),
				min(row+cfg.Radius, r.Rows-1), min(col+cfg.Radius, r.Cols-1),
			)
			den := std * math.Sqrt((nf*w-w*w)/(nf-1))
			if den == 0 {
				continue
			}
			gi.SetIndex(idx, (sum-mean*w)/den)
		}
	}

	out := HotSpots{Gi: gi}
	for idx := 0; idx < gi.Len(); idx++ {
		switch z := gi.AtIndex(idx); {
		case z > cfg.ZCritical:
			out.Hot = append(out.Hot, gi.Point(idx))
		case z < -cfg.ZCritical:
			out.Cold = append(out.Cold, gi.Point(idx))
		}
	}
	return out, nil
}
