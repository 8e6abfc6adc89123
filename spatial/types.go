package spatial

import (
	"errors"

	"github.com/katalvlaran/spanflow/raster"
)

var (
	// ErrNilRaster indicates a nil input raster.
	ErrNilRaster = errors.New("spatial: raster is nil")
	// ErrBadRadius indicates a negative window radius.
	ErrBadRadius = errors.New("spatial: window radius must be non-negative")
)

// Moran is the global autocorrelation summary.
type Moran struct {
	I        float64 `json:"i"`
	Expected float64 `json:"expected"`
	Variance float64 `json:"variance"`
	Z        float64 `json:"z"`
	P        float64 `json:"p"`
	// N is the number of valid cells.
	N int `json:"n"`
}

// HotSpots holds per-cell Gi* values and the significant cells.
// Gi is NaN on no-data cells.
type HotSpots struct {
	Gi   *raster.Raster `json:"-"`
	Hot  []raster.Point `json:"hot"`
	Cold []raster.Point `json:"cold"`
}

// Statistics bundles the global and local results for one raster.
type Statistics struct {
	Moran    Moran    `json:"moran"`
	HotSpots HotSpots `json:"hotspots"`
}

// Options configures GetisOrd and Analyze.
//
// Radius    – window half-width (default 2, a 5×5 window).
// ZCritical – significance threshold on |Gi*| (default 1.96).
type Options struct {
	Radius    int
	ZCritical float64
}

// Option is a functional option.
type Option func(*Options)

// WithRadius sets the window half-width.
func WithRadius(r int) Option {
	return func(o *Options) { o.Radius = r }
}

// WithZCritical sets the hot/cold threshold; non-positive values are ignored.
func WithZCritical(z float64) Option {
	return func(o *Options) {
		if z > 0 {
			o.ZCritical = z
		}
	}
}

// DefaultOptions returns a 5×5 window and z = 1.96.
func DefaultOptions() Options {
	return Options{Radius: 2, ZCritical: 1.96}
}
