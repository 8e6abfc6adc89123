package pathrouter

import (
	"context"
	"errors"
	"math"

	"github.com/katalvlaran/spanflow/raster"
)

// Sentinel errors returned by routers.
var (
	// ErrNilResistance indicates that a nil resistance raster was supplied.
	ErrNilResistance = errors.New("pathrouter: resistance raster is nil")

	// ErrNegativeResistance indicates a cell with negative resistance.
	ErrNegativeResistance = errors.New("pathrouter: negative resistance encountered")

	// ErrOutOfBounds indicates a source or destination outside the grid.
	ErrOutOfBounds = errors.New("pathrouter: point out of bounds")

	// ErrNoTargets indicates CostField received no targets.
	ErrNoTargets = errors.New("pathrouter: target set is empty")
)

// Path is an ordered list of cells from source to destination with its
// accumulated cost. An unreachable destination has no points and Cost = +Inf.
type Path struct {
	Points []raster.Point
	Cost   float64
}

// Reachable reports whether the path has a finite cost.
func (p Path) Reachable() bool {
	return !math.IsInf(p.Cost, 1) && !math.IsNaN(p.Cost)
}

// Unreachable returns the Path value used for unreachable destinations.
func Unreachable() Path {
	return Path{Cost: math.Inf(1)}
}

// Router finds the least-cost path between two cells.
// Implementations must be safe for concurrent use.
type Router interface {
	Route(ctx context.Context, src, dst raster.Point) (Path, error)
}

// Heuristic estimates the remaining cost from a cell to the destination.
// It must never overestimate for A* to stay optimal.
type Heuristic func(from, to raster.Point) float64

// ZeroHeuristic is the admissible default; with it A* behaves like Dijkstra.
func ZeroHeuristic(_, _ raster.Point) float64 { return 0 }

// GridHeuristic returns minResistance times the step distance between cells:
// Chebyshev distance for Conn8, Manhattan for Conn4. It is admissible whenever
// minResistance is no larger than the smallest resistance on the grid.
func GridHeuristic(minResistance float64, conn raster.Connectivity) Heuristic {
	return func(a, b raster.Point) float64 {
		dr, dc := abs(a.Row-b.Row), abs(a.Col-b.Col)
		if conn == raster.Conn4 {
			return minResistance * float64(dr+dc)
		}
		if dr > dc {
			return minResistance * float64(dr)
		}
		return minResistance * float64(dc)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Options configures grid routers.
//
// Conn       – neighborhood used for moves (default raster.Conn8).
// Heuristic  – A* heuristic (default ZeroHeuristic).
// CheckEvery – number of heap pops between context checks (default 1024).
type Options struct {
	Conn       raster.Connectivity
	Heuristic  Heuristic
	CheckEvery int
}

// Option represents a functional option for configuring routers.
type Option func(*Options)

// WithConnectivity selects 4- or 8-connected movement.
func WithConnectivity(conn raster.Connectivity) Option {
	return func(o *Options) {
		o.Conn = conn
	}
}

// WithHeuristic replaces the zero heuristic. A nil h restores the default.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) {
		if h == nil {
			h = ZeroHeuristic
		}
		o.Heuristic = h
	}
}

// WithCheckEvery sets how many heap pops happen between context checks.
// Non-positive values are ignored.
func WithCheckEvery(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.CheckEvery = n
		}
	}
}

// DefaultOptions returns Conn8 movement, the zero heuristic and context
// checks every 1024 pops.
func DefaultOptions() Options {
	return Options{
		Conn:       raster.Conn8,
		Heuristic:  ZeroHeuristic,
		CheckEvery: 1024,
	}
}

// passable reports whether a cell with resistance v may be entered.
func passable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 1)
}

// validateResistance scans the raster once and fails fast on negative values.
func validateResistance(r *raster.Raster) error {
	if r == nil {
		return ErrNilResistance
	}
	for i := 0; i < r.Len(); i++ {
		if v := r.AtIndex(i); v < 0 {
			return &ResistanceError{Cell: r.Point(i), Value: v}
		}
	}
	return nil
}

// ResistanceError reports the first negative resistance cell.
// It matches ErrNegativeResistance under errors.Is.
type ResistanceError struct {
	Cell  raster.Point
	Value float64
}

func (e *ResistanceError) Error() string {
	return ErrNegativeResistance.Error() + " at " + e.Cell.String()
}

// Is makes errors.Is(err, ErrNegativeResistance) succeed.
func (e *ResistanceError) Is(target error) bool { return target == ErrNegativeResistance }
