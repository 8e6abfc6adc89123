package network

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/spanflow/raster"
)

// Sentinel errors for network construction.
var (
	// ErrNodeIndex indicates an edge endpoint outside the node set.
	ErrNodeIndex = errors.New("network: node index out of range")
	// ErrEdgeDirection indicates an edge that does not run Supply→Demand.
	ErrEdgeDirection = errors.New("network: edges must run from supply to demand")
	// ErrBadWeight indicates a negative or non-finite edge weight.
	ErrBadWeight = errors.New("network: edge weight must be finite and non-negative")
	// ErrLengthMismatch indicates paths and amounts of different lengths.
	ErrLengthMismatch = errors.New("network: paths and amounts differ in length")
)

// Role classifies a node.
type Role int

const (
	// Supply nodes provide the service.
	Supply Role = iota
	// Demand nodes consume it.
	Demand
)

// String implements fmt.Stringer.
func (r Role) String() string {
	switch r {
	case Supply:
		return "supply"
	case Demand:
		return "demand"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Node is a classified grid cell. Nodes are immutable for a run.
type Node struct {
	ID   int          `json:"id"`
	Pos  raster.Point `json:"pos"`
	Role Role         `json:"role"`
}

// Edge is one populated Supply→Demand connection.
type Edge struct {
	From, To int
	Weight   float64
}

// Options configures Build.
//
// Radius – neighborhood half-width around each node (default 1, a 3×3 window).
// Cutoff – minimum normalized intensity for a cell to count as carrying flow
//
//	(default 0, meaning any positive intensity).
type Options struct {
	Radius int
	Cutoff float64
}

// Option is a functional option for Build.
type Option func(*Options)

// WithRadius sets the neighborhood half-width. Negative values are ignored.
func WithRadius(r int) Option {
	return func(o *Options) {
		if r >= 0 {
			o.Radius = r
		}
	}
}

// WithCutoff sets the normalized intensity cutoff in [0,1].
func WithCutoff(c float64) Option {
	return func(o *Options) {
		if c >= 0 && c <= 1 {
			o.Cutoff = c
		}
	}
}

// DefaultOptions returns Radius 1 and Cutoff 0.
func DefaultOptions() Options {
	return Options{Radius: 1, Cutoff: 0}
}

// NewNodes assigns IDs supply-first: supply[i] gets ID i, demand[j] gets |S|+j.
func NewNodes(supply, demand []raster.Point) []Node {
	nodes := make([]Node, 0, len(supply)+len(demand))
	for _, p := range supply {
		nodes = append(nodes, Node{ID: len(nodes), Pos: p, Role: Supply})
	}
	for _, p := range demand {
		nodes = append(nodes, Node{ID: len(nodes), Pos: p, Role: Demand})
	}
	return nodes
}
