package graphmetrics

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/spanflow/matrix"
)

// ErrNilGraph indicates a nil *network.Graph.
var ErrNilGraph = errors.New("graphmetrics: graph is nil")

// WeightPolicy selects how connection strength becomes path length.
type WeightPolicy int

const (
	// WeightInverted treats 1/strength as distance.
	WeightInverted WeightPolicy = iota
	// WeightAsDistance treats strength as distance.
	WeightAsDistance
)

// String implements fmt.Stringer.
func (p WeightPolicy) String() string {
	if p == WeightAsDistance {
		return "distance"
	}
	return "inverted"
}

// ParseWeightPolicy maps "inverted" and "distance" to a policy.
func ParseWeightPolicy(s string) (WeightPolicy, error) {
	switch s {
	case "", "inverted":
		return WeightInverted, nil
	case "distance":
		return WeightAsDistance, nil
	}
	return 0, errors.New("graphmetrics: unknown weight policy " + s)
}

// convert returns the strength→distance mapping for p.
func (p WeightPolicy) convert() func(float64) float64 {
	if p == WeightAsDistance {
		return func(w float64) float64 { return w }
	}
	return func(w float64) float64 { return 1 / w }
}

// Partition maps nodes to communities.
type Partition struct {
	// Membership[i] is the community of node i; IDs are 0..Count-1 in order
	// of first appearance.
	Membership []int   `json:"membership"`
	Count      int     `json:"count"`
	Modularity float64 `json:"modularity"`
	// Converged is false when the iteration cap was hit and the singleton
	// partition was returned instead.
	Converged bool `json:"converged"`
}

// Robustness records targeted-attack behavior.
type Robustness struct {
	// RemovalOrder lists nodes by descending degree centrality (ties by ID).
	RemovalOrder []int `json:"removal_order"`
	// LargestComponent[k] is the largest component size after removing the
	// first k nodes of RemovalOrder; index 0 is the intact graph.
	LargestComponent []int `json:"largest_component"`
	// CriticalFraction is the smallest removed fraction leaving the largest
	// component below half of n (NaN for degenerate graphs).
	CriticalFraction float64 `json:"critical_fraction"`
}

// Metrics bundles every descriptor.
type Metrics struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`

	Density      float64 `json:"density"`
	Clustering   float64 `json:"clustering"`
	Components   int     `json:"components"`
	Connectivity float64 `json:"connectivity"`

	// Distances is nil when n exceeds Options.MaxNodes.
	Distances         *matrix.Dense `json:"-"`
	AveragePathLength float64       `json:"average_path_length"`
	Diameter          float64       `json:"diameter"`
	GlobalEfficiency  float64       `json:"global_efficiency"`

	Degree      []float64 `json:"degree"`
	Betweenness []float64 `json:"betweenness"`
	Eigenvector []float64 `json:"eigenvector"`

	Communities   Partition  `json:"communities"`
	Robustness    Robustness `json:"robustness"`
	Vulnerability []float64  `json:"vulnerability"`

	// Skipped names descriptors left out because of size limits.
	Skipped []string `json:"skipped,omitempty"`
}

// Options configures Compute.
type Options struct {
	Policy                WeightPolicy
	Seed                  int64
	MaxIterations         int
	Tolerance             float64
	MaxNodes              int
	MaxVulnerabilityNodes int
	Workers               int
	Logger                logrus.FieldLogger
}

// Option is a functional option for Compute.
type Option func(*Options)

// WithWeightPolicy selects the strength→distance convention.
func WithWeightPolicy(p WeightPolicy) Option {
	return func(o *Options) { o.Policy = p }
}

// WithSeed fixes the node visiting order of community detection.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithMaxIterations caps power iteration and community refinement rounds.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxIterations = n
		}
	}
}

// WithTolerance sets the convergence tolerance.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol > 0 {
			o.Tolerance = tol
		}
	}
}

// WithMaxNodes skips O(n³) descriptors above n nodes. Zero disables the limit.
func WithMaxNodes(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.MaxNodes = n
		}
	}
}

// WithMaxVulnerabilityNodes skips the O(n⁴) vulnerability scan above n nodes.
// Zero disables the limit.
func WithMaxVulnerabilityNodes(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.MaxVulnerabilityNodes = n
		}
	}
}

// WithWorkers bounds goroutines used by the vulnerability scan.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLogger routes warnings to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// DefaultOptions returns the inverted weight policy, seed 1, 100 iterations,
// tolerance 1e-9, a 2000-node cap on O(n³) work and a 150-node cap on the
// vulnerability scan.
func DefaultOptions() Options {
	return Options{
		Policy:                WeightInverted,
		Seed:                  1,
		MaxIterations:         100,
		Tolerance:             1e-9,
		MaxNodes:              2000,
		MaxVulnerabilityNodes: 150,
		Logger:                logrus.StandardLogger(),
	}
}
