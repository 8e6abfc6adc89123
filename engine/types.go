package engine

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/spanflow/flow"
	"github.com/katalvlaran/spanflow/graphmetrics"
	"github.com/katalvlaran/spanflow/network"
	"github.com/katalvlaran/spanflow/pathrouter"
	"github.com/katalvlaran/spanflow/raster"
	"github.com/katalvlaran/spanflow/spatial"
)

// Sentinel errors for run assembly.
var (
	// ErrStageOrder indicates a stage called before its predecessor.
	ErrStageOrder = errors.New("engine: stage called out of order")
	// ErrMissingInput indicates a nil input raster.
	ErrMissingInput = errors.New("engine: supply, demand and resistance rasters are required")
)

// Inputs are the rasters of one run. They are read, never modified.
type Inputs struct {
	Supply     *raster.Raster
	Demand     *raster.Raster
	Resistance *raster.Raster
}

// PairFlow is one routed supply→demand pair. Supply and Demand index the
// respective node sets (not node IDs).
type PairFlow struct {
	Supply int             `json:"supply"`
	Demand int             `json:"demand"`
	Path   pathrouter.Path `json:"-"`
	Cost   float64         `json:"cost"`
	Amount float64         `json:"amount"`
}

// Result is the bundle a run produces. Fields are filled stage by stage.
type Result struct {
	RunID uuid.UUID `json:"run_id"`

	// Classify
	SupplyCells []raster.Point `json:"-"`
	DemandCells []raster.Point `json:"-"`
	Nodes       []network.Node `json:"nodes"`

	// Route
	Cost  *pathrouter.Field `json:"-"`
	Pairs []PairFlow        `json:"pairs"`

	// Quantify
	Field   *flow.Field  `json:"-"`
	Summary flow.Summary `json:"summary"`

	// Network
	Intensity *raster.Raster `json:"-"`
	Graph     *network.Graph `json:"-"`

	// Analyze
	Metrics    *graphmetrics.Metrics `json:"metrics"`
	Statistics *spatial.Statistics   `json:"statistics"`
}

// RouterFactory builds the pairwise router over the effective resistance.
type RouterFactory func(resistance *raster.Raster, opts ...pathrouter.Option) (pathrouter.Router, error)

// GraphAnalyzer computes graph descriptors. graphmetrics.Compute satisfies it.
type GraphAnalyzer func(ctx context.Context, g *network.Graph, opts ...graphmetrics.Option) (*graphmetrics.Metrics, error)

// SpatialAnalyzer computes spatial statistics. spatial.Analyze satisfies it.
type SpatialAnalyzer func(ctx context.Context, r *raster.Raster, opts ...spatial.Option) (*spatial.Statistics, error)

// Option configures a Run.
type Option func(*Run)

// WithLogger routes run logs to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Run) {
		if l != nil {
			r.log = l
		}
	}
}

// WithCollector records run instrumentation on c.
func WithCollector(c *Collector) Option {
	return func(r *Run) { r.metrics = c }
}

// WithTracer replaces the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(r *Run) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithRouter replaces the backend selected by routing.backend. The read-through
// cache is still applied when routing.cache is set.
func WithRouter(f RouterFactory) Option {
	return func(r *Run) { r.newRouter = f }
}

// WithGraphAnalyzer replaces graphmetrics.Compute in the Analyze stage.
func WithGraphAnalyzer(a GraphAnalyzer) Option {
	return func(r *Run) {
		if a != nil {
			r.graphs = a
		}
	}
}

// WithSpatialAnalyzer replaces spatial.Analyze in the Analyze stage.
func WithSpatialAnalyzer(a SpatialAnalyzer) Option {
	return func(r *Run) {
		if a != nil {
			r.stats = a
		}
	}
}

// WithRunID fixes the run identifier instead of drawing a random one.
func WithRunID(id uuid.UUID) Option {
	return func(r *Run) { r.res.RunID = id }
}

const tracerName = "github.com/katalvlaran/spanflow/engine"

func defaultTracer() trace.Tracer { return otel.Tracer(tracerName) }
