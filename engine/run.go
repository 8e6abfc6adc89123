package engine

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/spanflow/config"
	"github.com/katalvlaran/spanflow/flow"
	"github.com/katalvlaran/spanflow/graphmetrics"
	"github.com/katalvlaran/spanflow/network"
	"github.com/katalvlaran/spanflow/pathrouter"
	"github.com/katalvlaran/spanflow/raster"
	"github.com/katalvlaran/spanflow/spatial"
)

type stage int

const (
	stageNew stage = iota
	stageValidate
	stageClassify
	stageRoute
	stageQuantify
	stageNetwork
	stageAnalyze
)

var stageNames = [...]string{"new", "validate", "classify", "route", "quantify", "network", "analyze"}

func (s stage) String() string { return stageNames[s] }

// Run assembles one Result. A Run is single-use and not safe for concurrent
// stage calls.
type Run struct {
	cfg     config.Config
	in      Inputs
	log     logrus.FieldLogger
	metrics *Collector
	tracer  trace.Tracer

	newRouter RouterFactory
	graphs    GraphAnalyzer
	stats     SpatialAnalyzer

	// set by Validate
	conn       raster.Connectivity
	benefit    flow.Benefit
	model      flow.Model
	policy     graphmetrics.WeightPolicy
	resistance *raster.Raster

	// set by Route
	reach [][]bool
	sp    *raster.Raster
	dp    *raster.Raster

	res  Result
	done stage
}

// NewRun prepares a run of cfg over in. Nothing is computed until a stage or
// Execute is called.
func NewRun(cfg config.Config, in Inputs, opts ...Option) (*Run, error) {
	if in.Supply == nil || in.Demand == nil || in.Resistance == nil {
		return nil, ErrMissingInput
	}
	r := &Run{
		cfg:    cfg,
		in:     in,
		log:    logrus.StandardLogger(),
		tracer: defaultTracer(),
		graphs: graphmetrics.Compute,
		stats:  spatial.Analyze,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.res.RunID == uuid.Nil {
		r.res.RunID = uuid.New()
	}
	r.log = r.log.WithField("run_id", r.res.RunID.String())
	return r, nil
}

// Result returns a shallow copy of everything produced so far.
func (r *Run) Result() *Result {
	out := r.res
	return &out
}

// Execute runs every remaining stage in order under cfg.Timeout.
func (r *Run) Execute(ctx context.Context) (*Result, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}
	ctx, span := r.tracer.Start(ctx, "engine.Execute",
		trace.WithAttributes(attribute.String("run_id", r.res.RunID.String())))
	defer span.End()

	for i, fn := range []func(context.Context) error{
		r.Validate, r.Classify, r.Route, r.Quantify, r.Network, r.Analyze,
	} {
		if r.done >= stage(i+1) {
			continue
		}
		if err := fn(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			r.countRun("error")
			return nil, err
		}
	}
	r.countRun("ok")
	return r.Result(), nil
}

func (r *Run) countRun(outcome string) {
	if r.metrics != nil {
		r.metrics.Runs.WithLabelValues(outcome).Inc()
	}
}

// step runs fn as stage s: it enforces ordering, opens a span, records the
// duration and wraps failures with the stage name.
func (r *Run) step(ctx context.Context, s stage, fn func(ctx context.Context) error) error {
	if r.done != s-1 {
		return errors.Wrapf(ErrStageOrder, "%s after %s", s, r.done)
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "engine: %s", s)
	}
	ctx, span := r.tracer.Start(ctx, "engine."+s.String())
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if r.metrics != nil {
		r.metrics.StageDuration.WithLabelValues(s.String()).Observe(elapsed.Seconds())
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return errors.Wrapf(err, "engine: %s", s)
	}
	r.done = s
	r.log.WithFields(logrus.Fields{"stage": s.String(), "elapsed": elapsed}).Debug("stage done")
	return nil
}

// Validate checks shapes and configuration and derives the effective
// resistance, in which cells above the sink threshold are impassable.
func (r *Run) Validate(ctx context.Context) error {
	return r.step(ctx, stageValidate, func(context.Context) error {
		if err := raster.CheckSameShape(r.in.Supply, r.in.Demand, r.in.Resistance); err != nil {
			return err
		}
		if err := r.cfg.Validate(); err != nil {
			return err
		}
		for i := 0; i < r.in.Resistance.Len(); i++ {
			if v := r.in.Resistance.AtIndex(i); v < 0 {
				return &pathrouter.ResistanceError{Cell: r.in.Resistance.Point(i), Value: v}
			}
		}

		var err error
		if r.benefit, err = flow.ParseBenefit(r.cfg.Flow.Benefit); err != nil {
			return err
		}
		if r.model, err = flow.Lookup(r.cfg.Flow.Model); err != nil {
			return err
		}
		if r.policy, err = graphmetrics.ParseWeightPolicy(r.cfg.Metrics.WeightPolicy); err != nil {
			return err
		}
		r.conn = raster.Conn8
		if r.cfg.Routing.Connectivity == 4 {
			r.conn = raster.Conn4
		}

		r.resistance = r.in.Resistance.Clone()
		sinks := raster.Above(r.in.Resistance, r.cfg.Thresholds.Sink)
		for _, p := range sinks {
			r.resistance.SetIndex(r.resistance.Index(p), math.Inf(1))
		}
		r.log.WithFields(logrus.Fields{
			"rows":  r.in.Resistance.Rows,
			"cols":  r.in.Resistance.Cols,
			"sinks": len(sinks),
		}).Debug("inputs validated")
		return nil
	})
}

// Classify turns the supply and demand masks into nodes.
func (r *Run) Classify(ctx context.Context) error {
	return r.step(ctx, stageClassify, func(context.Context) error {
		r.res.SupplyCells = raster.Mask(r.in.Supply, r.cfg.Thresholds.Source)
		r.res.DemandCells = raster.Mask(r.in.Demand, r.cfg.Thresholds.Use)
		r.res.Nodes = network.NewNodes(r.res.SupplyCells, r.res.DemandCells)

		fields := logrus.Fields{"supply": len(r.res.SupplyCells), "demand": len(r.res.DemandCells)}
		if len(r.res.SupplyCells) == 0 || len(r.res.DemandCells) == 0 {
			r.log.WithFields(fields).Warn("empty node set, flow and graph will be degenerate")
		} else {
			r.log.WithFields(fields).Info("cells classified")
		}
		return nil
	})
}

func (r *Run) router() (pathrouter.Router, *pathrouter.CachedRouter, error) {
	var (
		base pathrouter.Router
		err  error
	)
	switch {
	case r.newRouter != nil:
		base, err = r.newRouter(r.resistance, pathrouter.WithConnectivity(r.conn))
	case r.cfg.Routing.Backend == "ch":
		base, err = pathrouter.NewCHRouter(r.resistance, pathrouter.WithConnectivity(r.conn))
	default:
		base, err = pathrouter.NewAStar(r.resistance, pathrouter.WithConnectivity(r.conn))
	}
	if err != nil {
		return nil, nil, err
	}
	if !r.cfg.Routing.Cache {
		return base, nil, nil
	}
	cached := pathrouter.NewCachedRouter(base)
	return cached, cached, nil
}

// Route computes the cost-to-nearest-demand field and routes the pairs that
// carry flow: each supply to its nearest reachable demand for rival benefits,
// every reachable supply×demand pair otherwise.
func (r *Run) Route(ctx context.Context) error {
	return r.step(ctx, stageRoute, func(ctx context.Context) error {
		supply, demand := r.res.SupplyCells, r.res.DemandCells
		if len(demand) == 0 {
			r.res.Cost = unreachableField(r.resistance)
		} else {
			f, err := pathrouter.CostField(ctx, r.resistance, demand, pathrouter.WithConnectivity(r.conn))
			if err != nil {
				return err
			}
			r.res.Cost = f
		}

		rg := newRegions(r.resistance, r.conn)
		r.reach = make([][]bool, len(supply))
		for s, sp := range supply {
			exits := rg.exits(sp)
			r.reach[s] = make([]bool, len(demand))
			for d, dp := range demand {
				r.reach[s][d] = rg.reachable(exits, sp, dp)
			}
		}

		var (
			pairs       []pathrouter.Pair
			flows       []PairFlow
			unreachable int
		)
		add := func(s, d int) {
			pairs = append(pairs, pathrouter.Pair{Src: supply[s], Dst: demand[d]})
			flows = append(flows, PairFlow{Supply: s, Demand: d})
		}
		for s := range supply {
			if r.benefit == flow.Rival {
				if d := r.res.Cost.NearestOf(supply[s]); d >= 0 {
					add(s, d)
				} else {
					unreachable++
				}
				continue
			}
			for d := range demand {
				if r.reach[s][d] {
					add(s, d)
				} else {
					unreachable++
				}
			}
		}

		router, cache, err := r.router()
		if err != nil {
			return err
		}
		paths, err := pathrouter.RouteAll(ctx, router, pairs, r.cfg.Routing.Workers)
		if err != nil {
			return err
		}
		for i, p := range paths {
			flows[i].Path = p
			flows[i].Cost = p.Cost
			if !p.Reachable() {
				unreachable++
			}
		}
		r.res.Pairs = flows

		if r.metrics != nil {
			r.metrics.RoutedPairs.Add(float64(len(pairs)))
			r.metrics.UnreachablePairs.Add(float64(unreachable))
			if cache != nil {
				hits, misses := cache.Stats()
				r.metrics.CacheHits.Add(float64(hits))
				r.metrics.CacheMisses.Add(float64(misses))
			}
		}
		r.log.WithFields(logrus.Fields{
			"backend":     r.cfg.Routing.Backend,
			"pairs":       len(pairs),
			"unreachable": unreachable,
		}).Info("pairs routed")
		return nil
	})
}

func unreachableField(like *raster.Raster) *pathrouter.Field {
	cost := raster.NewLike(like)
	cost.Fill(math.Inf(1))
	nearest := make([]int, like.Len())
	for i := range nearest {
		nearest[i] = -1
	}
	return &pathrouter.Field{Cost: cost, Nearest: nearest}
}

// Quantify derives potentials, the flow rasters, per-pair deliveries and the
// run summary.
func (r *Run) Quantify(ctx context.Context) error {
	return r.step(ctx, stageQuantify, func(context.Context) error {
		var err error
		r.sp, r.dp, err = r.model.Potentials(flow.Inputs{
			Supply:      r.in.Supply,
			Demand:      r.in.Demand,
			SupplyCells: r.res.SupplyCells,
			DemandCells: r.res.DemandCells,
			Nearest:     r.res.Cost.Nearest,
		})
		if err != nil {
			return err
		}
		field, err := flow.Quantify(r.sp, r.dp, r.res.Cost.Cost, r.cfg.Flow.Decay)
		if err != nil {
			return err
		}
		r.res.Field = field

		deliveries := make([]flow.Delivery, 0, len(r.res.Pairs))
		for i := range r.res.Pairs {
			pf := &r.res.Pairs[i]
			src := r.res.SupplyCells[pf.Supply]
			if r.benefit == flow.Rival {
				pf.Amount = field.Actual.At(src)
			} else {
				dst := r.res.DemandCells[pf.Demand]
				pf.Amount = flow.Attenuate(flow.Theoretical(r.sp.At(src), r.in.Demand.At(dst)), pf.Cost, r.cfg.Flow.Decay)
			}
			deliveries = append(deliveries, flow.Delivery{Demand: pf.Demand, Amount: pf.Amount})
		}
		capacity := make([]float64, len(r.res.DemandCells))
		for d, p := range r.res.DemandCells {
			if v := r.in.Demand.At(p); v > 0 {
				capacity[d] = v
			}
		}
		used, err := flow.Usage(deliveries, capacity)
		if err != nil {
			return err
		}
		r.res.Summary = flow.Summarize(field, used)
		r.log.WithFields(logrus.Fields{
			"theoretical": r.res.Summary.TotalTheoretical,
			"actual":      r.res.Summary.TotalActual,
			"used":        r.res.Summary.TotalUsed,
		}).Info("flow quantified")
		return nil
	})
}

// Network accumulates realized flow along routed paths and links supply and
// demand nodes whose neighborhoods both carry it.
func (r *Run) Network(ctx context.Context) error {
	return r.step(ctx, stageNetwork, func(context.Context) error {
		paths := make([]pathrouter.Path, len(r.res.Pairs))
		amounts := make([]float64, len(r.res.Pairs))
		for i, pf := range r.res.Pairs {
			paths[i], amounts[i] = pf.Path, pf.Amount
		}
		intensity, err := network.Intensity(r.resistance, paths, amounts)
		if err != nil {
			return err
		}
		r.res.Intensity = intensity

		g, err := network.Build(r.res.Nodes, intensity,
			func(s, d int) bool { return r.reach[s][d] },
			network.WithRadius(r.cfg.Network.Radius),
			network.WithCutoff(r.cfg.Thresholds.Trans),
		)
		if err != nil {
			return err
		}
		r.res.Graph = g
		r.log.WithFields(logrus.Fields{"nodes": g.Len(), "edges": g.EdgeCount()}).Info("network built")
		return nil
	})
}

func (r *Run) spatialField() *raster.Raster {
	switch r.cfg.Spatial.Field {
	case "theoretical":
		return r.res.Field.Theoretical
	case "efficiency":
		return r.res.Field.Efficiency
	}
	return r.res.Field.Actual
}

// Analyze computes graph metrics and spatial statistics concurrently.
func (r *Run) Analyze(ctx context.Context) error {
	return r.step(ctx, stageAnalyze, func(ctx context.Context) error {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			m, err := r.graphs(gctx, r.res.Graph,
				graphmetrics.WithWeightPolicy(r.policy),
				graphmetrics.WithSeed(r.cfg.Metrics.Seed),
				graphmetrics.WithMaxIterations(r.cfg.Metrics.MaxIterations),
				graphmetrics.WithTolerance(r.cfg.Metrics.Tolerance),
				graphmetrics.WithMaxNodes(r.cfg.Metrics.MaxNodes),
				graphmetrics.WithMaxVulnerabilityNodes(r.cfg.Metrics.MaxVulnerabilityNodes),
				graphmetrics.WithWorkers(r.cfg.Routing.Workers),
				graphmetrics.WithLogger(r.log),
			)
			if err != nil {
				return errors.Wrap(err, "graph metrics")
			}
			r.res.Metrics = m
			return nil
		})
		g.Go(func() error {
			st, err := r.stats(gctx, r.spatialField(),
				spatial.WithRadius(r.cfg.Spatial.Radius),
				spatial.WithZCritical(r.cfg.Spatial.ZCritical),
			)
			if err != nil {
				return errors.Wrap(err, "spatial statistics")
			}
			r.res.Statistics = st
			return nil
		})
		return g.Wait()
	})
}
