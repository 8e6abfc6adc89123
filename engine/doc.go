// Package engine assembles one spanflow run from a Config and three input
// rasters.
//
// A Run is an explicit staged builder. Each stage owns one part of the Result
// and must run after the previous one:
//
//  1. Validate  – shapes, negative resistance, config; sink cells become +Inf.
//  2. Classify  – supply and demand masks become network nodes.
//  3. Route     – cost-to-nearest-demand field plus per-pair paths on a
//     bounded worker pool (A* or contraction hierarchies, optionally cached).
//  4. Quantify  – potentials, flow rasters, deliveries and the summary.
//  5. Network   – realized flow intensity and the supply→demand graph.
//  6. Analyze   – graph metrics and spatial statistics, concurrently.
//
// Execute runs all six under Config.Timeout. Unreachable pairs, empty node
// sets and degenerate graphs are data, not errors: they show up as +Inf
// costs, zero flow and neutral metrics.
//
// WithRouter, WithGraphAnalyzer and WithSpatialAnalyzer swap the routing,
// graph and spatial collaborators.
//
// Instrumentation is opt-in: WithCollector records stage durations and pair
// counters on a caller-owned Prometheus registry, and every stage opens an
// OpenTelemetry span on the global tracer provider (a no-op unless the caller
// installs one).
package engine
