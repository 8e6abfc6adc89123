package graphmetrics

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/spanflow/network"
)

// Compute derives every descriptor of g.
//
// O(n³) descriptors (distances, betweenness, vulnerability) are skipped above
// Options.MaxNodes and recorded in Metrics.Skipped. Non-convergent
// eigenvector or community refinement falls back to zeros or singletons and
// logs a warning. Only ctx cancellation and a nil graph are errors.
func Compute(ctx context.Context, g *network.Graph, opts ...Option) (*Metrics, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if g == nil {
		return nil, ErrNilGraph
	}
	log := cfg.Logger.WithField("component", "graphmetrics")

	n := g.Len()
	adj := g.Undirected()
	m := &Metrics{
		Nodes:             n,
		Edges:             g.EdgeCount(),
		Density:           Density(g.EdgeCount(), n),
		Clustering:        Clustering(adj),
		AveragePathLength: math.NaN(),
		Degree:            Degree(adj),
		Betweenness:       make([]float64, n),
		Vulnerability:     make([]float64, n),
	}
	m.Components, _ = Components(adj, nil)
	m.Connectivity = Connectivity(m.Components, n)
	if n < 2 || m.Edges == 0 {
		log.WithFields(logrus.Fields{"nodes": n, "edges": m.Edges}).
			Warn("degenerate graph, returning neutral metrics")
	}

	ev, ok, err := Eigenvector(ctx, adj, cfg.MaxIterations, cfg.Tolerance)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.WithField("max_iterations", cfg.MaxIterations).
			Warn("eigenvector centrality did not converge, using zero vector")
	}
	m.Eigenvector = ev

	part, err := Communities(ctx, adj, cfg.Seed, cfg.MaxIterations, cfg.Tolerance)
	if err != nil {
		return nil, err
	}
	if !part.Converged {
		log.WithField("max_iterations", cfg.MaxIterations).
			Warn("community detection did not converge, using singleton communities")
	}
	m.Communities = part
	m.Robustness = Attack(adj, m.Degree)

	if cfg.MaxNodes > 0 && n > cfg.MaxNodes {
		log.WithFields(logrus.Fields{"nodes": n, "limit": cfg.MaxNodes}).
			Warn("graph too large, skipping all-pairs metrics")
		m.Skipped = append(m.Skipped, "distances", "betweenness", "vulnerability")
		return m, nil
	}

	if m.Distances, err = Distances(ctx, adj, cfg.Policy); err != nil {
		return nil, err
	}
	m.AveragePathLength, m.Diameter, m.GlobalEfficiency = PathStats(m.Distances, nil)
	if m.Betweenness, err = Betweenness(ctx, adj, cfg.Policy); err != nil {
		return nil, err
	}

	if cfg.MaxVulnerabilityNodes > 0 && n > cfg.MaxVulnerabilityNodes {
		log.WithFields(logrus.Fields{"nodes": n, "limit": cfg.MaxVulnerabilityNodes}).
			Warn("graph too large, skipping vulnerability scan")
		m.Skipped = append(m.Skipped, "vulnerability")
		return m, nil
	}
	if m.Vulnerability, err = Vulnerability(ctx, adj, cfg.Policy, m.GlobalEfficiency, cfg.Workers); err != nil {
		return nil, err
	}
	return m, nil
}
