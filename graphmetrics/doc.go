// Package graphmetrics computes topological descriptors of a supply→demand
// network.Graph.
//
// Descriptors:
//
//   - Density: directed edges / (n(n−1)).
//   - Distances: all-pairs shortest paths by Floyd–Warshall. WeightPolicy
//     decides how a connection strength becomes a distance: WeightInverted
//     (default, distance = 1/strength, strong links are short) or
//     WeightAsDistance (the strength itself is the length).
//   - Clustering: neighbor-triangle ratio averaged over nodes with ≥ 2 neighbors.
//   - Connectivity: 1 − components/n, components via union-find.
//   - Degree, betweenness (Brandes, normalized by (n−1)(n−2)) and eigenvector
//     centrality (power iteration, max-normalized to 1).
//   - Communities: two-phase greedy modularity optimization (Louvain-style
//     node moves, then community merges), iterated to a fixed point.
//   - Robustness: largest-component size under targeted removal by degree,
//     and the critical fraction at which it drops below half of n.
//   - Vulnerability: relative drop in global efficiency per removed node.
//
// Supply→demand links only run one way, so a directed walk never exceeds one
// hop. Every descriptor except Density therefore reads the symmetric view of
// the graph (network.Graph.Undirected).
//
// Degenerate graphs (n < 2 or no edges) yield neutral values: zeros for
// densities, ratios and centralities, singleton communities with modularity 0,
// and NaN for the critical fraction and average path length. They are never
// reported as errors.
//
// Complexity:
//
//   - Distances, Betweenness: O(n³).
//   - Communities: O(iterations · n²).
//   - Vulnerability: O(n⁴); skipped above Options.MaxVulnerabilityNodes.
package graphmetrics
