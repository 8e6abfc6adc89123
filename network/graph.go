package network

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/spanflow/matrix"
)

// Graph is an immutable weighted supply→demand graph.
type Graph struct {
	nodes    []Node
	nSupply  int
	strength *matrix.Dense
	edges    int
}

// FromEdges builds a Graph from explicit edges. Nodes must come from NewNodes
// (supply first). Repeated edges overwrite earlier weights.
func FromEdges(nodes []Node, edges []Edge) (*Graph, error) {
	g, err := newGraph(nodes)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if err := g.link(e.From, e.To, e.Weight); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func newGraph(nodes []Node) (*Graph, error) {
	own := make([]Node, len(nodes))
	copy(own, nodes)
	nSupply := 0
	for i, n := range own {
		if n.ID != i {
			return nil, fmt.Errorf("%w: node at position %d has ID %d", ErrNodeIndex, i, n.ID)
		}
		if n.Role == Supply {
			if nSupply != i {
				return nil, fmt.Errorf("%w: supply node %d listed after a demand node", ErrNodeIndex, i)
			}
			nSupply++
		}
	}
	m, err := matrix.NewSquare(len(own))
	if err != nil {
		return nil, err
	}
	return &Graph{nodes: own, nSupply: nSupply, strength: m}, nil
}

// link records from→to with weight w during construction only.
func (g *Graph) link(from, to int, w float64) error {
	n := len(g.nodes)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: %d->%d (n=%d)", ErrNodeIndex, from, to, n)
	}
	if g.nodes[from].Role != Supply || g.nodes[to].Role != Demand {
		return fmt.Errorf("%w: %d(%s)->%d(%s)", ErrEdgeDirection, from, g.nodes[from].Role, to, g.nodes[to].Role)
	}
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("%w: %d->%d weight=%g", ErrBadWeight, from, to, w)
	}
	old := g.strength.Get(from, to)
	switch {
	case old == 0 && w > 0:
		g.edges++
	case old > 0 && w == 0:
		g.edges--
	}
	return g.strength.Set(from, to, w)
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// SupplyCount returns |S|.
func (g *Graph) SupplyCount() int { return g.nSupply }

// DemandCount returns |D|.
func (g *Graph) DemandCount() int { return len(g.nodes) - g.nSupply }

// EdgeCount returns the number of populated directed connections.
func (g *Graph) EdgeCount() int { return g.edges }

// Node returns node i.
func (g *Graph) Node(i int) Node { return g.nodes[i] }

// Nodes returns a copy of the node list.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Weight returns the directed strength i→j (0 when absent).
func (g *Graph) Weight(i, j int) float64 { return g.strength.Get(i, j) }

// Strength returns a copy of the directed strength table.
func (g *Graph) Strength() *matrix.Dense { return g.strength.Clone() }

// Undirected returns the symmetric table w_ij + w_ji. Since only the
// Supply×Demand block is populated, each link appears once per direction.
func (g *Graph) Undirected() *matrix.Dense {
	n := len(g.nodes)
	u, _ := matrix.NewSquare(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v := g.strength.Get(i, j); v > 0 {
				_ = u.Set(i, j, u.Get(i, j)+v)
				_ = u.Set(j, i, u.Get(j, i)+v)
			}
		}
	}
	return u
}

// Edges lists populated connections ordered by (From, To).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	g.strength.Do(func(i, j int, v float64) bool {
		if v > 0 {
			out = append(out, Edge{From: i, To: j, Weight: v})
		}
		return true
	})
	return out
}

// Neighbors returns the nodes linked to i in either direction, ascending.
func (g *Graph) Neighbors(i int) []int {
	var out []int
	for j := range g.nodes {
		if j != i && (g.strength.Get(i, j) > 0 || g.strength.Get(j, i) > 0) {
			out = append(out, j)
		}
	}
	sort.Ints(out)
	return out
}
