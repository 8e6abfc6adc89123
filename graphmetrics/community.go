package graphmetrics

import (
	"context"
	"math/rand"
	"sort"

	"github.com/katalvlaran/spanflow/matrix"
)

// Modularity computes Q = (1/2m) Σ_ij (A_ij − k_i k_j / 2m) δ(c_i, c_j) for a
// symmetric adjacency. It returns 0 when the graph has no weight.
func Modularity(adj *matrix.Dense, membership []int) float64 {
	n := adj.Rows()
	k := strengths(adj)
	var twoM float64
	for _, v := range k {
		twoM += v
	}
	if twoM == 0 {
		return 0
	}
	var q float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if membership[i] != membership[j] {
				continue
			}
			q += adj.Get(i, j) - k[i]*k[j]/twoM
		}
	}
	return q / twoM
}

// strengths returns weighted degrees k_i = Σ_j A_ij.
func strengths(adj *matrix.Dense) []float64 {
	n := adj.Rows()
	k := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			k[i] += adj.Get(i, j)
		}
	}
	return k
}

// louvain holds the state of one community detection run.
type louvain struct {
	adj   *matrix.Dense
	n     int
	k     []float64 // node strengths
	twoM  float64
	comm  []int     // node -> community
	tot   []float64 // community -> Σ k_i of members
	order []int     // node visiting order
	tol   float64
}

// Communities partitions the symmetric adjacency by greedy modularity
// optimization.
//
// Behavior:
//  1. Start from singletons; visit nodes in a seeded random order.
//  2. Phase 1: move each node to the neighboring community with the largest
//     modularity gain, if the gain is positive. Repeat until no node moves.
//  3. Phase 2: among community pairs whose merge raises Q, merge the pair with
//     the strongest inter-connection. Repeat until no merge raises Q.
//  4. Alternate phases until neither changes anything (the fixed point).
//
// The same seed always yields the same partition. If maxIter rounds pass
// without reaching the fixed point the singleton partition is returned with
// Converged = false.
func Communities(ctx context.Context, adj *matrix.Dense, seed int64, maxIter int, tol float64) (Partition, error) {
	n := adj.Rows()
	l := &louvain{
		adj:   adj,
		n:     n,
		k:     strengths(adj),
		comm:  make([]int, n),
		tot:   make([]float64, n),
		order: rand.New(rand.NewSource(seed)).Perm(n),
		tol:   tol,
	}
	for i := 0; i < n; i++ {
		l.comm[i] = i
		l.tot[i] = l.k[i]
		l.twoM += l.k[i]
	}
	if l.twoM == 0 {
		return singletons(n, true), nil
	}

	for round := 0; ; round++ {
		if round >= maxIter {
			p := singletons(n, false)
			p.Modularity = Modularity(adj, p.Membership)
			return p, nil
		}
		if err := ctx.Err(); err != nil {
			return Partition{}, err
		}
		moved := l.moveNodes()
		merged := l.mergeCommunities()
		if !moved && !merged {
			break
		}
	}
	p := relabel(l.comm)
	p.Modularity = Modularity(adj, p.Membership)
	p.Converged = true
	return p, nil
}

// moveNodes runs phase 1 until a full pass moves nothing.
// It reports whether any node changed community.
func (l *louvain) moveNodes() bool {
	changed := false
	links := make(map[int]float64)
	var cands []int
	for {
		moved := false
		for _, i := range l.order {
			for c := range links {
				delete(links, c)
			}
			for j := 0; j < l.n; j++ {
				if w := l.adj.Get(i, j); w > 0 && j != i {
					links[l.comm[j]] += w
				}
			}
			cands = cands[:0]
			for c := range links {
				cands = append(cands, c)
			}
			sort.Ints(cands)

			own := l.comm[i]
			l.tot[own] -= l.k[i]
			// gain of joining c, up to the common factor 1/m:
			// k_i,in(c) − tot(c)·k_i / 2m
			best := own
			bestGain := links[own] - l.tot[own]*l.k[i]/l.twoM
			for _, c := range cands {
				if gain := links[c] - l.tot[c]*l.k[i]/l.twoM; gain > bestGain+l.tol {
					best, bestGain = c, gain
				}
			}
			l.tot[best] += l.k[i]
			if best != own {
				l.comm[i] = best
				moved = true
				changed = true
			}
		}
		if !moved {
			return changed
		}
	}
}

// mergeCommunities runs phase 2 until no merge raises Q.
// It reports whether any merge happened.
func (l *louvain) mergeCommunities() bool {
	changed := false
	for {
		between := make(map[[2]int]float64)
		for i := 0; i < l.n; i++ {
			for j := i + 1; j < l.n; j++ {
				ci, cj := l.comm[i], l.comm[j]
				w := l.adj.Get(i, j)
				if ci == cj || w <= 0 {
					continue
				}
				if ci > cj {
					ci, cj = cj, ci
				}
				between[[2]int{ci, cj}] += w
			}
		}
		pairs := make([][2]int, 0, len(between))
		for pair := range between {
			pairs = append(pairs, pair)
		}
		sort.Slice(pairs, func(a, b int) bool { return lessPair(pairs[a], pairs[b]) })

		var (
			pick  [2]int
			pickW float64
			found bool
		)
		for _, pair := range pairs {
			w := between[pair]
			// ΔQ = 2·W_cd/2m − 2·tot_c·tot_d/(2m)²
			dq := 2*w/l.twoM - 2*l.tot[pair[0]]*l.tot[pair[1]]/(l.twoM*l.twoM)
			if dq <= l.tol {
				continue
			}
			if !found || w > pickW+l.tol {
				pick, pickW, found = pair, w, true
			}
		}
		if !found {
			return changed
		}
		keep, drop := pick[0], pick[1]
		for i := range l.comm {
			if l.comm[i] == drop {
				l.comm[i] = keep
			}
		}
		l.tot[keep] += l.tot[drop]
		l.tot[drop] = 0
		changed = true
	}
}

func lessPair(a, b [2]int) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

// relabel renumbers communities 0..k−1 by first appearance in node order.
func relabel(comm []int) Partition {
	ids := make(map[int]int)
	out := make([]int, len(comm))
	for i, c := range comm {
		id, ok := ids[c]
		if !ok {
			id = len(ids)
			ids[c] = id
		}
		out[i] = id
	}
	return Partition{Membership: out, Count: len(ids)}
}

// singletons puts every node in its own community.
func singletons(n int, converged bool) Partition {
	m := make([]int, n)
	for i := range m {
		m[i] = i
	}
	return Partition{Membership: m, Count: n, Converged: converged}
}
