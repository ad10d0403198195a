package analysis

import (
	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/chaosmeter/pkg/graph"
)

// PageRank defaults.
const (
	DefaultDamping     = 0.85
	DefaultTolerance   = 1e-6
	DefaultPageRankTop = 30

	maxPageRankRounds = 1000
)

// PageRank ranks every node by damped power-iteration PageRank over the
// dependency direction, so heavily depended-upon components score highest.
// Self-loops do not take part in the iteration.
//
// The iteration starts from the uniform vector and stops once the 2-norm of
// the change between rounds drops below tolerance, or after a fixed number
// of rounds. Dangling nodes spread their rank evenly, so the scores always
// sum to one.
func PageRank(g *graph.Graph, damping, tolerance float64) []Ranked[float64] {
	n := g.NodeCount()
	if n == 0 {
		return []Ranked[float64]{}
	}
	view := newGonumView(g)

	out := make([][]int, n)
	for u := range out {
		for _, v := range gonumgraph.NodesOf(view.g.From(int64(u))) {
			out[u] = append(out[u], int(v.ID()))
		}
	}

	last := make([]float64, n)
	next := make([]float64, n)
	for i := range last {
		last[i] = 1 / float64(n)
	}
	for range maxPageRankRounds {
		var dangling float64
		for u, to := range out {
			if len(to) == 0 {
				dangling += last[u]
			}
		}
		clear(next)
		floats.AddConst((1-damping)/float64(n)+damping*dangling/float64(n), next)
		for u, to := range out {
			share := damping * last[u] / float64(len(to))
			for _, v := range to {
				next[v] += share
			}
		}
		done := floats.Distance(next, last, 2) < tolerance
		last, next = next, last
		if done {
			break
		}
	}

	return rank(g, func(id string) float64 {
		i, _ := g.Seq(id)
		return last[i]
	})
}
