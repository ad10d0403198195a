package analysis

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/chaosmeter/pkg/errors"
	"github.com/matzehuels/chaosmeter/pkg/graph"
)

// StronglyConnected returns the strongly connected components with more than
// one node, largest first. Members are listed in first-seen order; components
// of equal size are ordered by their earliest member.
func StronglyConnected(g *graph.Graph) [][]string {
	components := componentIndex(g)
	groups := make(map[int][]string)
	for _, id := range g.Nodes() {
		c := components[id]
		groups[c] = append(groups[c], id)
	}

	out := [][]string{}
	for _, members := range groups {
		if len(members) > 1 {
			out = append(out, members)
		}
	}
	slices.SortFunc(out, func(a, b []string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		sa, _ := g.Seq(a[0])
		sb, _ := g.Seq(b[0])
		return cmp.Compare(sa, sb)
	})
	return out
}

// componentIndex assigns every node the index of its strongly connected
// component (Tarjan).
func componentIndex(g *graph.Graph) map[string]int {
	view := newGonumView(g)
	index := make(map[string]int, g.NodeCount())
	for i, scc := range topo.TarjanSCC(view.g) {
		for _, n := range scc {
			index[view.name(n.ID())] = i
		}
	}
	return index
}

// CyclicEdgeSet returns the edges lying inside a cycle: edges whose
// endpoints share a strongly connected component of more than one node, plus
// self-loops.
func CyclicEdgeSet(g *graph.Graph) map[graph.Edge]bool {
	components := componentIndex(g)
	sizes := make(map[int]int)
	for _, c := range components {
		sizes[c]++
	}

	cyclic := make(map[graph.Edge]bool)
	for _, e := range g.Edges() {
		if e.IsSelfLoop() {
			cyclic[e] = true
			continue
		}
		if c := components[e.From]; c == components[e.To] && sizes[c] > 1 {
			cyclic[e] = true
		}
	}
	return cyclic
}

// CyclicEdges counts the edges of [CyclicEdgeSet].
func CyclicEdges(g *graph.Graph) int { return len(CyclicEdgeSet(g)) }

// FlowHierarchy returns the fraction of edges that do not take part in a
// cycle: 1 for an acyclic graph, 0 when every edge lies inside a cyclic
// component. Higher is better. An edgeless graph has no flow hierarchy and
// yields an UNDEFINED_METRIC error.
func FlowHierarchy(g *graph.Graph) (float64, error) {
	total := g.EdgeCount()
	if total == 0 {
		return 0, errors.New(errors.ErrCodeUndefinedMetric, "flow hierarchy is undefined for a graph without edges")
	}
	return 1 - float64(CyclicEdges(g))/float64(total), nil
}
