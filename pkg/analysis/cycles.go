package analysis

import (
	"slices"

	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/chaosmeter/pkg/graph"
)

// CycleReport lists every simple cycle of a graph.
//
// Each cycle is a sequence of distinct nodes where every node depends on the
// next and the last depends on the first. A self-loop is a cycle of one.
type CycleReport struct {
	Total  int        `json:"total"`
	Cycles [][]string `json:"cycles"`
}

// Acyclic reports whether no cycle was found.
func (r *CycleReport) Acyclic() bool { return r.Total == 0 }

// Members returns the distinct nodes taking part in at least one cycle,
// sorted lexicographically.
func (r *CycleReport) Members() []string {
	seen := make(map[string]bool)
	var members []string
	for _, c := range r.Cycles {
		for _, id := range c {
			if !seen[id] {
				seen[id] = true
				members = append(members, id)
			}
		}
	}
	slices.Sort(members)
	return members
}

// FindCycles enumerates all simple cycles of g.
//
// Self-loops are reported directly. The remaining cycles come from Johnson's
// algorithm, which blocks nodes on the current path and unblocks them on
// backtrack so that each elementary cycle is found exactly once. It is only
// run when some strongly connected component has more than one node.
//
// Each cycle is rotated to start at its lexicographically smallest node, and
// cycles are sorted lexicographically (a shorter cycle sorts before a longer
// one sharing its prefix).
//
// The number of simple cycles can grow exponentially with graph size.
func FindCycles(g *graph.Graph) *CycleReport {
	var cycles [][]string
	for _, id := range g.SelfLoops() {
		cycles = append(cycles, []string{id})
	}

	view := newGonumView(g)
	if hasCyclicComponent(view) {
		for _, c := range topo.DirectedCyclesIn(view.g) {
			// gonum closes each cycle by repeating its first node.
			if len(c) > 1 && c[0].ID() == c[len(c)-1].ID() {
				c = c[:len(c)-1]
			}
			cycle := make([]string, len(c))
			for i, n := range c {
				cycle[i] = view.name(n.ID())
			}
			cycles = append(cycles, cycle)
		}
	}

	for i, c := range cycles {
		cycles[i] = canonicalRotation(c)
	}
	slices.SortFunc(cycles, slices.Compare)

	if cycles == nil {
		cycles = [][]string{}
	}
	return &CycleReport{Total: len(cycles), Cycles: cycles}
}

func hasCyclicComponent(view *gonumView) bool {
	for _, scc := range topo.TarjanSCC(view.g) {
		if len(scc) > 1 {
			return true
		}
	}
	return false
}

// canonicalRotation rotates a cycle so that its smallest node comes first.
func canonicalRotation(cycle []string) []string {
	if len(cycle) < 2 {
		return cycle
	}
	start := 0
	for i, id := range cycle {
		if id < cycle[start] {
			start = i
		}
	}
	rotated := make([]string, 0, len(cycle))
	rotated = append(rotated, cycle[start:]...)
	return append(rotated, cycle[:start]...)
}
