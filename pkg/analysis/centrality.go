package analysis

import (
	"gonum.org/v1/gonum/graph/network"

	"github.com/matzehuels/chaosmeter/pkg/graph"
)

// DefaultTop is the number of nodes reported for betweenness and closeness.
const DefaultTop = 5

// Betweenness ranks every node by normalized betweenness centrality: the
// fraction of shortest paths between ordered pairs of other nodes that pass
// through it. Shortest paths are found by breadth-first search (Brandes).
// Values are scaled by 1/((n-1)(n-2)) when the graph has more than two nodes.
func Betweenness(g *graph.Graph) []Ranked[float64] {
	n := g.NodeCount()
	if n == 0 {
		return []Ranked[float64]{}
	}
	view := newGonumView(g)
	raw := network.Betweenness(view.g)

	scale := 1.0
	if n > 2 {
		scale = 1 / float64((n-1)*(n-2))
	}
	scores := make(map[string]float64, len(raw))
	for id, v := range raw {
		scores[view.name(id)] = v * scale
	}
	return rank(g, func(id string) float64 { return scores[id] })
}

// Closeness ranks every node by closeness centrality computed on outgoing
// shortest paths with the Wasserman-Faust correction:
//
//	C(u) = (r / total) * (r / (n - 1))
//
// where r is the number of nodes reachable from u and total the sum of their
// distances. Nodes that reach nothing score 0.
func Closeness(g *graph.Graph) []Ranked[float64] {
	n := g.NodeCount()
	scores := make(map[string]float64, n)
	for _, id := range g.Nodes() {
		reached, total := distancesFrom(g, id)
		if total == 0 || n < 2 {
			continue
		}
		r := float64(reached)
		scores[id] = (r / float64(total)) * (r / float64(n-1))
	}
	return rank(g, func(id string) float64 { return scores[id] })
}

// distancesFrom runs a BFS from source and returns the number of other
// nodes reached and the sum of their hop distances.
func distancesFrom(g *graph.Graph, source string) (reached, total int) {
	dist := map[string]int{source: 0}
	queue := []string{source}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for next := range g.EachSuccessor(curr) {
			if _, seen := dist[next]; seen {
				continue
			}
			d := dist[curr] + 1
			dist[next] = d
			reached++
			total += d
			queue = append(queue, next)
		}
	}
	return reached, total
}
