package analysis

import "github.com/matzehuels/chaosmeter/pkg/graph"

// Default thresholds for degree rankings. Only nodes strictly above the
// threshold are reported.
const (
	DefaultDegreeThreshold     = 3
	DefaultCentralityThreshold = 5
)

// Degree holds both degrees of a node.
type Degree struct {
	Node string `json:"node"`
	In   int    `json:"in"`
	Out  int    `json:"out"`
}

// Degrees returns the in- and out-degree of every node in first-seen order.
func Degrees(g *graph.Graph) []Degree {
	nodes := g.Nodes()
	out := make([]Degree, len(nodes))
	for i, id := range nodes {
		out[i] = Degree{Node: id, In: g.InDegree(id), Out: g.OutDegree(id)}
	}
	return out
}

// InDegree ranks nodes whose in-degree exceeds threshold, highest first.
// Nodes with many dependents are the ones a change ripples out from.
func InDegree(g *graph.Graph, threshold int) []Ranked[int] {
	return above(rank(g, g.InDegree), threshold)
}

// OutDegree ranks nodes whose out-degree exceeds threshold, highest first.
// Nodes with many dependencies are the ones most exposed to change.
func OutDegree(g *graph.Graph, threshold int) []Ranked[int] {
	return above(rank(g, g.OutDegree), threshold)
}

// CentralityDegree ranks nodes whose in-degree plus out-degree exceeds
// threshold, highest first.
func CentralityDegree(g *graph.Graph, threshold int) []Ranked[int] {
	return above(rank(g, func(id string) int {
		return g.InDegree(id) + g.OutDegree(id)
	}), threshold)
}
