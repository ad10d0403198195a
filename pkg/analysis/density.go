package analysis

import "github.com/matzehuels/chaosmeter/pkg/graph"

// Density returns |E| / (|N| * (|N| - 1)), the share of possible
// dependencies that exist. Self-loops are outside the node-pair space and
// are not counted. Graphs with fewer than two nodes have density 0. Lower
// means less coupling.
func Density(g *graph.Graph) float64 {
	n := g.NodeCount()
	if n < 2 {
		return 0
	}
	edges := g.EdgeCount() - len(g.SelfLoops())
	return float64(edges) / float64(n*(n-1))
}
