package analysis

import (
	"cmp"
	"slices"

	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/matzehuels/chaosmeter/pkg/graph"
)

// gonumView mirrors a graph.Graph as a gonum directed graph. Node IDs are
// the first-seen sequence numbers, so ids[n] maps a gonum ID back to its
// component name. Self-loops are left out: simple graphs reject them and
// callers account for them separately.
type gonumView struct {
	g   orderedDirected
	ids []string
}

func newGonumView(g *graph.Graph) *gonumView {
	dg := simple.NewDirectedGraph()
	ids := g.Nodes()
	for i := range ids {
		dg.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.Edges() {
		if e.IsSelfLoop() {
			continue
		}
		from, _ := g.Seq(e.From)
		to, _ := g.Seq(e.To)
		dg.SetEdge(simple.Edge{F: simple.Node(int64(from)), T: simple.Node(int64(to))})
	}
	return &gonumView{g: orderedDirected{dg}, ids: ids}
}

func (v *gonumView) name(id int64) string { return v.ids[id] }

// orderedDirected yields nodes sorted by ID. simple.DirectedGraph iterates
// its maps, which makes floating-point accumulation order vary between runs.
type orderedDirected struct {
	*simple.DirectedGraph
}

func (g orderedDirected) Nodes() gonumgraph.Nodes {
	return sortedNodes(g.DirectedGraph.Nodes())
}

func (g orderedDirected) From(id int64) gonumgraph.Nodes {
	return sortedNodes(g.DirectedGraph.From(id))
}

func (g orderedDirected) To(id int64) gonumgraph.Nodes {
	return sortedNodes(g.DirectedGraph.To(id))
}

func sortedNodes(it gonumgraph.Nodes) gonumgraph.Nodes {
	nodes := gonumgraph.NodesOf(it)
	slices.SortFunc(nodes, func(a, b gonumgraph.Node) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return iterator.NewOrderedNodes(nodes)
}
