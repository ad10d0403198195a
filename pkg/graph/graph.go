package graph

import (
	"errors"
	"iter"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Builder.AddNode] and [Builder.AddEdge]
	// when a node ID is empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrSealed is returned when a Builder is mutated after Build.
	ErrSealed = errors.New("graph already built")
)

// Edge is a directed dependency: From depends on To.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// IsSelfLoop reports whether the edge starts and ends at the same node.
func (e Edge) IsSelfLoop() bool { return e.From == e.To }

// Graph is an immutable directed graph of component dependencies.
//
// The zero value is an empty graph. Use a [Builder] to create a populated one.
type Graph struct {
	order    []string            // node IDs in first-seen order
	seq      map[string]int      // nodeID -> first-seen sequence number
	outgoing map[string][]string // nodeID -> successor IDs in insertion order
	incoming map[string][]string // nodeID -> predecessor IDs in insertion order
	edges    []Edge
	edgeSet  map[Edge]struct{}
}

func newGraph() *Graph {
	return &Graph{
		seq:      make(map[string]int),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		edgeSet:  make(map[Edge]struct{}),
	}
}

// Builder accumulates nodes and edges and produces a sealed [Graph].
//
// Adding an existing node or edge is a no-op, so parallel edges never
// exist. A Builder can be built exactly once.
type Builder struct {
	g *Graph
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{g: newGraph()}
}

// AddNode inserts a node if it is not present yet.
// Returns ErrInvalidNodeID for an empty ID and ErrSealed after Build.
func (b *Builder) AddNode(id string) error {
	if b.g == nil {
		return ErrSealed
	}
	if id == "" {
		return ErrInvalidNodeID
	}
	b.g.addNode(id)
	return nil
}

// AddEdge inserts both endpoints as nodes (idempotent) and the directed edge
// from→to (idempotent). Self-loops are accepted.
func (b *Builder) AddEdge(from, to string) error {
	if b.g == nil {
		return ErrSealed
	}
	if from == "" || to == "" {
		return ErrInvalidNodeID
	}
	b.g.addNode(from)
	b.g.addNode(to)

	e := Edge{From: from, To: to}
	if _, ok := b.g.edgeSet[e]; ok {
		return nil
	}
	b.g.edgeSet[e] = struct{}{}
	b.g.edges = append(b.g.edges, e)
	b.g.outgoing[from] = append(b.g.outgoing[from], to)
	b.g.incoming[to] = append(b.g.incoming[to], from)
	return nil
}

// AddEdges adds every edge in order, stopping at the first error.
func (b *Builder) AddEdges(edges []Edge) error {
	for _, e := range edges {
		if err := b.AddEdge(e.From, e.To); err != nil {
			return err
		}
	}
	return nil
}

// Build seals the builder and returns the graph. Subsequent calls to
// AddNode, AddEdge or Build fail with ErrSealed; Build returns nil then.
func (b *Builder) Build() *Graph {
	g := b.g
	b.g = nil
	return g
}

func (g *Graph) addNode(id string) {
	if _, ok := g.seq[id]; ok {
		return
	}
	g.seq[id] = len(g.order)
	g.order = append(g.order, id)
}

// FromEdges builds a graph from an edge sequence.
// Edges with an empty endpoint are rejected with ErrInvalidNodeID.
func FromEdges(edges []Edge) (*Graph, error) {
	b := NewBuilder()
	if err := b.AddEdges(edges); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// Nodes returns all node IDs in first-seen order.
func (g *Graph) Nodes() []string { return slices.Clone(g.order) }

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges in the graph, self-loops included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.seq[id]
	return ok
}

// HasEdge reports whether the edge from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edgeSet[Edge{From: from, To: to}]
	return ok
}

// Seq returns the first-seen sequence number of id, starting at 0.
// The boolean is false when id is not a node.
func (g *Graph) Seq(id string) (int, bool) {
	n, ok := g.seq[id]
	return n, ok
}

// Successors returns the IDs this node depends on, in insertion order.
// Returns nil if the node has no successors or doesn't exist.
func (g *Graph) Successors(id string) []string { return slices.Clone(g.outgoing[id]) }

// Predecessors returns the IDs depending on this node, in insertion order.
// Returns nil if the node has no predecessors or doesn't exist.
func (g *Graph) Predecessors(id string) []string { return slices.Clone(g.incoming[id]) }

// EachSuccessor iterates the successors of id without copying.
func (g *Graph) EachSuccessor(id string) iter.Seq[string] {
	return slices.Values(g.outgoing[id])
}

// EachPredecessor iterates the predecessors of id without copying.
func (g *Graph) EachPredecessor(id string) iter.Seq[string] {
	return slices.Values(g.incoming[id])
}

// OutDegree returns the number of outgoing edges from the node.
// Returns 0 if the node doesn't exist.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
// Returns 0 if the node doesn't exist.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// SelfLoops returns the nodes carrying a self-loop, in first-seen order.
func (g *Graph) SelfLoops() []string {
	var loops []string
	for _, id := range g.order {
		if g.HasEdge(id, id) {
			loops = append(loops, id)
		}
	}
	return loops
}

// Sources returns nodes with no incoming edges, in first-seen order.
func (g *Graph) Sources() []string {
	var sources []string
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			sources = append(sources, id)
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges, in first-seen order.
// In a dependency graph these are the components depending on nothing.
func (g *Graph) Sinks() []string {
	var sinks []string
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 {
			sinks = append(sinks, id)
		}
	}
	return sinks
}

// PosMap creates a position lookup map from a slice of node IDs.
// The returned map maps each ID to its index in the slice.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}
