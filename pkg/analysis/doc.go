// Package analysis computes structural health metrics over a dependency graph.
//
// # Overview
//
// Every analyzer reads a built [graph.Graph] and returns an independent
// report; none of them modifies the graph. Because a built graph is
// immutable, analyzers may run concurrently, which [Summarize] does.
//
// # Metrics
//
//   - cycle: all simple cycles ([FindCycles]), Johnson's algorithm per
//     strongly connected component, plus one cycle per self-loop
//   - in-degree, out-degree: nodes above a threshold (default > 3)
//   - centrality-degree: in + out degree above a threshold (default > 5)
//   - betweenness, closeness: top nodes by normalized betweenness and
//     Wasserman-Faust closeness
//   - pagerank: damped power-iteration PageRank
//   - scc: strongly connected components with more than one node
//   - flow-hierarchy: fraction of edges not inside a cyclic component
//   - density: |E| / (|N| * (|N| - 1))
//   - topology: longest-path layering of an acyclic graph ([Layer])
//
// # Ordering
//
// Rankings are sorted by value, descending. Ties keep the order in which
// nodes first appeared in the report, so identical input always yields an
// identical report. Cycles start at their lexicographically smallest node and
// are sorted lexicographically.
//
// # Graph Algorithms
//
// Cycle enumeration, Tarjan's strongly connected components, Brandes
// betweenness and PageRank run on a gonum view of the graph (see
// [gonum.org/v1/gonum/graph]). Closeness, degree rankings and layering are
// computed directly on the [graph.Graph] adjacency lists.
package analysis
