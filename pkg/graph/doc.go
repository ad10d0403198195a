// Package graph provides the immutable dependency graph analyzed by chaosmeter.
//
// # Overview
//
// A dependency report is reduced to a set of directed edges "source depends
// on target". This package turns that edge sequence into a [Graph]: a node
// set closed under edge endpoints plus a duplicate-free edge set, with O(1)
// amortized successor and predecessor lookups.
//
// # Construction
//
// Graphs are assembled with a [Builder] and sealed with [Builder.Build]:
//
//	b := graph.NewBuilder()
//	b.AddEdge("app", "core")
//	b.AddEdge("core", "util")
//	g := b.Build()
//
// After Build the builder refuses further mutation ([ErrSealed]) and the
// returned Graph exposes read-only queries only. Every accessor returning a
// slice returns a copy, so callers cannot alter the graph through it.
//
// # Ordering
//
// Nodes keep the sequence number of their first appearance. [Graph.Nodes]
// returns nodes in that order and [Graph.Seq] exposes the number so that
// analyzers can break ranking ties by insertion order, which keeps every
// report reproducible.
//
// # Self-loops
//
// An edge whose source equals its target is kept. It contributes one to both
// the in-degree and out-degree of its node and is treated as a single-node
// cycle by the analysis package.
//
// # Concurrency
//
// A built Graph is never modified, so any number of goroutines may query it
// concurrently. Builders are not safe for concurrent use.
package graph
