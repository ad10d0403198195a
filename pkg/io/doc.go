// Package io provides JSON import and export for dependency graphs.
//
// # Overview
//
// The JSON document is the interchange format of chaosmeter: it is what
// `chaosmeter export --format json` writes and what the "json" input format
// reads back. It is also convenient for feeding graphs extracted by tools
// that have no dedicated parser.
//
// # JSON Format
//
// The format has two top-level arrays:
//
//	{
//	  "nodes": [
//	    {"id": "app"},
//	    {"id": "lib-a"},
//	    {"id": "orphan"}
//	  ],
//	  "edges": [
//	    {"from": "app", "to": "lib-a"}
//	  ]
//	}
//
// Nodes listed without edges are kept as isolated nodes. Edge endpoints that
// are not listed under "nodes" are added implicitly, so a document may omit
// the node list entirely. Duplicate edges collapse; self-loops are kept.
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader. Both accept an optional exclusion predicate: a node it
// matches is dropped together with every edge touching it.
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to any
// io.Writer. Nodes and edges are written in first-seen order, so a graph
// survives an export/import round trip with identical ordering and therefore
// identical metric reports.
package io
