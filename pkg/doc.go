// Package pkg provides the core libraries for Chaosmeter structural analysis.
//
// # Overview
//
// Chaosmeter measures how healthy the dependency structure of a code base
// is. It reads the dependency reports that build tools already produce and
// computes metrics that point at structural decay: cycles, coupling hot
// spots, central components, flow hierarchy, density and layering.
//
// # Architecture
//
// The typical data flow through Chaosmeter:
//
//	Dependency report (madge, jdeps, PlantUML, edge list, JSON)
//	         ↓
//	    [parse] package (text → canonical edges, exclusion)
//	         ↓
//	    [graph] package (immutable directed graph)
//	         ↓
//	    [analysis] package (one report per metric)
//	         ↓
//	    JSON report, terminal table, DOT/SVG/PNG/PDF diagram
//
// # Quick Start
//
// Parse a report and compute a metric:
//
//	import (
//	    "github.com/matzehuels/chaosmeter/pkg/analysis"
//	    "github.com/matzehuels/chaosmeter/pkg/graph"
//	    "github.com/matzehuels/chaosmeter/pkg/parse"
//	)
//
//	// 1. Parse the report
//	x, _ := parse.CompileExclusion(`src/generated/`)
//	edges, _ := parse.ParseReader(parse.FormatTree, f, x)
//
//	// 2. Build the graph
//	g, _ := graph.FromEdges(edges)
//
//	// 3. Compute a metric
//	cycles := analysis.FindCycles(g)
//
// # Main Packages
//
// [parse] - Parsers for indentation trees (madge), indented reports (jdeps),
// PlantUML class diagrams and plain edge lists, with anchored regular
// expression exclusion.
//
// [graph] - Directed graph with idempotent node and edge insertion that is
// immutable once built. Insertion order is kept for deterministic reports.
//
// [analysis] - Cycle enumeration, degree and centrality rankings, strongly
// connected components, flow hierarchy, density and topological layering.
// [analysis.Summarize] computes all of them concurrently.
//
// [io] - JSON graph documents ({nodes, edges}) for export and re-import.
//
// [render/nodelink] - Graphviz diagrams with highlighted cycles and layer
// ranks. [render] converts SVG to PDF and PNG.
//
// [pipeline] - Load → analyze → render, shared by the CLI and HTTP server.
//
// [config] - TOML configuration for thresholds, exclusion and the server.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Hooks for parse, analysis, render and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/analysis/...  # Specific package
//	go test -run Example        # Examples only
//
// [parse]: https://pkg.go.dev/github.com/matzehuels/chaosmeter/pkg/parse
// [graph]: https://pkg.go.dev/github.com/matzehuels/chaosmeter/pkg/graph
// [analysis]: https://pkg.go.dev/github.com/matzehuels/chaosmeter/pkg/analysis
// [analysis.Summarize]: https://pkg.go.dev/github.com/matzehuels/chaosmeter/pkg/analysis#Summarize
// [io]: https://pkg.go.dev/github.com/matzehuels/chaosmeter/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/chaosmeter/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/chaosmeter/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chaosmeter/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/chaosmeter/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/chaosmeter/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/chaosmeter/pkg/observability
package pkg
