// Package nodelink renders dependency graphs as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// components appear as boxes connected by arrows pointing at their
// dependencies. Structural problems found by the analysis are drawn into the
// diagram:
//
//   - Edges inside a cycle (including self-loops) are drawn in red
//   - Nodes of an acyclic graph are ranked by layer, layer 0 at the bottom
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{HighlightCycles: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - HighlightCycles: color cyclic edges and their endpoints
//   - Layering: group nodes of equal layer on one rank
//   - Detailed: label nodes with their in- and out-degree
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion lives in the parent render package and
// requires librsvg (rsvg-convert).
package nodelink
