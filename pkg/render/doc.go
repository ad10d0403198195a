// Package render provides visual output for dependency graphs.
//
// # Overview
//
// The [nodelink] subpackage turns a graph into Graphviz DOT and SVG, with
// cyclic edges highlighted and nodes ranked by layer. This package holds the
// format conversions shared by renderers.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// Use [Available] to check for the tool before offering these formats.
//
// [nodelink]: github.com/matzehuels/chaosmeter/pkg/render/nodelink
package render
