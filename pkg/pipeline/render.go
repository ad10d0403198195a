package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/chaosmeter/pkg/analysis"
	"github.com/matzehuels/chaosmeter/pkg/graph"
	chaosio "github.com/matzehuels/chaosmeter/pkg/io"
	"github.com/matzehuels/chaosmeter/pkg/observability"
	"github.com/matzehuels/chaosmeter/pkg/render"
	"github.com/matzehuels/chaosmeter/pkg/render/nodelink"
)

// RenderOptions configures [Runner.Render].
type RenderOptions struct {
	// Detailed adds degrees to node labels in diagrams.
	Detailed bool

	// Scale is the PNG resolution factor. Defaults to 2.
	Scale float64
}

// Render exports g in the given output format. Diagrams highlight cyclic
// edges and rank nodes by layer when the graph is acyclic.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, format string, opts RenderOptions) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	data, err := renderFormat(ctx, g, format, opts)
	elapsed := time.Since(start)
	hooks.OnRenderComplete(ctx, format, elapsed, err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}

	r.Logger.Debug("rendered graph", "format", format, "bytes", len(data), "duration", elapsed)
	return data, nil
}

// DOT returns the annotated Graphviz source for g. Layer ranks are only
// computed for acyclic graphs; cyclic ones get highlighted edges instead.
func DOT(g *graph.Graph, detailed bool) string {
	opts := nodelink.Options{HighlightCycles: true, Detailed: detailed}
	if analysis.IsAcyclic(g) {
		opts.Layering = analysis.Layer(g, nil)
	}
	return nodelink.ToDOT(g, opts)
}

func renderFormat(ctx context.Context, g *graph.Graph, format string, opts RenderOptions) ([]byte, error) {
	if format == FormatJSON {
		var buf bytes.Buffer
		if err := chaosio.WriteJSON(g, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	dot := DOT(g, opts.Detailed)
	if format == FormatDOT {
		return []byte(dot), nil
	}

	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatPNG:
		scale := opts.Scale
		if scale == 0 {
			scale = 2
		}
		return render.ToPNG(ctx, svg, scale)
	case FormatPDF:
		return render.ToPDF(ctx, svg)
	default:
		return svg, nil
	}
}
