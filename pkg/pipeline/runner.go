package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chaosmeter/pkg/analysis"
	"github.com/matzehuels/chaosmeter/pkg/graph"
	"github.com/matzehuels/chaosmeter/pkg/observability"
	"github.com/matzehuels/chaosmeter/pkg/parse"
)

// summaryMetric labels observability events of [Runner.Summarize].
const summaryMetric = "summary"

// Runner executes pipeline stages with logging and observability hooks.
// Both the CLI and the HTTP server use it.
//
// The Runner is stateless except for the logger; it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// LoadFile reads the report at opts.Source and builds its graph.
func (r *Runner) LoadFile(ctx context.Context, opts Options) (*graph.Graph, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	f, err := ResolveFormat(opts)
	if err != nil {
		return nil, err
	}
	data, err := readSource(ctx, opts.Source)
	if err != nil {
		return nil, err
	}
	return r.load(ctx, data, f, opts)
}

// Load builds a graph from report data already in memory. opts.Format or the
// extension of opts.Source selects the parser.
func (r *Runner) Load(ctx context.Context, data []byte, opts Options) (*graph.Graph, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	f, err := ResolveFormat(opts)
	if err != nil {
		return nil, err
	}
	return r.load(ctx, data, f, opts)
}

func (r *Runner) load(ctx context.Context, data []byte, f parse.Format, opts Options) (*graph.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f == parse.FormatEdgeList && opts.Exclude != "" {
		opts.Logger.Warn("edge lists are not filtered, ignoring exclusion", "pattern", opts.Exclude)
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, f.String(), opts.Source)
	start := time.Now()

	g, err := Parse(data, f, opts.Exclude)
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnParseComplete(ctx, f.String(), opts.Source, 0, 0, elapsed, err)
		return nil, err
	}
	hooks.OnParseComplete(ctx, f.String(), opts.Source, g.NodeCount(), g.EdgeCount(), elapsed, nil)

	opts.Logger.Debug("parsed report",
		"format", f,
		"source", opts.Source,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", elapsed)
	return g, nil
}

// Analyze computes a single metric.
func (r *Runner) Analyze(ctx context.Context, g *graph.Graph, m analysis.Metric, opts Options) (any, error) {
	r.applyLogger(&opts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, string(m), g.NodeCount())
	start := time.Now()

	result, err := analysis.Compute(g, m, opts.Analysis)
	elapsed := time.Since(start)
	hooks.OnAnalyzeComplete(ctx, string(m), elapsed, err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("computed metric", "metric", m, "duration", elapsed)
	return result, nil
}

// Summarize computes every metric.
func (r *Runner) Summarize(ctx context.Context, g *graph.Graph, opts Options) (*analysis.Summary, error) {
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, summaryMetric, g.NodeCount())
	start := time.Now()

	s, err := analysis.Summarize(ctx, g, opts.Analysis)
	elapsed := time.Since(start)
	hooks.OnAnalyzeComplete(ctx, summaryMetric, elapsed, err)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	opts.Logger.Debug("computed summary", "cycles", s.Cycles.Total, "duration", elapsed)
	return s, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
