package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/chaosmeter/pkg/errors"
	"github.com/matzehuels/chaosmeter/pkg/graph"
)

// Summary gathers every metric for one graph.
type Summary struct {
	Nodes            int               `json:"nodes"`
	Edges            int               `json:"edges"`
	Cycles           *CycleReport      `json:"cycle"`
	InDegree         []Ranked[int]     `json:"in-degree"`
	OutDegree        []Ranked[int]     `json:"out-degree"`
	CentralityDegree []Ranked[int]     `json:"centrality-degree"`
	Betweenness      []Ranked[float64] `json:"betweenness"`
	Closeness        []Ranked[float64] `json:"closeness"`
	PageRank         []Ranked[float64] `json:"pagerank"`
	Components       [][]string        `json:"scc"`
	FlowHierarchy    *float64          `json:"flow-hierarchy"` // nil when undefined
	Density          float64           `json:"density"`
	Topology         *Layering         `json:"topology"`
}

// Summarize computes all metrics. Cycles are enumerated once and shared with
// the layering; the other analyzers run concurrently against the immutable
// graph. An undefined flow hierarchy is reported as nil, not as an error.
func Summarize(ctx context.Context, g *graph.Graph, opts Options) (*Summary, error) {
	opts = opts.WithDefaults()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := &Summary{
		Nodes:  g.NodeCount(),
		Edges:  g.EdgeCount(),
		Cycles: FindCycles(g),
	}

	eg, ctx := errgroup.WithContext(ctx)
	run := func(fn func()) {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}

	run(func() { s.InDegree = InDegree(g, *opts.DegreeThreshold) })
	run(func() { s.OutDegree = OutDegree(g, *opts.DegreeThreshold) })
	run(func() { s.CentralityDegree = CentralityDegree(g, *opts.CentralityThreshold) })
	run(func() { s.Betweenness = top(Betweenness(g), opts.Top) })
	run(func() { s.Closeness = top(Closeness(g), opts.Top) })
	run(func() { s.PageRank = top(PageRank(g, opts.Damping, opts.Tolerance), opts.PageRankTop) })
	run(func() { s.Components = StronglyConnected(g) })
	run(func() { s.Density = Density(g) })
	run(func() { s.Topology = Layer(g, s.Cycles) })
	eg.Go(func() error {
		fh, err := FlowHierarchy(g)
		if errors.Is(err, errors.ErrCodeUndefinedMetric) {
			return nil
		}
		if err != nil {
			return err
		}
		s.FlowHierarchy = &fh
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}
