package analysis

import (
	"strings"

	"github.com/matzehuels/chaosmeter/pkg/errors"
	"github.com/matzehuels/chaosmeter/pkg/graph"
)

// Metric selects a single analysis.
type Metric string

// Supported metrics.
const (
	MetricCycle            Metric = "cycle"
	MetricInDegree         Metric = "in-degree"
	MetricOutDegree        Metric = "out-degree"
	MetricCentralityDegree Metric = "centrality-degree"
	MetricFlowHierarchy    Metric = "flow-hierarchy"
	MetricDensity          Metric = "density"
	MetricTopology         Metric = "topology"
	MetricBetweenness      Metric = "betweenness"
	MetricCloseness        Metric = "closeness"
	MetricPageRank         Metric = "pagerank"
	MetricSCC              Metric = "scc"
)

var metrics = []Metric{
	MetricCycle,
	MetricInDegree,
	MetricOutDegree,
	MetricCentralityDegree,
	MetricFlowHierarchy,
	MetricDensity,
	MetricTopology,
	MetricBetweenness,
	MetricCloseness,
	MetricPageRank,
	MetricSCC,
}

var descriptions = map[Metric]string{
	MetricCycle:            "All simple dependency cycles",
	MetricInDegree:         "Components with many dependents",
	MetricOutDegree:        "Components with many dependencies",
	MetricCentralityDegree: "Components with many dependents and dependencies",
	MetricFlowHierarchy:    "Fraction of dependencies outside cycles (higher is better)",
	MetricDensity:          "Share of possible dependencies present (lower is better)",
	MetricTopology:         "Layering of an acyclic graph",
	MetricBetweenness:      "Components on the most shortest paths",
	MetricCloseness:        "Components closest to everything they reach",
	MetricPageRank:         "Components ranked by PageRank",
	MetricSCC:              "Strongly connected components",
}

// Metrics returns every supported metric in presentation order.
func Metrics() []Metric {
	out := make([]Metric, len(metrics))
	copy(out, metrics)
	return out
}

// MetricNames returns the selector strings of every supported metric.
func MetricNames() []string {
	names := make([]string, len(metrics))
	for i, m := range metrics {
		names[i] = string(m)
	}
	return names
}

// Description returns a one-line explanation of the metric.
func (m Metric) Description() string { return descriptions[m] }

// ParseMetric validates a metric selector.
func ParseMetric(s string) (Metric, error) {
	if err := errors.ValidateMetricName(s); err != nil {
		return "", err
	}
	for _, m := range metrics {
		if string(m) == s {
			return m, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidMetric,
		"unknown metric %q (supported: %s)", s, strings.Join(MetricNames(), ", "))
}

// Options tunes thresholds and result sizes. Nil thresholds and zero fields
// take defaults; a threshold of 0 is kept and reports every connected node.
type Options struct {
	DegreeThreshold     *int    `json:"degree_threshold,omitempty"`
	CentralityThreshold *int    `json:"centrality_threshold,omitempty"`
	Top                 int     `json:"top,omitempty"`
	PageRankTop         int     `json:"pagerank_top,omitempty"`
	Damping             float64 `json:"pagerank_damping,omitempty"`
	Tolerance           float64 `json:"pagerank_tolerance,omitempty"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		DegreeThreshold:     Threshold(DefaultDegreeThreshold),
		CentralityThreshold: Threshold(DefaultCentralityThreshold),
		Top:                 DefaultTop,
		PageRankTop:         DefaultPageRankTop,
		Damping:             DefaultDamping,
		Tolerance:           DefaultTolerance,
	}
}

// Threshold returns a pointer to v for the threshold fields of Options.
func Threshold(v int) *int { return &v }

// WithDefaults fills nil thresholds and zero fields from DefaultOptions.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.DegreeThreshold == nil {
		o.DegreeThreshold = d.DegreeThreshold
	}
	if o.CentralityThreshold == nil {
		o.CentralityThreshold = d.CentralityThreshold
	}
	if o.Top == 0 {
		o.Top = d.Top
	}
	if o.PageRankTop == 0 {
		o.PageRankTop = d.PageRankTop
	}
	if o.Damping == 0 {
		o.Damping = d.Damping
	}
	if o.Tolerance == 0 {
		o.Tolerance = d.Tolerance
	}
	return o
}

// Compute runs one metric against g and returns a JSON-serializable report:
//
//   - cycle: *CycleReport
//   - in-degree, out-degree, centrality-degree: []Ranked[int]
//   - betweenness, closeness, pagerank: []Ranked[float64]
//   - scc: [][]string
//   - flow-hierarchy, density: float64
//   - topology: *Layering
//
// Only flow-hierarchy can fail once the graph is built (UNDEFINED_METRIC on
// an edgeless graph). Unknown metrics yield INVALID_METRIC.
func Compute(g *graph.Graph, m Metric, opts Options) (any, error) {
	opts = opts.WithDefaults()
	switch m {
	case MetricCycle:
		return FindCycles(g), nil
	case MetricInDegree:
		return InDegree(g, *opts.DegreeThreshold), nil
	case MetricOutDegree:
		return OutDegree(g, *opts.DegreeThreshold), nil
	case MetricCentralityDegree:
		return CentralityDegree(g, *opts.CentralityThreshold), nil
	case MetricFlowHierarchy:
		return FlowHierarchy(g)
	case MetricDensity:
		return Density(g), nil
	case MetricTopology:
		return Layer(g, nil), nil
	case MetricBetweenness:
		return top(Betweenness(g), opts.Top), nil
	case MetricCloseness:
		return top(Closeness(g), opts.Top), nil
	case MetricPageRank:
		return top(PageRank(g, opts.Damping, opts.Tolerance), opts.PageRankTop), nil
	case MetricSCC:
		return StronglyConnected(g), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidMetric, "unknown metric %q", string(m))
	}
}
