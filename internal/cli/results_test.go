package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/chaosmeter/pkg/analysis"
	"github.com/matzehuels/chaosmeter/pkg/graph"
)

func TestRenderResult(t *testing.T) {
	tests := []struct {
		name   string
		result any
		want   []string
	}{
		{"acyclic", &analysis.CycleReport{}, []string{"no cycles"}},
		{"cycles", &analysis.CycleReport{Total: 1, Cycles: [][]string{{"A", "B"}}}, []string{"1 cycle(s)", "A → B → A"}},
		{"degrees", []analysis.Ranked[int]{{Node: "X", Value: 4}}, []string{"Node", "X", "4"}},
		{"centrality", []analysis.Ranked[float64]{{Node: "Y", Value: 0.5}}, []string{"Y", "0.5000"}},
		{"empty ranking", []analysis.Ranked[int]{}, []string{"none"}},
		{"components", [][]string{{"A", "B"}}, []string{"Size", "A, B"}},
		{"number", 0.125, []string{"0.1250"}},
		{"layers", &analysis.Layering{Layers: [][]string{{"C"}, {"A", "B"}}}, []string{"Layer", "A, B"}},
		{"refused layering", &analysis.Layering{Cycles: &analysis.CycleReport{Total: 1, Cycles: [][]string{{"A"}}}}, []string{"cannot be layered", "A → A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderResult(tt.result)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("renderResult() = %q, want it to contain %q", got, want)
				}
			}
		})
	}
}

func TestRenderCyclesDoesNotMutate(t *testing.T) {
	cycle := make([]string, 2, 4)
	copy(cycle, []string{"A", "B"})
	report := &analysis.CycleReport{Total: 1, Cycles: [][]string{cycle}}

	renderResult(report)
	if got := report.Cycles[0][:cap(cycle)][2]; got != "" {
		t.Errorf("rendering wrote %q into the cycle's backing array", got)
	}
}

func TestRenderSummary(t *testing.T) {
	g, err := graph.FromEdges([]graph.Edge{{From: "A", To: "B"}, {From: "B", To: "A"}})
	if err != nil {
		t.Fatal(err)
	}
	s, err := analysis.Summarize(t.Context(), g, analysis.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	out := renderSummary("deps.graph", s)
	for _, want := range []string{"deps.graph", "Nodes", "1 cycle(s)", "Strongly connected components", "PageRank"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Layers") {
		t.Errorf("cyclic summary should not report layers:\n%s", out)
	}
}
