package analysis_test

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/chaosmeter/pkg/analysis"
	"github.com/matzehuels/chaosmeter/pkg/graph"
)

func ExampleFindCycles() {
	g, _ := graph.FromEdges([]graph.Edge{
		{From: "A", To: "B"},
		{From: "B", To: "C"},
		{From: "C", To: "A"},
	})

	report := analysis.FindCycles(g)
	data, _ := json.Marshal(report)
	fmt.Println(string(data))
	// Output:
	// {"total":1,"cycles":[["A","B","C"]]}
}

func ExampleLayer() {
	// A diamond: A depends on B and C, both depend on D.
	g, _ := graph.FromEdges([]graph.Edge{
		{From: "A", To: "B"},
		{From: "A", To: "C"},
		{From: "B", To: "D"},
		{From: "C", To: "D"},
	})

	layering := analysis.Layer(g, nil)
	for i, layer := range layering.Layers {
		fmt.Println(i, layer)
	}
	// Output:
	// 0 [D]
	// 1 [B C]
	// 2 [A]
}

func ExampleCompute() {
	g, _ := graph.FromEdges([]graph.Edge{
		{From: "A", To: "B"},
		{From: "B", To: "C"},
		{From: "C", To: "A"},
	})

	density, _ := analysis.Compute(g, analysis.MetricDensity, analysis.Options{})
	fmt.Println("density:", density)
	// Output:
	// density: 0.5
}

func ExampleSummarize() {
	g, _ := graph.FromEdges([]graph.Edge{
		{From: "api", To: "core"},
		{From: "cli", To: "core"},
		{From: "core", To: "util"},
	})

	s, err := analysis.Summarize(context.Background(), g, analysis.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("cycles:", s.Cycles.Total)
	fmt.Println("layers:", len(s.Topology.Layers))
	fmt.Println("flow hierarchy:", *s.FlowHierarchy)
	// Output:
	// cycles: 0
	// layers: 3
	// flow hierarchy: 1
}
