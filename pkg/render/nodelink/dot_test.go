package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/chaosmeter/pkg/analysis"
	"github.com/matzehuels/chaosmeter/pkg/graph"
)

func mustGraph(t *testing.T, edges ...graph.Edge) *graph.Graph {
	t.Helper()
	g, err := graph.FromEdges(edges)
	if err != nil {
		t.Fatalf("FromEdges() error = %v", err)
	}
	return g
}

func TestToDOT_Plain(t *testing.T) {
	g := mustGraph(t, graph.Edge{From: "app", To: "lib"})
	dot := ToDOT(g, Options{})

	for _, want := range []string{
		"digraph G {",
		`"app" [label="app"];`,
		`"lib" [label="lib"];`,
		`"app" -> "lib";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, cycleColor) {
		t.Error("ToDOT() highlighted an acyclic graph")
	}
}

func TestToDOT_HighlightCycles(t *testing.T) {
	g := mustGraph(t,
		graph.Edge{From: "a", To: "b"},
		graph.Edge{From: "b", To: "a"},
		graph.Edge{From: "b", To: "c"},
	)
	dot := ToDOT(g, Options{HighlightCycles: true})

	if !strings.Contains(dot, `"a" -> "b" [color="#d62728", penwidth=2];`) {
		t.Errorf("cyclic edge a->b not highlighted:\n%s", dot)
	}
	if !strings.Contains(dot, `"b" -> "c";`) {
		t.Errorf("acyclic edge b->c should be plain:\n%s", dot)
	}
	if strings.Contains(dot, `"c" [label="c", color`) {
		t.Error("node c is not on a cycle")
	}
}

func TestToDOT_Layering(t *testing.T) {
	g := mustGraph(t,
		graph.Edge{From: "A", To: "B"},
		graph.Edge{From: "A", To: "C"},
		graph.Edge{From: "B", To: "D"},
		graph.Edge{From: "C", To: "D"},
	)
	dot := ToDOT(g, Options{Layering: analysis.Layer(g, nil)})

	if !strings.Contains(dot, `{ rank=same; /* layer 1 */ "B"; "C"; }`) {
		t.Errorf("ToDOT() missing rank group for layer 1:\n%s", dot)
	}

	cyclic := mustGraph(t, graph.Edge{From: "x", To: "y"}, graph.Edge{From: "y", To: "x"})
	if dot := ToDOT(cyclic, Options{Layering: analysis.Layer(cyclic, nil)}); strings.Contains(dot, "rank=same") {
		t.Error("ToDOT() ranked a refused layering")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	g := mustGraph(t, graph.Edge{From: "app", To: "lib"})
	dot := ToDOT(g, Options{Detailed: true})
	if !strings.Contains(dot, `label="app\nin: 0\nout: 1"`) {
		t.Errorf("ToDOT() detailed label missing:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("normalizeViewBox() without viewBox = %s", got)
	}
}
