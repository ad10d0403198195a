package graph

import (
	"errors"
	"slices"
	"testing"
)

func TestBuilder_AddEdgeIdempotent(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 3; i++ {
		if err := b.AddEdge("a", "b"); err != nil {
			t.Fatalf("AddEdge() error = %v", err)
		}
	}
	g := b.Build()

	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if g.OutDegree("a") != 1 || g.InDegree("b") != 1 {
		t.Errorf("degrees = (%d, %d), want (1, 1)", g.OutDegree("a"), g.InDegree("b"))
	}
}

func TestBuilder_EmptyID(t *testing.T) {
	b := NewBuilder()
	if err := b.AddNode(""); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(\"\") = %v, want ErrInvalidNodeID", err)
	}
	if err := b.AddEdge("a", ""); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddEdge(a, \"\") = %v, want ErrInvalidNodeID", err)
	}
	if g := b.Build(); g.NodeCount() != 0 {
		t.Errorf("NodeCount() = %d, want 0", g.NodeCount())
	}
}

func TestBuilder_Sealed(t *testing.T) {
	b := NewBuilder()
	_ = b.AddEdge("a", "b")
	g := b.Build()

	if err := b.AddEdge("b", "c"); !errors.Is(err, ErrSealed) {
		t.Errorf("AddEdge after Build = %v, want ErrSealed", err)
	}
	if err := b.AddNode("c"); !errors.Is(err, ErrSealed) {
		t.Errorf("AddNode after Build = %v, want ErrSealed", err)
	}
	if b.Build() != nil {
		t.Error("second Build() should return nil")
	}
	if g.NodeCount() != 2 {
		t.Errorf("built graph changed: NodeCount() = %d, want 2", g.NodeCount())
	}
}

func TestGraph_ReturnedSlicesAreCopies(t *testing.T) {
	g, err := FromEdges([]Edge{{From: "a", To: "b"}, {From: "a", To: "c"}})
	if err != nil {
		t.Fatal(err)
	}

	succ := g.Successors("a")
	succ[0] = "z"
	nodes := g.Nodes()
	nodes[0] = "z"
	edges := g.Edges()
	edges[0].To = "z"

	if got := g.Successors("a"); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("Successors(a) = %v, want [b c]", got)
	}
	if got := g.Nodes(); got[0] != "a" {
		t.Errorf("Nodes()[0] = %q, want a", got[0])
	}
	if !g.HasEdge("a", "b") || g.HasEdge("a", "z") {
		t.Error("edge set was modified through Edges()")
	}
}

func TestGraph_SeqFollowsFirstAppearance(t *testing.T) {
	b := NewBuilder()
	_ = b.AddNode("isolated")
	_ = b.AddEdge("x", "y")
	_ = b.AddEdge("y", "isolated")
	_ = b.AddEdge("z", "x")
	g := b.Build()

	want := []string{"isolated", "x", "y", "z"}
	if got := g.Nodes(); !slices.Equal(got, want) {
		t.Fatalf("Nodes() = %v, want %v", got, want)
	}
	for i, id := range want {
		if seq, ok := g.Seq(id); !ok || seq != i {
			t.Errorf("Seq(%q) = (%d, %v), want (%d, true)", id, seq, ok, i)
		}
	}
	if _, ok := g.Seq("missing"); ok {
		t.Error("Seq(missing) should report false")
	}
}

func TestGraph_SelfLoop(t *testing.T) {
	g, _ := FromEdges([]Edge{{From: "a", To: "a"}, {From: "a", To: "b"}})

	if got := g.SelfLoops(); !slices.Equal(got, []string{"a"}) {
		t.Errorf("SelfLoops() = %v, want [a]", got)
	}
	if g.InDegree("a") != 1 || g.OutDegree("a") != 2 {
		t.Errorf("degrees of a = (in %d, out %d), want (1, 2)", g.InDegree("a"), g.OutDegree("a"))
	}
}

func TestGraph_DegreeSumsMatchEdgeCount(t *testing.T) {
	g, _ := FromEdges([]Edge{
		{From: "a", To: "b"}, {From: "b", To: "c"}, {From: "c", To: "a"},
		{From: "c", To: "c"}, {From: "d", To: "a"}, {From: "a", To: "b"},
	})

	var in, out int
	for _, id := range g.Nodes() {
		in += g.InDegree(id)
		out += g.OutDegree(id)
	}
	if in != g.EdgeCount() || out != g.EdgeCount() {
		t.Errorf("sum in = %d, sum out = %d, want both %d", in, out, g.EdgeCount())
	}
}

func TestGraph_SourcesAndSinks(t *testing.T) {
	g, _ := FromEdges([]Edge{
		{From: "app", To: "lib"}, {From: "cli", To: "lib"}, {From: "lib", To: "core"},
	})

	if got := g.Sources(); !slices.Equal(got, []string{"app", "cli"}) {
		t.Errorf("Sources() = %v, want [app cli]", got)
	}
	if got := g.Sinks(); !slices.Equal(got, []string{"core"}) {
		t.Errorf("Sinks() = %v, want [core]", got)
	}
}

func TestGraph_ZeroValue(t *testing.T) {
	var g Graph
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Error("zero Graph should be empty")
	}
	if g.Successors("a") != nil || g.HasNode("a") {
		t.Error("zero Graph should have no nodes")
	}
}

func TestEachSuccessor(t *testing.T) {
	g, _ := FromEdges([]Edge{{From: "a", To: "b"}, {From: "a", To: "c"}, {From: "d", To: "b"}})

	var got []string
	for s := range g.EachSuccessor("a") {
		got = append(got, s)
	}
	if !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("EachSuccessor(a) = %v, want [b c]", got)
	}
	got = slices.Collect(g.EachPredecessor("b"))
	if !slices.Equal(got, []string{"a", "d"}) {
		t.Errorf("EachPredecessor(b) = %v, want [a d]", got)
	}
}

func TestPosMap(t *testing.T) {
	m := PosMap([]string{"a", "b", "c"})
	if m["a"] != 0 || m["c"] != 2 || len(m) != 3 {
		t.Errorf("PosMap() = %v", m)
	}
}
