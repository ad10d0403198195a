package io

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/chaosmeter/pkg/errors"
	"github.com/matzehuels/chaosmeter/pkg/graph"
)

func TestReadJSON(t *testing.T) {
	input := `{
		"nodes": [{"id": "app"}, {"id": "lib"}, {"id": "orphan"}],
		"edges": [{"from": "app", "to": "lib"}, {"from": "lib", "to": "core"}, {"from": "app", "to": "lib"}]
	}`
	g, err := ReadJSON(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if want := []string{"app", "lib", "orphan", "core"}; !slices.Equal(g.Nodes(), want) {
		t.Errorf("Nodes() = %v, want %v", g.Nodes(), want)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestReadJSON_Exclude(t *testing.T) {
	input := `{"edges": [{"from": "a", "to": "test.b"}, {"from": "a", "to": "c"}]}`
	g, err := ReadJSON(strings.NewReader(input), func(id string) bool {
		return strings.HasPrefix(id, "test.")
	})
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if g.HasNode("test.b") {
		t.Error("excluded node was kept")
	}
	if !g.HasEdge("a", "c") || g.EdgeCount() != 1 {
		t.Errorf("Edges() = %v, want [a->c]", g.Edges())
	}
}

func TestReadJSON_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `nodes: []`},
		{"unknown field", `{"vertices": []}`},
		{"empty id", `{"nodes": [{"id": ""}]}`},
		{"duplicate id", `{"nodes": [{"id": "a"}, {"id": "a"}]}`},
		{"empty endpoint", `{"edges": [{"from": "a"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input), nil)
			if !errors.Is(err, errors.ErrCodeMalformedInput) {
				t.Errorf("ReadJSON() error = %v, want MALFORMED_INPUT", err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	b := graph.NewBuilder()
	_ = b.AddEdge("x", "y")
	_ = b.AddEdge("y", "y")
	_ = b.AddNode("lonely")
	_ = b.AddEdge("z", "x")
	orig := b.Build()

	var buf bytes.Buffer
	if err := WriteJSON(orig, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	got, err := ReadJSON(&buf, nil)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if !slices.Equal(got.Nodes(), orig.Nodes()) {
		t.Errorf("Nodes() = %v, want %v", got.Nodes(), orig.Nodes())
	}
	if !slices.Equal(got.Edges(), orig.Edges()) {
		t.Errorf("Edges() = %v, want %v", got.Edges(), orig.Edges())
	}
}

func TestExportImportJSON(t *testing.T) {
	g, _ := graph.FromEdges([]graph.Edge{{From: "a", To: "b"}})
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	back, err := ImportJSON(path, nil)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if !back.HasEdge("a", "b") {
		t.Error("ImportJSON() lost edge a->b")
	}
}

func TestImportJSON_Missing(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json"), nil)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON() error = %v, want FILE_NOT_FOUND", err)
	}
}
