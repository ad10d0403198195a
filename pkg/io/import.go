package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/chaosmeter/pkg/errors"
	"github.com/matzehuels/chaosmeter/pkg/graph"
)

// ReadJSON decodes a JSON graph from r.
//
// The input must be a JSON object with "nodes" and/or "edges" arrays:
//
//	{
//	  "nodes": [{"id": "a"}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// exclude may be nil. When set, nodes it matches are skipped together with
// every edge that touches them.
//
// ReadJSON returns a MALFORMED_INPUT error if:
//   - The JSON is malformed or has unknown fields
//   - A node has an empty or duplicate ID
//   - An edge has an empty endpoint
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader, exclude func(id string) bool) (*graph.Graph, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var data document
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode graph document")
	}

	skip := func(id string) bool { return exclude != nil && exclude(id) }

	b := graph.NewBuilder()
	seen := make(map[string]bool, len(data.Nodes))
	for i, n := range data.Nodes {
		if n.ID == "" {
			return nil, errors.New(errors.ErrCodeMalformedInput, "node %d: empty id", i)
		}
		if seen[n.ID] {
			return nil, errors.New(errors.ErrCodeMalformedInput, "node %s: duplicate id", n.ID)
		}
		seen[n.ID] = true
		if skip(n.ID) {
			continue
		}
		if err := b.AddNode(n.ID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "node %s", n.ID)
		}
	}
	for i, e := range data.Edges {
		if e.From == "" || e.To == "" {
			return nil, errors.New(errors.ErrCodeMalformedInput, "edge %d: empty endpoint", i)
		}
		if skip(e.From) || skip(e.To) {
			continue
		}
		if err := b.AddEdge(e.From, e.To); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "edge %s->%s", e.From, e.To)
		}
	}
	return b.Build(), nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// A missing file yields FILE_NOT_FOUND; otherwise it returns the same errors
// as [ReadJSON].
func ImportJSON(path string, exclude func(id string) bool) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f, exclude)
}
