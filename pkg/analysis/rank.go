package analysis

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/matzehuels/chaosmeter/pkg/graph"
)

// Number is the value type of a ranking.
type Number interface {
	~int | ~float64
}

// Ranked is a node paired with a metric value.
// It encodes to JSON as a two-element array: ["node", value].
type Ranked[T Number] struct {
	Node  string
	Value T
}

// MarshalJSON encodes the pair as [node, value].
func (r Ranked[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.Node, r.Value})
}

// UnmarshalJSON decodes a [node, value] pair.
func (r *Ranked[T]) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("ranked pair: want 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &r.Node); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &r.Value)
}

// String renders the pair as "node=value".
func (r Ranked[T]) String() string { return fmt.Sprintf("%s=%v", r.Node, r.Value) }

// rank builds a ranking of every node in first-seen order and sorts it by
// value, descending. slices.SortStableFunc keeps insertion order on ties.
func rank[T Number](g *graph.Graph, value func(id string) T) []Ranked[T] {
	nodes := g.Nodes()
	ranked := make([]Ranked[T], len(nodes))
	for i, id := range nodes {
		ranked[i] = Ranked[T]{Node: id, Value: value(id)}
	}
	slices.SortStableFunc(ranked, func(a, b Ranked[T]) int {
		return cmp.Compare(b.Value, a.Value)
	})
	return ranked
}

// above keeps the entries whose value is strictly greater than threshold.
func above[T Number](ranked []Ranked[T], threshold T) []Ranked[T] {
	out := make([]Ranked[T], 0, len(ranked))
	for _, r := range ranked {
		if r.Value > threshold {
			out = append(out, r)
		}
	}
	return out
}

// top returns at most n leading entries. n <= 0 means all.
func top[T Number](ranked []Ranked[T], n int) []Ranked[T] {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}
