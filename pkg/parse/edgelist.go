package parse

import (
	"strings"

	"github.com/matzehuels/chaosmeter/pkg/errors"
	"github.com/matzehuels/chaosmeter/pkg/graph"
)

// parseEdgeList reads one "source -> target" pair per non-blank line.
// Every non-blank line is a data line, so a missing separator is fatal.
func parseEdgeList(lines []string) ([]graph.Edge, error) {
	var edges []graph.Edge
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		source, target, err := splitEdge(line, i+1)
		if err != nil {
			return nil, err
		}
		target = strings.TrimSpace(target)
		if strings.Contains(target, Separator) {
			return nil, errors.Malformed(i+1, "more than one separator in %q", line)
		}
		if source == "" || target == "" {
			return nil, errors.Malformed(i+1, "empty endpoint in %q", line)
		}
		edges = append(edges, graph.Edge{From: source, To: target})
	}
	return edges, nil
}
