package parse

import (
	"strings"

	"github.com/matzehuels/chaosmeter/pkg/errors"
	"github.com/matzehuels/chaosmeter/pkg/graph"
)

// reportIndent marks a class-level dependency line in a jdeps report.
const reportIndent = "   "

// parseReport reads jdeps -verbose output:
//
//	app.jar -> java.base
//	   com.acme.App      -> com.acme.Service      app.jar
//	   com.acme.App      -> java.lang.Object      java.base
//
// Only indented lines are data. The first whitespace-separated token after
// the separator is the target; the rest (the archive name) is dropped.
// Edges touching an excluded name on either side are skipped.
func parseReport(lines []string, x *Exclusion) ([]graph.Edge, error) {
	var edges []graph.Edge
	for i, line := range lines {
		if !strings.HasPrefix(line, reportIndent) || strings.TrimSpace(line) == "" {
			continue
		}
		source, rest, err := splitEdge(line, i+1)
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(rest)
		if source == "" || len(fields) == 0 {
			return nil, errors.Malformed(i+1, "empty endpoint in %q", strings.TrimSpace(line))
		}
		target := fields[0]
		if x.Match(source) || x.Match(target) {
			continue
		}
		edges = append(edges, graph.Edge{From: source, To: target})
	}
	return edges, nil
}
