package parse

import (
	"strings"

	"github.com/matzehuels/chaosmeter/pkg/errors"
	"github.com/matzehuels/chaosmeter/pkg/graph"
)

// treeIndent marks a dependency line under the current parent.
const treeIndent = "  "

// parseTree reads a madge-style listing:
//
//	src/app.js
//	  src/db.js
//	  src/log.js
//	src/db.js
//	  src/log.js
//
// An excluded parent suppresses all of its children until the next parent,
// whether or not the children match themselves. A child is otherwise emitted
// unless it matches the exclusion.
func parseTree(lines []string, x *Exclusion) ([]graph.Edge, error) {
	var (
		edges          []graph.Edge
		parent         string
		haveParent     bool
		parentExcluded bool
	)

	for i, line := range lines {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		if !strings.HasPrefix(line, treeIndent) {
			parent = name
			haveParent = true
			parentExcluded = x.Match(parent)
			continue
		}
		if !haveParent {
			return nil, errors.Malformed(i+1, "dependency %q appears before any parent", name)
		}
		if parentExcluded || x.Match(name) {
			continue
		}
		edges = append(edges, graph.Edge{From: parent, To: name})
	}
	return edges, nil
}
