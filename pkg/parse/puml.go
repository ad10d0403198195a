package parse

import (
	"slices"
	"strings"

	"github.com/matzehuels/chaosmeter/pkg/errors"
	"github.com/matzehuels/chaosmeter/pkg/graph"
)

// pumlArrow is the edge token emitted by the class-diagram generator.
const pumlArrow = "<-[#595959,plain]-"

// parsePlantUML reads a generated PlantUML class diagram. Declarations of
// the form
//
//	class C12 as "com.acme.Service"
//
// bind an alias to a component name; declarations of test specs (".spec.")
// are ignored. Edge lines "C3 <-[#595959,plain]- C12" link two declared
// aliases, the left one being the source. Edges referencing undeclared
// aliases are dropped, as are edges touching an excluded name.
func parsePlantUML(lines []string, x *Exclusion) ([]graph.Edge, error) {
	names := make(map[string]string)
	for i, line := range lines {
		if !strings.Contains(line, "class") || !strings.Contains(line, " as ") || strings.Contains(line, ".spec.") {
			continue
		}
		fields := strings.Fields(line)
		k := slices.Index(fields, "class")
		if k < 0 {
			continue
		}
		if len(fields) < k+4 || fields[k+2] != "as" {
			return nil, errors.Malformed(i+1, "unrecognized class declaration %q", strings.TrimSpace(line))
		}
		names[fields[k+1]] = strings.ReplaceAll(fields[k+3], `"`, "")
	}

	var edges []graph.Edge
	for _, line := range lines {
		left, right, ok := strings.Cut(line, pumlArrow)
		if !ok {
			continue
		}
		source, okS := names[strings.TrimSpace(left)]
		target, okT := names[strings.TrimSpace(right)]
		if !okS || !okT {
			continue
		}
		if x.Match(source) || x.Match(target) {
			continue
		}
		edges = append(edges, graph.Edge{From: source, To: target})
	}
	return edges, nil
}
