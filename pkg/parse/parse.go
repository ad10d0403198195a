package parse

import (
	"bufio"
	"io"
	"strings"

	"github.com/matzehuels/chaosmeter/pkg/errors"
	"github.com/matzehuels/chaosmeter/pkg/graph"
)

// maxLineBytes bounds a single report line. jdeps reports with long
// generic signatures easily exceed bufio's 64 KiB default.
const maxLineBytes = 1 << 20

// Parse converts report lines into dependency edges in first-seen order.
// Duplicate edges are returned as often as they appear; the graph builder
// collapses them.
func Parse(f Format, lines []string, x *Exclusion) ([]graph.Edge, error) {
	switch f {
	case FormatEdgeList:
		return parseEdgeList(lines)
	case FormatTree:
		return parseTree(lines, x)
	case FormatReport:
		return parseReport(lines, x)
	case FormatPlantUML:
		return parsePlantUML(lines, x)
	case FormatJSON:
		return nil, errors.New(errors.ErrCodeUnsupportedFormat, "json graphs are decoded by the io package")
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedFormat, "unsupported report format %q", f.String())
	}
}

// ParseReader reads all lines from r and parses them with [Parse].
func ParseReader(f Format, r io.Reader, x *Exclusion) ([]graph.Edge, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return Parse(f, lines, x)
}

// ReadLines splits r into lines without their line terminators.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read report")
	}
	return lines, nil
}

// splitEdge splits "source -> target" into its trimmed halves.
func splitEdge(line string, lineNo int) (string, string, error) {
	source, target, ok := strings.Cut(line, Separator)
	if !ok {
		return "", "", errors.Malformed(lineNo, "missing separator %q in %q", Separator, strings.TrimSpace(line))
	}
	return strings.TrimSpace(source), target, nil
}
