package parse

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/chaosmeter/pkg/errors"
)

// Separator is the token between source and target in every edge line.
const Separator = " -> "

// Format identifies a dependency report layout.
type Format int

const (
	// FormatUnknown is the zero value and never selects a parser.
	FormatUnknown Format = iota
	// FormatEdgeList is a plain "source -> target" list (.graph).
	FormatEdgeList
	// FormatTree is a madge-style indentation tree (.madge).
	FormatTree
	// FormatReport is a jdeps-style indented report (.jdeps).
	FormatReport
	// FormatPlantUML is a PlantUML class diagram (.puml).
	FormatPlantUML
	// FormatJSON is a {nodes, edges} graph document (.json).
	FormatJSON
)

var extensions = map[Format]string{
	FormatEdgeList: "graph",
	FormatTree:     "madge",
	FormatReport:   "jdeps",
	FormatPlantUML: "puml",
	FormatJSON:     "json",
}

// String returns the file extension associated with the format.
func (f Format) String() string {
	if ext, ok := extensions[f]; ok {
		return ext
	}
	return "unknown"
}

// Formats returns every supported format in declaration order.
func Formats() []Format {
	return []Format{FormatEdgeList, FormatTree, FormatReport, FormatPlantUML, FormatJSON}
}

// FormatNames returns the extensions of every supported format.
func FormatNames() []string {
	formats := Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	return names
}

// FormatFromExtension maps an extension, with or without the leading dot,
// to its Format. Unknown extensions fail with UNSUPPORTED_FORMAT.
func FormatFromExtension(ext string) (Format, error) {
	ext = strings.TrimPrefix(ext, ".")
	for f, name := range extensions {
		if name == ext {
			return f, nil
		}
	}
	return FormatUnknown, errors.New(errors.ErrCodeUnsupportedFormat,
		"unsupported report format %q (supported: %s)", ext, strings.Join(FormatNames(), ", "))
}

// DetectFormat selects the format from the extension of path.
func DetectFormat(path string) (Format, error) {
	return FormatFromExtension(filepath.Ext(path))
}
