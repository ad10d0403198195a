// Package parse turns textual dependency reports into canonical edges.
//
// # Formats
//
// The report format is selected by the file extension (see [DetectFormat]):
//
//   - graph: one "source -> target" pair per line ([FormatEdgeList])
//   - madge: an indentation tree where every column-0 line is a parent and
//     every line indented by two spaces is a dependency of the last parent
//     ([FormatTree])
//   - jdeps: a report whose data lines are indented by three spaces and
//     carry trailing metadata after the target ([FormatReport])
//   - puml: a PlantUML class diagram with aliased class declarations
//     ([FormatPlantUML])
//   - json: the graph document written by the io package ([FormatJSON]).
//     It is decoded by that package, not by [Parse].
//
// # Exclusion
//
// An [Exclusion] is compiled from a regular expression and matched at the
// start of each component name, so "com\.acme\.model" excludes every name
// with that prefix and ".*dto.*" excludes names containing "dto". The tree
// parser suppresses every child of an excluded parent, even children that do
// not match themselves. The edge-list format ignores exclusions.
//
// # Errors
//
// Blank lines and lines outside a format's data shape are skipped. A line the
// format recognizes as data but which lacks the " -> " separator aborts the
// parse with a MALFORMED_INPUT error carrying the line number. Unknown
// extensions fail with UNSUPPORTED_FORMAT.
package parse
