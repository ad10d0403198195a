// Package pipeline provides the load → analyze → render pipeline for chaosmeter.
//
// This package implements the complete pipeline that is used by the CLI and
// the HTTP server. By centralizing this logic, both entry points resolve
// formats, apply exclusions and log in the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: parse a dependency report (or a JSON graph) into a [graph.Graph]
//  2. Analyze: compute one metric, or every metric as a summary
//  3. Render: export the graph as DOT, SVG, PNG, PDF or JSON
//
// Each stage can be run independently. Every stage reports to the
// observability hooks registered in [observability.Pipeline].
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{Source: "deps.madge", Exclude: "test"}
//	g, err := runner.LoadFile(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := runner.Analyze(ctx, g, analysis.MetricCycle, opts)
//
// [graph.Graph]: github.com/matzehuels/chaosmeter/pkg/graph.Graph
// [observability.Pipeline]: github.com/matzehuels/chaosmeter/pkg/observability.Pipeline
package pipeline

import (
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chaosmeter/pkg/analysis"
	"github.com/matzehuels/chaosmeter/pkg/errors"
)

// Output formats for [Runner.Render].
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// FormatNames returns the supported output formats, sorted.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// ValidateFormat checks that an output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: %s)",
			format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// Options contains the configuration of one pipeline run.
type Options struct {
	// Source is the report path, or a display name for reader input.
	Source string `json:"source,omitempty"`

	// Format selects the input parser. When empty it is detected from the
	// extension of Source.
	Format string `json:"format,omitempty"`

	// Exclude is a regular expression; matching components are dropped
	// during parsing. Edge lists ignore it.
	Exclude string `json:"exclude,omitempty"`

	// Analysis tunes thresholds and result sizes.
	Analysis analysis.Options `json:"analysis,omitempty"`

	// Logger receives progress messages. Defaults to the runner's logger.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Source == "" && o.Format == "" {
		return errors.New(errors.ErrCodeInvalidInput, "a report path or an input format is required")
	}
	o.Analysis = o.Analysis.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}
