package pipeline

import (
	"bytes"
	"context"
	"os"

	"github.com/matzehuels/chaosmeter/pkg/errors"
	"github.com/matzehuels/chaosmeter/pkg/graph"
	chaosio "github.com/matzehuels/chaosmeter/pkg/io"
	"github.com/matzehuels/chaosmeter/pkg/parse"
)

// ResolveFormat returns the input format named by opts.Format, or the one
// implied by the extension of opts.Source.
func ResolveFormat(opts Options) (parse.Format, error) {
	if opts.Format != "" {
		return parse.FormatFromExtension(opts.Format)
	}
	return parse.DetectFormat(opts.Source)
}

// Parse reads a report in the given format and builds its graph.
//
// The exclusion pattern is compiled before any input is read, so an invalid
// pattern fails fast with INVALID_PATTERN.
func Parse(data []byte, f parse.Format, exclude string) (*graph.Graph, error) {
	x, err := parse.CompileExclusion(exclude)
	if err != nil {
		return nil, err
	}

	if f == parse.FormatJSON {
		return chaosio.ReadJSON(bytes.NewReader(data), x.Match)
	}

	edges, err := parse.ParseReader(f, bytes.NewReader(data), x)
	if err != nil {
		return nil, err
	}
	g, err := graph.FromEdges(edges)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "build graph")
	}
	return g, nil
}

// readSource reads the report at path.
func readSource(ctx context.Context, path string) ([]byte, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "report %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}
