package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chaosmeter/pkg/errors"
	"github.com/matzehuels/chaosmeter/pkg/pipeline"
)

// exportCommand creates the export command for writing diagrams and graph documents.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
		scale    float64
		in       inputFlags
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the dependency graph as a diagram or JSON document",
		Long: `Export the dependency graph of a report.

Diagrams (dot, svg, png, pdf) draw edges inside dependency cycles in red and
rank nodes by layer when the graph is acyclic. The json format writes a
{nodes, edges} document that chaosmeter reads back as input.

PNG and PDF output requires rsvg-convert (librsvg).`,
		Example: `  chaosmeter export deps.madge --format svg -o deps.svg
  chaosmeter export deps.jdeps --format dot --detailed
  chaosmeter export deps.graph --format json -o deps.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}
			opts, err := c.pipelineOptions(cmd, args[0], in, nil)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			runner := c.newRunner()

			prog := newProgress(logger)
			g, err := runner.LoadFile(ctx, opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Built graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount()))

			data, err := runner.Render(ctx, g, format, pipeline.RenderOptions{Detailed: detailed, Scale: scale})
			if err != nil {
				return err
			}

			if output == "" && isBinary(format) {
				output = defaultOutput(args[0], format)
			}
			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
			}
			printSuccess("Exported %s", strings.ToUpper(format))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatDOT, "output format ("+joinNames(pipeline.FormatNames())+")")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout, or <input>.<format> for png and pdf)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "add in/out degrees to node labels")
	cmd.Flags().Float64Var(&scale, "scale", 2, "PNG resolution factor")
	in.register(cmd, "input-format")

	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(pipeline.FormatNames()))
	_ = cmd.MarkFlagFilename("output", "dot", "svg", "png", "pdf", "json")

	return cmd
}

// isBinary reports whether format should not be written to a terminal.
func isBinary(format string) bool {
	return format == pipeline.FormatPNG || format == pipeline.FormatPDF
}

// defaultOutput derives an output path from the input path and format.
func defaultOutput(input, format string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return base + "." + format
}
