package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chaosmeter/pkg/analysis"
	"github.com/matzehuels/chaosmeter/pkg/errors"
)

// analyzeCommand creates the analyze command for computing a single metric.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		path   string
		metric string
		pretty bool
		in     inputFlags
		tune   tuningFlags
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute one structural metric of a dependency report",
		Long: `Compute one structural metric of a dependency report and print it as JSON.

The parser is selected by the file extension (graph, madge, jdeps, puml, json)
unless --input-format is given.`,
		Example: `  chaosmeter analyze -g deps.madge -m cycle
  chaosmeter analyze -g deps.jdeps -m in-degree -e 'java\.'
  chaosmeter analyze -g deps.graph -m topology --pretty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Reject the selector before touching the file.
			m, err := analysis.ParseMetric(metric)
			if err != nil {
				return err
			}
			opts, err := c.pipelineOptions(cmd, path, in, &tune)
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

			prog = newProgress(logger)
			result, err := runner.Analyze(ctx, g, m, opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Computed %s", m))

			out := cmd.OutOrStdout()
			if pretty {
				_, err = fmt.Fprintln(out, renderResult(result))
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "encode %s report", m)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "graph", "g", "", "path to the dependency report")
	cmd.Flags().StringVarP(&metric, "metric", "m", "", "metric to compute ("+joinNames(analysis.MetricNames())+")")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "print a styled table instead of JSON")
	in.register(cmd, "input-format")
	tune.register(cmd)

	_ = cmd.MarkFlagFilename("graph", "graph", "madge", "jdeps", "puml", "json")
	_ = cmd.RegisterFlagCompletionFunc("metric", fixedCompletion(analysis.MetricNames()))

	return cmd
}
