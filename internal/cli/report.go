package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chaosmeter/pkg/errors"
)

// reportCommand creates the report command for computing every metric at once.
func (c *CLI) reportCommand() *cobra.Command {
	var (
		asJSON bool
		in     inputFlags
		tune   tuningFlags
	)

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Print a full structural health report",
		Long: `Compute every metric of a dependency report concurrently and print a styled
summary, or the complete summary as JSON with --json.`,
		Example: `  chaosmeter report deps.madge
  chaosmeter report deps.jdeps -e 'java\.' --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions(cmd, args[0], in, &tune)
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

			var spinner *Spinner
			if !asJSON {
				spinner = newSpinnerWithContext(ctx, "Computing metrics...")
				spinner.Start()
			}
			summary, err := runner.Summarize(ctx, g, opts)
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(summary); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "encode report")
				}
				return nil
			}
			_, err = fmt.Fprintln(out, renderSummary(args[0], summary))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	in.register(cmd, "input-format")
	tune.register(cmd)

	return cmd
}
