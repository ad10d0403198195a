package cli

import (
	"fmt"
	"io"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chaosmeter/pkg/analysis"
)

// exploreCommand creates the explore command for browsing metrics interactively.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		in   inputFlags
		tune tuningFlags
	)

	cmd := &cobra.Command{
		Use:   "explore <file>",
		Short: "Browse the metrics of a dependency report interactively",
		Long: `Load a dependency report once and browse its metrics in the terminal.
Select a metric to compute it; results stay available while exploring.`,
		Example: `  chaosmeter explore deps.madge
  chaosmeter explore deps.jdeps -e 'java\.'`,
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

			// Computations log through the runner; keep them off the screen.
			opts.Logger = log.New(io.Discard)

			compute := func(m analysis.Metric) (any, error) {
				return runner.Analyze(ctx, g, m, opts)
			}

			p := tea.NewProgram(NewMetricListModel(filepath.Base(args[0]), compute),
				tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}

	in.register(cmd, "input-format")
	tune.register(cmd)

	return cmd
}
