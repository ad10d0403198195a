package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chaosmeter/pkg/analysis"
	"github.com/matzehuels/chaosmeter/pkg/buildinfo"
	"github.com/matzehuels/chaosmeter/pkg/config"
	"github.com/matzehuels/chaosmeter/pkg/parse"
	"github.com/matzehuels/chaosmeter/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "chaosmeter"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by the persistent --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Chaosmeter measures the structural health of dependency graphs",
		Long: `Chaosmeter reads module or class dependency reports (madge, jdeps, PlantUML,
plain edge lists or JSON graphs) and reports structural health metrics:
cycles, coupling hot spots, centrality, flow hierarchy, density and layering.`,
		Version:      buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/chaosmeter/config.toml)")

	// Register all subcommands
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// loadConfig reads the --config file, or the default one when present.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// =============================================================================
// Shared Flags
// =============================================================================

// inputFlags selects and filters the dependency report.
type inputFlags struct {
	format  string
	exclude string
}

func (f *inputFlags) register(cmd *cobra.Command, formatFlag string) {
	cmd.Flags().StringVarP(&f.exclude, "exclude", "e", "", "regular expression; matching components are left out (anchored at the start of the name)")
	cmd.Flags().StringVar(&f.format, formatFlag, "", "report format, overriding the file extension ("+joinNames(parse.FormatNames())+")")
	_ = cmd.RegisterFlagCompletionFunc(formatFlag, fixedCompletion(parse.FormatNames()))
}

// tuningFlags override analysis settings from the config file.
type tuningFlags struct {
	degreeThreshold     int
	centralityThreshold int
	top                 int
	pagerankTop         int
}

func (f *tuningFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.degreeThreshold, "degree-threshold", analysis.DefaultDegreeThreshold, "report in/out-degree strictly above this value")
	cmd.Flags().IntVar(&f.centralityThreshold, "centrality-threshold", analysis.DefaultCentralityThreshold, "report centrality degree strictly above this value")
	cmd.Flags().IntVar(&f.top, "top", analysis.DefaultTop, "number of nodes reported for betweenness and closeness")
	cmd.Flags().IntVar(&f.pagerankTop, "pagerank-top", analysis.DefaultPageRankTop, "number of nodes reported for pagerank")
}

// pipelineOptions merges the config file with the flags that were set
// explicitly on cmd. Flags win.
func (c *CLI) pipelineOptions(cmd *cobra.Command, source string, in inputFlags, tune *tuningFlags) (pipeline.Options, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return pipeline.Options{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("exclude") {
		cfg.Exclude = in.exclude
	}
	if tune != nil {
		if flags.Changed("degree-threshold") {
			cfg.DegreeThreshold = &tune.degreeThreshold
		}
		if flags.Changed("centrality-threshold") {
			cfg.CentralityThreshold = &tune.centralityThreshold
		}
		if flags.Changed("top") {
			cfg.Top = tune.top
		}
		if flags.Changed("pagerank-top") {
			cfg.PageRankTop = tune.pagerankTop
		}
		if err := cfg.Validate(); err != nil {
			return pipeline.Options{}, err
		}
	}

	return pipeline.Options{
		Source:   source,
		Format:   in.format,
		Exclude:  cfg.Exclude,
		Analysis: cfg.Options(),
		Logger:   loggerFromContext(cmd.Context()),
	}, nil
}

// fixedCompletion completes a flag from a fixed list of values.
func fixedCompletion(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
