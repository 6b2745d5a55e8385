package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tracetm/tracetm/sim"
	"github.com/tracetm/tracetm/sim/loader"
	"github.com/tracetm/tracetm/sim/trace"
	"github.com/tracetm/tracetm/sim/workload"
)

var (
	// Shared CLI flags
	logLevel string // Log verbosity level

	// CLI flags for run limits
	maxDepth       int // Deepest tree generation to produce (0 = unbounded)
	maxTimeSeconds int // Wall-clock budget in seconds (0 = unbounded)
	maxTransitions int // Successor configurations to produce (0 = unbounded)

	// CLI flags for run behavior and output
	haltOnReject bool   // Stop the run when any branch enters the reject state
	traceLevel   string // Exploration trace level (none, levels)
	outputPath   string // File the reports are appended to
	metricsOut   string // Prometheus textfile to write after the run
	noColor      bool   // Disable colored outcome lines
	jobs         int    // Inputs simulated concurrently
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "tracetm",
	Short: "Breadth-first tracer for nondeterministic Turing machines",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd traces one machine over input strings or an expectation file
var runCmd = &cobra.Command{
	Use:   "run <machine-file> <input>...",
	Short: "Trace a machine on input strings or an expectation file",
	Long: `Trace a machine on each input and report whether it accepts.

Inputs are literal strings, or a single file with one "string, accept|reject"
per line. Machines are read from the CSV layout or from YAML.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q; valid: none, levels", traceLevel)
		}
		m, err := loader.Load(args[0])
		if err != nil {
			logrus.Fatalf("Could not load machine: %v", err)
		}
		cases, err := workload.ResolveInputs(args[1:])
		if err != nil {
			logrus.Fatalf("Could not read inputs: %v", err)
		}

		s := newSession(m, flagLimits(), runOptions(haltOnReject))
		s.jobs = jobs
		if err := s.execute(cmd.OutOrStdout(), cases, outputPath, stdoutColor()); err != nil {
			logrus.Fatalf("Run failed: %v", err)
		}
		if err := s.writeMetrics(metricsOut); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// flagLimits builds run limits from CLI flags.
func flagLimits() sim.Limits {
	return sim.Limits{
		MaxDepth:       maxDepth,
		MaxTransitions: maxTransitions,
		MaxTime:        time.Duration(maxTimeSeconds) * time.Second,
	}
}

// runOptions builds the simulator options shared by run and batch.
func runOptions(halt bool) []sim.Option {
	opts := []sim.Option{sim.WithTrace(trace.TraceLevel(traceLevel))}
	if halt {
		opts = append(opts, sim.WithHaltOnReject())
	}
	return opts
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addLimitFlags registers the run-limit flags on cmd.
func addLimitFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&maxDepth, "depth", "t", 0, "Stop at this tree depth (0 = unbounded)")
	cmd.Flags().IntVar(&maxTimeSeconds, "time", 0, "Stop after this many seconds (0 = unbounded)")
	cmd.Flags().IntVar(&maxTransitions, "max-transitions", 0, "Stop after this many simulated transitions (0 = unbounded)")
}

// addOutputFlags registers the reporting flags on cmd.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "File to append reports to")
	cmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write Prometheus metrics to this textfile")
	cmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Exploration trace level (none, levels)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored outcome lines")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "Inputs to simulate concurrently")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	addLimitFlags(runCmd)
	addOutputFlags(runCmd)
	runCmd.Flags().BoolVar(&haltOnReject, "halt-on-reject", false, "Stop the run as soon as any branch enters the reject state")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(graphCmd)
}
