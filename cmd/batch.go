package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tracetm/tracetm/sim/loader"
	"github.com/tracetm/tracetm/sim/trace"
	"github.com/tracetm/tracetm/sim/workload"
)

// batchCmd runs every case of a YAML batch spec
var batchCmd = &cobra.Command{
	Use:   "batch <spec.yaml>",
	Short: "Run the cases of a YAML batch spec",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q; valid: none, levels", traceLevel)
		}
		spec, err := workload.LoadBatchSpec(args[0])
		if err != nil {
			logrus.Fatalf("Could not load batch spec: %v", err)
		}
		if err := spec.Validate(); err != nil {
			logrus.Fatalf("%v", err)
		}
		m, err := loader.Load(spec.MachinePath())
		if err != nil {
			logrus.Fatalf("Could not load machine: %v", err)
		}

		s := newSession(m, spec.Limits, runOptions(spec.HaltOnReject))
		s.jobs = jobs
		if err := s.execute(cmd.OutOrStdout(), spec.Cases, outputPath, stdoutColor()); err != nil {
			logrus.Fatalf("Batch failed: %v", err)
		}
		if err := s.writeMetrics(metricsOut); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func init() {
	addOutputFlags(batchCmd)
}
