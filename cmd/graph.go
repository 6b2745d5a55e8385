package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tracetm/tracetm/sim"
	"github.com/tracetm/tracetm/sim/loader"
	"github.com/tracetm/tracetm/sim/report"
)

var graphOut string // File the flowchart is written to

// graphCmd renders the configuration tree of one run as a Mermaid flowchart
var graphCmd = &cobra.Command{
	Use:   "graph <machine-file> <input>",
	Short: "Render the configuration tree of one run as a Mermaid flowchart",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		m, err := loader.Load(args[0])
		if err != nil {
			logrus.Fatalf("Could not load machine: %v", err)
		}
		chart, err := renderGraph(m, args[1], flagLimits())
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if graphOut == "" {
			fmt.Fprint(cmd.OutOrStdout(), chart)
			return
		}
		if err := os.WriteFile(graphOut, []byte(chart), 0o644); err != nil {
			logrus.Fatalf("Could not write graph: %v", err)
		}
		logrus.Infof("Graph written to %s", graphOut)
	},
}

// renderGraph simulates m on input and returns the tree as Mermaid text.
func renderGraph(m *sim.Machine, input string, limits sim.Limits) (string, error) {
	res, err := sim.Simulate(m, input, limits)
	if err != nil {
		return "", fmt.Errorf("simulating %q: %w", input, err)
	}
	if res.Outcome.Kind == sim.LimitExceeded {
		logrus.Warnf("Run stopped by %s limit; graph shows a partial tree", res.Outcome.Limit)
	}
	return report.GenerateMermaid(res), nil
}

func init() {
	addLimitFlags(graphCmd)
	graphCmd.Flags().StringVarP(&graphOut, "output", "o", "", "Write the flowchart to this file instead of stdout")
}
