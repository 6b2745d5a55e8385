package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/tracetm/tracetm/sim"
	"github.com/tracetm/tracetm/sim/trace"
)

// Outcome line colors.
const (
	colorAccept = "#22c55e"
	colorReject = "#ef4444"
	colorLimit  = "#f59e0b"
)

// Writer prints run reports to an io.Writer. Outcome lines are colored when
// the writer was created with color enabled and the terminal supports it.
type Writer struct {
	out     io.Writer
	profile termenv.Profile
}

// NewWriter returns a report writer. With color false the output is plain
// ASCII, which is what files and tests want.
func NewWriter(out io.Writer, color bool) *Writer {
	profile := termenv.Ascii
	if color {
		profile = termenv.ColorProfile()
	}
	return &Writer{out: out, profile: profile}
}

// Result writes the report for one run. expected is nil when the input had no
// expected answer.
func (w *Writer) Result(r *sim.SimulationResult, expected *bool) {
	fmt.Fprintf(w.out, "Name of machine: %s\n", r.MachineName)
	fmt.Fprintf(w.out, "Input string: %s\n", r.Input)
	fmt.Fprintf(w.out, "Tree depth: %d\n", r.DepthReached)
	fmt.Fprintf(w.out, "Total number of transitions simulated: %d\n", r.TransitionsSimulated)
	fmt.Fprintf(w.out, "Degree of nondeterminism: %d\n", r.MaxBranchingFactor)
	fmt.Fprintln(w.out, w.outcomeLine(r))

	if expected != nil {
		fmt.Fprintf(w.out, "Expected result: %s\n", expectation(*expected))
		if r.IsAccepted() != *expected {
			fmt.Fprintln(w.out, w.colored("Result does not match expectation", colorReject))
		}
	}

	if r.IsAccepted() {
		fmt.Fprintln(w.out, "Accepting path:")
		for _, c := range r.Outcome.Path {
			fmt.Fprintln(w.out, PathLine(c))
		}
	}

	if r.Trace != nil {
		s := trace.Summarize(r.Trace)
		fmt.Fprintf(w.out, "Peak width: %d at depth %d, dead branches: %d, pruned rejects: %d, mean branching: %.2f\n",
			s.PeakWidth, s.PeakDepth, s.DeadBranches, s.PrunedRejects, s.MeanBranching)
	}

	fmt.Fprintln(w.out, "Tree levels:")
	for _, g := range r.Tree {
		fmt.Fprintln(w.out, LevelLine(g))
	}
}

// Separator writes the blank line between two run reports.
func (w *Writer) Separator() {
	fmt.Fprintln(w.out)
}

// Wrong writes the batch footer counting answers that disagreed with their
// expectation.
func (w *Writer) Wrong(n int) {
	color := colorAccept
	if n > 0 {
		color = colorReject
	}
	fmt.Fprintln(w.out, w.colored(fmt.Sprintf("%d wrong", n), color))
}

func (w *Writer) outcomeLine(r *sim.SimulationResult) string {
	switch r.Outcome.Kind {
	case sim.Accepted:
		return w.colored(fmt.Sprintf("String accepted in %d transitions", r.PathLength()), colorAccept)
	case sim.Rejected:
		return w.colored(fmt.Sprintf("String rejected in %d transitions", r.DepthReached), colorReject)
	}
	var line string
	switch r.Outcome.Limit {
	case sim.LimitTime:
		line = fmt.Sprintf("Execution stopped after %.2f seconds (time limit)", r.Elapsed.Seconds())
	case sim.LimitTransitions:
		line = fmt.Sprintf("Execution stopped after %d transitions (transition limit)", r.TransitionsSimulated)
	default:
		line = fmt.Sprintf("Execution stopped after %d transitions (depth limit %d)", r.TransitionsSimulated, r.DepthReached)
	}
	return w.colored(line, colorLimit)
}

func (w *Writer) colored(s, hex string) string {
	return termenv.String(s).Foreground(w.profile.Color(hex)).String()
}

// PathLine formats a configuration as "left, state, head, right".
func PathLine(c sim.Configuration) string {
	return fmt.Sprintf("%s, %s, %s, %s", c.Left, c.State, string(c.Head()), c.AfterHead())
}

// LevelLine formats one generation of the tree.
func LevelLine(g sim.Generation) string {
	parts := make([]string, len(g))
	for i, n := range g {
		parts[i] = n.Configuration.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func expectation(accept bool) string {
	if accept {
		return "accept"
	}
	return "reject"
}
