// Tracks batch-wide statistics over many simulations of one machine.

package sim

import (
	"fmt"
	"io"
)

// Metrics aggregates statistics about a batch of runs
// for final reporting.
type Metrics struct {
	Runs          int // Number of simulations observed
	Accepted      int
	Rejected      int
	LimitExceeded int
	LimitsHit     map[LimitKind]int // limit kind -> runs stopped by it

	Checked int // Runs that carried an expected answer
	Wrong   int // Checked runs whose outcome disagreed with the expectation

	TotalTransitions int // Sum of TransitionsSimulated
	MaxDepth         int // Deepest DepthReached in the batch
	MaxBranching     int // Largest MaxBranchingFactor in the batch
}

func NewMetrics() *Metrics {
	return &Metrics{LimitsHit: make(map[LimitKind]int)}
}

// Observe folds one result into the batch. expected is nil when the input had
// no expectation; a run stopped by a limit counts as "not accepted".
func (m *Metrics) Observe(r *SimulationResult, expected *bool) {
	m.Runs++
	switch r.Outcome.Kind {
	case Accepted:
		m.Accepted++
	case Rejected:
		m.Rejected++
	case LimitExceeded:
		m.LimitExceeded++
		m.LimitsHit[r.Outcome.Limit]++
	}
	if expected != nil {
		m.Checked++
		if r.IsAccepted() != *expected {
			m.Wrong++
		}
	}
	m.TotalTransitions += r.TransitionsSimulated
	m.MaxDepth = max(m.MaxDepth, r.DepthReached)
	m.MaxBranching = max(m.MaxBranching, r.MaxBranchingFactor)
}

// Print displays aggregated metrics at the end of a batch.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Batch Metrics ===")
	fmt.Fprintf(w, "Runs                 : %d\n", m.Runs)
	fmt.Fprintf(w, "Accepted             : %d\n", m.Accepted)
	fmt.Fprintf(w, "Rejected             : %d\n", m.Rejected)
	fmt.Fprintf(w, "Limit exceeded       : %d\n", m.LimitExceeded)
	for _, k := range []LimitKind{LimitDepth, LimitTransitions, LimitTime} {
		if n := m.LimitsHit[k]; n > 0 {
			fmt.Fprintf(w, "  %-19s: %d\n", k, n)
		}
	}
	if m.Runs > 0 {
		fmt.Fprintf(w, "Average transitions  : %.2f\n", float64(m.TotalTransitions)/float64(m.Runs))
		fmt.Fprintf(w, "Max depth            : %d\n", m.MaxDepth)
		fmt.Fprintf(w, "Max branching        : %d\n", m.MaxBranching)
	}
	if m.Checked > 0 {
		fmt.Fprintf(w, "%d wrong\n", m.Wrong)
	}
}
