package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	Levels        int
	PeakWidth     int
	PeakDepth     int // depth at which PeakWidth was observed
	TotalProduced int
	DeadBranches  int
	PrunedRejects int
	MaxBranching  int
	// MeanBranching is produced successors per expanded configuration that had
	// at least one applicable transition.
	MeanBranching float64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}

	summary.Levels = len(st.Levels)
	branching := 0
	for _, l := range st.Levels {
		if l.Width > summary.PeakWidth {
			summary.PeakWidth = l.Width
			summary.PeakDepth = l.Depth
		}
		summary.TotalProduced += l.Produced
		summary.DeadBranches += l.Dead
		summary.PrunedRejects += l.Pruned
		summary.MaxBranching = max(summary.MaxBranching, l.MaxBranching)
		branching += l.Expanded - l.Dead
	}
	if branching > 0 {
		summary.MeanBranching = float64(summary.TotalProduced) / float64(branching)
	}

	return summary
}
