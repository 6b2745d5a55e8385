// Package trace provides per-level exploration records for configuration-tree analysis.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// LevelRecord captures the expansion of one generation.
type LevelRecord struct {
	Depth        int // depth of the generation being expanded
	Width        int // live configurations in the generation
	Expanded     int // configurations whose successors were computed
	Dead         int // expanded configurations with no applicable transition
	Produced     int // successor configurations produced
	Pruned       int // successors that entered the reject state
	MaxBranching int // largest number of applicable transitions for one configuration
	Complete     bool
}
