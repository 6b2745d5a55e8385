package report

import (
	"fmt"
	"strings"

	"github.com/tracetm/tracetm/sim"
)

// GenerateMermaid produces a Mermaid flowchart of the configuration tree.
// Node shapes follow what happened to the configuration:
// - Root: ((Circle))
// - Accepting: [[Subroutine]]
// - Pruned by the reject state: [/Parallelogram/]
// - Default: [Rectangle]
// Nodes on the accepting path get the "path" class.
func GenerateMermaid(r *sim.SimulationResult) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	onPath := acceptingPath(r)
	last := len(r.Tree) - 1
	for d, g := range r.Tree {
		for i, n := range g {
			id := nodeID(d, i)
			opener, closer := "[", "]"
			switch {
			case d == 0:
				opener, closer = "((", "))"
			case r.IsAccepted() && d == last && n.State == acceptState(r):
				opener, closer = "[[", "]]"
			case n.Pruned:
				opener, closer = "[/", "/]"
			}
			sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, mermaidLabel(n.Configuration), closer))
			if n.Parent >= 0 {
				sb.WriteString(fmt.Sprintf("    %s --> %s\n", nodeID(d-1, n.Parent), id))
			}
		}
	}

	if len(onPath) > 0 {
		sb.WriteString("\n    %% Accepting path\n")
		sb.WriteString("    classDef path fill:#dcfce7,stroke:#15803d,stroke-width:2px,color:#000;\n")
		for _, id := range onPath {
			sb.WriteString(fmt.Sprintf("    class %s path;\n", id))
		}
	}
	return sb.String()
}

// acceptState is the state of the last configuration on the accepting path.
func acceptState(r *sim.SimulationResult) string {
	return r.Outcome.Path[len(r.Outcome.Path)-1].State
}

// acceptingPath returns the node IDs from the root to the accepting node. The
// accepting node is always the last node of the final generation.
func acceptingPath(r *sim.SimulationResult) []string {
	if !r.IsAccepted() || len(r.Tree) == 0 {
		return nil
	}
	d := len(r.Tree) - 1
	idx := len(r.Tree[d]) - 1
	ids := make([]string, d+1)
	for ; d >= 0; d-- {
		ids[d] = nodeID(d, idx)
		idx = r.Tree[d][idx].Parent
	}
	return ids
}

func nodeID(depth, index int) string {
	return fmt.Sprintf("d%d_%d", depth, index)
}

// mermaidLabel renders c without double quotes, which Mermaid labels cannot
// contain.
func mermaidLabel(c sim.Configuration) string {
	return strings.ReplaceAll(c.String(), "\"", "'")
}
