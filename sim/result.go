package sim

import (
	"time"

	"github.com/tracetm/tracetm/sim/trace"
)

// OutcomeKind is the terminal state of a simulation.
type OutcomeKind string

const (
	Accepted      OutcomeKind = "accepted"
	Rejected      OutcomeKind = "rejected"
	LimitExceeded OutcomeKind = "limit_exceeded"
)

// LimitKind names the resource bound that stopped a run.
type LimitKind string

const (
	LimitNone        LimitKind = ""
	LimitDepth       LimitKind = "depth"
	LimitTransitions LimitKind = "transitions"
	LimitTime        LimitKind = "time"
)

// Outcome is how a run ended. Path is set only for Accepted and holds the
// configurations from the initial one to the accepting one.
type Outcome struct {
	Kind  OutcomeKind
	Limit LimitKind
	Path  []Configuration
}

func (o Outcome) String() string {
	if o.Kind == LimitExceeded {
		return string(o.Kind) + "(" + string(o.Limit) + ")"
	}
	return string(o.Kind)
}

// Node is a configuration placed in the tree. Parent indexes the previous
// generation (-1 for the root). Pruned nodes entered the reject state and were
// not expanded further.
type Node struct {
	Configuration
	Parent int
	Pruned bool
}

// Generation is every configuration produced at one depth, in production
// order.
type Generation []Node

// Configurations returns the bare configurations of g.
func (g Generation) Configurations() []Configuration {
	out := make([]Configuration, len(g))
	for i, n := range g {
		out[i] = n.Configuration
	}
	return out
}

// SimulationResult is everything one run of Simulate produced.
type SimulationResult struct {
	MachineName string
	Input       string

	// Tree[d] holds the configurations at depth d. The last generation may be
	// partial when the run stopped while producing it.
	Tree []Generation

	DepthReached         int
	TransitionsSimulated int
	MaxBranchingFactor   int
	Outcome              Outcome

	Elapsed time.Duration
	Trace   *trace.SimulationTrace // nil unless tracing was enabled
}

// IsAccepted is shorthand for Outcome.Kind == Accepted.
func (r *SimulationResult) IsAccepted() bool {
	return r.Outcome.Kind == Accepted
}

// PathLength is the number of transitions on the accepting path, or -1 if the
// run did not accept.
func (r *SimulationResult) PathLength() int {
	if r.Outcome.Kind != Accepted {
		return -1
	}
	return len(r.Outcome.Path) - 1
}
