// sim/simulator.go
package sim

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tracetm/tracetm/sim/trace"
)

// runState is the explicit state of one exploration. outcome is nil while the
// run is still going; frontier indexes the live (non-pruned) nodes of the last
// generation in the tree.
type runState struct {
	frontier    []int
	transitions int
	outcome     *Outcome
}

// explorer owns the tree and counters of a single run.
type explorer struct {
	m      *Machine
	limits Limits
	cfg    runConfig
	start  time.Time
	res    *SimulationResult
}

// Simulate explores every computation path of m on input breadth first, one
// generation at a time, until a path accepts, every path dies, or a limit in
// limits is exceeded. Limit exceedance is reported in the Outcome, not as an
// error; errors are returned only for machines that cannot be executed.
func Simulate(m *Machine, input string, limits Limits, opts ...Option) (*SimulationResult, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil machine", ErrInvalidMachine)
	}
	if m.Start == "" || !m.HasState(m.Start) {
		return nil, fmt.Errorf("%w: unresolvable start state %q", ErrInvalidMachine, m.Start)
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}

	cfg := newRunConfig(opts)
	e := &explorer{
		m:      m,
		limits: limits,
		cfg:    cfg,
		start:  cfg.now(),
		res: &SimulationResult{
			MachineName: m.Name,
			Input:       input,
		},
	}
	if cfg.trace.Enabled() {
		e.res.Trace = trace.NewSimulationTrace(cfg.trace)
	}

	st := e.initial(input)
	for st.outcome == nil {
		st = e.step(st)
	}

	e.res.Outcome = *st.outcome
	e.res.TransitionsSimulated = st.transitions
	e.res.DepthReached = len(e.res.Tree) - 1
	e.res.Elapsed = cfg.now().Sub(e.start)
	logrus.Debugf("[depth %04d] Simulation ended: %s after %d transitions",
		e.res.DepthReached, e.res.Outcome, e.res.TransitionsSimulated)
	return e.res, nil
}

func (e *explorer) initial(input string) runState {
	root := Node{Configuration: InitialConfiguration(e.m, input), Parent: -1}
	e.res.Tree = append(e.res.Tree, Generation{root})

	// A machine that starts in its accept state accepts without moving.
	if root.State == e.m.Accept {
		return runState{outcome: &Outcome{Kind: Accepted, Path: []Configuration{root.Configuration}}}
	}
	if e.m.Reject != "" && root.State == e.m.Reject {
		return runState{outcome: &Outcome{Kind: Rejected}}
	}
	return runState{frontier: []int{0}}
}

// step expands one generation and returns the next state.
func (e *explorer) step(st runState) runState {
	depth := len(e.res.Tree) - 1
	current := e.res.Tree[depth]
	level := trace.LevelRecord{Depth: depth, Width: len(st.frontier)}
	logrus.Debugf("[depth %04d] Expanding %d configurations", depth, len(st.frontier))

	var next Generation
	var live []int
	for _, idx := range st.frontier {
		c := current[idx].Configuration
		ts := e.m.Transitions(c.State, c.Head())
		level.Expanded++
		if len(ts) == 0 {
			level.Dead++
			continue
		}
		e.res.MaxBranchingFactor = max(e.res.MaxBranchingFactor, len(ts))
		level.MaxBranching = max(level.MaxBranching, len(ts))

		for _, t := range ts {
			if e.limits.MaxTransitions > 0 && st.transitions >= e.limits.MaxTransitions {
				logrus.Debugf("[depth %04d] transitions limit reached", depth)
				return e.finish(st, next, level, &Outcome{Kind: LimitExceeded, Limit: LimitTransitions})
			}

			node := Node{Configuration: c.Apply(t), Parent: idx}
			if node.State == e.m.Accept {
				st.transitions++
				level.Produced++
				next = append(next, node)
				path := e.pathTo(current, idx, node.Configuration)
				return e.finish(st, next, level, &Outcome{Kind: Accepted, Path: path})
			}
			// A successor past MaxDepth is neither admitted nor counted.
			if e.limits.MaxDepth > 0 && depth+1 > e.limits.MaxDepth {
				logrus.Debugf("[depth %04d] depth limit reached", depth)
				return e.finish(st, next, level, &Outcome{Kind: LimitExceeded, Limit: LimitDepth})
			}
			st.transitions++
			level.Produced++

			switch {
			case e.m.Reject != "" && node.State == e.m.Reject:
				node.Pruned = true
				level.Pruned++
				next = append(next, node)
				if e.cfg.haltOnReject {
					return e.finish(st, next, level, &Outcome{Kind: Rejected})
				}
			default:
				live = append(live, len(next))
				next = append(next, node)
			}
		}
	}
	level.Complete = true

	if e.limits.MaxTime > 0 && e.cfg.now().Sub(e.start) > e.limits.MaxTime {
		return e.finish(st, next, level, &Outcome{Kind: LimitExceeded, Limit: LimitTime})
	}
	if len(live) == 0 {
		return e.finish(st, next, level, &Outcome{Kind: Rejected})
	}

	e.res.Tree = append(e.res.Tree, next)
	e.record(level)
	st.frontier = live
	return st
}

// finish records the (possibly partial) last generation and sets the outcome.
func (e *explorer) finish(st runState, next Generation, level trace.LevelRecord, o *Outcome) runState {
	if len(next) > 0 {
		e.res.Tree = append(e.res.Tree, next)
	}
	e.record(level)
	st.frontier = nil
	st.outcome = o
	return st
}

func (e *explorer) record(level trace.LevelRecord) {
	if e.res.Trace != nil {
		e.res.Trace.RecordLevel(level)
	}
}

// pathTo walks parent links from current[idx] back to the root and appends
// last.
func (e *explorer) pathTo(current Generation, idx int, last Configuration) []Configuration {
	depth := len(e.res.Tree) - 1
	path := make([]Configuration, depth+2)
	path[depth+1] = last
	gen := current
	for d := depth; d >= 0; d-- {
		path[d] = gen[idx].Configuration
		idx = gen[idx].Parent
		if d > 0 {
			gen = e.res.Tree[d-1]
		}
	}
	return path
}
