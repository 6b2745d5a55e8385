// Package sim provides the core breadth-first exploration engine for tracetm.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - machine.go: the immutable transition table keyed by (state, symbol)
//   - tape.go: configurations (left tape, state, right tape) and the
//     single-step successor function
//   - simulator.go: the level-by-level explorer and its terminal outcomes
//
// # Architecture
//
// The sim package defines the machine and result types; collaborators live in
// sub-packages:
//   - sim/loader/: machine descriptions (CSV and YAML)
//   - sim/workload/: input strings, expectation files and batch specs
//   - sim/trace/: per-level exploration records
//   - sim/report/: text reports and Mermaid rendering of the configuration tree
//   - sim/telemetry/: Prometheus collectors for batches of runs
//
// # Conventions
//
// TransitionsSimulated counts every successor configuration produced,
// including successors pruned in the reject state and the accepting successor.
// DepthReached is the depth of the deepest generation recorded in the tree.
// For a deterministic machine the two are always equal. The Python traceTM
// tool printed its level counter minus one, so for a+ on "aaaaa" its reports
// show a tree depth of 4 where tracetm reports 6.
//
// Acceptance is checked before the depth limit: an accepting successor one
// level past MaxDepth still accepts. A non-accepting successor past MaxDepth
// stops the run and is not counted as a transition.
//
// A configuration's branching factor is the number of transitions applicable
// to it. Configurations with no applicable transition are dead branches and do
// not contribute to MaxBranchingFactor.
package sim
