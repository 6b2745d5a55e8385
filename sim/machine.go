// Defines the Machine type: an immutable nondeterministic Turing machine
// description with its transition table.

package sim

import (
	"errors"
	"fmt"
	"slices"
)

// Blank is the symbol of an unwritten tape cell.
const Blank = '_'

// ErrInvalidMachine marks machine descriptions the simulator cannot execute.
var ErrInvalidMachine = errors.New("invalid machine")

// Direction is the head movement of a transition.
type Direction string

const (
	Left  Direction = "L"
	Right Direction = "R"
)

// ParseDirection accepts "L"/"R" in either case.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "L", "l":
		return Left, nil
	case "R", "r":
		return Right, nil
	}
	return "", fmt.Errorf("%w: unknown direction %q; valid: L, R", ErrInvalidMachine, s)
}

// Transition is one entry of the table for a (state, symbol) pair.
type Transition struct {
	Next  string
	Write rune
	Move  Direction
}

// Rule is a transition as declared in a machine description.
type Rule struct {
	State string
	Read  rune
	Transition
}

type tableKey struct {
	state string
	read  rune
}

// Machine is a nondeterministic single-tape Turing machine.
// It is built once by NewMachine and never mutated afterwards, so one Machine
// may be shared by any number of simulations, concurrent ones included.
type Machine struct {
	Name          string
	States        []string
	InputAlphabet []rune
	TapeAlphabet  []rune
	Start         string
	Accept        string
	Reject        string // may be empty: most machines never route into it

	rules  []Rule
	table  map[tableKey][]Transition
	fanout int
}

// MachineSpec holds the declared parts of a machine before the table is built.
type MachineSpec struct {
	Name          string
	States        []string
	InputAlphabet []rune
	TapeAlphabet  []rune
	Start         string
	Accept        string
	Reject        string
	Rules         []Rule
}

// NewMachine builds the transition table from spec.Rules. Rules sharing a
// (state, symbol) pair keep their declaration order, which is the order the
// simulator explores them in.
//
// When spec.States is non-empty every state referenced by Start, Accept,
// Reject and the rules must be declared. Symbols are not checked against the
// alphabets: a rule on an unknown symbol simply never matches.
func NewMachine(spec MachineSpec) (*Machine, error) {
	if spec.Start == "" {
		return nil, fmt.Errorf("%w: no start state", ErrInvalidMachine)
	}
	if spec.Accept == "" {
		return nil, fmt.Errorf("%w: no accept state", ErrInvalidMachine)
	}

	declared := make(map[string]bool, len(spec.States))
	for _, s := range spec.States {
		declared[s] = true
	}
	known := func(state string) bool {
		return len(declared) == 0 || declared[state]
	}
	if !known(spec.Start) {
		return nil, fmt.Errorf("%w: start state %q is not declared", ErrInvalidMachine, spec.Start)
	}
	if !known(spec.Accept) {
		return nil, fmt.Errorf("%w: accept state %q is not declared", ErrInvalidMachine, spec.Accept)
	}
	if spec.Reject != "" && !known(spec.Reject) {
		return nil, fmt.Errorf("%w: reject state %q is not declared", ErrInvalidMachine, spec.Reject)
	}

	m := &Machine{
		Name:          spec.Name,
		States:        slices.Clone(spec.States),
		InputAlphabet: slices.Clone(spec.InputAlphabet),
		TapeAlphabet:  slices.Clone(spec.TapeAlphabet),
		Start:         spec.Start,
		Accept:        spec.Accept,
		Reject:        spec.Reject,
		rules:         slices.Clone(spec.Rules),
		table:         make(map[tableKey][]Transition),
	}
	for i, r := range spec.Rules {
		if !known(r.State) {
			return nil, fmt.Errorf("%w: rule %d: state %q is not declared", ErrInvalidMachine, i, r.State)
		}
		if !known(r.Next) {
			return nil, fmt.Errorf("%w: rule %d: next state %q is not declared", ErrInvalidMachine, i, r.Next)
		}
		if r.Move != Left && r.Move != Right {
			return nil, fmt.Errorf("%w: rule %d: unknown direction %q", ErrInvalidMachine, i, r.Move)
		}
		k := tableKey{state: r.State, read: r.Read}
		m.table[k] = append(m.table[k], r.Transition)
		m.fanout = max(m.fanout, len(m.table[k]))
	}
	return m, nil
}

// Transitions returns the transitions registered for (state, read) in
// declaration order. The returned slice must not be modified.
func (m *Machine) Transitions(state string, read rune) []Transition {
	return m.table[tableKey{state: state, read: read}]
}

// Rules returns a copy of the declared rules.
func (m *Machine) Rules() []Rule {
	return slices.Clone(m.rules)
}

// MaxFanout is the largest number of transitions registered for any single
// (state, symbol) pair. No run can report a larger branching factor.
func (m *Machine) MaxFanout() int {
	return m.fanout
}

// IsDeterministic reports whether every (state, symbol) pair has at most one
// transition.
func (m *Machine) IsDeterministic() bool {
	return m.fanout <= 1
}

// HasState reports whether name is a declared state. Machines without a
// declared state list accept any name.
func (m *Machine) HasState(name string) bool {
	return len(m.States) == 0 || slices.Contains(m.States, name)
}
