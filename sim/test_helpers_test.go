package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func rule(state string, read rune, next string, write rune, move Direction) Rule {
	return Rule{State: state, Read: read, Transition: Transition{Next: next, Write: write, Move: move}}
}

func mustMachine(t *testing.T, spec MachineSpec) *Machine {
	t.Helper()
	m, err := NewMachine(spec)
	require.NoError(t, err)
	return m
}

// aPlusNTM accepts a+ by guessing which 'a' is the last one.
func aPlusNTM(t *testing.T) *Machine {
	return mustMachine(t, MachineSpec{
		Name:          "a plus (nondeterministic)",
		States:        []string{"q1", "q2", "qacc", "qrej"},
		InputAlphabet: []rune{'a'},
		TapeAlphabet:  []rune{'a', Blank},
		Start:         "q1",
		Accept:        "qacc",
		Reject:        "qrej",
		Rules: []Rule{
			rule("q1", 'a', "q1", 'a', Right),
			rule("q1", 'a', "q2", 'a', Right),
			rule("q2", Blank, "qacc", Blank, Right),
		},
	})
}

// aPlusDTM accepts a+ deterministically.
func aPlusDTM(t *testing.T) *Machine {
	return mustMachine(t, MachineSpec{
		Name:   "a plus",
		States: []string{"q1", "q2", "qacc", "qrej"},
		Start:  "q1",
		Accept: "qacc",
		Reject: "qrej",
		Rules: []Rule{
			rule("q1", 'a', "q2", 'a', Right),
			rule("q2", 'a', "q2", 'a', Right),
			rule("q2", Blank, "qacc", Blank, Right),
		},
	})
}

// runaway never halts: it walks right over blanks forever.
func runaway(t *testing.T) *Machine {
	return mustMachine(t, MachineSpec{
		Name:   "runaway",
		Start:  "q1",
		Accept: "qacc",
		Rules: []Rule{
			rule("q1", Blank, "q1", Blank, Right),
		},
	})
}

// equalZeroOne accepts strings with as many 0s as 1s by crossing off pairs.
func equalZeroOne(t *testing.T) *Machine {
	return mustMachine(t, MachineSpec{
		Name:   "equal 0s and 1s",
		States: []string{"q1", "q2", "q3", "q4", "qacc", "qrej"},
		Start:  "q1",
		Accept: "qacc",
		Reject: "qrej",
		Rules: []Rule{
			// q1: find the leftmost unmarked symbol
			rule("q1", 'x', "q1", 'x', Right),
			rule("q1", '0', "q2", 'x', Right),
			rule("q1", '1', "q3", 'x', Right),
			rule("q1", Blank, "qacc", Blank, Right),
			// q2: look for a 1 to pair with the crossed 0
			rule("q2", '0', "q2", '0', Right),
			rule("q2", 'x', "q2", 'x', Right),
			rule("q2", '1', "q4", 'x', Left),
			// q3: look for a 0 to pair with the crossed 1
			rule("q3", '1', "q3", '1', Right),
			rule("q3", 'x', "q3", 'x', Right),
			rule("q3", '0', "q4", 'x', Left),
			// q4: rewind to the left end
			rule("q4", '0', "q4", '0', Left),
			rule("q4", '1', "q4", '1', Left),
			rule("q4", 'x', "q4", 'x', Left),
			rule("q4", Blank, "q1", Blank, Right),
		},
	})
}

// tickingClock advances by step on every call, starting at the zero time.
func tickingClock(step time.Duration) func() time.Time {
	var now time.Time
	first := true
	return func() time.Time {
		if first {
			first = false
			return now
		}
		now = now.Add(step)
		return now
	}
}

func frozenClock() func() time.Time {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time { return t0 }
}
