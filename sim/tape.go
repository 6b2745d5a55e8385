// Defines Configuration, the snapshot of a machine mid-computation, and the
// single-step successor function over the semi-infinite tape.

package sim

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Configuration is (left tape, state, right tape). The head reads the first
// symbol of Right, or Blank when Right is empty. Empty Left stands for an
// unbounded run of blanks.
//
// Configurations are values: Successors never modifies its receiver.
type Configuration struct {
	Left  string
	State string
	Right string
}

// InitialConfiguration places the head on the first symbol of input.
func InitialConfiguration(m *Machine, input string) Configuration {
	return Configuration{State: m.Start, Right: input}
}

// Head returns the symbol under the head.
func (c Configuration) Head() rune {
	if c.Right == "" {
		return Blank
	}
	r, _ := utf8.DecodeRuneInString(c.Right)
	return r
}

// AfterHead returns Right without the head cell.
func (c Configuration) AfterHead() string {
	if c.Right == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(c.Right)
	return c.Right[size:]
}

// Apply performs one transition and returns the resulting configuration.
func (c Configuration) Apply(t Transition) Configuration {
	rest := c.AfterHead()
	if t.Move == Right {
		return Configuration{
			Left:  c.Left + string(t.Write),
			State: t.Next,
			Right: rest,
		}
	}

	popped, left := Blank, ""
	if c.Left != "" {
		r, size := utf8.DecodeLastRuneInString(c.Left)
		popped, left = r, c.Left[:len(c.Left)-size]
	}
	return Configuration{
		Left:  left,
		State: t.Next,
		Right: string(popped) + string(t.Write) + rest,
	}
}

// Successors applies every transition registered for (c.State, c.Head()) in
// table order. A configuration without matching transitions has no
// successors; that is a dead branch, not an error.
func (c Configuration) Successors(m *Machine) []Configuration {
	ts := m.Transitions(c.State, c.Head())
	if len(ts) == 0 {
		return nil
	}
	out := make([]Configuration, 0, len(ts))
	for _, t := range ts {
		out = append(out, c.Apply(t))
	}
	return out
}

// IsSuccessor reports whether next is reachable from c by one transition of m.
func (c Configuration) IsSuccessor(m *Machine, next Configuration) bool {
	for _, s := range c.Successors(m) {
		if s.Equal(next) {
			return true
		}
	}
	return false
}

// Equal compares configurations up to trailing blanks on the right and
// leading blanks on the left, which do not change simulated behavior.
func (c Configuration) Equal(o Configuration) bool {
	return c.State == o.State &&
		strings.TrimLeft(c.Left, string(Blank)) == strings.TrimLeft(o.Left, string(Blank)) &&
		strings.TrimRight(c.Right, string(Blank)) == strings.TrimRight(o.Right, string(Blank))
}

// String renders the configuration in the report layout: left, state, head,
// right-of-head.
func (c Configuration) String() string {
	return fmt.Sprintf("[%q, %s, %q, %q]", c.Left, c.State, string(c.Head()), c.AfterHead())
}
