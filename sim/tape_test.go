package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfiguration_Head(t *testing.T) {
	assert.Equal(t, 'a', Configuration{Right: "ab"}.Head())
	assert.Equal(t, Blank, Configuration{Left: "ab"}.Head(), "empty right reads blank")
	assert.Equal(t, 'é', Configuration{Right: "éa"}.Head())
}

func TestConfiguration_Apply(t *testing.T) {
	tests := []struct {
		name string
		from Configuration
		t    Transition
		want Configuration
	}{
		{
			name: "right move appends written symbol to left",
			from: Configuration{Left: "01", State: "q1", Right: "01"},
			t:    Transition{Next: "q2", Write: 'x', Move: Right},
			want: Configuration{Left: "01x", State: "q2", Right: "1"},
		},
		{
			name: "right move off the last symbol leaves right empty",
			from: Configuration{Left: "0", State: "q1", Right: "1"},
			t:    Transition{Next: "q1", Write: '1', Move: Right},
			want: Configuration{Left: "01", State: "q1", Right: ""},
		},
		{
			name: "right move on empty right writes over the blank",
			from: Configuration{Left: "0", State: "q1"},
			t:    Transition{Next: "q1", Write: 'y', Move: Right},
			want: Configuration{Left: "0y", State: "q1", Right: ""},
		},
		{
			name: "left move pops the last left symbol",
			from: Configuration{Left: "01", State: "q1", Right: "01"},
			t:    Transition{Next: "q2", Write: 'x', Move: Left},
			want: Configuration{Left: "0", State: "q2", Right: "1x1"},
		},
		{
			name: "left move at the left end brings in a blank",
			from: Configuration{State: "q1", Right: "ab"},
			t:    Transition{Next: "q2", Write: 'x', Move: Left},
			want: Configuration{Left: "", State: "q2", Right: "_xb"},
		},
		{
			name: "left move on empty right",
			from: Configuration{Left: "a", State: "q1"},
			t:    Transition{Next: "q2", Write: 'b', Move: Left},
			want: Configuration{Left: "", State: "q2", Right: "ab"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := tc.from
			got := tc.from.Apply(tc.t)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, before, tc.from, "receiver must not change")
		})
	}
}

func TestConfiguration_Successors_TableOrder(t *testing.T) {
	m := aPlusNTM(t)
	got := InitialConfiguration(m, "aa").Successors(m)
	assert.Equal(t, []Configuration{
		{Left: "a", State: "q1", Right: "a"},
		{Left: "a", State: "q2", Right: "a"},
	}, got)
}

func TestConfiguration_Successors_NoTransitionIsDeadBranch(t *testing.T) {
	m := aPlusNTM(t)
	assert.Empty(t, InitialConfiguration(m, "b").Successors(m))
	assert.Empty(t, Configuration{State: "unknown", Right: "a"}.Successors(m))
}

func TestConfiguration_Equal_IgnoresBlankPadding(t *testing.T) {
	a := Configuration{Left: "a", State: "q", Right: "b"}
	assert.True(t, a.Equal(Configuration{Left: "__a", State: "q", Right: "b__"}))
	assert.False(t, a.Equal(Configuration{Left: "a_", State: "q", Right: "b"}))
	assert.False(t, a.Equal(Configuration{Left: "a", State: "p", Right: "b"}))
}

func TestConfiguration_String(t *testing.T) {
	c := Configuration{Left: "ab", State: "q1", Right: "cd"}
	assert.Equal(t, `["ab", q1, "c", "d"]`, c.String())
	assert.Equal(t, `["", q1, "_", ""]`, Configuration{State: "q1"}.String())
}
