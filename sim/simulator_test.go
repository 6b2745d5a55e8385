package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracetm/tracetm/sim/trace"
)

func TestSimulate_APlus_AcceptsWithinTransitionBudget(t *testing.T) {
	// GIVEN the nondeterministic a+ machine and "aaaaa"
	m := aPlusNTM(t)

	// WHEN simulated without limits
	res, err := Simulate(m, "aaaaa", Limits{})
	require.NoError(t, err)

	// THEN it accepts along the guess-last-a path
	assert.Equal(t, Accepted, res.Outcome.Kind)
	assert.Equal(t, 6, res.DepthReached, "five a's plus the blank that confirms the end")
	assert.Equal(t, 6, res.PathLength())
	assert.GreaterOrEqual(t, res.TransitionsSimulated, 4)
	assert.LessOrEqual(t, res.TransitionsSimulated, 15)
	// two successors per level from the q1 branch, plus the accepting one
	assert.Equal(t, 11, res.TransitionsSimulated)
	assert.Equal(t, 2, res.MaxBranchingFactor)
}

func TestSimulate_NoTransitionFromStart_RejectsAtDepthZero(t *testing.T) {
	// GIVEN an input whose first symbol has no transition from the start state
	m := aPlusNTM(t)

	// WHEN simulated
	res, err := Simulate(m, "b", Limits{})
	require.NoError(t, err)

	// THEN the run rejects immediately
	assert.Equal(t, Rejected, res.Outcome.Kind)
	assert.Equal(t, 0, res.DepthReached)
	assert.Equal(t, 0, res.TransitionsSimulated)
	assert.Equal(t, 0, res.MaxBranchingFactor, "dead configurations do not count toward branching")
	assert.Len(t, res.Tree, 1)
	assert.Nil(t, res.Outcome.Path)
}

func TestSimulate_DepthLimit_StopsAtLimit(t *testing.T) {
	tests := []struct {
		name            string
		machine         func(*testing.T) *Machine
		wantTransitions int
	}{
		{"nondeterministic", aPlusNTM, 4},
		{"deterministic", aPlusDTM, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// GIVEN a machine needing six steps to accept and a depth limit of 2
			m := tc.machine(t)

			// WHEN simulated
			res, err := Simulate(m, "aaaaa", Limits{MaxDepth: 2})
			require.NoError(t, err)

			// THEN the depth limit stops the run with partial statistics
			assert.Equal(t, LimitExceeded, res.Outcome.Kind)
			assert.Equal(t, LimitDepth, res.Outcome.Limit)
			assert.Equal(t, 2, res.DepthReached)
			assert.Equal(t, tc.wantTransitions, res.TransitionsSimulated)
		})
	}
}

func TestSimulate_DepthLimitAboveAcceptingDepth_Accepts(t *testing.T) {
	res, err := Simulate(aPlusDTM(t), "aaaaa", Limits{MaxDepth: 6})
	require.NoError(t, err)
	assert.Equal(t, Accepted, res.Outcome.Kind)
	assert.Equal(t, 6, res.DepthReached)
}

func TestSimulate_AcceptOneLevelPastDepthLimit_Accepts(t *testing.T) {
	// GIVEN the a+ NTM whose accepting successor sits at depth 6
	m := aPlusNTM(t)

	// WHEN the depth limit is 5
	res, err := Simulate(m, "aaaaa", Limits{MaxDepth: 5})
	require.NoError(t, err)

	// THEN acceptance is checked before the depth limit
	assert.Equal(t, Accepted, res.Outcome.Kind)
	assert.Equal(t, 6, res.DepthReached)
	assert.Equal(t, 11, res.TransitionsSimulated)
	assert.Equal(t, 6, res.PathLength())
}

func TestSimulate_DepthLimit_NonAcceptingSuccessorNotCounted(t *testing.T) {
	// GIVEN a machine that never halts and a depth limit of 4
	res, err := Simulate(runaway(t), "", Limits{MaxDepth: 4})
	require.NoError(t, err)

	// THEN the successor that would reach depth 5 is neither stored nor counted
	assert.Equal(t, LimitDepth, res.Outcome.Limit)
	assert.Equal(t, 4, res.DepthReached)
	assert.Equal(t, 4, res.TransitionsSimulated)
	assert.Len(t, res.Tree, 5)
}

func TestSimulate_TransitionLimit_StopsBeforeExceeding(t *testing.T) {
	// GIVEN a machine that never halts
	m := runaway(t)

	// WHEN the transition budget is 5
	res, err := Simulate(m, "", Limits{MaxTransitions: 5})
	require.NoError(t, err)

	// THEN exactly 5 transitions were simulated
	assert.Equal(t, LimitExceeded, res.Outcome.Kind)
	assert.Equal(t, LimitTransitions, res.Outcome.Limit)
	assert.Equal(t, 5, res.TransitionsSimulated)
	assert.Equal(t, 5, res.DepthReached)
}

func TestSimulate_TransitionLimit_KeepsPartialGeneration(t *testing.T) {
	// GIVEN the a+ NTM which produces two successors per level
	m := aPlusNTM(t)

	// WHEN the budget runs out in the middle of a level
	res, err := Simulate(m, "aaaaa", Limits{MaxTransitions: 3})
	require.NoError(t, err)

	// THEN the partial level is recorded
	assert.Equal(t, LimitTransitions, res.Outcome.Limit)
	assert.Equal(t, 3, res.TransitionsSimulated)
	require.Len(t, res.Tree, 3)
	assert.Len(t, res.Tree[2], 1)
}

func TestSimulate_TimeLimit_CheckedAfterEachLevel(t *testing.T) {
	// GIVEN a machine that never halts and a clock ticking one second per read
	m := runaway(t)

	// WHEN the time limit is two seconds
	res, err := Simulate(m, "", Limits{MaxTime: 2 * time.Second}, WithClock(tickingClock(time.Second)))
	require.NoError(t, err)

	// THEN the third completed level trips the limit
	assert.Equal(t, LimitExceeded, res.Outcome.Kind)
	assert.Equal(t, LimitTime, res.Outcome.Limit)
	assert.Equal(t, 3, res.DepthReached)
	assert.Equal(t, 3, res.TransitionsSimulated)
}

func TestSimulate_DeterministicMachine_DepthEqualsTransitions(t *testing.T) {
	// GIVEN deterministic machines and inputs covering every outcome
	tests := []struct {
		name    string
		machine func(*testing.T) *Machine
		input   string
		limits  Limits
		want    OutcomeKind
	}{
		{"a+ accepts", aPlusDTM, "aaaaa", Limits{}, Accepted},
		{"a+ rejects", aPlusDTM, "aab", Limits{}, Rejected},
		{"a+ rejects empty", aPlusDTM, "", Limits{}, Rejected},
		{"a+ depth limit", aPlusDTM, "aaaaaaaa", Limits{MaxDepth: 3}, LimitExceeded},
		{"equal accepts", equalZeroOne, "0110", Limits{}, Accepted},
		{"equal accepts empty", equalZeroOne, "", Limits{}, Accepted},
		{"equal rejects", equalZeroOne, "001", Limits{}, Rejected},
		{"equal transition limit", equalZeroOne, "000111", Limits{MaxTransitions: 7}, LimitExceeded},
		{"runaway depth limit", runaway, "", Limits{MaxDepth: 10}, LimitExceeded},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := tc.machine(t)
			require.True(t, m.IsDeterministic())

			// WHEN simulated
			res, err := Simulate(m, tc.input, tc.limits)
			require.NoError(t, err)

			// THEN depth and transitions agree
			assert.Equal(t, tc.want, res.Outcome.Kind)
			assert.Equal(t, res.DepthReached, res.TransitionsSimulated)
			assert.LessOrEqual(t, res.MaxBranchingFactor, 1)
		})
	}
}

func TestSimulate_AcceptingPath_IsChainOfSuccessors(t *testing.T) {
	for _, input := range []string{"a", "aaa", "aaaaaaa"} {
		t.Run(input, func(t *testing.T) {
			m := aPlusNTM(t)
			res, err := Simulate(m, input, Limits{})
			require.NoError(t, err)
			require.True(t, res.IsAccepted())

			path := res.Outcome.Path
			require.NotEmpty(t, path)
			assert.Equal(t, Configuration{State: m.Start, Right: input}, path[0])
			assert.Equal(t, m.Accept, path[len(path)-1].State)
			for i := 1; i < len(path); i++ {
				assert.True(t, path[i-1].IsSuccessor(m, path[i]), "step %d: %v -> %v", i, path[i-1], path[i])
			}
			assert.Equal(t, res.DepthReached, len(path)-1)
		})
	}
}

func TestSimulate_AcceptingPath_FollowsTableOrder(t *testing.T) {
	// GIVEN two accepting branches at the same depth, declared in a known order
	m := mustMachine(t, MachineSpec{
		Start:  "s",
		Accept: "acc",
		Rules: []Rule{
			rule("s", 'a', "left", 'L', Right),
			rule("s", 'a', "right", 'R', Right),
			rule("left", Blank, "acc", '1', Right),
			rule("right", Blank, "acc", '2', Right),
		},
	})

	// WHEN simulated
	res, err := Simulate(m, "a", Limits{})
	require.NoError(t, err)

	// THEN the first-declared branch is reported
	require.True(t, res.IsAccepted())
	assert.Equal(t, "left", res.Outcome.Path[1].State)
	assert.Equal(t, "L1", res.Outcome.Path[2].Left)
}

func TestSimulate_BranchingNeverExceedsTableFanout(t *testing.T) {
	m := mustMachine(t, MachineSpec{
		Start:  "s",
		Accept: "acc",
		Rules: []Rule{
			rule("s", 'a', "s", 'a', Right),
			rule("s", 'a', "t", 'a', Right),
			rule("s", 'a', "u", 'a', Left),
			rule("t", 'a', "s", 'b', Right),
			rule("u", Blank, "s", 'a', Right),
		},
	})
	require.Equal(t, 3, m.MaxFanout())

	res, err := Simulate(m, "aaaa", Limits{MaxDepth: 6}, WithTrace(trace.TraceLevelLevels))
	require.NoError(t, err)
	assert.LessOrEqual(t, res.MaxBranchingFactor, m.MaxFanout())
	assert.Equal(t, 3, res.MaxBranchingFactor)

	// running maximum over levels never decreases
	running := 0
	for _, l := range res.Trace.Levels {
		running = max(running, l.MaxBranching)
		assert.LessOrEqual(t, l.MaxBranching, m.MaxFanout())
	}
	assert.Equal(t, res.MaxBranchingFactor, running)
}

func TestSimulate_Unbounded_HaltingMachineNeverHitsLimit(t *testing.T) {
	m := equalZeroOne(t)
	for _, input := range []string{"", "0", "1", "01", "10", "0011", "0101", "0001", "111000", "1101"} {
		res, err := Simulate(m, input, Limits{})
		require.NoError(t, err)
		assert.Contains(t, []OutcomeKind{Accepted, Rejected}, res.Outcome.Kind, "input %q", input)
	}
}

func TestSimulate_SameArguments_IdenticalResults(t *testing.T) {
	m := aPlusNTM(t)
	first, err := Simulate(m, "aaaa", Limits{}, WithClock(frozenClock()), WithTrace(trace.TraceLevelLevels))
	require.NoError(t, err)
	second, err := Simulate(m, "aaaa", Limits{}, WithClock(frozenClock()), WithTrace(trace.TraceLevelLevels))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSimulate_RejectState_PrunesBranchOnly(t *testing.T) {
	// GIVEN a machine where one branch enters the reject state and a sibling
	// goes on to accept
	m := mustMachine(t, MachineSpec{
		Start:  "s",
		Accept: "acc",
		Reject: "rej",
		Rules: []Rule{
			rule("s", 'a', "rej", 'a', Right),
			rule("s", 'a', "t", 'a', Right),
			rule("t", Blank, "acc", Blank, Right),
			rule("rej", Blank, "acc", Blank, Right),
		},
	})

	// WHEN simulated with the default policy
	res, err := Simulate(m, "a", Limits{})
	require.NoError(t, err)

	// THEN the reject branch is recorded and counted but not expanded
	assert.Equal(t, Accepted, res.Outcome.Kind)
	require.Len(t, res.Tree[1], 2)
	assert.True(t, res.Tree[1][0].Pruned)
	assert.False(t, res.Tree[1][1].Pruned)
	assert.Equal(t, 3, res.TransitionsSimulated)
	assert.Equal(t, "t", res.Outcome.Path[1].State)
}

func TestSimulate_RejectState_HaltOnRejectEndsRun(t *testing.T) {
	m := mustMachine(t, MachineSpec{
		Start:  "s",
		Accept: "acc",
		Reject: "rej",
		Rules: []Rule{
			rule("s", 'a', "rej", 'a', Right),
			rule("s", 'a', "t", 'a', Right),
			rule("t", Blank, "acc", Blank, Right),
		},
	})

	res, err := Simulate(m, "a", Limits{}, WithHaltOnReject())
	require.NoError(t, err)

	assert.Equal(t, Rejected, res.Outcome.Kind)
	assert.Equal(t, 1, res.TransitionsSimulated)
	assert.Equal(t, 1, res.DepthReached)
}

func TestSimulate_AllBranchesRejectState_Rejects(t *testing.T) {
	m := mustMachine(t, MachineSpec{
		Start:  "s",
		Accept: "acc",
		Reject: "rej",
		Rules: []Rule{
			rule("s", 'a', "rej", 'a', Right),
		},
	})

	res, err := Simulate(m, "a", Limits{})
	require.NoError(t, err)

	assert.Equal(t, Rejected, res.Outcome.Kind)
	assert.Equal(t, 1, res.TransitionsSimulated)
	assert.Equal(t, 1, res.DepthReached, "the pruned generation stays in the tree")
}

func TestSimulate_StartInAcceptState_AcceptsWithoutMoving(t *testing.T) {
	m := mustMachine(t, MachineSpec{Start: "acc", Accept: "acc"})
	res, err := Simulate(m, "xyz", Limits{})
	require.NoError(t, err)
	assert.Equal(t, Accepted, res.Outcome.Kind)
	assert.Equal(t, 0, res.DepthReached)
	assert.Len(t, res.Outcome.Path, 1)
}

func TestSimulate_Trace_RecordsEveryLevel(t *testing.T) {
	res, err := Simulate(aPlusNTM(t), "aa", Limits{}, WithTrace(trace.TraceLevelLevels))
	require.NoError(t, err)
	require.NotNil(t, res.Trace)

	// levels 0 and 1 complete, level 2 stops on acceptance
	require.Len(t, res.Trace.Levels, 3)
	assert.True(t, res.Trace.Levels[0].Complete)
	assert.True(t, res.Trace.Levels[1].Complete)
	assert.False(t, res.Trace.Levels[2].Complete)
	assert.Equal(t, 1, res.Trace.Levels[1].Dead, "the q2 guess dies on the second a")

	summary := trace.Summarize(res.Trace)
	assert.Equal(t, res.TransitionsSimulated, summary.TotalProduced)
}

func TestSimulate_TraceDisabledByDefault(t *testing.T) {
	res, err := Simulate(aPlusNTM(t), "aa", Limits{})
	require.NoError(t, err)
	assert.Nil(t, res.Trace)
}

func TestSimulate_InvalidInputs_ReturnErrors(t *testing.T) {
	_, err := Simulate(nil, "a", Limits{})
	assert.ErrorIs(t, err, ErrInvalidMachine)

	_, err = Simulate(&Machine{States: []string{"q1"}, Start: "q0", Accept: "q1"}, "a", Limits{})
	assert.ErrorIs(t, err, ErrInvalidMachine)

	_, err = Simulate(aPlusNTM(t), "a", Limits{MaxDepth: -1})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidMachine)
}

func TestSimulate_SharedMachine_NotMutated(t *testing.T) {
	m := aPlusNTM(t)
	before := m.Rules()
	for _, in := range []string{"a", "aa", "b", "aaaa"} {
		_, err := Simulate(m, in, Limits{})
		require.NoError(t, err)
	}
	assert.Equal(t, before, m.Rules())
	assert.Len(t, m.Transitions("q1", 'a'), 2)
}
