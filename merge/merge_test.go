// SPDX-License-Identifier: MIT

package merge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/labyrinth/candidate"
	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/merge"
	"github.com/katalvlaran/labyrinth/signature"
)

func run(t *testing.T, w []core.Door, y []core.Label) core.Run {
	t.Helper()
	r, err := core.NewRun(w, y)
	require.NoError(t, err)

	return r
}

type MergeSuite struct {
	suite.Suite
	example core.Run
}

func (s *MergeSuite) SetupTest() {
	s.example = run(s.T(),
		[]core.Door{0, 1, 2, 3, 4, 5, 0, 1, 2, 3, 4, 5},
		[]core.Label{1, 0, 1, 1, 2, 3, 0, 1, 0, 1, 2, 3, 0})
}

func (s *MergeSuite) TestExampleWalkPipeline() {
	ix, err := signature.Build(s.example)
	s.Require().NoError(err)
	cands, _, err := candidate.Generate(ix, s.example.Trace)
	s.Require().NoError(err)

	st, err := merge.NewState(s.example)
	s.Require().NoError(err)
	res, err := merge.Merge(st, cands, 6)
	s.Require().NoError(err)

	// the repeated suffix collapses four pairs; candidates run out before 6
	s.Equal(9, res.Count())
	s.Equal(res.TimeToCluster[3], res.TimeToCluster[9])
	s.Equal(res.TimeToCluster[6], res.TimeToCluster[12])
	s.Zero(res.Stats.Rejected)
	s.Equal(9, res.Stats.Final)
	for t, c := range res.TimeToCluster {
		s.Equal(s.example.Trace[t], res.Labels[c], "time-step %d", t)
	}
}

func (s *MergeSuite) TestClosurePropagatesForward() {
	st, err := merge.NewState(s.example)
	s.Require().NoError(err)

	s.True(st.Attempt(4, 10))
	s.True(st.Same(5, 11))
	s.True(st.Same(6, 12))
	s.False(st.Same(3, 9))
	s.Equal(10, st.Components())
}

func (s *MergeSuite) TestLabelContradictionRejected() {
	st, err := merge.NewState(s.example)
	s.Require().NoError(err)
	mark := st.Snapshot()

	s.False(st.Attempt(0, 1))
	s.Equal(13, st.Components())
	s.Equal(mark, st.Snapshot())
}

func (s *MergeSuite) TestSeparationBlocksClosure() {
	st, err := merge.NewState(s.example)
	s.Require().NoError(err)
	ok, err := st.Separate(6, 12)
	s.Require().NoError(err)
	s.True(ok)

	// merging 4 with 10 would force 6 with 12
	s.False(st.Attempt(4, 10))
	s.False(st.Same(5, 11))
	s.Equal(13, st.Components())

	_, err = st.Separate(0, 99)
	s.ErrorIs(err, merge.ErrNodeOutOfRange)
}

func (s *MergeSuite) TestAcceptedMergesShareLabels() {
	st, err := merge.NewState(s.example)
	s.Require().NoError(err)
	mark := st.Snapshot()
	s.True(st.Attempt(3, 9))

	changes := st.Changes(mark)
	s.NotEmpty(changes)
	for _, c := range changes {
		if c.Kind != merge.ChangeParent {
			continue
		}
		s.Equal(s.example.Trace[c.Node], s.example.Trace[st.Parent(c.Node)], "node %d", c.Node)
	}
}

func TestMergeSuite(t *testing.T) {
	suite.Run(t, new(MergeSuite))
}

func TestMerge_RunBoundaryIsolation(t *testing.T) {
	a := run(t, []core.Door{0, 0}, []core.Label{0, 0, 0})
	b := run(t, []core.Door{1, 1}, []core.Label{1, 1, 1})
	st, err := merge.NewState(a, b)
	require.NoError(t, err)

	res, err := merge.Merge(st, nil, 6)
	require.NoError(t, err)
	require.Equal(t, 6, res.Count())
	assert.Equal(t, core.EmptyPorts(), res.Transitions[res.TimeToCluster[2]])
	assert.Equal(t, []int{0, 3}, res.RunStarts)
	assert.Equal(t, 1, res.RunOf(4))
}

func TestMerge_NoCrossRunTransitions(t *testing.T) {
	a := run(t, []core.Door{0, 0}, []core.Label{0, 0, 0})
	b := run(t, []core.Door{0, 0}, []core.Label{0, 0, 0})
	st, err := merge.NewState(a, b)
	require.NoError(t, err)

	cands := []candidate.Candidate{candidate.Forced(0, 1), candidate.Forced(2, 3)}
	res, err := merge.Merge(st, cands, 1)
	require.NoError(t, err)

	// everything is one self-looping room; the loop is witnessed inside each run
	assert.Equal(t, 1, res.Count())
	assert.Equal(t, 0, res.Transitions[0][0])
	for d := 1; d < core.DoorCount; d++ {
		assert.Equal(t, core.NoRoom, res.Transitions[0][d])
	}
}

func TestMerge_Errors(t *testing.T) {
	_, err := merge.NewState()
	require.ErrorIs(t, err, merge.ErrNoRuns)

	_, err = merge.NewState(core.Run{Walk: []core.Door{0}})
	require.ErrorIs(t, err, core.ErrLengthMismatch)

	st, err := merge.NewState(run(t, []core.Door{0}, []core.Label{0, 0}))
	require.NoError(t, err)
	_, err = merge.Merge(st, nil, 0, merge.WithSeparations([][2]int{{0, 5}}))
	require.ErrorIs(t, err, merge.ErrNodeOutOfRange)

	_, err = merge.Merge(nil, nil, 0)
	require.ErrorIs(t, err, merge.ErrNoRuns)
}

func TestDrive_Counts(t *testing.T) {
	st, err := merge.NewState(run(t, []core.Door{0, 1, 0}, []core.Label{0, 1, 0, 1}))
	require.NoError(t, err)

	cands := []candidate.Candidate{
		{A: 0, B: 1, Score: 9}, // label mismatch
		{A: 0, B: 2, Score: 5}, // forces 1~3
		{A: 1, B: 3, Score: 4}, // already joined
		{A: 0, B: 40, Score: 1},
	}
	stats := merge.Drive(st, cands, 0)
	assert.Equal(t, merge.Stats{Attempted: 4, Accepted: 1, Rejected: 2, Skipped: 1, Final: 2}, stats)
}

func TestResult_WithEdges(t *testing.T) {
	st, err := merge.NewState(run(t, []core.Door{0}, []core.Label{0, 1}))
	require.NoError(t, err)
	res, err := st.Export()
	require.NoError(t, err)

	out, n := res.WithEdges([]merge.Edge{{From: 1, Door: 0, To: 0}, {From: 0, Door: 0, To: 0}, {From: 7, Door: 0, To: 0}})
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, out.Transitions[1][0])
	assert.Equal(t, core.NoRoom, res.Transitions[1][0], "source result must not change")
	assert.Equal(t, 1, out.Transitions[0][0])
}

func TestAccounts(t *testing.T) {
	tr := core.Transitions{core.EmptyPorts(), core.EmptyPorts()}
	tr[0][2] = 1
	tr[0][3] = 1
	tr[1][4] = 0
	tr[1][5] = 1

	acc := merge.Accounts(tr)
	assert.Equal(t, 2, acc[0].Out)
	assert.Zero(t, acc[0].Stubs)
	assert.Equal(t, 2, acc[1].Out)
	// two edges arrive from room 0 but only one door returns there
	assert.Equal(t, 1, acc[1].Stubs)
	assert.Equal(t, []merge.Shortfall{{Neighbor: 0, Need: 2, Have: 1}}, acc[1].Shortfalls)
	assert.Equal(t, 3, acc[1].Accounted())
	assert.Equal(t, 1, acc[1].Shortfalls[0].Missing())
}
