// SPDX-License-Identifier: MIT

package merge

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/labyrinth/core"
)

type frozen struct {
	parent []int
	size   []int
	table  []core.Ports
	comps  int
	logLen int
}

func freeze(s *State) frozen {
	return frozen{
		parent: slices.Clone(s.parent),
		size:   slices.Clone(s.size),
		table:  slices.Clone(s.table),
		comps:  s.comps,
		logLen: len(s.log),
	}
}

func TestAttempt_ContradictionMidClosureRestoresState(t *testing.T) {
	// 0 -0-> 1 and 2 -0-> 3; merging 0 with 2 forces 1 with 3, whose labels differ
	a, err := core.NewRun([]core.Door{0}, []core.Label{0, 1})
	require.NoError(t, err)
	b, err := core.NewRun([]core.Door{0}, []core.Label{0, 2})
	require.NoError(t, err)
	s, err := NewState(a, b)
	require.NoError(t, err)

	// some committed history first, so rollback has to stop at the right mark
	c, err := core.NewRun([]core.Door{5, 5}, []core.Label{3, 3, 3})
	require.NoError(t, err)
	s2, err := NewState(a, b, c)
	require.NoError(t, err)
	require.True(t, s2.Attempt(4, 5))

	for _, st := range []*State{s, s2} {
		before := freeze(st)
		assert.False(t, st.Attempt(0, 2))
		assert.Equal(t, before, freeze(st))
	}
}

func TestAttempt_ChangeLogReplay(t *testing.T) {
	r, err := core.NewRun([]core.Door{1, 1, 1, 1}, []core.Label{0, 1, 0, 1, 0})
	require.NoError(t, err)
	s, err := NewState(r)
	require.NoError(t, err)

	require.True(t, s.Attempt(0, 2))
	for _, c := range s.log {
		if c.Kind == ChangeParent {
			assert.Equal(t, s.label[c.Node], s.label[s.parent[c.Node]])
		}
	}
	assert.Equal(t, 2, s.Components())

	// undoing everything restores the seed tables
	s.Rollback(0)
	assert.Equal(t, 5, s.Components())
	for v := range s.parent {
		assert.Equal(t, v, s.parent[v])
	}
	assert.Equal(t, 2, s.table[1][1])
}

func TestExport_DetectsCorruption(t *testing.T) {
	r, err := core.NewRun([]core.Door{0}, []core.Label{0, 1})
	require.NoError(t, err)
	s, err := NewState(r)
	require.NoError(t, err)

	// bypass Attempt to join different labels
	s.parent[1] = 0
	_, err = s.Export()
	assert.ErrorIs(t, err, ErrLabelMismatch)

	r2, err := core.NewRun([]core.Door{0, 0}, []core.Label{0, 0, 0})
	require.NoError(t, err)
	s2, err := NewState(r2)
	require.NoError(t, err)
	s2.table[0][3] = 2
	_, err = s2.Export()
	assert.ErrorIs(t, err, ErrTransitionMismatch)
}
