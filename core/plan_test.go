// SPDX-License-Identifier: MIT

package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/labyrinth/core"
)

func TestPlan_EncodeParse(t *testing.T) {
	var p core.Plan
	p.Move(0).Move(5).Mark(2).Move(3).Mark(0)

	assert.Equal(t, "05[2]3[0]", p.String())
	assert.Equal(t, 5, p.Actions())
	assert.Equal(t, 6, p.ResponseLen())
	assert.Equal(t, 2, p.Markers())
	assert.Equal(t, []core.Door{0, 5, 3}, p.Doors())

	back, err := core.ParsePlan(p.String())
	require.NoError(t, err)
	assert.Equal(t, p.Steps(), back.Steps())
}

func TestParsePlan_Errors(t *testing.T) {
	cases := map[string]error{
		"016":   core.ErrBadPlan,
		"0[1":   core.ErrBadPlan,
		"0[4]1": core.ErrColorOutOfRange,
		"a":     core.ErrBadPlan,
	}
	for in, want := range cases {
		_, err := core.ParsePlan(in)
		assert.ErrorIs(t, err, want, "input %q", in)
	}
}

func TestPlan_Run(t *testing.T) {
	p := core.PlanFromWalk([]core.Door{1, 2})
	r, err := p.Run([]core.Label{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, []core.Door{1, 2}, r.Walk)

	_, err = p.Run([]core.Label{0, 1})
	require.ErrorIs(t, err, core.ErrLengthMismatch)

	p.Mark(1)
	_, err = p.Run([]core.Label{0, 1, 2, 1})
	require.ErrorIs(t, err, core.ErrBadPlan)
}

func TestPlan_Validate(t *testing.T) {
	var p core.Plan
	p.Move(6)
	require.ErrorIs(t, p.Validate(), core.ErrDoorOutOfRange)

	var q core.Plan
	q.Mark(9)
	require.ErrorIs(t, q.Validate(), core.ErrColorOutOfRange)
}
