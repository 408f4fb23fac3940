// SPDX-License-Identifier: MIT

package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/labyrinth/core"
)

func TestNewRun_Validation(t *testing.T) {
	_, err := core.NewRun([]core.Door{0, 1}, []core.Label{0, 1})
	require.ErrorIs(t, err, core.ErrLengthMismatch)

	_, err = core.NewRun([]core.Door{0, 6}, []core.Label{0, 1, 2})
	require.ErrorIs(t, err, core.ErrDoorOutOfRange)

	_, err = core.NewRun([]core.Door{0, 5}, []core.Label{0, 4, 2})
	require.ErrorIs(t, err, core.ErrLabelOutOfRange)

	r, err := core.NewRun([]core.Door{0, 5}, []core.Label{0, 3, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Moves())
	assert.Equal(t, 3, r.Steps())
}

func TestLabelsFromInts(t *testing.T) {
	got, err := core.LabelsFromInts([]int{0, 3, 1})
	require.NoError(t, err)
	assert.Equal(t, []core.Label{0, 3, 1}, got)

	_, err = core.LabelsFromInts([]int{0, -1})
	if !errors.Is(err, core.ErrLabelOutOfRange) {
		t.Errorf("negative label: want ErrLabelOutOfRange, got %v", err)
	}
}

func TestPorts(t *testing.T) {
	p := core.EmptyPorts()
	assert.Equal(t, 0, p.Known())
	p[2] = 7
	p[5] = 0
	assert.Equal(t, 2, p.Known())
	assert.Equal(t, []core.Door{0, 1, 3, 4}, p.Unknown())
	assert.Equal(t, core.Label(0), core.Label(3).Next())
}
