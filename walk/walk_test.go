// SPDX-License-Identifier: MIT

package walk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/walk"
)

func TestGenerate_Errors(t *testing.T) {
	_, err := walk.Generate(0)
	require.ErrorIs(t, err, walk.ErrTooFewRooms)

	assert.Panics(t, func() { walk.WithLimitRatio(0) })
	assert.Panics(t, func() { walk.WithTargetRatio(-1) })
}

func TestGenerate_CoversTrigrams(t *testing.T) {
	const n = 90
	w, err := walk.Generate(n)
	require.NoError(t, err)
	require.LessOrEqual(t, len(w), 6*n)
	assert.Equal(t, 495, len(w))

	seen := make(map[[3]core.Door]bool)
	for i := 0; i+3 <= len(w); i++ {
		seen[[3]core.Door{w[i], w[i+1], w[i+2]}] = true
	}
	assert.Len(t, seen, 216)
}

func TestGenerate_SmallBudget(t *testing.T) {
	// limit 6 only fits the order-1 sequence
	w, err := walk.Generate(1)
	require.NoError(t, err)
	assert.Equal(t, []core.Door{0, 1, 2, 3, 4, 5}, w)

	// limit 12 fits order 1 only (order 2 needs 37)
	w, err = walk.Generate(2)
	require.NoError(t, err)
	assert.Len(t, w, 11)
	for i := 1; i < len(w); i++ {
		assert.NotEqual(t, w[i-1], w[i], "repeat at %d", i)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := walk.Generate(30, walk.WithSeed(7))
	require.NoError(t, err)
	b, err := walk.Generate(30, walk.WithSeed(7))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := walk.Generate(30, walk.WithLimitRatio(3), walk.WithTargetRatio(3))
	require.NoError(t, err)
	assert.Len(t, c, 90)
}

func TestDeBruijn(t *testing.T) {
	s := walk.DeBruijn(2)
	require.Len(t, s, 37)
	seen := make(map[[2]core.Door]bool)
	for i := 0; i+2 <= len(s); i++ {
		seen[[2]core.Door{s[i], s[i+1]}] = true
	}
	assert.Len(t, seen, 36)
	assert.Nil(t, walk.DeBruijn(0))
}
