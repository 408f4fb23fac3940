// SPDX-License-Identifier: MIT

package probe_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/merge"
	"github.com/katalvlaran/labyrinth/probe"
)

// triangle is rooms 0,1,2 labelled 0,1,0 with 0-0↔1-0, 1-1↔2-1, 2-0↔0-1;
// every other door loops back to its own room.
func triangle() *core.Map {
	m := &core.Map{Rooms: []int{0, 1, 0}}
	link := func(a, da, b, db int) {
		m.Connections = append(m.Connections, core.Connection{
			From: core.Endpoint{Room: a, Door: da},
			To:   core.Endpoint{Room: b, Door: db},
		})
	}
	link(0, 0, 1, 0)
	link(1, 1, 2, 1)
	link(2, 0, 0, 1)
	for r := range 3 {
		for d := 2; d < core.DoorCount; d++ {
			link(r, d, r, d)
		}
	}

	return m
}

// loopRun walks 0,1,0 four times: rooms 0,1,2,0,1,2,...,0.
func loopRun(t *testing.T) core.Run {
	t.Helper()
	w := []core.Door{0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0}
	y, err := triangle().Execute(core.PlanFromWalk(w))
	require.NoError(t, err)
	r, err := core.NewRun(w, y)
	require.NoError(t, err)

	return r
}

// solved is the exact three-cluster result for loopRun.
func solved(t *testing.T) *merge.Result {
	t.Helper()
	st, err := merge.NewState(loopRun(t))
	require.NoError(t, err)
	require.True(t, st.Attempt(0, 3))
	res, err := st.Export()
	require.NoError(t, err)
	require.Equal(t, 3, res.Count())

	return res
}

// execute answers every probe against the triangle.
func execute(t *testing.T, probes []probe.Probe) [][]core.Label {
	t.Helper()
	m := triangle()
	out := make([][]core.Label, len(probes))
	for i, p := range probes {
		resp, err := m.Execute(p.Plan)
		require.NoError(t, err)
		out[i] = resp
	}

	return out
}

func budget() probe.Budget {
	return probe.Budget{Limit: 18, Markers: 4}
}
