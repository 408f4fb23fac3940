// SPDX-License-Identifier: MIT

package solver_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/finalize"
	"github.com/katalvlaran/labyrinth/oracle"
	"github.com/katalvlaran/labyrinth/solver"
)

// mapExplorer answers plans straight from a known map.
type mapExplorer struct {
	m *core.Map

	mu      sync.Mutex
	calls   int
	largest int
	// walks counts marker-free plans by their text
	walks  map[string]int
	mangle func([][]core.Label) [][]core.Label
}

func (x *mapExplorer) Explore(ctx context.Context, plans []core.Plan) ([][]core.Label, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([][]core.Label, len(plans))
	for i, p := range plans {
		labels, err := x.m.Execute(p)
		if err != nil {
			return nil, err
		}
		out[i] = labels
	}
	x.mu.Lock()
	x.calls++
	x.largest = max(x.largest, len(plans))
	for _, p := range plans {
		if p.Markers() == 0 {
			if x.walks == nil {
				x.walks = make(map[string]int)
			}
			x.walks[p.String()]++
		}
	}
	x.mu.Unlock()
	if x.mangle != nil {
		out = x.mangle(out)
	}

	return out, nil
}

func openSession(t *testing.T, rooms int, seed int64) *oracle.Session {
	t.Helper()
	sim, err := oracle.NewSimulator(rooms, oracle.WithSimSeed(seed))
	require.NoError(t, err)
	sess, err := oracle.Open(context.Background(), sim, "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })

	return sess
}

func TestEngine_SolvesSingleRoom(t *testing.T) {
	ctx := context.Background()
	sess := openSession(t, 1, 7)

	eng, err := solver.New(1, solver.DefaultConfig())
	require.NoError(t, err)
	out, err := eng.Solve(ctx, sess)
	require.NoError(t, err)

	require.True(t, out.Complete)
	assert.Nil(t, out.Deficiency)
	require.NoError(t, out.Map.Validate())
	assert.Len(t, out.Map.Rooms, 1)
	assert.LessOrEqual(t, out.State.Round, solver.DefaultMaxRounds)

	ok, err := sess.Guess(ctx, out.Map)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, oracle.Completing, sess.State())
}

func TestEngine_ProducesValidMaps(t *testing.T) {
	for _, tc := range []struct {
		rooms int
		seed  int64
	}{
		{2, 1}, {3, 2}, {4, 3}, {6, 4},
	} {
		sess := openSession(t, tc.rooms, tc.seed)
		eng, err := solver.New(tc.rooms, solver.DefaultConfig())
		require.NoError(t, err)

		out, err := eng.Solve(context.Background(), sess)
		require.NoError(t, err, "rooms=%d", tc.rooms)
		require.NotNil(t, out.Map)
		require.NoError(t, out.Map.Validate(), "rooms=%d", tc.rooms)
		assert.Equal(t, out.Complete, out.Deficiency == nil)
		if out.Complete {
			assert.Len(t, out.Map.Rooms, tc.rooms)
		}
		assert.LessOrEqual(t, out.State.Round, solver.DefaultMaxRounds)
		assert.NotEmpty(t, out.State.Runs)
		assert.Positive(t, sess.Queries())
	}
}

func TestEngine_NeverRepeatsAWalk(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		x := &mapExplorer{m: oracle.RandomMap(6, seed)}
		eng, err := solver.New(6, solver.DefaultConfig())
		require.NoError(t, err)

		out, err := eng.Solve(context.Background(), x)
		require.NoError(t, err, "seed=%d", seed)
		for plan, n := range x.walks {
			assert.Equal(t, 1, n, "seed=%d plan %s", seed, plan)
		}
		assert.Len(t, out.State.Runs, len(x.walks), "seed=%d", seed)
		assert.Equal(t, out.State.Round+1, x.calls, "seed=%d", seed)
	}
}

// solveRandom solves RandomMap(rooms, seed) with the default config and
// reports whether the result is complete. A complete map must match the
// hidden one.
func solveRandom(t *testing.T, rooms int, seed int64) bool {
	t.Helper()
	truth := oracle.RandomMap(rooms, seed)
	eng, err := solver.New(rooms, solver.DefaultConfig())
	require.NoError(t, err)

	out, err := eng.Solve(context.Background(), &mapExplorer{m: truth})
	require.NoError(t, err, "rooms=%d seed=%d", rooms, seed)
	require.NoError(t, out.Map.Validate(), "rooms=%d seed=%d", rooms, seed)
	if !out.Complete {
		return false
	}
	same, err := oracle.Equivalent(truth, out.Map)
	require.NoError(t, err)
	require.True(t, same, "rooms=%d seed=%d: complete map differs from the labyrinth", rooms, seed)

	return true
}

func TestEngine_SmallLabyrinthsSolveExactly(t *testing.T) {
	solved := 0
	for seed := int64(1); seed <= 20; seed++ {
		if solveRandom(t, 3, seed) {
			solved++
		}
	}
	t.Logf("rooms=3 solved %d/20", solved)
	assert.GreaterOrEqual(t, solved, 16)
}

func TestEngine_CompleteMapsAreEquivalent(t *testing.T) {
	if testing.Short() {
		t.Skip("solves many labyrinths")
	}
	for _, rooms := range []int{6, 12} {
		solved := 0
		for seed := int64(1); seed <= 10; seed++ {
			if solveRandom(t, rooms, seed) {
				solved++
			}
		}
		t.Logf("rooms=%d solved %d/10", rooms, solved)
	}
}

func TestEngine_ResumeContinuesFromState(t *testing.T) {
	ctx := context.Background()
	sess := openSession(t, 1, 11)

	cfg := solver.DefaultConfig()
	cfg.MaxRounds = 0
	first, err := solver.New(1, cfg)
	require.NoError(t, err)
	partial, err := first.Solve(ctx, sess)
	require.NoError(t, err)

	// One covering walk over a single room never repeats a signature.
	require.False(t, partial.Complete)
	require.NotNil(t, partial.Deficiency)
	assert.Equal(t, finalize.KindIdentification, partial.Deficiency.Kind)
	assert.ErrorIs(t, partial.Deficiency, finalize.ErrNeedMoreIdentification)
	require.NoError(t, partial.Map.Validate())
	assert.Zero(t, partial.State.Round)
	require.Len(t, partial.State.Runs, 1)

	second, err := solver.New(1, solver.DefaultConfig())
	require.NoError(t, err)
	out, err := second.Resume(ctx, sess, partial.State)
	require.NoError(t, err)
	assert.True(t, out.Complete)
	assert.Positive(t, out.State.Round)
	assert.Greater(t, len(out.State.Runs), 1)

	assert.Len(t, partial.State.Runs, 1, "resume must not touch its input")
	assert.Zero(t, partial.State.Round)
}

func TestEngine_ResumeWithoutState(t *testing.T) {
	eng, err := solver.New(2, solver.DefaultConfig())
	require.NoError(t, err)
	x := &mapExplorer{m: oracle.RandomMap(2, 1)}

	_, err = eng.Resume(context.Background(), x, nil)
	require.ErrorIs(t, err, solver.ErrNoState)
	_, err = eng.Resume(context.Background(), x, &solver.State{})
	require.ErrorIs(t, err, solver.ErrNoState)
	assert.Zero(t, x.calls)
}

func TestEngine_RejectsMisalignedResponses(t *testing.T) {
	eng, err := solver.New(3, solver.DefaultConfig())
	require.NoError(t, err)

	dropOne := &mapExplorer{m: oracle.RandomMap(3, 2), mangle: func(r [][]core.Label) [][]core.Label {
		return r[:len(r)-1]
	}}
	_, err = eng.Solve(context.Background(), dropOne)
	require.ErrorIs(t, err, solver.ErrBatchMismatch)

	shorten := &mapExplorer{m: oracle.RandomMap(3, 2), mangle: func(r [][]core.Label) [][]core.Label {
		r[0] = r[0][:len(r[0])-1]
		return r
	}}
	_, err = eng.Solve(context.Background(), shorten)
	require.ErrorIs(t, err, solver.ErrResponseLength)
}

func TestEngine_CapsPlansPerCall(t *testing.T) {
	cfg := solver.DefaultConfig()
	cfg.MaxPlans = 5
	eng, err := solver.New(4, cfg)
	require.NoError(t, err)

	x := &mapExplorer{m: oracle.RandomMap(4, 9)}
	out, err := eng.Solve(context.Background(), x)
	require.NoError(t, err)
	require.NoError(t, out.Map.Validate())
	assert.LessOrEqual(t, x.largest, 5)
	assert.Equal(t, out.State.Round+1, x.calls)
}

func TestEngine_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng, err := solver.New(2, solver.DefaultConfig())
	require.NoError(t, err)
	_, err = eng.Solve(ctx, &mapExplorer{m: oracle.RandomMap(2, 3)})
	require.ErrorIs(t, err, context.Canceled)
}

func TestNew_Rejects(t *testing.T) {
	_, err := solver.New(0, solver.DefaultConfig())
	require.ErrorIs(t, err, solver.ErrTooFewRooms)

	cfg := solver.DefaultConfig()
	cfg.Budget.Markers = 5
	_, err = solver.New(3, cfg)
	require.ErrorIs(t, err, solver.ErrInvalidConfig)
}

func TestState_CloneIsIndependent(t *testing.T) {
	st := &solver.State{
		Runs:   []core.Run{{Walk: []core.Door{0}, Trace: []core.Label{0, 1}}},
		Forced: [][2]int{{0, 1}},
		Hits:   []solver.Link{{From: 1, Door: 2, To: 0}},
		Round:  3,
	}
	c := st.Clone()
	c.Forced = append(c.Forced, [2]int{2, 3})
	c.Hits[0].Door = 5
	c.Runs = append(c.Runs, core.Run{})

	assert.Len(t, st.Forced, 1)
	assert.Equal(t, core.Door(2), st.Hits[0].Door)
	assert.Len(t, st.Runs, 1)
	assert.Equal(t, 3, c.Round)
}
