// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"errors"
	"slices"

	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/finalize"
	"github.com/katalvlaran/labyrinth/merge"
)

// Sentinel errors.
var (
	// ErrBatchMismatch indicates a response count that differs from the
	// plan count.
	ErrBatchMismatch = errors.New("solver: response count does not match plan count")

	// ErrResponseLength indicates a response whose length is not the plan's
	// action count plus one.
	ErrResponseLength = errors.New("solver: response length mismatch")

	// ErrInvalidConfig indicates an unusable Config.
	ErrInvalidConfig = errors.New("solver: invalid config")

	// ErrTooFewRooms indicates a non-positive room count.
	ErrTooFewRooms = errors.New("solver: room count must be >= 1")

	// ErrNoState indicates Resume without runs.
	ErrNoState = errors.New("solver: state has no runs")
)

// Explorer runs a batch of plans and returns one response per plan, in
// order. oracle.Session satisfies it.
type Explorer interface {
	Explore(ctx context.Context, plans []core.Plan) ([][]core.Label, error)
}

// Link is a door fact between time-steps: from the room at time-step From,
// door Door leads (or, in State.Misses, does not lead) to the room at
// time-step To.
type Link struct {
	From int
	Door core.Door
	To   int
}

// State is everything learned so far. Facts are kept on time-steps, which
// stay stable while cluster ids change from one rebuild to the next.
type State struct {
	Runs []core.Run
	// Forced holds confirmed identities.
	Forced [][2]int
	// Separations holds refuted identities.
	Separations [][2]int
	// Hits holds confirmed return doors.
	Hits []Link
	// Misses holds refuted return doors.
	Misses []Link
	// Result is the clustering of the last completed rebuild.
	Result *merge.Result
	// Round counts probing rounds after the covering walk.
	Round int
}

// Clone returns a copy that shares no slices with s. Result is shared; it
// is never mutated.
func (s *State) Clone() *State {
	return &State{
		Runs:        slices.Clone(s.Runs),
		Forced:      slices.Clone(s.Forced),
		Separations: slices.Clone(s.Separations),
		Hits:        slices.Clone(s.Hits),
		Misses:      slices.Clone(s.Misses),
		Result:      s.Result,
		Round:       s.Round,
	}
}

// Outcome is the result of Solve or Resume.
type Outcome struct {
	// Map is the finalized map, or a best-effort completion when Complete
	// is false.
	Map *core.Map
	// Complete reports that every finalizer gate held.
	Complete bool
	// Deficiency is the last failed gate when Complete is false.
	Deficiency *finalize.Deficiency
	// State can be passed to Resume.
	State *State
}
