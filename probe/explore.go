// SPDX-License-Identifier: MIT

package probe

import (
	"context"

	"github.com/katalvlaran/labyrinth/bfs"
	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/merge"
)

// ExploreMode selects which unknown doors get probed.
type ExploreMode uint8

const (
	// Minimal probes only as many doors as are unaccounted for.
	Minimal ExploreMode = iota
	// AllUnknown probes every unresolved door.
	AllUnknown
)

// Exploration defaults.
const (
	DefaultTailMin  = 2
	DefaultTailMax  = 10
	DefaultTailSeed = uint64(0xA1B2C3D4E5F67788)
)

// ExploreOptions tunes the unknown-port prober.
type ExploreOptions struct {
	Mode    ExploreMode
	TailMin int
	TailMax int
	Seed    uint64
}

// DefaultExploreOptions returns Minimal mode with a 2..10 tail.
func DefaultExploreOptions() ExploreOptions {
	return ExploreOptions{Mode: Minimal, TailMin: DefaultTailMin, TailMax: DefaultTailMax, Seed: DefaultTailSeed}
}

// PortTask is one unknown door to cross.
type PortTask struct {
	Room  int
	Door  core.Door
	Route []core.Door
	Tail  []core.Door
}

// ExploreBatch holds marker-free plans whose responses are new runs.
type ExploreBatch struct {
	Tasks  []PortTask
	Probes []Probe
}

// Runs converts the responses into runs, one per probe.
func (b *ExploreBatch) Runs(responses [][]core.Label) ([]core.Run, error) {
	if err := checkResponses(b.Probes, responses); err != nil {
		return nil, err
	}
	out := make([]core.Run, 0, len(responses))
	for i, p := range b.Probes {
		r, err := p.Plan.Run(responses[i])
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, nil
}

// Truncate keeps the first n probes.
func (b *ExploreBatch) Truncate(n int) {
	if n >= 0 && n < len(b.Probes) {
		b.Tasks, b.Probes = b.Tasks[:n], b.Probes[:n]
	}
}

// Filter keeps the probes whose plan keep accepts, together with their
// tasks, and returns how many were dropped.
func (b *ExploreBatch) Filter(keep func(core.Plan) bool) int {
	n := 0
	for i, p := range b.Probes {
		if keep(p.Plan) {
			b.Tasks[n], b.Probes[n] = b.Tasks[i], p
			n++
		}
	}
	dropped := len(b.Probes) - n
	b.Tasks, b.Probes = b.Tasks[:n], b.Probes[:n]

	return dropped
}

// PlanExplore routes to every room with unaccounted doors, nearest first.
func PlanExplore(ctx context.Context, res *merge.Result, budget Budget, opts ExploreOptions) (*ExploreBatch, error) {
	if res == nil {
		return nil, ErrNilResult
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}
	tree, err := bfs.BFS(res.Transitions, res.Start(), bfs.WithContext(ctx), budget.routeDepth(1))
	if err != nil {
		return nil, err
	}
	accounts := res.Accounts()

	batch := &ExploreBatch{}
	for _, v := range tree.Order {
		unknown := res.Transitions[v].Unknown()
		if len(unknown) == 0 {
			continue
		}
		if opts.Mode == Minimal {
			need := core.DoorCount - accounts[v].Accounted()
			if need <= 0 {
				continue
			}
			unknown = unknown[:min(need, len(unknown))]
		}
		route, err := tree.PathTo(v)
		if err != nil {
			continue
		}
		for _, d := range unknown {
			if budget.full(len(batch.Probes)) {
				return batch, nil
			}
			cost := len(route) + 1
			if cost > budget.Limit {
				continue
			}
			task := PortTask{Room: v, Door: d, Route: route, Tail: tail(v, d, min(opts.TailMax, budget.Limit-cost), opts)}

			var b builder
			b.move(route...)
			b.move(d)
			b.move(task.Tail...)
			batch.Tasks = append(batch.Tasks, task)
			batch.Probes = append(batch.Probes, b.probe())
		}
	}

	return batch, nil
}

// tail cycles through doors from a position derived from room, door and
// seed. Lengths under TailMin yield no tail.
func tail(room int, d core.Door, n int, opts ExploreOptions) []core.Door {
	if n < max(opts.TailMin, 1) {
		return nil
	}
	rot := (uint64(room) ^ uint64(d)<<8 ^ opts.Seed) % core.DoorCount
	out := make([]core.Door, n)
	for i := range out {
		out[i] = core.Door((rot + uint64(i)) % core.DoorCount)
	}

	return out
}
