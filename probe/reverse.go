// SPDX-License-Identifier: MIT

package probe

import (
	"context"
	"slices"

	"github.com/katalvlaran/labyrinth/bfs"
	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/merge"
)

// DefaultMaxProbes caps reverse-port plans per round.
const DefaultMaxProbes = 64

// ReverseTask asks whether door J of room V leads back to U, where
// U -D-> V is known.
type ReverseTask struct {
	U, V  int
	D, J  core.Door
	Route []core.Door
	free  int
}

// ReverseResult is a resolved task.
type ReverseResult struct {
	Task    ReverseTask
	Outcome Outcome
}

// Edge returns the hit as a transition V -J-> U.
func (r ReverseResult) Edge() merge.Edge {
	return merge.Edge{From: r.Task.V, Door: r.Task.J, To: r.Task.U}
}

// ReverseBatch holds the scheduled tasks and their plans, one per task.
type ReverseBatch struct {
	Tasks  []ReverseTask
	Probes []Probe
}

// Truncate keeps the first n probes.
func (b *ReverseBatch) Truncate(n int) {
	if n >= 0 && n < len(b.Probes) {
		b.Tasks, b.Probes = b.Tasks[:n], b.Probes[:n]
	}
}

// PlanReverse builds probes for every shortfall in res. skip reports
// (v, j, u) triples already ruled out.
func PlanReverse(ctx context.Context, res *merge.Result, budget Budget, maxProbes int,
	skip func(v int, j core.Door, u int) bool) (*ReverseBatch, error) {
	if res == nil {
		return nil, ErrNilResult
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}
	tree, err := bfs.BFS(res.Transitions, res.Start(), bfs.WithContext(ctx), budget.routeDepth(reverseActions))
	if err != nil {
		return nil, err
	}

	var tasks []ReverseTask
	for v, acc := range res.Accounts() {
		free := res.Transitions[v].Unknown()
		for _, sf := range acc.Shortfalls {
			u := sf.Neighbor
			d := slices.Index(res.Transitions[u][:], v)
			route, err := tree.PathTo(u)
			if d < 0 || err != nil {
				continue
			}
			var js []core.Door
			for _, j := range free {
				if skip == nil || !skip(v, j, u) {
					js = append(js, j)
				}
			}
			for _, j := range js {
				tasks = append(tasks, ReverseTask{U: u, V: v, D: core.Door(d), J: j, Route: route, free: len(js)})
			}
		}
	}
	slices.SortStableFunc(tasks, func(x, y ReverseTask) int {
		if x.free != y.free {
			return x.free - y.free
		}
		return len(x.Route) - len(y.Route)
	})

	batch := &ReverseBatch{}
	for _, t := range tasks {
		if (maxProbes > 0 && len(batch.Tasks) >= maxProbes) || budget.full(len(batch.Probes)) {
			break
		}
		p := reversePlan(t, res.Labels, len(batch.Tasks))
		if p.Plan.Actions() > budget.Limit || p.Plan.Markers() > budget.Markers {
			continue
		}
		batch.Tasks = append(batch.Tasks, t)
		batch.Probes = append(batch.Probes, p)
	}

	return batch, nil
}

// reverseActions is the length of a reverse plan after its route.
const reverseActions = 5

// reversePlan marks u, crosses d, marks v, crosses j and reads twice.
// Self-loops never fall short (the loop door is its own return), so u != v.
func reversePlan(t ReverseTask, labels []core.Label, task int) Probe {
	var b builder
	b.move(t.Route...)
	cu := labels[t.U].Next()
	cv := labels[t.V].Next()
	if cv == cu {
		cv = cv.Next()
	}
	mu := b.mark(cu)
	b.move(t.D)
	mv := b.mark(cv)
	b.move(t.J)
	b.watch(mu, cu, TagReverseOrigin, task)
	b.move(t.D)
	b.watch(mv, cv, TagReverseTarget, task)

	return b.probe()
}

// Resolve evaluates every task against the batch responses.
func (b *ReverseBatch) Resolve(responses [][]core.Label) ([]ReverseResult, error) {
	if err := checkResponses(b.Probes, responses); err != nil {
		return nil, err
	}
	out := make([]ReverseResult, len(b.Tasks))
	for i, t := range b.Tasks {
		var os []Outcome
		for _, w := range b.Probes[i].Watches {
			os = append(os, w.Evaluate(responses[i]))
		}
		out[i] = ReverseResult{Task: t, Outcome: Combine(os...)}
	}

	return out, nil
}
