// SPDX-License-Identifier: MIT

package merge

import (
	"fmt"

	"github.com/katalvlaran/labyrinth/core"
)

// Result is an exported clustering. It is never mutated once returned;
// derived results are produced as copies.
type Result struct {
	// TimeToCluster maps every time-step to a dense cluster id.
	TimeToCluster []int
	// Labels holds one label per cluster.
	Labels []core.Label
	// Transitions holds cluster destinations per door, NoRoom if unknown.
	Transitions core.Transitions
	// Representatives holds the smallest time-step of each cluster.
	Representatives []int
	// RunStarts holds the first time-step of each run.
	RunStarts []int
	Stats     Stats
}

// Count is the number of clusters.
func (r *Result) Count() int { return len(r.Labels) }

// Start is the cluster of time-step 0.
func (r *Result) Start() int { return r.TimeToCluster[0] }

// RunOf returns the index of the run containing time-step t.
func (r *Result) RunOf(t int) int {
	run := 0
	for i, s := range r.RunStarts {
		if s <= t {
			run = i
		}
	}

	return run
}

// Export compacts the forest and re-derives every table from the runs.
func (s *State) Export() (*Result, error) {
	n := len(s.parent)
	dense := make(map[int]int)
	res := &Result{
		TimeToCluster: make([]int, n),
		RunStarts:     s.RunStarts(),
	}
	for t := range n {
		root := s.Find(t)
		id, ok := dense[root]
		if !ok {
			id = len(res.Labels)
			dense[root] = id
			res.Labels = append(res.Labels, s.label[root])
			res.Representatives = append(res.Representatives, t)
		}
		if s.label[t] != res.Labels[id] {
			return nil, fmt.Errorf("%w: time-step %d has %d, cluster %d has %d",
				ErrLabelMismatch, t, s.label[t], id, res.Labels[id])
		}
		res.TimeToCluster[t] = id
	}

	res.Transitions = make(core.Transitions, len(res.Labels))
	for i := range res.Transitions {
		res.Transitions[i] = core.EmptyPorts()
	}
	for t := range n {
		if s.move[t] < 0 {
			continue
		}
		c, d, next := res.TimeToCluster[t], s.move[t], res.TimeToCluster[t+1]
		switch cur := res.Transitions[c][d]; {
		case cur == core.NoRoom:
			res.Transitions[c][d] = next
		case cur != next:
			return nil, fmt.Errorf("%w: cluster %d door %d leads to %d and %d",
				ErrTransitionMismatch, c, d, cur, next)
		}
	}

	for root, id := range dense {
		for d, v := range s.table[root] {
			want := core.NoRoom
			if v != core.NoRoom {
				want = res.TimeToCluster[v]
			}
			if res.Transitions[id][d] != want {
				return nil, fmt.Errorf("%w: cluster %d door %d: walk %d, forest %d",
					ErrTransitionMismatch, id, d, res.Transitions[id][d], want)
			}
		}
	}

	return res, nil
}

// WithEdges returns a copy of r with each edge recorded where its door is
// still unresolved, and the number of edges applied.
func (r *Result) WithEdges(edges []Edge) (*Result, int) {
	out := *r
	out.Transitions = r.Transitions.Clone()
	applied := 0
	for _, e := range edges {
		if e.From < 0 || e.From >= len(out.Transitions) || e.To < 0 || e.To >= len(out.Transitions) {
			continue
		}
		if out.Transitions[e.From][e.Door] == core.NoRoom {
			out.Transitions[e.From][e.Door] = e.To
			applied++
		}
	}

	return &out, applied
}
