// SPDX-License-Identifier: MIT

package merge

import (
	"fmt"

	"github.com/katalvlaran/labyrinth/core"
)

// State is the rollback union-find over every time-step of a set of runs.
// It is single-writer; callers serialize access.
type State struct {
	parent []int
	size   []int
	label  []core.Label
	table  []core.Ports
	comps  int
	log    []Change

	// move[t] is the door taken at t, or -1 on the last step of a run.
	move   []int8
	starts []int
	seps   [][2]int
}

// NewState lays the runs out back to back and seeds each node's table
// from its own run only.
func NewState(runs ...core.Run) (*State, error) {
	n := 0
	for i, r := range runs {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("merge: run %d: %w", i, err)
		}
		n += r.Steps()
	}
	if n == 0 {
		return nil, ErrNoRuns
	}

	s := &State{
		parent: make([]int, n),
		size:   make([]int, n),
		label:  make([]core.Label, n),
		table:  make([]core.Ports, n),
		move:   make([]int8, n),
		starts: make([]int, 0, len(runs)),
		comps:  n,
	}
	off := 0
	for _, r := range runs {
		s.starts = append(s.starts, off)
		for t, l := range r.Trace {
			v := off + t
			s.parent[v] = v
			s.size[v] = 1
			s.label[v] = l
			s.table[v] = core.EmptyPorts()
			s.move[v] = -1
			if t < len(r.Walk) {
				s.move[v] = int8(r.Walk[t])
				s.table[v][r.Walk[t]] = v + 1
			}
		}
		off += r.Steps()
	}

	return s, nil
}

// Len is the number of time-steps.
func (s *State) Len() int { return len(s.parent) }

// Components is the live cluster count.
func (s *State) Components() int { return s.comps }

// RunStarts returns the first time-step of each run.
func (s *State) RunStarts() []int { return append([]int(nil), s.starts...) }

// Find returns the representative of x. It never compresses paths.
func (s *State) Find(x int) int {
	for s.parent[x] != x {
		x = s.parent[x]
	}

	return x
}

// Same reports whether a and b are in one cluster.
func (s *State) Same(a, b int) bool { return s.Find(a) == s.Find(b) }

// Label returns the label recorded for x's cluster.
func (s *State) Label(x int) core.Label { return s.label[s.Find(x)] }

// Parent returns x's direct parent pointer.
func (s *State) Parent(x int) int { return s.parent[x] }

// Table returns the transition table of x's cluster. Entries are
// time-steps; resolve them with Find.
func (s *State) Table(x int) core.Ports { return s.table[s.Find(x)] }

// Separate forbids a and b from ever sharing a cluster. It reports false
// when they already do.
func (s *State) Separate(a, b int) (bool, error) {
	if err := s.check(a, b); err != nil {
		return false, err
	}
	if s.Same(a, b) {
		return false, nil
	}
	s.seps = append(s.seps, [2]int{a, b})

	return true, nil
}

// Snapshot returns a mark for Rollback.
func (s *State) Snapshot() int { return len(s.log) }

// Changes returns the log entries recorded since mark.
func (s *State) Changes(mark int) []Change {
	return append([]Change(nil), s.log[mark:]...)
}

// Rollback undoes every change recorded after mark, newest first.
func (s *State) Rollback(mark int) {
	for i := len(s.log) - 1; i >= mark; i-- {
		c := s.log[i]
		switch c.Kind {
		case ChangeParent:
			s.parent[c.Node] = c.Prev
		case ChangeSize:
			s.size[c.Node] = c.Prev
		case ChangeTable:
			s.table[c.Node][c.Door] = c.Prev
		case ChangeComponents:
			s.comps = c.Prev
		}
	}
	s.log = s.log[:mark]
}

func (s *State) setParent(x, p int) {
	s.log = append(s.log, Change{Kind: ChangeParent, Node: x, Prev: s.parent[x]})
	s.parent[x] = p
}

func (s *State) setSize(x, n int) {
	s.log = append(s.log, Change{Kind: ChangeSize, Node: x, Prev: s.size[x]})
	s.size[x] = n
}

func (s *State) setTable(x int, d core.Door, v int) {
	s.log = append(s.log, Change{Kind: ChangeTable, Node: x, Door: d, Prev: s.table[x][d]})
	s.table[x][d] = v
}

func (s *State) setComps(n int) {
	s.log = append(s.log, Change{Kind: ChangeComponents, Prev: s.comps})
	s.comps = n
}

func (s *State) check(nodes ...int) error {
	for _, v := range nodes {
		if v < 0 || v >= len(s.parent) {
			return fmt.Errorf("%w: %d of %d", ErrNodeOutOfRange, v, len(s.parent))
		}
	}

	return nil
}
