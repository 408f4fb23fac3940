// SPDX-License-Identifier: MIT

package finalize

import (
	"fmt"

	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/merge"
)

// Check runs the three completeness gates. It returns nil or a
// *Deficiency.
func Check(res *merge.Result, target int) error {
	if res == nil {
		return ErrNilResult
	}
	if n := res.Count(); n != target {
		return identification(n, target)
	}

	accounts := res.Accounts()
	for v, acc := range accounts {
		if got := acc.Accounted(); got != core.DoorCount {
			return &Deficiency{Kind: KindExploration, Node: v, Neighbor: core.NoRoom, Have: got, Want: core.DoorCount}
		}
	}
	for v, acc := range accounts {
		if len(acc.Shortfalls) > 0 {
			sf := acc.Shortfalls[0]
			return &Deficiency{
				Kind: KindReverse, Node: v, Neighbor: sf.Neighbor,
				Shortfall: sf.Missing(), Have: sf.Have, Want: sf.Need,
			}
		}
	}

	return nil
}

// Finalize checks res and, when complete, pairs every door into a map
// whose starting room is the cluster of time-step 0.
func Finalize(res *merge.Result, target int) (*core.Map, error) {
	if err := Check(res, target); err != nil {
		return nil, err
	}

	p := newPairing(res)
	for u := range res.Transitions {
		for d := range core.Door(core.DoorCount) {
			if p.done[u][d] {
				continue
			}
			if !p.matchReturn(u, d) {
				return nil, fmt.Errorf("%w: room %d door %d", ErrDanglingPort, u, d)
			}
		}
	}

	m := p.toMap(res)
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

type pairing struct {
	t     core.Transitions
	done  [][core.DoorCount]bool
	conns []core.Connection
}

func newPairing(res *merge.Result) *pairing {
	return &pairing{t: res.Transitions, done: make([][core.DoorCount]bool, len(res.Transitions))}
}

func (p *pairing) link(u int, d core.Door, v int, j core.Door) {
	p.done[u][d], p.done[v][j] = true, true
	p.conns = append(p.conns, core.Connection{
		From: core.Endpoint{Room: u, Door: int(d)},
		To:   core.Endpoint{Room: v, Door: int(j)},
	})
}

// matchReturn pairs (u,d) with the first unpaired door of its destination
// that leads back to u. A loop door falls back to itself.
func (p *pairing) matchReturn(u int, d core.Door) bool {
	v := p.t[u][d]
	if v == core.NoRoom {
		return false
	}
	for j := range core.Door(core.DoorCount) {
		if p.done[v][j] || (v == u && j == d) || p.t[v][j] != u {
			continue
		}
		p.link(u, d, v, j)
		return true
	}
	if v == u {
		p.link(u, d, u, d)
		return true
	}

	return false
}

func (p *pairing) toMap(res *merge.Result) *core.Map {
	m := &core.Map{
		Rooms:        make([]int, len(res.Labels)),
		StartingRoom: res.Start(),
		Connections:  p.conns,
	}
	for i, l := range res.Labels {
		m.Rooms[i] = int(l)
	}

	return m
}
