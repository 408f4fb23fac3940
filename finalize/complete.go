// SPDX-License-Identifier: MIT

package finalize

import (
	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/merge"
)

// Complete builds a best-effort map from whatever res knows. Every door
// ends up in exactly one connection; only the matched part is guaranteed
// to agree with res.
func Complete(res *merge.Result) *core.Map {
	if res == nil || res.Count() == 0 {
		return &core.Map{}
	}
	p := newPairing(res)
	each := func(fn func(u int, d core.Door)) {
		for u := range p.t {
			for d := range core.Door(core.DoorCount) {
				if !p.done[u][d] {
					fn(u, d)
				}
			}
		}
	}

	each(func(u int, d core.Door) { p.matchReturn(u, d) })
	// a resolved door takes a still-unknown door of its destination
	each(func(u int, d core.Door) {
		v := p.t[u][d]
		if v == core.NoRoom {
			return
		}
		for j := range core.Door(core.DoorCount) {
			if !p.done[v][j] && p.t[v][j] == core.NoRoom {
				p.link(u, d, v, j)
				return
			}
		}
	})

	var rest []core.Endpoint
	each(func(u int, d core.Door) { rest = append(rest, core.Endpoint{Room: u, Door: int(d)}) })
	for i := 0; i+1 < len(rest); i += 2 {
		a, b := rest[i], rest[i+1]
		p.link(a.Room, core.Door(a.Door), b.Room, core.Door(b.Door))
	}
	if len(rest)%2 == 1 {
		last := rest[len(rest)-1]
		p.link(last.Room, core.Door(last.Door), last.Room, core.Door(last.Door))
	}

	return p.toMap(res)
}
