// SPDX-License-Identifier: MIT

package merge

import "github.com/katalvlaran/labyrinth/core"

// Attempt asserts that a and b are the same room and propagates every
// identity that assertion forces. On a label contradiction, or when a
// separation would be violated, the state is rolled back and false is
// returned. Out-of-range nodes are rejected the same way.
func (s *State) Attempt(a, b int) bool {
	if s.check(a, b) != nil {
		return false
	}
	mark := s.Snapshot()
	// pending identities; each union may force more through shared doors
	stack := [][2]int{{a, b}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, y := s.Find(top[0]), s.Find(top[1])
		if x == y {
			continue
		}
		// rooms with different labels can never merge
		if s.label[x] != s.label[y] {
			s.Rollback(mark)
			return false
		}
		// x survives
		if s.size[x] < s.size[y] {
			x, y = y, x
		}
		tx, ty := s.table[x], s.table[y]

		s.setParent(y, x)
		s.setSize(x, s.size[x]+s.size[y])
		s.setComps(s.comps - 1)

		// fold y's doors into x: both known means the targets are one room,
		// only y known copies the edge over
		for d := range core.DoorCount {
			px, py := tx[d], ty[d]
			switch {
			case px != core.NoRoom && py != core.NoRoom:
				if s.Find(px) != s.Find(py) {
					stack = append(stack, [2]int{px, py})
				}
			case py != core.NoRoom:
				if cur := s.table[x][d]; cur == core.NoRoom {
					s.setTable(x, core.Door(d), py)
				} else if s.Find(cur) != s.Find(py) {
					stack = append(stack, [2]int{cur, py})
				}
			}
		}
	}

	// a forced merge may have joined a separated pair
	for _, p := range s.seps {
		if s.Find(p[0]) == s.Find(p[1]) {
			s.Rollback(mark)
			return false
		}
	}

	return true
}
