// SPDX-License-Identifier: MIT

package merge

import "github.com/katalvlaran/labyrinth/core"

// Shortfall names an incoming neighbor whose edges outnumber the known
// return doors.
type Shortfall struct {
	Neighbor int
	Need     int // incoming edges from Neighbor
	Have     int // doors known to lead back to Neighbor
}

// Missing is Need - Have.
func (s Shortfall) Missing() int { return s.Need - s.Have }

// Account summarizes what is known about one cluster's six doors.
type Account struct {
	// Out counts resolved outbound doors.
	Out int
	// Stubs counts incoming edges with no matching return door; each must
	// land on a distinct unresolved door.
	Stubs int
	// Shortfalls lists neighbors with unmatched incoming edges, ascending.
	Shortfalls []Shortfall
}

// Accounted is the number of doors whose role is known.
func (a Account) Accounted() int { return a.Out + a.Stubs }

// Accounts tallies every cluster. Self-loops count toward both sides of
// the same cluster.
func Accounts(t core.Transitions) []Account {
	n := len(t)
	incoming := make([]map[int]int, n)
	for u := range t {
		for _, v := range t[u] {
			if v == core.NoRoom {
				continue
			}
			if incoming[v] == nil {
				incoming[v] = make(map[int]int)
			}
			incoming[v][u]++
		}
	}

	out := make([]Account, n)
	for v := range t {
		acc := Account{Out: t[v].Known()}
		have := make(map[int]int, core.DoorCount)
		for _, u := range t[v] {
			if u != core.NoRoom {
				have[u]++
			}
		}
		for u := range n {
			need := incoming[v][u]
			if need > have[u] {
				acc.Stubs += need - have[u]
				acc.Shortfalls = append(acc.Shortfalls, Shortfall{Neighbor: u, Need: need, Have: have[u]})
			}
		}
		out[v] = acc
	}

	return out
}

// Accounts tallies the result's clusters.
func (r *Result) Accounts() []Account { return Accounts(r.Transitions) }
