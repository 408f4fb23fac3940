// SPDX-License-Identifier: MIT

// Package probe synthesizes follow-up plans that resolve what passive
// clustering could not, and interprets the oracle's answers.
//
// Three planners share one vocabulary:
//
//   - Identify: for disjoint cluster pairs that candidate evidence says
//     might be one room, pick two independent witness pairs (s, r), s < r,
//     with s in one cluster and r in the other. Each witness becomes a plan
//     that replays the base run, writes a color at s and reads it back at r.
//     Several tasks share a plan, one color each, so at most Budget.Markers
//     markers are ever in flight; tasks that cannot be colored or do not fit
//     move to a later plan, and what is left over is dropped.
//   - Explore: for rooms with unaccounted doors, route to the room over the
//     resolved transition graph (bfs), take the unknown door, and append a
//     short deterministic tail for extra signature context. Tails shrink to
//     fit the budget. Responses become new runs.
//   - Reverse: for an edge u -d-> v whose return is unknown, test each free
//     door j of v: walk to u, mark it, cross d, mark v, cross j, read, cross
//     d, read. Both reads must match for a hit.
//
// Watches
//
//	A Watch is (response position, expected color, tag, task). Evaluate
//	yields Confirmed when the label matches, Refuted when it does not and no
//	other marker was written between the color's write and the read
//	(Exclusive), and Inconclusive otherwise or when the position lies beyond
//	a truncated response. Inconclusive is never evidence.
//
// Soundness notes
//
//	Each color is written at most once per plan, and an identification color
//	differs from the label recorded at its read position, so a matching read
//	can only come from the marked room.
//
//	Reverse hits are weaker. Both reads compare against colors that are
//	also valid labels, so a room behind j whose own label equals u's color,
//	whose door d in turn reaches a room labelled like v's color, passes both
//	watches. A hit is therefore strong evidence, not proof; a wrong hit
//	surfaces later as a finalizer deficiency or a rejected guess.
package probe
