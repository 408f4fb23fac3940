// SPDX-License-Identifier: MIT

// Package bfs runs breadth-first search over a door-labelled transition
// table, returning hop distances, parent links with the door used, and visit
// order. Routes to rooms are reconstructed as door sequences ready to be
// replayed in a plan.
//
// What
//
//   - Explore rooms in non-decreasing hop count from a start room.
//   - Result holds:
//   - Order: visit sequence
//   - Depth: hops from start, -1 if unreached
//   - Parent/Via: predecessor room and the door taken from it
//   - MaxDepth limit (d>0) or explicit "no limit" (d==0); planners pass
//     the longest route their action budget can afford.
//
// Determinism
//
//	Exits are scanned in door order 0..5 and unresolved entries (NoRoom) are
//	skipped, so routes are reproducible: among shortest routes, the one with
//	the lexicographically smallest door sequence along BFS discovery wins.
//
// Complexity (R = rooms)
//
//   - Time:   O(6R)
//   - Memory: O(R)
//
// Usage
//
//	res, err := bfs.BFS(table, start, bfs.WithContext(ctx))
//	if err != nil {
//	    // ErrStartNotFound, ErrOptionViolation or a context error
//	}
//	doors, err := res.PathTo(target)
//
// Options
//
//   - DefaultOptions(): background Context, no depth limit.
//   - WithContext(ctx):       set a custom context for cancellation.
//   - WithMaxDepth(d):        stop exploring beyond depth d (>0).
//
// Errors
//
//   - ErrStartNotFound    if the start room is outside the table.
//   - ErrOptionViolation  if an Option is invalid (e.g. negative MaxDepth).
//   - ErrNoPath           from PathTo when the target was not reached.
package bfs
