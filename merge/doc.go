// SPDX-License-Identifier: MIT

// Package merge clusters time-steps into rooms with a rollback-capable
// union-find (Phase C).
//
// Model
//
//   - Every time-step of every run is a node of a flat, array-backed forest
//     (parent, size, label and a 6-entry transition table per node).
//   - Tables are seeded from the runs: time t, door W[t] → t+1. Nothing is
//     ever recorded across a run boundary.
//   - Every edit goes through an append-only change log. Snapshot returns
//     the log length; Rollback pops and undoes entries back to it.
//
// Closure merge (State.Attempt)
//
//	push (a,b)
//	while stack not empty:
//	    x, y := Find(pop)
//	    if x == y: continue
//	    if label[x] != label[y]: rollback to start, return false
//	    union by size, smaller side absorbed
//	    for each door: both sides resolved and different → push the pair
//	                   only the absorbed side resolved   → copy to survivor
//	if any registered separation became joined: rollback, return false
//	return true
//
// An attempt either commits with every consequence it forces or leaves the
// structure exactly as it was. Find does no path compression, so undoing a
// union only needs the recorded parent, size and table edits.
//
// Driving loop (Merge): candidates are tried in score order until the live
// cluster count reaches the target or candidates run out. Rejections are
// counted and skipped.
//
// Export compacts roots to dense cluster ids in first-seen time-step order,
// re-derives labels and transition tables by re-scanning the runs, and fails
// with ErrLabelMismatch or ErrTransitionMismatch if that disagrees with the
// union-find.
//
// Complexity: Find is O(log n) thanks to union by size. An attempt costs
// O(k log n) for k forced unions plus O(s) separation checks.
package merge
