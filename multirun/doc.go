// SPDX-License-Identifier: MIT

// Package multirun lifts signature indexing, candidate scoring and merging
// over several runs at once.
//
// Runs are laid out back to back: run i occupies time-steps
// [Offsets[i], Offsets[i] + len(Trace_i)). Contexts and transitions are only
// ever taken inside one run's span, candidate universes are summed over
// runs, and a time-step in one run may be merged with a time-step of any
// other run. New runs from later probing rounds simply extend the slice.
//
// Build also accepts externally established facts as time-step pairs:
// forced identities (injected as top-score candidates) and separations
// (pairs the merge must never join).
package multirun
