// SPDX-License-Identifier: MIT

// Package candidate turns shared signature buckets into scored pairs of
// time-steps that plausibly denote the same room (Phase B).
//
// Scoring: a bucket of size m in a universe of size U adds
//
//	weight(kind) · idf(U, m),   idf(U, m) = ln(1 + scale · max(U/m, 1)) ^ power
//
// to every pair (a, b), a < b, inside it. Rare shared contexts weigh more.
// Pairs whose time-steps carry different labels are discarded. Scores
// accumulate across kinds; per-kind hit counts are kept for diagnostics.
//
// Selection: a pair survives the per-time-step cap if it ranks in the top
// PerNodeCap pairs of either endpoint. The output is sorted by score
// descending, ties broken by (A, B) ascending, and optionally truncated to
// MaxPairs.
//
// Defaults: weights f1=1 b1=1 f2=4 b2=4 mix=3, scale 1.2, power 1.2,
// PerNodeCap 64, MaxPairs unlimited, MinScore 0.
//
// Errors
//
//   - ErrIndexNil          nil index.
//   - ErrNotSealed         index not sealed.
//   - ErrTraceTooShort     a bucketed time-step has no label in trace.
//   - ErrOptionViolation   negative weight, cap or non-positive scale.
package candidate
