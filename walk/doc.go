// SPDX-License-Identifier: MIT

// Package walk builds the initial covering door sequence explored before any
// room identity is known.
//
// A good first walk exercises as many distinct (label, door, label) contexts
// as the action budget allows, so that signature buckets downstream are small
// and informative. The generator therefore starts with a linearized de Bruijn
// sequence over the six doors (every door k-gram occurs once), then fills the
// remaining budget with shuffled blocks of all six doors, never repeating the
// previous door at a block boundary.
//
// Lengths (N = rooms):
//
//	limit  = floor(LimitRatio · N)            (default ratio 6)
//	core   = 6^o + o − 1 for the largest o ∈ {3,2,1} with core ≤ limit
//	target = min(limit, max(core, floor(TargetRatio · N)))  (default 5.5)
//
// Determinism: the same rooms and options always give the same walk. Without
// WithSeed the seed is derived from N and the chosen order.
//
// Options
//
//   - WithSeed(seed)          fix the filler RNG seed.
//   - WithLimitRatio(r)       per-plan action budget ratio, r > 0.
//   - WithTargetRatio(r)      preferred walk length ratio, r > 0.
//
// Option constructors panic on meaningless values; Generate itself never
// panics.
//
// Errors
//
//   - ErrTooFewRooms  rooms < 1.
//
// Complexity: O(limit) time and memory.
package walk
