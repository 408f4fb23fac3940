// SPDX-License-Identifier: MIT

// Package signature buckets the time-steps of one or more runs by fixed-shape
// local contexts (Phase A of reconstruction).
//
// Kinds (Y = label trace, W = walk, L = moves):
//
//	Forward1   (Y[t],   W[t],   Y[t+1])                    t ∈ [0, L-1]
//	Backward1  (Y[t-1], W[t-1], Y[t])                      t ∈ [1, L]
//	Forward2   (Y[t], W[t], Y[t+1], W[t+1], Y[t+2])        t ∈ [0, L-2]
//	Backward2  (Y[t-2], W[t-2], Y[t-1], W[t-1], Y[t])      t ∈ [2, L]
//	Mixed      (Y[t-1], W[t-1], Y[t], W[t], Y[t+1])        t ∈ [1, L-1]
//
// Tuples are packed into a Key: 3-tuples as y0 | d0<<2 | y1<<5 and 5-tuples
// as y0 | d0<<2 | y1<<5 | d1<<7 | y2<<10.
//
// A shared signature is only a hint that two time-steps might be one room; it
// never asserts identity. Label equality is checked downstream.
//
// Multi-run: an Index can absorb several runs, each shifted by its running
// time offset. Contexts never straddle a run boundary, and each kind's
// universe size is the sum over runs.
//
// Capping: once sealed, any bucket larger than BucketCap is reduced by a
// deterministic shuffle-and-truncate seeded from Seed and the total move
// count, then re-sorted.
//
// Options
//
//   - WithBucketCap(n)  cap per bucket, 0 disables capping (default 128).
//   - WithMixed(b)      enable the Mixed kind (default true).
//   - WithSeed(s)       capping seed (default 0x5EEDC0DE1234ABCD).
//
// Errors
//
//   - core.ErrLengthMismatch, core.ErrDoorOutOfRange, core.ErrLabelOutOfRange
//     for malformed runs.
//   - ErrSealed            Add after Seal.
//   - ErrOptionViolation   negative bucket cap.
//
// Complexity: O(L) time and memory to collect, O(B log B) to seal where B is
// the number of buckets.
package signature
