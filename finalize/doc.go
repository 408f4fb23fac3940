// SPDX-License-Identifier: MIT

// Package finalize turns a clustering into a submission map, or explains
// precisely why it cannot yet.
//
// Check runs three gates in order and stops at the first failure:
//
//  1. The cluster count equals the target room count, else a
//     KindIdentification deficiency.
//  2. Every room accounts for all six doors: resolved outbound doors plus
//     inbound stubs (incoming edges with no known return door) equal six,
//     else KindExploration naming the lowest such room.
//  3. No room has fewer doors known to lead back to a neighbor than it has
//     incoming edges from that neighbor, else KindReverse naming the room,
//     the neighbor and the shortfall.
//
// Once all gates hold, every door is resolved and each neighbor pair has as
// many doors one way as the other, so Finalize can pair door (u,d) with an
// unpaired door (v,j) of the reverse transition and emit one connection per
// pair. Self-loops pair with another loop door of the same room when one is
// free, otherwise with themselves.
//
// Deficiencies are values, not failures: *Deficiency implements error and
// matches ErrNeedMoreIdentification, ErrNeedMoreExploration or
// ErrNeedMoreReverseVerification through errors.Is. Callers use them to pick
// the next probing round.
//
// Complete is the fallback once rounds run out. It keeps every matched pair,
// pairs a resolved door with a free door of its destination, and then pairs
// the leftovers in order, so the result always has each door in exactly one
// connection even when it is wrong.
package finalize
