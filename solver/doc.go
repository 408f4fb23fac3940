// SPDX-License-Identifier: MIT

// Package solver drives labyrinth reconstruction in rounds against an
// oracle.
//
// Round 0 sends the covering walk and records its response as run 0. Every
// later round:
//
//  1. rebuilds the model over all runs (signatures, candidates, merge) with
//     the forced pairs and separations learned so far, and re-applies the
//     confirmed return doors;
//  2. asks the finalizer; a complete map ends the loop;
//  3. otherwise plans up to three independent batches concurrently:
//     identification when there are too many clusters, exploration when a
//     room has unaccounted doors, reverse verification when a return door
//     is missing;
//  4. sends all plans in one oracle call, checks the responses line up
//     with the plans, and applies them in order.
//
// The loop ends after Config.MaxRounds probing rounds or once a round adds
// no evidence. The outcome then carries a best-effort map and the last
// deficiency.
//
// Everything learned lives in State as time-step facts, so a State taken
// from an earlier Outcome can be handed to Resume and the solve continues
// where it stopped. The engine never mutates a State it was given.
//
// Errors: contract violations by the oracle (ErrBatchMismatch,
// ErrResponseLength) and transport errors end the solve; deficiencies never
// do.
package solver
