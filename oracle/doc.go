// SPDX-License-Identifier: MIT

// Package oracle talks to the labyrinth service.
//
// Client is the raw API: select a problem (opening a session), explore a
// batch of plans, guess a map, abort. Two implementations ship here:
//
//   - HTTPClient speaks the JSON protocol: POST /select, POST /explore,
//     POST /guess and PUT /sessions/{id}/abort. Cloudflare Access headers
//     are added when credentials are configured.
//   - Simulator hides a random connected labyrinth in memory, executes
//     plans against it and accepts a guess when it has the same room count
//     and is behaviorally equivalent from the start room.
//
// Session wraps one opened session in a small state machine:
//
//	Active ──Guess──▶ Completing
//	  │
//	  └──Abort / Close / canceled Explore──▶ Aborted
//
// Every exit path releases the session: Close aborts an Active session
// exactly once and is a no-op afterwards, so callers simply defer it.
// Nothing watches the session in the background.
package oracle
