// SPDX-License-Identifier: MIT

// Package core defines the vocabulary shared by every stage of labyrinth
// reconstruction: doors, labels, walks, label traces, oracle plans, transition
// tables and the final submission map.
//
// What
//
//   - Door and Label are small integer types with fixed alphabets
//     (DoorCount = 6, LabelCount = 4).
//   - A Run pairs a walk (door choices, length L) with the label trace the
//     oracle returned for it (length L+1, trace[0] is the start label).
//   - A Plan is an ordered list of moves and marker writes. Its text form is
//     base-6 digits interleaved with "[c]" color writes; every step costs one
//     action and appends one label to the response.
//   - Ports/Transitions hold per-room door destinations; NoRoom marks an
//     unresolved entry.
//   - Map is the submission: room labels, starting room and undirected
//     door-to-door connections, each door used exactly once.
//
// Errors
//
//   - ErrLengthMismatch   trace length is not walk length + 1.
//   - ErrDoorOutOfRange   a door is outside [0,6).
//   - ErrLabelOutOfRange  a label is outside [0,4).
//   - ErrColorOutOfRange  a marker color is outside [0,4).
//   - ErrBadPlan          a plan string cannot be parsed or a plan cannot
//     be turned into a run.
//   - ErrBadMap           a map violates the one-connection-per-door rule.
//
// All validation errors wrap the sentinel with positional context; match them
// with errors.Is.
package core
