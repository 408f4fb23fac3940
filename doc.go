// SPDX-License-Identifier: MIT

// Package labyrinth reconstructs hidden labyrinths from the label traces an
// exploration oracle returns.
//
// A labyrinth is a set of hexagonal rooms, each carrying a 2-bit label and
// six doors that pair up into undirected passages. The oracle answers
// route plans with the label sequence seen along the way; plans may also
// repaint the current room, which lets a probe test whether two time-steps
// stand in the same room. The engine turns those answers into a complete
// map and proves it consistent before submitting.
//
// The pipeline, one package per stage:
//
//	core/      — doors, labels, plans, runs, transition tables and maps
//	walk/      — covering walk: de Bruijn core plus seeded filler
//	signature/ — local label/door signatures bucketed per kind
//	candidate/ — scored same-room candidate pairs from shared buckets
//	merge/     — rollback union-find with congruence closure
//	multirun/  — one model over every run gathered so far
//	bfs/       — shortest door routes over a transition table
//	probe/     — identification, exploration and reverse-port probes
//	finalize/  — consistency gates and door pairing into a map
//	solver/    — round driver: rebuild, plan, send, apply
//	oracle/    — HTTP client, session lifecycle and simulator
//
// The labyrinth command wires these together:
//
//	labyrinth simulate --room-num 6
//	labyrinth solve primus --base-url https://oracle.example
//
// Plans are written as door digits with bracketed repaints, so "01[2]3"
// walks doors 0 and 1, paints the room with label 2, then takes door 3.
package labyrinth
