// SPDX-License-Identifier: MIT

package merge

import (
	"errors"

	"github.com/katalvlaran/labyrinth/core"
)

// Sentinel errors.
var (
	// ErrNoRuns indicates that no time-steps were supplied.
	ErrNoRuns = errors.New("merge: no runs")

	// ErrNodeOutOfRange indicates a candidate or separation beyond the node count.
	ErrNodeOutOfRange = errors.New("merge: time-step out of range")

	// ErrLabelMismatch indicates a cluster whose members disagree on label.
	ErrLabelMismatch = errors.New("merge: cluster label mismatch")

	// ErrTransitionMismatch indicates walk evidence that disagrees with the
	// union-find transition table.
	ErrTransitionMismatch = errors.New("merge: transition mismatch")

	// ErrOptionViolation is returned for an invalid Option.
	ErrOptionViolation = errors.New("merge: invalid option supplied")
)

// ChangeKind tags one change log entry.
type ChangeKind uint8

const (
	ChangeParent ChangeKind = iota
	ChangeSize
	ChangeTable
	ChangeComponents
)

// Change is one undoable edit. Prev is the value before the edit.
type Change struct {
	Kind ChangeKind
	Node int
	Door core.Door
	Prev int
}

// Stats counts the driving loop's outcomes.
type Stats struct {
	Attempted int
	Accepted  int
	Rejected  int
	Skipped   int // pairs already in one cluster
	Final     int
}

// Edge is a directed transition between dense cluster ids.
type Edge struct {
	From int
	Door core.Door
	To   int
}

// Option configures Merge.
type Option func(*Options)

// Options holds driving loop parameters.
type Options struct {
	// Separations lists time-step pairs known to be different rooms.
	Separations [][2]int

	err error
}

// WithSeparations forbids any merge that would join a listed pair.
func WithSeparations(pairs [][2]int) Option {
	return func(o *Options) {
		for _, p := range pairs {
			if p[0] < 0 || p[1] < 0 {
				o.err = ErrOptionViolation
				return
			}
		}
		o.Separations = append(o.Separations, pairs...)
	}
}
