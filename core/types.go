// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"fmt"
)

const (
	// DoorCount is the number of exits every room has.
	DoorCount = 6

	// LabelCount is the size of the observable label alphabet.
	LabelCount = 4

	// NoRoom marks an unresolved transition entry.
	NoRoom = -1
)

// Sentinel errors for input validation.
var (
	// ErrLengthMismatch indicates len(trace) != len(walk)+1.
	ErrLengthMismatch = errors.New("core: walk/trace length mismatch")

	// ErrDoorOutOfRange indicates a door outside [0, DoorCount).
	ErrDoorOutOfRange = errors.New("core: door out of range")

	// ErrLabelOutOfRange indicates a label outside [0, LabelCount).
	ErrLabelOutOfRange = errors.New("core: label out of range")

	// ErrColorOutOfRange indicates a marker color outside [0, LabelCount).
	ErrColorOutOfRange = errors.New("core: marker color out of range")

	// ErrBadPlan indicates a malformed plan.
	ErrBadPlan = errors.New("core: malformed plan")

	// ErrBadMap indicates a map that is not a valid submission.
	ErrBadMap = errors.New("core: malformed map")
)

// Door is one of the DoorCount exits of a room.
type Door uint8

// Valid reports whether d is inside the door alphabet.
func (d Door) Valid() bool { return d < DoorCount }

// Label is the 2-bit value observed in a room.
type Label uint8

// Valid reports whether l is inside the label alphabet.
func (l Label) Valid() bool { return l < LabelCount }

// Next returns the label that follows l cyclically.
func (l Label) Next() Label { return (l + 1) % LabelCount }

// Run is one walk and the label trace observed along it.
// Time-step t in [0, len(Walk)] denotes the room occupied after t moves.
type Run struct {
	Walk  []Door
	Trace []Label
}

// NewRun validates walk and trace and returns them as a Run.
func NewRun(walk []Door, trace []Label) (Run, error) {
	r := Run{Walk: walk, Trace: trace}
	if err := r.Validate(); err != nil {
		return Run{}, err
	}

	return r, nil
}

// Validate checks lengths and value ranges.
func (r Run) Validate() error {
	if len(r.Trace) != len(r.Walk)+1 {
		return fmt.Errorf("%w: walk=%d trace=%d", ErrLengthMismatch, len(r.Walk), len(r.Trace))
	}
	if err := ValidateWalk(r.Walk); err != nil {
		return err
	}

	return ValidateTrace(r.Trace)
}

// Moves returns the walk length L.
func (r Run) Moves() int { return len(r.Walk) }

// Steps returns the number of time-steps, L+1.
func (r Run) Steps() int { return len(r.Trace) }

// ValidateWalk checks every door is in range.
func ValidateWalk(walk []Door) error {
	for i, d := range walk {
		if !d.Valid() {
			return fmt.Errorf("%w: walk[%d]=%d", ErrDoorOutOfRange, i, d)
		}
	}

	return nil
}

// ValidateTrace checks every label is in range.
func ValidateTrace(trace []Label) error {
	for i, l := range trace {
		if !l.Valid() {
			return fmt.Errorf("%w: trace[%d]=%d", ErrLabelOutOfRange, i, l)
		}
	}

	return nil
}

// LabelsFromInts converts raw oracle output into labels.
func LabelsFromInts(raw []int) ([]Label, error) {
	out := make([]Label, len(raw))
	for i, v := range raw {
		if v < 0 || v >= LabelCount {
			return nil, fmt.Errorf("%w: response[%d]=%d", ErrLabelOutOfRange, i, v)
		}
		out[i] = Label(v)
	}

	return out, nil
}

// DoorsFromInts converts raw integers into doors.
func DoorsFromInts(raw []int) ([]Door, error) {
	out := make([]Door, len(raw))
	for i, v := range raw {
		if v < 0 || v >= DoorCount {
			return nil, fmt.Errorf("%w: walk[%d]=%d", ErrDoorOutOfRange, i, v)
		}
		out[i] = Door(v)
	}

	return out, nil
}

// Ports maps each door of one room to a destination room, NoRoom if unknown.
type Ports [DoorCount]int

// EmptyPorts returns a Ports value with every entry unresolved.
func EmptyPorts() Ports {
	var p Ports
	for d := range p {
		p[d] = NoRoom
	}

	return p
}

// Known counts resolved doors.
func (p Ports) Known() int {
	n := 0
	for _, v := range p {
		if v != NoRoom {
			n++
		}
	}

	return n
}

// Unknown lists unresolved doors in ascending order.
func (p Ports) Unknown() []Door {
	var out []Door
	for d, v := range p {
		if v == NoRoom {
			out = append(out, Door(d))
		}
	}

	return out
}

// Transitions is a per-room transition table indexed by dense room id.
type Transitions []Ports

// Clone returns an independent copy.
func (t Transitions) Clone() Transitions {
	out := make(Transitions, len(t))
	copy(out, t)

	return out
}
