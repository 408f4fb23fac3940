// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"strings"
)

// StepKind distinguishes a door move from a marker write.
type StepKind uint8

const (
	// StepMove crosses a door.
	StepMove StepKind = iota
	// StepMark overwrites the current room's observed label.
	StepMark
)

// Step is one action of a Plan. Value is a Door for StepMove and a color
// (Label) for StepMark.
type Step struct {
	Kind  StepKind
	Value uint8
}

// Plan is an ordered list of actions submitted to the oracle.
// The zero value is an empty plan ready to use.
type Plan struct {
	steps []Step
}

// PlanFromWalk returns a marker-free plan that replays doors.
func PlanFromWalk(doors []Door) Plan {
	var p Plan
	p.Walk(doors)

	return p
}

// Move appends a door move.
func (p *Plan) Move(d Door) *Plan {
	p.steps = append(p.steps, Step{Kind: StepMove, Value: uint8(d)})

	return p
}

// Walk appends every door of doors in order.
func (p *Plan) Walk(doors []Door) *Plan {
	for _, d := range doors {
		p.Move(d)
	}

	return p
}

// Mark appends a color write.
func (p *Plan) Mark(c Label) *Plan {
	p.steps = append(p.steps, Step{Kind: StepMark, Value: uint8(c)})

	return p
}

// Actions is the action-budget cost of the plan.
func (p Plan) Actions() int { return len(p.steps) }

// ResponseLen is the number of labels the oracle returns for the plan.
func (p Plan) ResponseLen() int { return len(p.steps) + 1 }

// Markers counts color writes.
func (p Plan) Markers() int {
	n := 0
	for _, s := range p.steps {
		if s.Kind == StepMark {
			n++
		}
	}

	return n
}

// Steps returns a copy of the plan's actions.
func (p Plan) Steps() []Step {
	out := make([]Step, len(p.steps))
	copy(out, p.steps)

	return out
}

// Doors returns the door moves only, in order.
func (p Plan) Doors() []Door {
	out := make([]Door, 0, len(p.steps))
	for _, s := range p.steps {
		if s.Kind == StepMove {
			out = append(out, Door(s.Value))
		}
	}

	return out
}

// Validate checks every door and color value.
func (p Plan) Validate() error {
	for i, s := range p.steps {
		switch s.Kind {
		case StepMove:
			if !Door(s.Value).Valid() {
				return fmt.Errorf("%w: step %d door=%d", ErrDoorOutOfRange, i, s.Value)
			}
		case StepMark:
			if !Label(s.Value).Valid() {
				return fmt.Errorf("%w: step %d color=%d", ErrColorOutOfRange, i, s.Value)
			}
		default:
			return fmt.Errorf("%w: step %d has unknown kind %d", ErrBadPlan, i, s.Kind)
		}
	}

	return nil
}

// String encodes the plan in oracle form, e.g. "01[2]3".
func (p Plan) String() string {
	var b strings.Builder
	b.Grow(len(p.steps) * 2)
	for _, s := range p.steps {
		if s.Kind == StepMark {
			b.WriteByte('[')
			b.WriteByte('0' + s.Value)
			b.WriteByte(']')
			continue
		}
		b.WriteByte('0' + s.Value)
	}

	return b.String()
}

// ParsePlan decodes the oracle form produced by String.
func ParsePlan(s string) (Plan, error) {
	var p Plan
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= '0' && ch < '0'+DoorCount:
			p.Move(Door(ch - '0'))
		case ch == '[':
			if i+2 >= len(s) || s[i+2] != ']' {
				return Plan{}, fmt.Errorf("%w: unterminated marker at %d", ErrBadPlan, i)
			}
			c := s[i+1]
			if c < '0' || c >= '0'+LabelCount {
				return Plan{}, fmt.Errorf("%w: color %q at %d", ErrColorOutOfRange, c, i+1)
			}
			p.Mark(Label(c - '0'))
			i += 2
		default:
			return Plan{}, fmt.Errorf("%w: unexpected %q at %d", ErrBadPlan, ch, i)
		}
	}

	return p, nil
}

// Run turns a marker-free plan and its response into a Run.
// Plans with markers are rejected: their observed labels are not room labels.
func (p Plan) Run(response []Label) (Run, error) {
	if p.Markers() > 0 {
		return Run{}, fmt.Errorf("%w: plan carries %d markers", ErrBadPlan, p.Markers())
	}
	if len(response) != p.ResponseLen() {
		return Run{}, fmt.Errorf("%w: plan=%d response=%d", ErrLengthMismatch, p.Actions(), len(response))
	}

	return NewRun(p.Doors(), response)
}
