// SPDX-License-Identifier: MIT

package probe

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/labyrinth/bfs"
	"github.com/katalvlaran/labyrinth/core"
)

// Sentinel errors.
var (
	// ErrBudget indicates a budget with no room for any action.
	ErrBudget = errors.New("probe: invalid budget")

	// ErrResponseCount indicates responses do not match the probes 1:1.
	ErrResponseCount = errors.New("probe: response count mismatch")

	// ErrNilResult indicates a missing merge result.
	ErrNilResult = errors.New("probe: merge result is nil")
)

// Tag is the semantic role of a watch.
type Tag uint8

const (
	TagIdentify Tag = iota
	TagReverseOrigin
	TagReverseTarget
)

// Outcome is the verdict of a watch or task.
type Outcome uint8

const (
	Inconclusive Outcome = iota
	Confirmed
	Refuted
)

// String returns the lower-case outcome name.
func (o Outcome) String() string {
	switch o {
	case Confirmed:
		return "confirmed"
	case Refuted:
		return "refuted"
	default:
		return "inconclusive"
	}
}

// Watch interprets one response position.
type Watch struct {
	Pos       int
	Expect    core.Label
	Tag       Tag
	Task      int
	Exclusive bool
}

// Evaluate reads the watch against a response.
func (w Watch) Evaluate(resp []core.Label) Outcome {
	if w.Pos < 0 || w.Pos >= len(resp) {
		return Inconclusive
	}
	if resp[w.Pos] == w.Expect {
		return Confirmed
	}
	if w.Exclusive {
		return Refuted
	}

	return Inconclusive
}

// Combine folds several watch outcomes of one task: any refutation wins,
// otherwise all must confirm.
func Combine(outcomes ...Outcome) Outcome {
	if len(outcomes) == 0 {
		return Inconclusive
	}
	all := true
	for _, o := range outcomes {
		if o == Refuted {
			return Refuted
		}
		all = all && o == Confirmed
	}
	if all {
		return Confirmed
	}

	return Inconclusive
}

// Probe is one plan plus the watches that interpret its response.
type Probe struct {
	Plan    core.Plan
	Watches []Watch
}

// Budget bounds every plan a planner emits.
type Budget struct {
	// Limit is the maximum number of actions per plan.
	Limit int
	// Markers is the maximum number of colors in flight per plan.
	Markers int
	// MaxPlans caps the plans one planner contributes to a batch; 0 means
	// no cap.
	MaxPlans int
}

// Validate checks the budget is usable.
func (b Budget) Validate() error {
	if b.Limit < 1 || b.Markers < 1 || b.Markers > core.LabelCount || b.MaxPlans < 0 {
		return fmt.Errorf("%w: limit=%d markers=%d plans=%d", ErrBudget, b.Limit, b.Markers, b.MaxPlans)
	}

	return nil
}

func (b Budget) full(n int) bool { return b.MaxPlans > 0 && n >= b.MaxPlans }

// routeDepth limits route search to routes that leave room for extra
// actions. With no room left it returns no limit; callers still check the
// final plan length.
func (b Budget) routeDepth(extra int) bfs.Option {
	return bfs.WithMaxDepth(max(b.Limit-extra, 0))
}

// builder assembles a plan and tracks marker positions so watches know
// whether another color was written in between.
type builder struct {
	plan    core.Plan
	watches []Watch
	marks   []int
}

func (b *builder) move(doors ...core.Door) {
	b.plan.Walk(doors)
}

// mark writes c and returns its id.
func (b *builder) mark(c core.Label) int {
	b.plan.Mark(c)
	b.marks = append(b.marks, b.plan.Actions())

	return len(b.marks) - 1
}

// watch reads the current position against mark id.
func (b *builder) watch(id int, expect core.Label, tag Tag, task int) {
	pos := b.plan.Actions()
	exclusive := true
	for j, at := range b.marks {
		if j != id && at > b.marks[id] && at <= pos {
			exclusive = false
			break
		}
	}
	b.watches = append(b.watches, Watch{Pos: pos, Expect: expect, Tag: tag, Task: task, Exclusive: exclusive})
}

func (b *builder) probe() Probe {
	return Probe{Plan: b.plan, Watches: b.watches}
}

func checkResponses(probes []Probe, responses [][]core.Label) error {
	if len(probes) != len(responses) {
		return fmt.Errorf("%w: %d probes, %d responses", ErrResponseCount, len(probes), len(responses))
	}

	return nil
}
