// SPDX-License-Identifier: MIT

package probe

import (
	"math"
	"slices"

	"github.com/katalvlaran/labyrinth/candidate"
	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/merge"
)

// Identification defaults.
const (
	DefaultOverselect    = 3.0
	DefaultMaxTasks      = 16
	DefaultMinSeparation = 10
)

// IdentifyOptions tunes task selection.
type IdentifyOptions struct {
	// Overselect multiplies the cluster excess into a task count.
	Overselect float64
	// MaxTasks caps tasks per round.
	MaxTasks int
	// MinSeparation is the minimum distance between the write positions
	// of a task's two witnesses.
	MinSeparation int
}

// DefaultIdentifyOptions returns the documented defaults.
func DefaultIdentifyOptions() IdentifyOptions {
	return IdentifyOptions{
		Overselect:    DefaultOverselect,
		MaxTasks:      DefaultMaxTasks,
		MinSeparation: DefaultMinSeparation,
	}
}

// Witness is a write/read pair of base-run time-steps, S < R.
type Witness struct {
	S, R int
}

// IDTask asks whether clusters A and B are one room.
type IDTask struct {
	A, B      int
	Score     float64
	Label     core.Label
	Witnesses [2]Witness
}

// IDResult is a resolved task.
type IDResult struct {
	Task    IDTask
	Outcome Outcome
}

// IdentifyBatch holds the scheduled tasks and their plans.
type IdentifyBatch struct {
	Tasks  []IDTask
	Probes []Probe
	// Dropped counts selected tasks that did not fit.
	Dropped int
}

// SelectIdentify picks disjoint cluster pairs to test, best aggregate
// candidate score first. Pairs whose representatives are listed in forbid
// (as time-step pairs) are skipped. base must be the run laid out first,
// at time-step 0.
func SelectIdentify(res *merge.Result, base core.Run, cands []candidate.Candidate,
	target int, forbid [][2]int, opts IdentifyOptions) []IDTask {
	if res == nil || res.Count() <= target {
		return nil
	}
	need := res.Count() - target
	want := min(opts.MaxTasks, int(math.Ceil(float64(need)*opts.Overselect)))
	if want <= 0 {
		return nil
	}

	ttc := res.TimeToCluster
	key := func(a, b int) [2]int {
		if a > b {
			a, b = b, a
		}
		return [2]int{a, b}
	}
	banned := make(map[[2]int]bool, len(forbid))
	for _, p := range forbid {
		if p[0] < len(ttc) && p[1] < len(ttc) {
			banned[key(ttc[p[0]], ttc[p[1]])] = true
		}
	}

	agg := make(map[[2]int]float64)
	for _, c := range cands {
		if c.A >= len(ttc) || c.B >= len(ttc) {
			continue
		}
		ca, cb := ttc[c.A], ttc[c.B]
		if ca == cb || res.Labels[ca] != res.Labels[cb] {
			continue
		}
		k := key(ca, cb)
		if !banned[k] {
			agg[k] += c.Score
		}
	}
	pairs := make([][2]int, 0, len(agg))
	for k := range agg {
		pairs = append(pairs, k)
	}
	slices.SortFunc(pairs, func(x, y [2]int) int {
		switch sx, sy := agg[x], agg[y]; {
		case sx > sy:
			return -1
		case sx < sy:
			return 1
		case x[0] != y[0]:
			return x[0] - y[0]
		default:
			return x[1] - y[1]
		}
	})

	steps := min(base.Steps(), len(ttc))
	used := make(map[int]bool)
	var tasks []IDTask
	for _, p := range pairs {
		if len(tasks) >= want {
			break
		}
		if used[p[0]] || used[p[1]] {
			continue
		}
		ws, ok := witnesses(ttc[:steps], p[0], p[1], opts.MinSeparation)
		if !ok {
			continue
		}
		used[p[0]], used[p[1]] = true, true
		tasks = append(tasks, IDTask{A: p[0], B: p[1], Score: agg[p], Label: res.Labels[p[0]], Witnesses: ws})
	}

	return tasks
}

// witnesses scans the base run for write/read pairs across clusters a and
// b, each read paired with the nearest earlier write from the other
// cluster, and returns the earliest pair plus the earliest later pair that
// does not overlap it.
func witnesses(ttc []int, a, b, minSep int) ([2]Witness, bool) {
	var out [2]Witness
	lastA, lastB := -1, -1
	found := 0
	for t, c := range ttc {
		var w Witness
		switch {
		case c == a && lastB >= 0:
			w = Witness{S: lastB, R: t}
		case c == b && lastA >= 0:
			w = Witness{S: lastA, R: t}
		}
		if c == a {
			lastA = t
		} else if c == b {
			lastB = t
		}
		if w.R == 0 {
			continue
		}
		if found == 0 {
			out[0] = w
			found = 1
			continue
		}
		if w.S > out[0].R && w.S-out[0].S >= minSep {
			out[1] = w
			return out, true
		}
	}

	return out, false
}

// ScheduleIdentify packs tasks into plans replaying base. Each group of
// tasks yields two plans, one per witness. A group holds at most
// budget.Markers tasks with pairwise distinct colors, each differing from
// the task's label.
func ScheduleIdentify(base core.Run, tasks []IDTask, budget Budget) (*IdentifyBatch, error) {
	if err := budget.Validate(); err != nil {
		return nil, err
	}
	batch := &IdentifyBatch{}
	var pending []IDTask
	for _, t := range tasks {
		// a lone task must fit: replay up to R plus one marker
		if max(t.Witnesses[0].R, t.Witnesses[1].R)+1 > budget.Limit || t.Witnesses[1].R >= base.Steps() {
			batch.Dropped++
			continue
		}
		pending = append(pending, t)
	}

	for len(pending) > 0 && !budget.full(len(batch.Probes)+1) {
		var group []IDTask
		var colors []core.Label
		var rest []IDTask
		for _, t := range pending {
			if len(group) < budget.Markers {
				if cs, ok := assignColors(append(slices.Clone(group), t)); ok && groupCost(append(slices.Clone(group), t)) <= budget.Limit {
					group = append(group, t)
					colors = cs
					continue
				}
			}
			rest = append(rest, t)
		}
		if len(group) == 0 {
			break
		}
		base0 := len(batch.Tasks)
		batch.Tasks = append(batch.Tasks, group...)
		for k := range 2 {
			batch.Probes = append(batch.Probes, identifyPlan(base, group, colors, k, base0))
		}
		pending = rest
	}
	batch.Dropped += len(pending)

	return batch, nil
}

func groupCost(group []IDTask) int {
	worst := 0
	for k := range 2 {
		r := 0
		for _, t := range group {
			r = max(r, t.Witnesses[k].R)
		}
		worst = max(worst, r+len(group))
	}

	return worst
}

// assignColors gives every task a distinct color different from its label.
func assignColors(group []IDTask) ([]core.Label, bool) {
	out := make([]core.Label, len(group))
	var used [core.LabelCount]bool
	var try func(i int) bool
	try = func(i int) bool {
		if i == len(group) {
			return true
		}
		for c := range core.Label(core.LabelCount) {
			if used[c] || c == group[i].Label {
				continue
			}
			used[c] = true
			out[i] = c
			if try(i + 1) {
				return true
			}
			used[c] = false
		}
		return false
	}

	return out, try(0)
}

// identifyPlan replays base up to the last read of witness k, writing each
// task's color at S and watching it at R.
func identifyPlan(base core.Run, group []IDTask, colors []core.Label, k, first int) Probe {
	writes := make(map[int]int, len(group))
	reads := make(map[int]int, len(group))
	end := 0
	for i, t := range group {
		w := t.Witnesses[k]
		writes[w.S] = i
		reads[w.R] = i
		end = max(end, w.R)
	}

	var b builder
	ids := make([]int, len(group))
	for step := 0; ; step++ {
		if i, ok := reads[step]; ok {
			b.watch(ids[i], colors[i], TagIdentify, first+i)
		}
		if i, ok := writes[step]; ok {
			ids[i] = b.mark(colors[i])
		}
		if step >= end {
			break
		}
		b.move(base.Walk[step])
	}

	return b.probe()
}

// Resolve evaluates every task against the batch responses.
func (b *IdentifyBatch) Resolve(responses [][]core.Label) ([]IDResult, error) {
	if err := checkResponses(b.Probes, responses); err != nil {
		return nil, err
	}
	per := make([][]Outcome, len(b.Tasks))
	for i, p := range b.Probes {
		for _, w := range p.Watches {
			per[w.Task] = append(per[w.Task], w.Evaluate(responses[i]))
		}
	}
	out := make([]IDResult, len(b.Tasks))
	for i, t := range b.Tasks {
		out[i] = IDResult{Task: t, Outcome: Combine(per[i]...)}
	}

	return out, nil
}
