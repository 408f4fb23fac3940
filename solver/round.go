// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/finalize"
	"github.com/katalvlaran/labyrinth/internal/metrics"
	"github.com/katalvlaran/labyrinth/merge"
	"github.com/katalvlaran/labyrinth/multirun"
	"github.com/katalvlaran/labyrinth/probe"
)

// Plan kinds, as metric labels.
const (
	kindWalk     = "walk"
	kindIdentify = "identify"
	kindExplore  = "explore"
	kindReverse  = "reverse"
)

type tally struct {
	confirmed, refuted, inconclusive int
}

func (t *tally) add(kind string, o probe.Outcome) {
	metrics.RecordOutcome(kind, o.String())
	switch o {
	case probe.Confirmed:
		t.confirmed++
	case probe.Refuted:
		t.refuted++
	default:
		t.inconclusive++
	}
}

// batches holds one round's planner output. Nil entries were not needed.
type batches struct {
	identify *probe.IdentifyBatch
	explore  *probe.ExploreBatch
	reverse  *probe.ReverseBatch
}

// round plans, sends and applies one batch. It reports whether any new
// evidence was recorded.
func (e *Engine) round(ctx context.Context, ex Explorer, st *State, model *multirun.Model,
	def *finalize.Deficiency) (bool, error) {
	start := time.Now()
	b, err := e.plan(ctx, st, model)
	if err != nil {
		return false, err
	}

	var plans []core.Plan
	add := func(kind string, probes []probe.Probe) int {
		acts := 0
		for _, p := range probes {
			plans = append(plans, p.Plan)
			acts += p.Plan.Actions()
		}
		if len(probes) > 0 {
			metrics.RecordPlans(kind, len(probes), acts)
		}
		return len(probes)
	}
	var nID, nEx, nRv int
	if b.identify != nil {
		nID = add(kindIdentify, b.identify.Probes)
	}
	if b.explore != nil {
		nEx = add(kindExplore, b.explore.Probes)
	}
	if b.reverse != nil {
		nRv = add(kindReverse, b.reverse.Probes)
	}
	if len(plans) == 0 {
		return false, nil
	}

	resp, err := e.send(ctx, ex, plans)
	if err != nil {
		return false, err
	}
	st.Round++

	res := st.Result
	reps := res.Representatives
	var t tally
	progress := false

	if nID > 0 {
		results, err := b.identify.Resolve(resp[:nID])
		if err != nil {
			return false, err
		}
		for _, r := range results {
			t.add(kindIdentify, r.Outcome)
			pair := [2]int{reps[r.Task.A], reps[r.Task.B]}
			switch r.Outcome {
			case probe.Confirmed:
				st.Forced = append(st.Forced, pair)
				progress = true
			case probe.Refuted:
				st.Separations = append(st.Separations, pair)
				progress = true
			}
		}
	}

	if nEx > 0 {
		runs, err := b.explore.Runs(resp[nID : nID+nEx])
		if err != nil {
			return false, err
		}
		st.Runs = append(st.Runs, runs...)
		progress = progress || len(runs) > 0
	}

	hits := 0
	if nRv > 0 {
		results, err := b.reverse.Resolve(resp[nID+nEx:])
		if err != nil {
			return false, err
		}
		for _, r := range results {
			t.add(kindReverse, r.Outcome)
			link := Link{From: reps[r.Task.V], Door: r.Task.J, To: reps[r.Task.U]}
			switch r.Outcome {
			case probe.Confirmed:
				st.Hits = append(st.Hits, link)
				hits++
				progress = true
			case probe.Refuted:
				st.Misses = append(st.Misses, link)
				progress = true
			}
		}
	}

	actions := 0
	for _, p := range plans {
		actions += p.Actions()
	}
	metrics.RecordRound(time.Since(start))
	e.log.Info().
		Int("round", st.Round).
		Int("clusters", res.Count()).
		Str("deficiency", def.Kind.String()).
		Int("plans", len(plans)).
		Int("actions", actions).
		Int("identify", nID).
		Int("explore", nEx).
		Int("reverse", nRv).
		Int("confirmed", t.confirmed).
		Int("refuted", t.refuted).
		Int("inconclusive", t.inconclusive).
		Int("rp_hits", hits).
		Msg("round_done")

	return progress, nil
}

// plan runs the needed planners concurrently over the current result and
// caps the combined batch. Identification keeps priority under the cap.
func (e *Engine) plan(ctx context.Context, st *State, model *multirun.Model) (batches, error) {
	var b batches
	res := st.Result
	budget := e.cfg.budget(e.rooms)
	accounts := res.Accounts()

	g, gctx := errgroup.WithContext(ctx)
	if res.Count() > e.rooms {
		g.Go(func() error {
			base := st.Runs[0]
			tasks := probe.SelectIdentify(res, base, model.Candidates, e.rooms, st.Separations, e.cfg.identifyOptions())
			var err error
			b.identify, err = probe.ScheduleIdentify(base, tasks, budget)
			return err
		})
	}
	if e.needExplore(res, accounts) {
		g.Go(func() error {
			var err error
			b.explore, err = probe.PlanExplore(gctx, res, budget, e.cfg.exploreOptions())
			return err
		})
	}
	if needReverse(accounts) {
		skip := missSet(res, st.Misses)
		g.Go(func() error {
			var err error
			b.reverse, err = probe.PlanReverse(gctx, res, budget, e.cfg.Reverse.MaxProbes, skip)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return batches{}, err
	}

	// a marker-free plan already walked answers exactly as before
	if b.explore != nil {
		walked := walkedPlans(st.Runs)
		dropped := b.explore.Filter(func(p core.Plan) bool {
			k := p.String()
			if walked[k] {
				return false
			}
			walked[k] = true
			return true
		})
		if dropped > 0 {
			e.log.Debug().Int("round", st.Round).Int("dropped", dropped).Msg("explore_repeats")
		}
	}

	if e.cfg.MaxPlans > 0 {
		left := e.cfg.MaxPlans
		if b.identify != nil {
			left -= len(b.identify.Probes)
		}
		if b.explore != nil {
			b.explore.Truncate(max(left, 0))
			left -= len(b.explore.Probes)
		}
		if b.reverse != nil {
			b.reverse.Truncate(max(left, 0))
		}
	}

	return b, nil
}

// walkedPlans keys every run by the marker-free plan that produced it.
func walkedPlans(runs []core.Run) map[string]bool {
	out := make(map[string]bool, len(runs))
	for _, r := range runs {
		out[core.PlanFromWalk(r.Walk).String()] = true
	}

	return out
}

func (e *Engine) needExplore(res *merge.Result, accounts []merge.Account) bool {
	for v, acc := range accounts {
		if e.cfg.Explore.Mode == ModeAll {
			if len(res.Transitions[v].Unknown()) > 0 {
				return true
			}
			continue
		}
		if acc.Accounted() < core.DoorCount {
			return true
		}
	}

	return false
}

func needReverse(accounts []merge.Account) bool {
	for _, acc := range accounts {
		if len(acc.Shortfalls) > 0 {
			return true
		}
	}

	return false
}

// missSet maps refuted return doors onto the clusters of res.
func missSet(res *merge.Result, misses []Link) func(v int, j core.Door, u int) bool {
	set := make(map[merge.Edge]bool, len(misses))
	for _, e := range hitEdges(res, misses) {
		set[e] = true
	}

	return func(v int, j core.Door, u int) bool {
		return set[merge.Edge{From: v, Door: j, To: u}]
	}
}
