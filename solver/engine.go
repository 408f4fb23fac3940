// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/finalize"
	"github.com/katalvlaran/labyrinth/internal/metrics"
	"github.com/katalvlaran/labyrinth/merge"
	"github.com/katalvlaran/labyrinth/multirun"
	"github.com/katalvlaran/labyrinth/walk"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the round logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Engine reconstructs one labyrinth of a known size.
type Engine struct {
	rooms int
	cfg   Config
	log   zerolog.Logger
}

// New validates cfg and returns an engine for the given room count.
func New(rooms int, cfg Config, opts ...Option) (*Engine, error) {
	if rooms < 1 {
		return nil, fmt.Errorf("%w: rooms=%d", ErrTooFewRooms, rooms)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{rooms: rooms, cfg: cfg, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Rooms is the target room count.
func (e *Engine) Rooms() int { return e.rooms }

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Solve sends the covering walk and then probes until the map is complete
// or the rounds run out. On error the returned outcome, when non-nil, holds
// the state reached so far.
func (e *Engine) Solve(ctx context.Context, ex Explorer) (*Outcome, error) {
	doors, err := walk.Generate(e.rooms, e.cfg.walkOptions()...)
	if err != nil {
		return nil, err
	}
	plan := core.PlanFromWalk(doors)
	resp, err := e.send(ctx, ex, []core.Plan{plan})
	if err != nil {
		return nil, err
	}
	run, err := plan.Run(resp[0])
	if err != nil {
		return nil, err
	}
	metrics.RecordPlans(kindWalk, 1, plan.Actions())
	e.log.Info().Int("rooms", e.rooms).Int("moves", run.Moves()).Msg("walk_done")

	return e.loop(ctx, ex, &State{Runs: []core.Run{run}})
}

// Resume continues from a state returned in an earlier Outcome. st itself
// is left untouched.
func (e *Engine) Resume(ctx context.Context, ex Explorer, st *State) (*Outcome, error) {
	if st == nil || len(st.Runs) == 0 {
		return nil, ErrNoState
	}

	return e.loop(ctx, ex, st.Clone())
}

func (e *Engine) loop(ctx context.Context, ex Explorer, st *State) (*Outcome, error) {
	for {
		model, err := e.rebuild(st)
		if err != nil {
			return nil, err
		}

		err = finalize.Check(st.Result, e.rooms)
		if err == nil {
			m, ferr := finalize.Finalize(st.Result, e.rooms)
			if ferr != nil {
				return e.bestEffort(st, nil), ferr
			}
			e.log.Info().Int("round", st.Round).Int("runs", len(st.Runs)).Msg("solved")
			return &Outcome{Map: m, Complete: true, State: st}, nil
		}
		def, ok := finalize.AsDeficiency(err)
		if !ok {
			return nil, err
		}
		metrics.RecordDeficiency(def.Kind.String())

		if st.Round >= e.cfg.MaxRounds {
			e.log.Warn().Int("round", st.Round).Str("deficiency", def.Error()).Msg("rounds_exhausted")
			return e.bestEffort(st, def), nil
		}
		progress, err := e.round(ctx, ex, st, model, def)
		if err != nil {
			return e.bestEffort(st, def), err
		}
		if !progress {
			e.log.Warn().Int("round", st.Round).Str("deficiency", def.Error()).Msg("no_progress")
			return e.bestEffort(st, def), nil
		}
	}
}

// rebuild runs the pipeline over every run and re-applies confirmed return
// doors; st.Result is replaced.
func (e *Engine) rebuild(st *State) (*multirun.Model, error) {
	m, err := multirun.Build(st.Runs, e.rooms,
		multirun.WithSignatureOptions(e.cfg.signatureOptions()...),
		multirun.WithCandidateOptions(e.cfg.candidateOptions()...),
		multirun.WithForced(st.Forced),
		multirun.WithSeparations(st.Separations),
	)
	if err != nil {
		return nil, err
	}
	stats := m.Result.Stats
	metrics.RecordMerge(stats.Accepted, stats.Rejected, stats.Skipped)

	res, applied := m.Result.WithEdges(hitEdges(m.Result, st.Hits))
	st.Result = res
	e.log.Debug().
		Int("round", st.Round).
		Int("clusters", res.Count()).
		Int("candidates", len(m.Candidates)).
		Int("accepted", stats.Accepted).
		Int("rejected", stats.Rejected).
		Int("rp_applied", applied).
		Msg("model_rebuilt")

	return m, nil
}

// hitEdges maps time-step links onto the clusters of res.
func hitEdges(res *merge.Result, links []Link) []merge.Edge {
	ttc := res.TimeToCluster
	out := make([]merge.Edge, 0, len(links))
	for _, l := range links {
		if l.From < len(ttc) && l.To < len(ttc) {
			out = append(out, merge.Edge{From: ttc[l.From], Door: l.Door, To: ttc[l.To]})
		}
	}

	return out
}

func (e *Engine) bestEffort(st *State, def *finalize.Deficiency) *Outcome {
	return &Outcome{Map: finalize.Complete(st.Result), Deficiency: def, State: st}
}

// send issues one oracle call and checks the responses line up with plans.
func (e *Engine) send(ctx context.Context, ex Explorer, plans []core.Plan) ([][]core.Label, error) {
	resp, err := ex.Explore(ctx, plans)
	if err != nil {
		return nil, err
	}
	if len(resp) != len(plans) {
		return nil, fmt.Errorf("%w: %d plans, %d responses", ErrBatchMismatch, len(plans), len(resp))
	}
	for i, p := range plans {
		if len(resp[i]) != p.ResponseLen() {
			return nil, fmt.Errorf("%w: plan %d expects %d labels, got %d",
				ErrResponseLength, i, p.ResponseLen(), len(resp[i]))
		}
	}

	return resp, nil
}
