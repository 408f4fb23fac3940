// SPDX-License-Identifier: MIT

package multirun

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/labyrinth/candidate"
	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/merge"
	"github.com/katalvlaran/labyrinth/signature"
)

// ErrNoRuns is returned when Build receives no runs.
var ErrNoRuns = errors.New("multirun: no runs")

// Option configures Build.
type Option func(*options)

type options struct {
	sig    []signature.Option
	cand   []candidate.Option
	forced [][2]int
	seps   [][2]int
}

// WithSignatureOptions forwards options to the signature index.
func WithSignatureOptions(opts ...signature.Option) Option {
	return func(o *options) { o.sig = append(o.sig, opts...) }
}

// WithCandidateOptions forwards options to candidate generation.
func WithCandidateOptions(opts ...candidate.Option) Option {
	return func(o *options) { o.cand = append(o.cand, opts...) }
}

// WithForced injects confirmed identities as time-step pairs.
func WithForced(pairs [][2]int) Option {
	return func(o *options) { o.forced = append(o.forced, pairs...) }
}

// WithSeparations forbids joining the given time-step pairs.
func WithSeparations(pairs [][2]int) Option {
	return func(o *options) { o.seps = append(o.seps, pairs...) }
}

// Model is one full pass of the pipeline over a set of runs.
type Model struct {
	Runs       []core.Run
	Offsets    []int
	Trace      []core.Label
	Index      *signature.Index
	Candidates []candidate.Candidate
	CandStats  candidate.Stats
	Result     *merge.Result
}

// Offsets returns each run's first time-step in the flat layout.
func Offsets(runs []core.Run) []int {
	out := make([]int, len(runs))
	off := 0
	for i, r := range runs {
		out[i] = off
		off += r.Steps()
	}

	return out
}

// Concat returns the flat label trace.
func Concat(runs []core.Run) []core.Label {
	var out []core.Label
	for _, r := range runs {
		out = append(out, r.Trace...)
	}

	return out
}

// Index builds and seals a signature index over every run.
func Index(runs []core.Run, opts ...signature.Option) (*signature.Index, error) {
	ix, err := signature.New(opts...)
	if err != nil {
		return nil, err
	}
	for i, off := range Offsets(runs) {
		if err = ix.Add(runs[i], off); err != nil {
			return nil, err
		}
	}
	ix.Seal()

	return ix, nil
}

// Build runs phases A, B and C over runs toward target clusters.
func Build(runs []core.Run, target int, opts ...Option) (*Model, error) {
	if len(runs) == 0 {
		return nil, ErrNoRuns
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Model{Runs: runs, Offsets: Offsets(runs), Trace: Concat(runs)}
	var err error
	if m.Index, err = Index(runs, o.sig...); err != nil {
		return nil, fmt.Errorf("multirun: index: %w", err)
	}
	if m.Candidates, m.CandStats, err = candidate.Generate(m.Index, m.Trace, o.cand...); err != nil {
		return nil, fmt.Errorf("multirun: candidates: %w", err)
	}

	cands := m.Candidates
	if len(o.forced) > 0 {
		cands = make([]candidate.Candidate, 0, len(m.Candidates)+len(o.forced))
		for _, p := range o.forced {
			cands = append(cands, candidate.Forced(p[0], p[1]))
		}
		cands = append(cands, m.Candidates...)
	}

	st, err := merge.NewState(runs...)
	if err != nil {
		return nil, fmt.Errorf("multirun: state: %w", err)
	}
	if m.Result, err = merge.Merge(st, cands, target, merge.WithSeparations(o.seps)); err != nil {
		return nil, fmt.Errorf("multirun: merge: %w", err)
	}

	return m, nil
}
