// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/labyrinth/candidate"
	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/probe"
	"github.com/katalvlaran/labyrinth/signature"
	"github.com/katalvlaran/labyrinth/walk"
)

// Defaults for the round driver.
const (
	DefaultRatio     = 6
	DefaultMarkers   = 4
	DefaultMaxRounds = 12
	DefaultMaxPlans  = 128
)

// Explore mode names.
const (
	ModeMinimal = "minimal"
	ModeAll     = "all"
)

// Config tunes the engine. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	Budget BudgetConfig
	// MaxRounds caps probing rounds after the covering walk.
	MaxRounds int
	// MaxPlans caps plans per oracle call; 0 means no cap.
	MaxPlans  int
	Walk      WalkConfig
	Signature SignatureConfig
	Candidate CandidateConfig
	Identify  IdentifyConfig
	Explore   ExploreConfig
	Reverse   ReverseConfig
}

// BudgetConfig bounds a single plan.
type BudgetConfig struct {
	// Ratio is actions per room: a plan holds at most Ratio·N actions.
	Ratio int
	// Markers is the maximum number of colors in flight per plan.
	Markers int
}

type WalkConfig struct {
	// Seed fixes the filler; 0 derives it from the room count.
	Seed        int64
	TargetRatio float64
}

type SignatureConfig struct {
	BucketCap int
	Mixed     bool
	Seed      int64
}

type CandidateConfig struct {
	// Weights are the base score per signature kind; zero drops the kind.
	Weights    [signature.KindCount]float64
	IDFScale   float64
	IDFPower   float64
	PerNodeCap int
	MaxPairs   int
	MinScore   float64
}

type IdentifyConfig struct {
	Overselect    float64
	MaxTasks      int
	MinSeparation int
}

type ExploreConfig struct {
	// Mode is ModeMinimal or ModeAll.
	Mode    string
	TailMin int
	TailMax int
	Seed    int64
}

type ReverseConfig struct {
	MaxProbes int
}

// DefaultConfig returns the documented defaults of every stage.
func DefaultConfig() Config {
	sig := signature.DefaultOptions()
	cand := candidate.DefaultOptions()
	id := probe.DefaultIdentifyOptions()
	ex := probe.DefaultExploreOptions()

	return Config{
		Budget:    BudgetConfig{Ratio: DefaultRatio, Markers: DefaultMarkers},
		MaxRounds: DefaultMaxRounds,
		MaxPlans:  DefaultMaxPlans,
		Walk:      WalkConfig{TargetRatio: walk.DefaultTargetRatio},
		Signature: SignatureConfig{BucketCap: sig.BucketCap, Mixed: sig.Mixed, Seed: int64(sig.Seed)},
		Candidate: CandidateConfig{
			Weights:    cand.Weights,
			IDFScale:   cand.IDFScale,
			IDFPower:   cand.IDFPower,
			PerNodeCap: cand.PerNodeCap,
			MaxPairs:   cand.MaxPairs,
			MinScore:   cand.MinScore,
		},
		Identify: IdentifyConfig{Overselect: id.Overselect, MaxTasks: id.MaxTasks, MinSeparation: id.MinSeparation},
		Explore:  ExploreConfig{Mode: ModeMinimal, TailMin: ex.TailMin, TailMax: ex.TailMax, Seed: int64(ex.Seed)},
		Reverse:  ReverseConfig{MaxProbes: probe.DefaultMaxProbes},
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Budget.Ratio < 1:
		return fmt.Errorf("%w: budget ratio %d", ErrInvalidConfig, c.Budget.Ratio)
	case c.Budget.Markers < 1 || c.Budget.Markers > core.LabelCount:
		return fmt.Errorf("%w: markers %d not in [1,%d]", ErrInvalidConfig, c.Budget.Markers, core.LabelCount)
	case c.MaxRounds < 0 || c.MaxPlans < 0:
		return fmt.Errorf("%w: max rounds %d, max plans %d", ErrInvalidConfig, c.MaxRounds, c.MaxPlans)
	case c.Walk.TargetRatio <= 0:
		return fmt.Errorf("%w: walk target ratio %v", ErrInvalidConfig, c.Walk.TargetRatio)
	case c.Signature.BucketCap < 0:
		return fmt.Errorf("%w: bucket cap %d", ErrInvalidConfig, c.Signature.BucketCap)
	case c.Candidate.IDFScale <= 0 || c.Candidate.IDFPower < 0:
		return fmt.Errorf("%w: idf scale %v, power %v", ErrInvalidConfig, c.Candidate.IDFScale, c.Candidate.IDFPower)
	case slices.ContainsFunc(c.Candidate.Weights[:], func(w float64) bool { return w < 0 }):
		return fmt.Errorf("%w: candidate weights %v", ErrInvalidConfig, c.Candidate.Weights)
	case c.Candidate.PerNodeCap < 0 || c.Candidate.MaxPairs < 0:
		return fmt.Errorf("%w: per node cap %d, max pairs %d", ErrInvalidConfig, c.Candidate.PerNodeCap, c.Candidate.MaxPairs)
	case c.Identify.MaxTasks < 0 || c.Identify.Overselect < 0 || c.Identify.MinSeparation < 0:
		return fmt.Errorf("%w: identify %+v", ErrInvalidConfig, c.Identify)
	case c.Explore.Mode != ModeMinimal && c.Explore.Mode != ModeAll:
		return fmt.Errorf("%w: explore mode %q", ErrInvalidConfig, c.Explore.Mode)
	case c.Explore.TailMin < 0 || c.Explore.TailMax < c.Explore.TailMin:
		return fmt.Errorf("%w: tail [%d,%d]", ErrInvalidConfig, c.Explore.TailMin, c.Explore.TailMax)
	case c.Reverse.MaxProbes < 0:
		return fmt.Errorf("%w: reverse max probes %d", ErrInvalidConfig, c.Reverse.MaxProbes)
	}

	return nil
}

func (c Config) budget(rooms int) probe.Budget {
	return probe.Budget{Limit: c.Budget.Ratio * rooms, Markers: c.Budget.Markers, MaxPlans: c.MaxPlans}
}

func (c Config) walkOptions() []walk.Option {
	opts := []walk.Option{walk.WithLimitRatio(float64(c.Budget.Ratio)), walk.WithTargetRatio(c.Walk.TargetRatio)}
	if c.Walk.Seed != 0 {
		opts = append(opts, walk.WithSeed(c.Walk.Seed))
	}

	return opts
}

func (c Config) signatureOptions() []signature.Option {
	return []signature.Option{
		signature.WithBucketCap(c.Signature.BucketCap),
		signature.WithMixed(c.Signature.Mixed),
		signature.WithSeed(uint64(c.Signature.Seed)),
	}
}

func (c Config) candidateOptions() []candidate.Option {
	opts := []candidate.Option{
		candidate.WithIDF(c.Candidate.IDFScale, c.Candidate.IDFPower),
		candidate.WithPerNodeCap(c.Candidate.PerNodeCap),
		candidate.WithMaxPairs(c.Candidate.MaxPairs),
		candidate.WithMinScore(c.Candidate.MinScore),
	}
	for k, w := range c.Candidate.Weights {
		opts = append(opts, candidate.WithWeight(signature.Kind(k), w))
	}

	return opts
}

func (c Config) identifyOptions() probe.IdentifyOptions {
	return probe.IdentifyOptions{
		Overselect:    c.Identify.Overselect,
		MaxTasks:      c.Identify.MaxTasks,
		MinSeparation: c.Identify.MinSeparation,
	}
}

func (c Config) exploreOptions() probe.ExploreOptions {
	mode := probe.Minimal
	if c.Explore.Mode == ModeAll {
		mode = probe.AllUnknown
	}

	return probe.ExploreOptions{Mode: mode, TailMin: c.Explore.TailMin, TailMax: c.Explore.TailMax, Seed: uint64(c.Explore.Seed)}
}
