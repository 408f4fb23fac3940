// SPDX-License-Identifier: MIT

package candidate

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/labyrinth/signature"
)

// Sentinel errors.
var (
	ErrIndexNil        = errors.New("candidate: index is nil")
	ErrNotSealed       = errors.New("candidate: index is not sealed")
	ErrTraceTooShort   = errors.New("candidate: trace shorter than indexed time-steps")
	ErrOptionViolation = errors.New("candidate: invalid option supplied")
)

// ForcedScore outranks every evidence-based score.
const ForcedScore = 1e9

// Candidate is an unordered time-step pair with A < B.
type Candidate struct {
	A, B  int
	Score float64
	Hits  [signature.KindCount]uint32
}

// Forced returns a candidate for an externally confirmed identity.
func Forced(a, b int) Candidate {
	if a > b {
		a, b = b, a
	}

	return Candidate{A: a, B: b, Score: ForcedScore}
}

// Stats reports how many pairs each selection stage kept.
type Stats struct {
	// RawPairs counts label-compatible pair contributions before dedupe.
	RawPairs int
	// UniquePairs counts distinct pairs.
	UniquePairs int
	// AfterNodeCap counts pairs surviving the per-time-step cap.
	AfterNodeCap int
	// Final is the length of the returned list.
	Final int
}

// Defaults.
const (
	DefaultIDFScale   = 1.2
	DefaultIDFPower   = 1.2
	DefaultPerNodeCap = 64
)

// DefaultWeights are the base weights per signature kind.
var DefaultWeights = [signature.KindCount]float64{
	signature.Forward1:  1,
	signature.Backward1: 1,
	signature.Forward2:  4,
	signature.Backward2: 4,
	signature.Mixed:     3,
}

// Option configures Generate.
type Option func(*Options)

// Options holds scoring and selection parameters.
type Options struct {
	Weights    [signature.KindCount]float64
	IDFScale   float64
	IDFPower   float64
	PerNodeCap int // 0 disables
	MaxPairs   int // 0 means unlimited
	MinScore   float64

	err error
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Weights:    DefaultWeights,
		IDFScale:   DefaultIDFScale,
		IDFPower:   DefaultIDFPower,
		PerNodeCap: DefaultPerNodeCap,
	}
}

// WithWeight sets the base weight of one kind; zero disables it.
func WithWeight(k signature.Kind, w float64) Option {
	return func(o *Options) {
		if k < 0 || k >= signature.KindCount || w < 0 {
			o.err = fmt.Errorf("%w: weight %v for %v", ErrOptionViolation, w, k)
			return
		}
		o.Weights[k] = w
	}
}

// WithIDF sets the idf scale (> 0) and power (>= 0).
func WithIDF(scale, power float64) Option {
	return func(o *Options) {
		if scale <= 0 || power < 0 {
			o.err = fmt.Errorf("%w: idf scale=%v power=%v", ErrOptionViolation, scale, power)
			return
		}
		o.IDFScale, o.IDFPower = scale, power
	}
}

// WithPerNodeCap keeps at most k best pairs per time-step; 0 disables.
func WithPerNodeCap(k int) Option {
	return func(o *Options) {
		if k < 0 {
			o.err = fmt.Errorf("%w: PerNodeCap cannot be negative (%d)", ErrOptionViolation, k)
			return
		}
		o.PerNodeCap = k
	}
}

// WithMaxPairs truncates the final list; 0 means unlimited.
func WithMaxPairs(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxPairs cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxPairs = n
	}
}

// WithMinScore drops pairs scoring below s.
func WithMinScore(s float64) Option {
	return func(o *Options) { o.MinScore = s }
}
