// SPDX-License-Identifier: MIT

package walk

import (
	"errors"
)

// ErrTooFewRooms indicates a non-positive room count.
var ErrTooFewRooms = errors.New("walk: room count must be positive")

const (
	// DefaultLimitRatio is the action budget per room.
	DefaultLimitRatio = 6.0

	// DefaultTargetRatio is the preferred walk length per room.
	DefaultTargetRatio = 5.5

	// maxOrder is the largest de Bruijn order tried.
	maxOrder = 3

	// seedBase mixes into the derived seed when none is given.
	seedBase = 0xC0FFEE
)

// Option customizes Generate.
type Option func(*Options)

// Options holds the generator parameters.
type Options struct {
	LimitRatio  float64
	TargetRatio float64
	Seed        int64
	seeded      bool
}

// DefaultOptions returns the budget ratios used by the contest oracle.
func DefaultOptions() Options {
	return Options{
		LimitRatio:  DefaultLimitRatio,
		TargetRatio: DefaultTargetRatio,
	}
}

// WithSeed fixes the filler seed.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
		o.seeded = true
	}
}

// WithLimitRatio sets the action budget ratio. Panics if r <= 0.
func WithLimitRatio(r float64) Option {
	if r <= 0 {
		panic("walk: WithLimitRatio(r<=0)")
	}
	return func(o *Options) { o.LimitRatio = r }
}

// WithTargetRatio sets the preferred walk length ratio. Panics if r <= 0.
func WithTargetRatio(r float64) Option {
	if r <= 0 {
		panic("walk: WithTargetRatio(r<=0)")
	}
	return func(o *Options) { o.TargetRatio = r }
}
