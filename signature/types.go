// SPDX-License-Identifier: MIT

package signature

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrSealed is returned when a run is added to a sealed index.
	ErrSealed = errors.New("signature: index already sealed")

	// ErrOptionViolation is returned for an invalid Option.
	ErrOptionViolation = errors.New("signature: invalid option supplied")
)

// Kind identifies a context shape.
type Kind int

const (
	Forward1 Kind = iota
	Backward1
	Forward2
	Backward2
	Mixed

	// KindCount is the number of kinds.
	KindCount
)

var kindNames = [KindCount]string{"f1", "b1", "f2", "b2", "mix"}

// String returns the short kind name.
func (k Kind) String() string {
	if k < 0 || k >= KindCount {
		return fmt.Sprintf("kind(%d)", int(k))
	}

	return kindNames[k]
}

// Key is a packed signature.
type Key uint64

// Defaults.
const (
	DefaultBucketCap = 128
	DefaultSeed      = uint64(0x5EEDC0DE1234ABCD)
)

// Option configures an Index.
type Option func(*Options)

// Options holds index parameters.
type Options struct {
	// BucketCap limits bucket size; 0 disables capping.
	BucketCap int

	// Mixed enables the centered 5-tuple kind.
	Mixed bool

	// Seed drives deterministic capping.
	Seed uint64

	err error
}

// DefaultOptions returns cap 128, mixed enabled and the default seed.
func DefaultOptions() Options {
	return Options{
		BucketCap: DefaultBucketCap,
		Mixed:     true,
		Seed:      DefaultSeed,
	}
}

// WithBucketCap sets the per-bucket cap. Zero disables capping.
func WithBucketCap(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: BucketCap cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.BucketCap = n
	}
}

// WithMixed toggles the Mixed kind.
func WithMixed(enabled bool) Option {
	return func(o *Options) { o.Mixed = enabled }
}

// WithSeed sets the capping seed.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.Seed = seed }
}

func pack3(y0, d0, y1 uint8) Key {
	return Key(y0) | Key(d0)<<2 | Key(y1)<<5
}

func pack5(y0, d0, y1, d1, y2 uint8) Key {
	return Key(y0) | Key(d0)<<2 | Key(y1)<<5 | Key(d1)<<7 | Key(y2)<<10
}
