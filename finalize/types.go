// SPDX-License-Identifier: MIT

package finalize

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/labyrinth/core"
)

// Sentinel errors.
var (
	// ErrNeedMoreIdentification: cluster count differs from the target.
	ErrNeedMoreIdentification = errors.New("finalize: need more identification")

	// ErrNeedMoreExploration: a room has unaccounted doors.
	ErrNeedMoreExploration = errors.New("finalize: need more exploration")

	// ErrNeedMoreReverseVerification: a return door is unknown.
	ErrNeedMoreReverseVerification = errors.New("finalize: need more reverse-port verification")

	// ErrDanglingPort indicates a resolved door with no reverse to pair
	// with. The gates rule this out for consistent results.
	ErrDanglingPort = errors.New("finalize: dangling port")

	// ErrNilResult indicates a missing merge result.
	ErrNilResult = errors.New("finalize: merge result is nil")
)

// Kind classifies a deficiency.
type Kind uint8

const (
	KindIdentification Kind = iota + 1
	KindExploration
	KindReverse
)

// String returns a short lower-case name.
func (k Kind) String() string {
	switch k {
	case KindIdentification:
		return "identification"
	case KindExploration:
		return "exploration"
	case KindReverse:
		return "reverse"
	default:
		return "none"
	}
}

// Deficiency says which gate failed and where. Node and Neighbor are
// core.NoRoom when they do not apply.
type Deficiency struct {
	Kind Kind
	// Node is the room that failed the gate.
	Node int
	// Neighbor is the incoming neighbor with missing return doors.
	Neighbor int
	// Shortfall is Want - Have for reverse deficiencies.
	Shortfall int
	// Have and Want are the observed and required counts: clusters vs
	// target, accounted doors vs six, or return doors vs incoming edges.
	Have, Want int
}

// Error implements error.
func (d *Deficiency) Error() string {
	switch d.Kind {
	case KindIdentification:
		return fmt.Sprintf("%v: %d clusters, want %d", d.sentinel(), d.Have, d.Want)
	case KindExploration:
		return fmt.Sprintf("%v: room %d accounts for %d of %d doors", d.sentinel(), d.Node, d.Have, d.Want)
	default:
		return fmt.Sprintf("%v: room %d has %d of %d return doors to room %d",
			d.sentinel(), d.Node, d.Have, d.Want, d.Neighbor)
	}
}

// Is matches the sentinel for the deficiency's kind.
func (d *Deficiency) Is(target error) bool {
	return target == d.sentinel()
}

func (d *Deficiency) sentinel() error {
	switch d.Kind {
	case KindIdentification:
		return ErrNeedMoreIdentification
	case KindExploration:
		return ErrNeedMoreExploration
	default:
		return ErrNeedMoreReverseVerification
	}
}

// AsDeficiency unwraps err into a *Deficiency.
func AsDeficiency(err error) (*Deficiency, bool) {
	var d *Deficiency
	ok := errors.As(err, &d)

	return d, ok
}

func identification(have, want int) *Deficiency {
	return &Deficiency{Kind: KindIdentification, Node: core.NoRoom, Neighbor: core.NoRoom, Have: have, Want: want}
}
