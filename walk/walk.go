// SPDX-License-Identifier: MIT

package walk

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/labyrinth/core"
)

// Generate returns the covering walk for a labyrinth of the given room count.
func Generate(rooms int, opts ...Option) ([]core.Door, error) {
	if rooms < 1 {
		return nil, fmt.Errorf("%w: rooms=%d", ErrTooFewRooms, rooms)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	limit := Limit(rooms, o.LimitRatio)
	order := 0
	for k := maxOrder; k >= 1; k-- {
		if coreLen(k) <= limit {
			order = k
			break
		}
	}

	var seq []core.Door
	if order > 0 {
		seq = DeBruijn(order)
	}
	target := int(math.Floor(o.TargetRatio * float64(rooms)))
	target = min(limit, max(len(seq), target))

	seed := o.Seed
	if !o.seeded {
		seed = int64(seedBase ^ rooms ^ (order << 32))
	}

	return fill(seq, target, rand.New(rand.NewSource(seed))), nil
}

// Limit is the per-plan action budget floor(ratio · rooms), at least 1.
func Limit(rooms int, ratio float64) int {
	return max(int(math.Floor(ratio*float64(rooms))), 1)
}

// DeBruijn returns the linearized de Bruijn sequence over all doors in which
// every door string of the given order occurs exactly once.
func DeBruijn(order int) []core.Door {
	if order < 1 {
		return nil
	}
	const k = core.DoorCount
	a := make([]int, k*order+1)
	seq := make([]core.Door, 0, coreLen(order))

	var gen func(t, p int)
	gen = func(t, p int) {
		if t > order {
			if order%p == 0 {
				for _, v := range a[1 : p+1] {
					seq = append(seq, core.Door(v))
				}
			}
			return
		}
		a[t] = a[t-p]
		gen(t+1, p)
		for j := a[t-p] + 1; j < k; j++ {
			a[t] = j
			gen(t+1, t)
		}
	}
	gen(1, 1)

	// wrap the cyclic sequence so the last k-grams are present linearly
	return append(seq, seq[:order-1]...)
}

func coreLen(order int) int {
	n := 1
	for range order {
		n *= core.DoorCount
	}

	return n + order - 1
}

// fill extends seq to target with shuffled door blocks, then single doors,
// never repeating the previous door at a junction.
func fill(seq []core.Door, target int, rng *rand.Rand) []core.Door {
	last := -1
	if len(seq) > 0 {
		last = int(seq[len(seq)-1])
	}
	for len(seq)+core.DoorCount <= target {
		block := rng.Perm(core.DoorCount)
		if block[0] == last {
			j := 1 + rng.Intn(core.DoorCount-1)
			block[0], block[j] = block[j], block[0]
		}
		for _, d := range block {
			seq = append(seq, core.Door(d))
		}
		last = block[core.DoorCount-1]
	}
	for len(seq) < target {
		if last < 0 {
			last = rng.Intn(core.DoorCount)
			seq = append(seq, core.Door(last))
			continue
		}
		d := rng.Intn(core.DoorCount - 1)
		if d >= last {
			d++
		}
		seq = append(seq, core.Door(d))
		last = d
	}

	return seq
}
