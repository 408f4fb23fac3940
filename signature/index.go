// SPDX-License-Identifier: MIT

package signature

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/katalvlaran/labyrinth/core"
)

// Index maps, per Kind, each packed signature to the ascending list of
// time-steps exhibiting it.
type Index struct {
	opts     Options
	buckets  [KindCount]map[Key][]int
	universe [KindCount]int
	moves    int
	sealed   bool
}

// New returns an empty index.
func New(opts ...Option) (*Index, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	ix := &Index{opts: o}
	for k := range ix.buckets {
		ix.buckets[k] = make(map[Key][]int)
	}

	return ix, nil
}

// Build indexes a single run and seals the result.
func Build(run core.Run, opts ...Option) (*Index, error) {
	ix, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err = ix.Add(run, 0); err != nil {
		return nil, err
	}
	ix.Seal()

	return ix, nil
}

// Add collects every context of run, shifting its time-steps by offset.
func (ix *Index) Add(run core.Run, offset int) error {
	if ix.sealed {
		return ErrSealed
	}
	if err := run.Validate(); err != nil {
		return fmt.Errorf("signature: run at offset %d: %w", offset, err)
	}

	y, w := run.Trace, run.Walk
	L := len(w)
	put := func(k Kind, key Key, t int) {
		ix.buckets[k][key] = append(ix.buckets[k][key], offset+t)
	}
	for t := 0; t < L; t++ {
		put(Forward1, pack3(uint8(y[t]), uint8(w[t]), uint8(y[t+1])), t)
		put(Backward1, pack3(uint8(y[t]), uint8(w[t]), uint8(y[t+1])), t+1)
	}
	for t := 0; t+1 < L; t++ {
		key := pack5(uint8(y[t]), uint8(w[t]), uint8(y[t+1]), uint8(w[t+1]), uint8(y[t+2]))
		put(Forward2, key, t)
		put(Backward2, key, t+2)
		if ix.opts.Mixed {
			put(Mixed, key, t+1)
		}
	}

	ix.moves += L
	ix.universe[Forward1] += L
	ix.universe[Backward1] += L
	two := max(L-1, 0)
	ix.universe[Forward2] += two
	ix.universe[Backward2] += two
	if ix.opts.Mixed {
		ix.universe[Mixed] += two
	}

	return nil
}

// Seal sorts buckets and applies the cap. It is idempotent.
func (ix *Index) Seal() {
	if ix.sealed {
		return
	}
	ix.sealed = true
	capN := ix.opts.BucketCap
	rng := rand.New(rand.NewSource(int64(ix.opts.Seed ^ uint64(ix.moves))))
	for k := range ix.buckets {
		for _, key := range ix.Keys(Kind(k)) {
			b := ix.buckets[k][key]
			if capN > 0 && len(b) > capN {
				rng.Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })
				b = b[:capN]
			}
			slices.Sort(b)
			ix.buckets[k][key] = b
		}
	}
}

// Sealed reports whether Seal has run.
func (ix *Index) Sealed() bool { return ix.sealed }

// Keys returns the keys of kind k in ascending order.
func (ix *Index) Keys(k Kind) []Key {
	m := ix.buckets[k]
	keys := make([]Key, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	return keys
}

// Bucket returns the time-steps sharing key under kind k.
// The slice is owned by the index and must not be modified.
func (ix *Index) Bucket(k Kind, key Key) []int { return ix.buckets[k][key] }

// Len is the number of distinct signatures of kind k.
func (ix *Index) Len(k Kind) int { return len(ix.buckets[k]) }

// Entries is the total number of time-steps recorded under kind k.
func (ix *Index) Entries(k Kind) int {
	n := 0
	for _, b := range ix.buckets[k] {
		n += len(b)
	}

	return n
}

// Universe is the number of positions at which kind k can occur, summed
// over runs and never less than one.
func (ix *Index) Universe(k Kind) int { return max(ix.universe[k], 1) }

// Moves is the total number of moves absorbed.
func (ix *Index) Moves() int { return ix.moves }

// Options returns the parameters the index was built with.
func (ix *Index) Options() Options { return ix.opts }
