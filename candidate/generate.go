// SPDX-License-Identifier: MIT

package candidate

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/signature"
)

// IDF is the inverse bucket frequency ln(1 + scale·max(U/m, 1))^power.
func IDF(universe, m int, scale, power float64) float64 {
	if m <= 0 {
		return 0
	}
	ratio := max(float64(universe)/float64(m), 1)

	return math.Pow(math.Log1p(scale*ratio), max(power, 0))
}

// Generate scores every label-compatible pair sharing a bucket in ix.
// trace must hold the label of every indexed time-step (the concatenated
// traces for a multi-run index).
func Generate(ix *signature.Index, trace []core.Label, opts ...Option) ([]Candidate, Stats, error) {
	var st Stats
	if ix == nil {
		return nil, st, ErrIndexNil
	}
	if !ix.Sealed() {
		return nil, st, ErrNotSealed
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, st, o.err
	}

	// acc maps a packed (a, c) pair to its index in list
	acc := make(map[uint64]int)
	var list []Candidate
	for k := signature.Kind(0); k < signature.KindCount; k++ {
		wt := o.Weights[k]
		if wt == 0 {
			continue
		}
		u := ix.Universe(k)
		for _, key := range ix.Keys(k) {
			// a bucket of one shares nothing
			b := ix.Bucket(k, key)
			if len(b) < 2 {
				continue
			}
			if last := b[len(b)-1]; last >= len(trace) {
				return nil, st, fmt.Errorf("%w: time-step %d, trace %d", ErrTraceTooShort, last, len(trace))
			}
			// rare buckets weigh more; every compatible pair in it gets inc
			inc := wt * IDF(u, len(b), o.IDFScale, o.IDFPower)
			for i := 0; i < len(b); i++ {
				for j := i + 1; j < len(b); j++ {
					a, c := b[i], b[j]
					if trace[a] != trace[c] {
						continue
					}
					st.RawPairs++
					pk := uint64(a)<<32 | uint64(c)
					idx, ok := acc[pk]
					if !ok {
						idx = len(list)
						acc[pk] = idx
						list = append(list, Candidate{A: a, B: c})
					}
					list[idx].Score += inc
					list[idx].Hits[k]++
				}
			}
		}
	}
	st.UniquePairs = len(list)

	// filter, cap per node, then order and cut
	if o.MinScore > 0 {
		list = slices.DeleteFunc(list, func(c Candidate) bool { return c.Score < o.MinScore })
	}
	if o.PerNodeCap > 0 {
		list = capPerNode(list, o.PerNodeCap)
	}
	st.AfterNodeCap = len(list)

	Sort(list)
	if o.MaxPairs > 0 && len(list) > o.MaxPairs {
		list = list[:o.MaxPairs]
	}
	st.Final = len(list)

	return list, st, nil
}

// Sort orders candidates by score descending, then (A, B) ascending.
func Sort(list []Candidate) {
	slices.SortFunc(list, compare)
}

func compare(x, y Candidate) int {
	switch {
	case x.Score > y.Score:
		return -1
	case x.Score < y.Score:
		return 1
	case x.A != y.A:
		return x.A - y.A
	default:
		return x.B - y.B
	}
}

// capPerNode keeps a pair when it is among the k best of either endpoint.
func capPerNode(list []Candidate, k int) []Candidate {
	byNode := make(map[int][]int)
	for i, c := range list {
		byNode[c.A] = append(byNode[c.A], i)
		byNode[c.B] = append(byNode[c.B], i)
	}
	keep := make([]bool, len(list))
	for _, idx := range byNode {
		if len(idx) > k {
			slices.SortFunc(idx, func(i, j int) int { return compare(list[i], list[j]) })
			idx = idx[:k]
		}
		for _, i := range idx {
			keep[i] = true
		}
	}
	out := list[:0]
	for i, c := range list {
		if keep[i] {
			out = append(out, c)
		}
	}

	return out
}
