// SPDX-License-Identifier: MIT

package merge

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/labyrinth/candidate"
)

// Merge builds a State over runs, registers separations, feeds candidates
// in score order until the live cluster count reaches target (0 means no
// target), and exports the result.
func Merge(st *State, cands []candidate.Candidate, target int, opts ...Option) (*Result, error) {
	if st == nil {
		return nil, ErrNoRuns
	}
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	for _, p := range o.Separations {
		if _, err := st.Separate(p[0], p[1]); err != nil {
			return nil, fmt.Errorf("merge: separation %v: %w", p, err)
		}
	}

	stats := Drive(st, cands, target)
	res, err := st.Export()
	if err != nil {
		return nil, err
	}
	res.Stats = stats

	return res, nil
}

// Drive runs the greedy loop on an existing state and returns its counts.
func Drive(st *State, cands []candidate.Candidate, target int) Stats {
	ordered := slices.Clone(cands)
	candidate.Sort(ordered)

	var stats Stats
	for _, c := range ordered {
		if target > 0 && st.Components() <= target {
			break
		}
		stats.Attempted++
		if st.check(c.A, c.B) == nil && st.Same(c.A, c.B) {
			stats.Skipped++
			continue
		}
		if st.Attempt(c.A, c.B) {
			stats.Accepted++
		} else {
			stats.Rejected++
		}
	}
	stats.Final = st.Components()

	return stats
}
