// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/labyrinth/core"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartNotFound is returned when the start room is outside the table.
	ErrStartNotFound = errors.New("bfs: start room not found")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNoPath is returned by PathTo for an unreached room.
	ErrNoPath = errors.New("bfs: no path")
)

// Option configures BFS behavior via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when
// BFS is invoked.
type Option func(*Options)

// Options holds parameters to customize BFS execution.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	err error
}

// DefaultOptions returns background context and no depth limit.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDepth stops the search at the given depth.
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// Result holds the outcome of a traversal.
type Result struct {
	Start  int
	Order  []int
	Depth  []int
	Parent []int
	Via    []core.Door
}

// Reached reports whether room was discovered.
func (r *Result) Reached(room int) bool {
	return room >= 0 && room < len(r.Depth) && r.Depth[room] >= 0
}

// PathTo returns the doors leading from the start room to dest.
func (r *Result) PathTo(dest int) ([]core.Door, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("%w: room %d", ErrNoPath, dest)
	}
	path := make([]core.Door, r.Depth[dest])
	for cur, i := dest, len(path)-1; cur != r.Start; i-- {
		path[i] = r.Via[cur]
		cur = r.Parent[cur]
	}

	return path, nil
}
