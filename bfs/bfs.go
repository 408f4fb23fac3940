// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/labyrinth/core"
)

// queueItem pairs a room with its BFS depth.
type queueItem struct {
	room  int
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	table core.Transitions
	opts  Options
	ctx   context.Context
	queue []queueItem
	res   *Result
}

// BFS runs breadth-first search over table starting from start.
func BFS(table core.Transitions, start int, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	n := len(table)
	if start < 0 || start >= n {
		return nil, fmt.Errorf("%w: %d of %d", ErrStartNotFound, start, n)
	}

	w := &walker{
		table: table,
		opts:  o,
		ctx:   o.Ctx,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Start:  start,
			Order:  make([]int, 0, n),
			Depth:  make([]int, n),
			Parent: make([]int, n),
			Via:    make([]core.Door, n),
		},
	}
	for i := range n {
		w.res.Depth[i] = -1
		w.res.Parent[i] = core.NoRoom
	}

	w.enqueue(start, 0, core.NoRoom, 0)

	return w.res, w.loop()
}

// enqueue marks room discovered at depth d through door via of parent.
func (w *walker) enqueue(room, d, parent int, via core.Door) {
	w.res.Depth[room] = d
	w.res.Parent[room] = parent
	w.res.Via[room] = via
	w.queue = append(w.queue, queueItem{room: room, depth: d})
}

// loop processes the queue until empty or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		// cancellation check
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.room)
		w.enqueueExits(item)
	}

	return nil
}

// enqueueExits scans doors in order and enqueues each undiscovered target.
func (w *walker) enqueueExits(item queueItem) {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}
	for d, to := range w.table[item.room] {
		if to == core.NoRoom || to < 0 || to >= len(w.table) {
			continue
		}
		if w.res.Depth[to] < 0 {
			w.enqueue(to, next, item.room, core.Door(d))
		}
	}
}
