// SPDX-License-Identifier: MIT

package bfs_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/labyrinth/bfs"
	"github.com/katalvlaran/labyrinth/core"
)

// table builds a transition table from (from, door, to) triples.
func table(n int, edges ...[3]int) core.Transitions {
	t := make(core.Transitions, n)
	for i := range t {
		t[i] = core.EmptyPorts()
	}
	for _, e := range edges {
		t[e[0]][e[1]] = e[2]
	}

	return t
}

// TestBFS_Errors verifies that invalid inputs and options are rejected.
func TestBFS_Errors(t *testing.T) {
	if _, err := bfs.BFS(table(1), 3); !errors.Is(err, bfs.ErrStartNotFound) {
		t.Errorf("missing start: want ErrStartNotFound, got %v", err)
	}
	if _, err := bfs.BFS(nil, 0); !errors.Is(err, bfs.ErrStartNotFound) {
		t.Errorf("empty table: want ErrStartNotFound, got %v", err)
	}
	if _, err := bfs.BFS(table(1), 0, bfs.WithMaxDepth(-1)); !errors.Is(err, bfs.ErrOptionViolation) {
		t.Errorf("negative depth: want ErrOptionViolation, got %v", err)
	}
}

// TestBFS_SingleRoom covers a room whose every exit is unresolved.
func TestBFS_SingleRoom(t *testing.T) {
	res, err := bfs.BFS(table(1), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int{0}; !reflect.DeepEqual(res.Order, want) {
		t.Errorf("Order = %v; want %v", res.Order, want)
	}
	path, err := res.PathTo(0)
	if err != nil || len(path) != 0 {
		t.Errorf("PathTo(start) = %v, %v; want empty", path, err)
	}
}

// TestBFS_DepthsAndDoors covers a ring with a shortcut.
func TestBFS_DepthsAndDoors(t *testing.T) {
	// 0 -1-> 1 -1-> 2 -1-> 3 -1-> 0, plus 0 -5-> 2
	tr := table(4, [3]int{0, 1, 1}, [3]int{1, 1, 2}, [3]int{2, 1, 3}, [3]int{3, 1, 0}, [3]int{0, 5, 2})
	res, err := bfs.BFS(tr, 0)
	require.NoError(t, err)

	require.Equal(t, []int{0, 1, 2, 3}, res.Order)
	require.Equal(t, []int{0, 1, 1, 2}, res.Depth)

	path, err := res.PathTo(3)
	require.NoError(t, err)
	require.Equal(t, []core.Door{5, 1}, path)

	_, err = bfs.BFS(tr, 0, bfs.WithMaxDepth(1))
	require.NoError(t, err)
}

// TestBFS_Unreached ensures PathTo reports rooms outside the start's reach.
func TestBFS_Unreached(t *testing.T) {
	tr := table(3, [3]int{0, 0, 1})
	res, err := bfs.BFS(tr, 0)
	require.NoError(t, err)
	require.False(t, res.Reached(2))
	_, err = res.PathTo(2)
	require.ErrorIs(t, err, bfs.ErrNoPath)
	_, err = res.PathTo(9)
	require.ErrorIs(t, err, bfs.ErrNoPath)
}

// TestBFS_MaxDepth verifies WithMaxDepth for positive and zero values.
func TestBFS_MaxDepth(t *testing.T) {
	tr := table(3, [3]int{0, 0, 1}, [3]int{1, 0, 2})
	if res, _ := bfs.BFS(tr, 0, bfs.WithMaxDepth(1)); !reflect.DeepEqual(res.Order, []int{0, 1}) {
		t.Errorf("MaxDepth=1: got %v; want [0 1]", res.Order)
	}
	if res, _ := bfs.BFS(tr, 0, bfs.WithMaxDepth(0)); !reflect.DeepEqual(res.Order, []int{0, 1, 2}) {
		t.Errorf("MaxDepth=0: got %v; want [0 1 2]", res.Order)
	}
}

// TestBFS_SelfLoopAndParallel ensures loops and parallel doors enqueue once.
func TestBFS_SelfLoopAndParallel(t *testing.T) {
	tr := table(2, [3]int{0, 0, 0}, [3]int{0, 1, 1}, [3]int{0, 2, 1})
	res, _ := bfs.BFS(tr, 0)
	if want := []int{0, 1}; !reflect.DeepEqual(res.Order, want) {
		t.Errorf("SelfLoop/Parallel: got %v; want %v", res.Order, want)
	}
	if res.Via[1] != 1 {
		t.Errorf("Via[1] = %d; want the first door 1", res.Via[1])
	}
}

// TestBFS_Cancel checks that a cancelled context aborts the search.
func TestBFS_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := bfs.BFS(table(2, [3]int{0, 0, 1}), 0, bfs.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}
