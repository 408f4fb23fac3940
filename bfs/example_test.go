// SPDX-License-Identifier: MIT

package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/labyrinth/bfs"
	"github.com/katalvlaran/labyrinth/core"
)

// ExampleResult_PathTo routes through a three-room corridor.
func ExampleResult_PathTo() {
	tr := core.Transitions{core.EmptyPorts(), core.EmptyPorts(), core.EmptyPorts()}
	tr[0][2] = 1
	tr[1][0] = 0
	tr[1][4] = 2

	res, err := bfs.BFS(tr, 0)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	path, _ := res.PathTo(2)
	fmt.Println(res.Order, path)
	// Output:
	// [0 1 2] [2 4]
}
