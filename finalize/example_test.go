// SPDX-License-Identifier: MIT

package finalize_test

import (
	"fmt"

	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/finalize"
	"github.com/katalvlaran/labyrinth/merge"
)

func ExampleCheck() {
	t := core.Transitions{{1, 2, 0, 0, 0, 0}, {0, 2, 1, 1, 1, 1}, {0, core.NoRoom, 2, 2, 2, 2}}
	res := &merge.Result{TimeToCluster: []int{0}, Labels: []core.Label{0, 1, 0}, Transitions: t}

	err := finalize.Check(res, 3)
	fmt.Println(err)
	if d, ok := finalize.AsDeficiency(err); ok {
		fmt.Println(d.Kind, d.Node, d.Neighbor, d.Shortfall)
	}
	// Output:
	// finalize: need more reverse-port verification: room 2 has 0 of 1 return doors to room 1
	// reverse 2 1 1
}
