// SPDX-License-Identifier: MIT

// Command labyrinth reconstructs labyrinth maps through the exploration
// oracle, or against an in-process simulator.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "labyrinth: %v\n", err)
		os.Exit(1)
	}
}
