// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/labyrinth/oracle"
)

func (a *app) simulateCmd() *cobra.Command {
	var (
		opts runOptions
		seed int64
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Solve a random labyrinth held by the in-process simulator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.rooms < 1 {
				return fmt.Errorf("--room-num must be >= 1")
			}
			cfg, err := a.engineConfig()
			if err != nil {
				return err
			}
			sim, err := oracle.NewSimulator(opts.rooms, oracle.WithSimSeed(seed))
			if err != nil {
				return err
			}
			defer a.serveMetrics()()

			return a.run(cmd.Context(), sim, "simulated", cfg, opts)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.rooms, "room-num", 6, "room count")
	f.Int64Var(&seed, "seed", oracle.DefaultSimSeed, "labyrinth seed")
	f.StringVarP(&opts.output, "output", "o", "", "write the map as JSON to this file")
	f.BoolVar(&opts.force, "force", false, "guess even when the map is incomplete")

	return cmd
}
