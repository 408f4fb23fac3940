// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/walk"
)

func (a *app) walkCmd() *cobra.Command {
	var (
		rooms int
		seed  int64
	)
	cmd := &cobra.Command{
		Use:   "walk",
		Short: "Print the covering walk plan for a room count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.engineConfig()
			if err != nil {
				return err
			}
			opts := []walk.Option{
				walk.WithLimitRatio(float64(cfg.Budget.Ratio)),
				walk.WithTargetRatio(cfg.Walk.TargetRatio),
			}
			if cmd.Flags().Changed("seed") {
				opts = append(opts, walk.WithSeed(seed))
			} else if cfg.Walk.Seed != 0 {
				opts = append(opts, walk.WithSeed(cfg.Walk.Seed))
			}
			doors, err := walk.Generate(rooms, opts...)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, core.PlanFromWalk(doors).String())

			return nil
		},
	}
	cmd.Flags().IntVar(&rooms, "room-num", 6, "room count")
	cmd.Flags().Int64Var(&seed, "seed", 0, "filler seed")

	return cmd
}
