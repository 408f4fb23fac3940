// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/labyrinth/oracle"
	"github.com/katalvlaran/labyrinth/solver"
)

var (
	errIncomplete = errors.New("map incomplete, not submitted (use --force to guess anyway)")
	errIncorrect  = errors.New("guess rejected")
)

// problemRooms holds the room counts of the published problems.
var problemRooms = map[string]int{
	"probatio": 3,
	"primus":   6,
	"secundus": 12,
	"tertius":  18,
	"quartus":  24,
	"quintus":  30,
}

type runOptions struct {
	rooms  int
	output string
	force  bool
}

func (a *app) solveCmd() *cobra.Command {
	var (
		opts runOptions
		seed int64
	)
	cmd := &cobra.Command{
		Use:   "solve <problem>",
		Short: "Reconstruct a labyrinth through the oracle and submit the map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			problem := args[0]
			if opts.rooms == 0 {
				n, ok := problemRooms[problem]
				if !ok {
					return fmt.Errorf("unknown problem %q: pass --room-num", problem)
				}
				opts.rooms = n
			}
			base := a.v.GetString(keyBaseURL)
			if base == "" {
				return fmt.Errorf("no oracle URL: set --base-url or %s_BASE_URL", envPrefix)
			}
			cfg, err := a.engineConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Walk.Seed = seed
			}

			client := oracle.NewHTTPClient(base,
				oracle.WithTeamID(a.v.GetString(keyTeamID)),
				oracle.WithAccess(a.v.GetString(keyClientID), a.v.GetString(keyClientSecret)),
			)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			defer a.serveMetrics()()

			return a.run(ctx, client, problem, cfg, opts)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.rooms, "room-num", 0, "room count (defaults by problem name)")
	f.Int64Var(&seed, "seed", 0, "covering walk seed")
	f.StringVarP(&opts.output, "output", "o", "", "write the map as JSON to this file")
	f.BoolVar(&opts.force, "force", false, "guess even when the map is incomplete")

	return cmd
}

// run opens a session, solves, and guesses. The session is aborted on any
// exit path that did not reach a guess.
func (a *app) run(ctx context.Context, client oracle.Client, problem string, cfg solver.Config, opts runOptions) error {
	eng, err := solver.New(opts.rooms, cfg, solver.WithLogger(a.log))
	if err != nil {
		return err
	}
	sess, err := oracle.Open(ctx, client, problem, oracle.WithLogger(a.log))
	if err != nil {
		return err
	}
	defer sess.Close()

	start := time.Now()
	out, err := eng.Solve(ctx, sess)
	if err != nil {
		return err
	}
	if opts.output != "" {
		if err := writeMap(opts.output, out); err != nil {
			return err
		}
	}

	yellow := color.New(color.FgYellow).SprintFunc()
	if !out.Complete {
		fmt.Fprintf(a.out, "%s %v\n", yellow("incomplete:"), out.Deficiency)
		if !opts.force {
			return errIncomplete
		}
	}

	ok, err := sess.Guess(ctx, out.Map)
	if err != nil {
		return err
	}
	summary := fmt.Sprintf("%s: %d rooms, %d rounds, %d queries, %s",
		problem, len(out.Map.Rooms), out.State.Round, sess.Queries(), time.Since(start).Round(time.Millisecond))
	if !ok {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(a.out, "%s %s\n", red("incorrect"), summary)
		return errIncorrect
	}
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(a.out, "%s %s\n", green("correct"), summary)

	return nil
}

func writeMap(path string, out *solver.Outcome) error {
	data, err := json.MarshalIndent(out.Map, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write map: %w", err)
	}

	return nil
}
