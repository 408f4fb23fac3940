// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/labyrinth/internal/logging"
	"github.com/katalvlaran/labyrinth/internal/metrics"
	"github.com/katalvlaran/labyrinth/solver"
)

const envPrefix = "LABYRINTH"

// Settings resolved from flags, then LABYRINTH_* variables.
const (
	keyBaseURL      = "base_url"
	keyTeamID       = "team_id"
	keyClientID     = "client_id"
	keyClientSecret = "client_secret"
	keyLogLevel     = "log_level"
	keyConfig       = "config"
	keyMetricsAddr  = "metrics_addr"
)

type app struct {
	v   *viper.Viper
	log zerolog.Logger
	out io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zerolog.Nop(), out: os.Stdout}

	root := &cobra.Command{
		Use:           "labyrinth",
		Short:         "Reconstruct hidden labyrinths from exploration plans",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("base-url", "", "oracle base URL")
	pf.String("team-id", "", "team id sent with every request")
	pf.String("client-id", "", "access client id")
	pf.String("client-secret", "", "access client secret")
	pf.String("log-level", "", "log level (trace, debug, info, warn, error)")
	pf.String("config", "", "engine TOML config file")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address while running")
	for _, name := range []string{"base-url", "team-id", "client-id", "client-secret", "log-level", "config", "metrics-addr"} {
		_ = a.v.BindPFlag(strings.ReplaceAll(name, "-", "_"), pf.Lookup(name))
	}
	a.v.SetEnvPrefix(envPrefix)
	a.v.AutomaticEnv()

	root.AddCommand(a.solveCmd(), a.simulateCmd(), a.walkCmd())

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	a.out = cmd.OutOrStdout()
	a.log = logging.Configure(cmd.ErrOrStderr(), logging.ProfileRuntime, a.v.GetString(keyLogLevel))
	metrics.Register()

	return nil
}

// engineConfig starts from the defaults and overlays the config file, if
// any.
func (a *app) engineConfig() (solver.Config, error) {
	path := a.v.GetString(keyConfig)
	if path == "" {
		return solver.DefaultConfig(), nil
	}

	return loadEngineConfig(path)
}

// serveMetrics exposes the default registry until the returned func runs.
func (a *app) serveMetrics() func() {
	addr := a.v.GetString(keyMetricsAddr)
	if addr == "" {
		return func() {}
	}
	srv := &http.Server{Addr: addr, Handler: promhttp.Handler(), ReadHeaderTimeout: 5 * time.Second}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error().Err(err).Str("addr", addr).Msg("metrics_server")
		}
	}()
	a.log.Info().Str("addr", addr).Msg("metrics_listening")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
		<-done
	}
}
