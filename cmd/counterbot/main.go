package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ChizhovVadim/CounterBot/internal/config"
	"github.com/ChizhovVadim/CounterBot/pkg/engine"
	"github.com/ChizhovVadim/CounterBot/pkg/eval"
	"github.com/ChizhovVadim/CounterBot/pkg/uci"
)

/*
Counter Copyright (C) 2017-2023 Vadim Chizhov
This program is free software: you can redistribute it and/or modify it under the terms of the GNU General Public License as published by the Free Software Foundation, either version 3 of the License, or (at your option) any later version.
This program is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License for more details.
You should have received a copy of the GNU General Public License along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

const (
	name   = "CounterBot"
	author = "Vadim Chizhov"
)

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
)

var (
	flgConfig      string
	flgLogLevel    string
	flgMetricsAddr string
	flgDepth       int

	logger zerolog.Logger
	cfg    config.Config

	rootCmd = &cobra.Command{
		Use:               "counterbot",
		Short:             "Chess engine speaking UCI on stdin/stdout",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runUci,
	}
)

func main() {
	rootCmd.PersistentFlags().StringVar(&flgConfig, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&flgLogLevel, "log-level", "", "overrides log_level from the configuration")
	rootCmd.PersistentFlags().StringVar(&flgMetricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	rootCmd.PersistentFlags().IntVar(&flgDepth, "depth", 0, "maximum search depth, 0 means no limit")
	rootCmd.AddCommand(thinkCmd, benchCmd, arenaCmd)

	var ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flgConfig)
	if err != nil {
		return err
	}
	if flgLogLevel != "" {
		cfg.LogLevel = flgLogLevel
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if flgDepth > 0 {
		cfg.Engine.MaxDepth = flgDepth
	}

	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
	cfg.Engine.Logger = logger

	logger.Info().
		Str("name", name).
		Str("version", versionName).
		Str("buildDate", buildDate).
		Str("gitRevision", gitRevision).
		Str("runtime", runtime.Version()).
		Str("goarch", runtime.GOARCH).
		Str("goos", runtime.GOOS).
		Int("numCPU", runtime.NumCPU()).
		Msg("starting")

	if flgMetricsAddr != "" {
		go serveMetrics(flgMetricsAddr)
	}
	return nil
}

func serveMetrics(addr string) {
	var mux = http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	var server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info().Str("addr", addr).Msg("metrics listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics server failed")
	}
}

func runUci(cmd *cobra.Command, args []string) error {
	var evaluator = eval.NewEvaluationService(cfg.Eval)
	var eng = engine.NewEngine(cfg.Engine, evaluator)

	var protocol = uci.New(name, author, versionName, eng,
		[]uci.Option{
			&uci.IntOption{Name: "CacheCeiling", Min: 1 << 10, Max: 1 << 26, Value: &eng.Options.CacheCeiling},
			&uci.DurationOption{Name: "ThinkTime", Min: 10 * time.Millisecond, Max: time.Hour, Value: &eng.Options.ThinkTime},
			&uci.IntOption{Name: "MaxDepth", Min: 0, Max: 100, Value: &eng.Options.MaxDepth},
			&uci.BoolOption{Name: "UseTransCache", Value: &eng.Options.UseTransCache},
			&uci.FloatOption{Name: "PositionalWeight", Min: 0, Max: 10, Value: &evaluator.PositionalWeight},
		},
		logger,
	)
	var err = protocol.Run(cmd.Context(), os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
