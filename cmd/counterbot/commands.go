package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ChizhovVadim/CounterBot/internal/arena"
	"github.com/ChizhovVadim/CounterBot/internal/bench"
	"github.com/ChizhovVadim/CounterBot/pkg/common"
	"github.com/ChizhovVadim/CounterBot/pkg/engine"
	"github.com/ChizhovVadim/CounterBot/pkg/eval"
)

var (
	flgWorkers int

	thinkCmd = &cobra.Command{
		Use:   "think [fen]",
		Short: "Pick a move for one position within the configured think time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runThink,
	}

	arenaCmd = &cobra.Command{
		Use:   "arena [opening...]",
		Short: "Play self-play games against an engine with a different positional weight",
		RunE:  runArena,
	}

	benchCmd = &cobra.Command{
		Use:   "bench [fen...]",
		Short: "Search a FEN suite to a fixed depth and report nodes per second",
		RunE:  runBench,
	}
)

func init() {
	benchCmd.Flags().IntVar(&flgWorkers, "workers", 0, "overrides bench.workers from the configuration")
	arenaCmd.Flags().IntVar(&flgWorkers, "workers", 0, "overrides arena.workers from the configuration")
}

func runThink(cmd *cobra.Command, args []string) error {
	var fen = common.InitialPositionFen
	if len(args) == 1 {
		fen = args[0]
	}
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	var eng = engine.NewEngine(cfg.Engine, eval.NewEvaluationService(cfg.Eval))
	var move = eng.Think(cmd.Context(), p, engine.StartTimer())
	if move == common.MoveEmpty {
		return fmt.Errorf("no legal moves in %v", fen)
	}
	fmt.Fprintln(cmd.OutOrStdout(), move)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	var fens = bench.DefaultFENs
	if len(args) != 0 {
		fens = args
	}
	if flgDepth > 0 {
		cfg.Bench.Depth = flgDepth
	}
	if flgWorkers > 0 {
		cfg.Bench.Workers = flgWorkers
	}
	var result, err = bench.Run(cmd.Context(), cfg, fens)
	if err != nil {
		return err
	}

	var w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "move\tdepth\tscore\tnodes\tfen")
	for _, r := range result.Positions {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n", r.Move, r.Depth, scoreString(r.Score), r.Nodes, r.FEN)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Time %v\nNodes %v\nNPS %v\n", result.Elapsed, result.Nodes, result.NPS())
	return nil
}

func runArena(cmd *cobra.Command, args []string) error {
	var openings = arena.DefaultOpenings
	if len(args) != 0 {
		openings = args
	}
	if flgDepth > 0 {
		cfg.Arena.Depth = flgDepth
	}
	if flgWorkers > 0 {
		cfg.Arena.Workers = flgWorkers
	}
	var result, err = arena.Run(cmd.Context(), cfg, openings)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Score: %v - %v - %v  [%.3f]\nElo difference: %.1f, LOS: %.1f %%\n",
		result.Wins, result.Losses, result.Draws, result.Stat.WinningFraction,
		result.Stat.EloDifference, result.Stat.LOS*100)
	return nil
}

func scoreString(s common.UciScore) string {
	if s.Mate != 0 {
		return fmt.Sprintf("mate %v", s.Mate)
	}
	return fmt.Sprintf("cp %v", s.Centipawns)
}
