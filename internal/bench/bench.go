package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/ChizhovVadim/CounterBot/internal/config"
	"github.com/ChizhovVadim/CounterBot/pkg/common"
	"github.com/ChizhovVadim/CounterBot/pkg/engine"
	"github.com/ChizhovVadim/CounterBot/pkg/eval"
)

var DefaultFENs = []string{
	common.InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
	"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
}

type PositionResult struct {
	FEN   string
	Move  common.Move
	Depth int
	Score common.UciScore
	Nodes int64
}

type Result struct {
	Positions []PositionResult
	Nodes     int64
	Elapsed   time.Duration
}

func (r Result) NPS() int64 {
	return r.Nodes * int64(time.Second) / (int64(r.Elapsed) + 1)
}

type benchItem struct {
	index int
	fen   string
}

// Run searches every fen to cfg.Bench.Depth on cfg.Bench.Workers goroutines.
// Each worker owns its engine, so no search state is shared.
func Run(ctx context.Context, cfg config.Config, fens []string) (Result, error) {
	var logger = cfg.Engine.Logger
	logger.Info().
		Int("positions", len(fens)).
		Int("depth", cfg.Bench.Depth).
		Int("workers", cfg.Bench.Workers).
		Msg("bench started")

	var start = time.Now()
	var results = make([]PositionResult, len(fens))

	g, ctx := errgroup.WithContext(ctx)

	var items = make(chan benchItem)
	g.Go(func() error {
		defer close(items)
		for i, fen := range fens {
			select {
			case items <- benchItem{index: i, fen: fen}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < cfg.Bench.Workers; i++ {
		i := i
		g.Go(func() error {
			var options = cfg.Engine
			options.Logger = options.Logger.With().Int("worker", i).Logger()
			var eng = engine.NewEngine(options, eval.NewEvaluationService(cfg.Eval))
			for item := range items {
				var r, err = searchOne(ctx, eng, item.fen, cfg.Bench.Depth)
				if err != nil {
					return err
				}
				results[item.index] = r
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var result = Result{
		Positions: results,
		Nodes: lo.SumBy(results, func(r PositionResult) int64 {
			return r.Nodes
		}),
		Elapsed: time.Since(start),
	}
	logger.Info().
		Int64("nodes", result.Nodes).
		Dur("elapsed", result.Elapsed).
		Int64("nps", result.NPS()).
		Msg("bench finished")
	return result, nil
}

func searchOne(ctx context.Context, eng *engine.Engine, fen string, depth int) (PositionResult, error) {
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return PositionResult{}, fmt.Errorf("bench position %q: %w", fen, err)
	}
	eng.Clear()
	var si = eng.Search(ctx, common.SearchParams{
		Position: p,
		Limits:   common.LimitsType{Depth: depth},
	})
	if err := ctx.Err(); err != nil {
		return PositionResult{}, err
	}
	var r = PositionResult{
		FEN:   fen,
		Depth: si.Depth,
		Score: si.Score,
		Nodes: si.Nodes,
	}
	if len(si.MainLine) != 0 {
		r.Move = si.MainLine[0]
	}
	return r, nil
}
