package arena

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ChizhovVadim/CounterBot/internal/config"
	"github.com/ChizhovVadim/CounterBot/pkg/engine"
	"github.com/ChizhovVadim/CounterBot/pkg/eval"
)

// Run plays every opening twice between engine A, configured by cfg, and
// engine B, which differs only in its positional weight.
func Run(
	ctx context.Context,
	cfg config.Config,
	openings []string,
) (Result, error) {
	var logger = cfg.Engine.Logger
	logger.Info().
		Int("games", 2*len(openings)).
		Int("workers", cfg.Arena.Workers).
		Float64("positionalWeightA", cfg.Eval.PositionalWeight).
		Float64("positionalWeightB", cfg.Arena.OpponentPositionalWeight).
		Msg("arena started")

	var parsed = make([][]string, len(openings))
	for i, opening := range openings {
		var moves, err = parseOpening(opening)
		if err != nil {
			return Result{}, err
		}
		parsed[i] = moves
	}

	var tc = TimeControl{
		Depth:    cfg.Arena.Depth,
		MoveTime: int(cfg.Arena.MoveTime.Milliseconds()),
		MaxPlies: cfg.Arena.MaxPlies,
	}

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo)
	var gameResults = make(chan gameResult)
	var result Result

	g.Go(func() error {
		defer close(gameInfos)
		return loadGames(ctx, parsed, gameInfos)
	})

	g.Go(func() error {
		for res := range gameResults {
			result.add(res)
			logger.Info().
				Int("game", res.gameInfo.gameNumber).
				Str("result", gameResultString(res.result)).
				Str("comment", res.comment).
				Int("plies", len(res.moves)).
				Msg("game finished")
			logScore(logger, &result)
		}
		return nil
	})

	var wg = &sync.WaitGroup{}

	for i := 0; i < cfg.Arena.Workers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, cfg, tc, gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return result, nil
}

func loadGames(ctx context.Context, openings [][]string, gameInfos chan<- gameInfo) error {
	for i, opening := range openings {
		for _, engineAIsWhite := range [...]bool{true, false} {
			var info = gameInfo{opening: opening, engineAIsWhite: engineAIsWhite, gameNumber: 1 + 2*i}
			if !engineAIsWhite {
				info.gameNumber++
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case gameInfos <- info:
			}
		}
	}
	return nil
}

func playGames(
	ctx context.Context,
	cfg config.Config,
	tc TimeControl,
	gameInfos <-chan gameInfo,
	gameResults chan<- gameResult,
) error {
	var engineA = newEngine(cfg.Engine, cfg.Eval)
	var weightsB = cfg.Eval
	weightsB.PositionalWeight = cfg.Arena.OpponentPositionalWeight
	var engineB = newEngine(cfg.Engine, weightsB)
	for gameInfo := range gameInfos {
		var res, err = playGame(ctx, engineA, engineB, tc, gameInfo)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- res:
		}
	}
	return nil
}

func newEngine(options engine.Options, weights eval.Weights) *engine.Engine {
	options.Logger = zerolog.Nop()
	return engine.NewEngine(options, eval.NewEvaluationService(weights))
}

func logScore(logger zerolog.Logger, r *Result) {
	logger.Info().
		Int("wins", r.Wins).
		Int("losses", r.Losses).
		Int("draws", r.Draws).
		Float64("winningFraction", r.Stat.WinningFraction).
		Float64("eloDifference", r.Stat.EloDifference).
		Float64("los", r.Stat.LOS).
		Msg("score")
}
