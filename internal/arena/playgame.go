package arena

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/ChizhovVadim/CounterBot/pkg/common"
)

var errNoMove = errors.New("engine returned no move")

type TimeControl struct {
	Depth    int
	MoveTime int
	MaxPlies int
}

func (tc TimeControl) limits() common.LimitsType {
	return common.LimitsType{Depth: tc.Depth, MoveTime: tc.MoveTime}
}

func playGame(
	ctx context.Context,
	engineA, engineB IEngine,
	tc TimeControl,
	info gameInfo,
) (gameResult, error) {

	engineA.Clear()
	engineB.Clear()

	var p, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		return gameResult{}, err
	}
	for _, lan := range info.opening {
		if !p.MakeMoveLAN(lan) {
			return gameResult{}, fmt.Errorf("opening move %v", lan)
		}
	}

	var moves []common.Move
	var finish = func(comment string, result int) (gameResult, error) {
		return gameResult{gameInfo: info, moves: moves, fen: p.FEN(), comment: comment, result: result}, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return gameResult{}, err
		}
		var ml = p.LegalMoves(false)
		if len(ml) == 0 {
			if !p.IsCheck() {
				return finish("stalemate", gameResultDraw)
			}
			if p.WhiteMove() {
				return finish("checkmate", gameResultBlackWins)
			}
			return finish("checkmate", gameResultWhiteWins)
		}
		if p.Rule50() >= 100 {
			return finish("50 moves", gameResultDraw)
		}
		if p.IsInsufficientMaterial() {
			return finish("low material", gameResultDraw)
		}
		if p.IsRepetition(3) {
			return finish("3 fold repetition", gameResultDraw)
		}
		if tc.MaxPlies > 0 && len(moves) >= tc.MaxPlies {
			return finish("max plies", gameResultDraw)
		}

		var eng = engineB
		if p.WhiteMove() == info.engineAIsWhite {
			eng = engineA
		}
		var searchResult = eng.Search(ctx, common.SearchParams{
			Position: p,
			Limits:   tc.limits(),
		})
		if len(searchResult.MainLine) == 0 {
			return gameResult{}, errNoMove
		}
		var bestMove = searchResult.MainLine[0]
		if !slices.Contains(ml, bestMove) {
			return gameResult{}, fmt.Errorf("bad move %v in %v", bestMove, p.FEN())
		}
		p.MakeMove(bestMove)
		moves = append(moves, bestMove)
	}
}
