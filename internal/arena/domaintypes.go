package arena

import (
	"context"

	"github.com/ChizhovVadim/CounterBot/pkg/common"
)

const (
	gameResultDraw = iota
	gameResultWhiteWins
	gameResultBlackWins
)

type IEngine interface {
	Clear()
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
}

type gameInfo struct {
	opening        []string
	engineAIsWhite bool
	gameNumber     int
}

type gameResult struct {
	gameInfo gameInfo
	moves    []common.Move
	fen      string
	comment  string
	result   int
}

// Result is the match score from engine A's side.
type Result struct {
	Wins   int
	Losses int
	Draws  int
	Stat   GameStatistics
}
