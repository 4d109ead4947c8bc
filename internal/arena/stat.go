package arena

import "math"

type GameStatistics struct {
	WinningFraction float64
	EloDifference   float64
	LOS             float64
}

//https://www.chessprogramming.org/Match_Statistics
func computeStat(wins, losses, draws int) GameStatistics {
	var games = wins + losses + draws
	if games == 0 {
		return GameStatistics{}
	}
	var winningFraction = (float64(wins) + 0.5*float64(draws)) / float64(games)
	var eloDifference = -math.Log(1/winningFraction-1) * 400 / math.Ln10
	var los = 0.5
	if wins+losses != 0 {
		los = 0.5 + 0.5*math.Erf(float64(wins-losses)/math.Sqrt(2*float64(wins+losses)))
	}
	return GameStatistics{
		WinningFraction: winningFraction,
		EloDifference:   eloDifference,
		LOS:             los,
	}
}

func gameResultString(v int) string {
	switch v {
	case gameResultWhiteWins:
		return "1-0"
	case gameResultBlackWins:
		return "0-1"
	case gameResultDraw:
		return "1/2-1/2"
	}
	return ""
}

func (r *Result) add(res gameResult) {
	if res.result == gameResultDraw {
		r.Draws++
	} else if res.result == gameResultWhiteWins && res.gameInfo.engineAIsWhite ||
		res.result == gameResultBlackWins && !res.gameInfo.engineAIsWhite {
		r.Wins++
	} else {
		r.Losses++
	}
	r.Stat = computeStat(r.Wins, r.Losses, r.Draws)
}
