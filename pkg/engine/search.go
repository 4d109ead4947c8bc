package engine

import (
	"context"

	. "github.com/ChizhovVadim/CounterBot/pkg/common"
)

// searchContext is the state of one top-level search. Only the cache outlives it.
type searchContext struct {
	ctx       context.Context
	position  *Position
	evaluator Evaluator
	cache     *TransCache
	tm        *timeManager
	orderer   moveOrderer
	options   *Options

	negator      int
	phase        GamePhase
	values       [King + 1]int
	rootPriority []Move

	nodes     int64
	cacheHits int64
	canStop   bool
	stopped   bool
}

// negamax is a fail-soft alpha-beta search. Scores are from the side to move's
// point of view. The returned line lists the best move last.
func (sc *searchContext) negamax(depth, height, alpha, beta, extensions int) SearchResult {
	sc.nodes++
	var p = sc.position

	var moves = p.LegalMoves(false)
	if len(moves) == 0 {
		if p.IsCheck() {
			return SearchResult{Score: -valueMate}
		}
		return SearchResult{Score: valueDraw}
	}
	if height > 0 && p.IsDrawByRule() {
		return SearchResult{Score: valueDraw}
	}
	if depth <= 0 || height >= maxHeight {
		return SearchResult{Score: sc.quiescence(alpha, beta, height)}
	}

	var priority = sc.rootPriority
	if height > 0 {
		priority = nil
		if m, ok := sc.probeBestMove(p.Key()); ok {
			priority = []Move{m}
		}
	}

	var best = SearchResult{Score: -valueInfinity}
	for _, move := range sc.orderer.OrderList(p, moves, priority) {
		if sc.shouldStop(height) {
			return best
		}

		var child SearchResult
		withMove(p, move, func() {
			child = sc.searchChild(move, depth, height, alpha, beta, extensions)
		})
		if sc.stopped {
			return best
		}

		var score = BumpMateDistance(-child.Score)
		if height == 0 {
			sc.options.Logger.Debug().
				Str("move", move.String()).
				Int("eval", sc.negator*score).
				Msg("root-move")
		}
		if score > best.Score {
			best = SearchResult{Score: score, PV: extendPV(child.PV, move)}
		}
		if score > alpha {
			alpha = score
			if alpha >= beta {
				break
			}
		}
	}
	return best
}

// searchChild searches the position after move, which is already made.
func (sc *searchContext) searchChild(move Move, depth, height, alpha, beta, extensions int) SearchResult {
	var p = sc.position
	var extension = 0
	if extensions < sc.options.ExtensionLimit &&
		(p.IsCheck() || move.Promotion() != Empty) {
		extension = 1
	}
	var newDepth = depth - 1 + extension
	var childAlpha = -unbumpMateDistance(beta)
	var childBeta = -unbumpMateDistance(alpha)

	if sc.cache != nil {
		if result, ok := sc.cache.Lookup(p.Key(), newDepth, childAlpha, childBeta); ok {
			sc.cacheHits++
			return result
		}
	}

	var result = sc.negamax(newDepth, height+1, childAlpha, childBeta, extensions+extension)
	if sc.cache != nil && !sc.stopped {
		sc.cache.Store(p.Key(), newDepth, result, boundFor(result.Score, childAlpha, childBeta))
	}
	return result
}

func (sc *searchContext) probeBestMove(key uint64) (Move, bool) {
	if sc.cache == nil {
		return MoveEmpty, false
	}
	return sc.cache.BestMove(key)
}

// shouldStop polls the clock and the context between sibling moves near the
// root. The first iteration always runs to completion.
func (sc *searchContext) shouldStop(height int) bool {
	if sc.stopped {
		return true
	}
	if !sc.canStop || height > sc.options.StopCheckHeight {
		return false
	}
	if sc.ctx.Err() != nil || sc.tm.IsHardLimitReached(sc.nodes) {
		sc.stopped = true
	}
	return sc.stopped
}
