package engine

import (
	"context"
	"slices"
	"strings"

	"github.com/samber/lo"

	. "github.com/ChizhovVadim/CounterBot/pkg/common"
)

type Evaluator interface {
	// Evaluate scores p from white's point of view.
	Evaluate(p *Position) int
	Phase(p *Position) GamePhase
	PieceValues(phase GamePhase) [King + 1]int
}

type Engine struct {
	Options
	evaluator Evaluator
	cache     *TransCache
}

func NewEngine(options Options, evaluator Evaluator) *Engine {
	return &Engine{
		Options:   options,
		evaluator: evaluator,
	}
}

// Prepare allocates the transposition cache. It is called before every search.
func (e *Engine) Prepare() {
	if e.cache == nil || e.cache.Ceiling() != e.CacheCeiling {
		e.cache = NewTransCache(e.CacheCeiling)
	}
}

// Clear forgets everything learned in previous searches.
func (e *Engine) Clear() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

// Think picks a move for the side to move within the configured think time.
// It returns MoveEmpty only when there are no legal moves.
func (e *Engine) Think(ctx context.Context, p *Position, timer Timer) Move {
	var si = e.search(ctx, SearchParams{Position: p}, timer)
	if len(si.MainLine) == 0 {
		return MoveEmpty
	}
	return si.MainLine[0]
}

func (e *Engine) Search(ctx context.Context, searchParams SearchParams) SearchInfo {
	return e.search(ctx, searchParams, StartTimer())
}

func (e *Engine) search(ctx context.Context, searchParams SearchParams, timer Timer) SearchInfo {
	e.Prepare()
	if cleared := e.cache.ClearIfFull(); cleared > 0 {
		cacheClearsTotal.Inc()
		e.Logger.Info().Int("entries", cleared).Msg("trans-cache-cleared")
	}

	var p = searchParams.Position
	var sc = e.newSearchContext(ctx, p, searchParams.Limits, timer)
	var result SearchInfo
	if len(p.LegalMoves(false)) == 0 {
		return result
	}

	var maxDepth = maxHeight
	if e.MaxDepth > 0 {
		maxDepth = Min(maxDepth, e.MaxDepth)
	}
	if searchParams.Limits.Depth > 0 {
		maxDepth = Min(maxDepth, searchParams.Limits.Depth)
	}

	for depth := 1; depth <= maxDepth; depth++ {
		sc.canStop = depth > 1
		var r = sc.negamax(depth, 0, -valueInfinity, valueInfinity, 0)
		if sc.stopped {
			break
		}

		var line = slices.Clone(r.PV)
		slices.Reverse(line)
		sc.rootPriority = line[:1]
		result = SearchInfo{
			Eval:      r.Score,
			Score:     newUciScore(r.Score),
			Depth:     depth,
			Nodes:     sc.nodes,
			CacheHits: sc.cacheHits,
			Time:      timer.Elapsed().Milliseconds(),
			MainLine:  line,
		}

		e.Logger.Info().
			Int("depth", depth).
			Str("move", line[0].String()).
			Int("score", r.Score).
			Int64("nodes", sc.nodes).
			Int64("cacheHits", sc.cacheHits).
			Int("cacheSize", e.cache.Len()).
			Dur("elapsed", timer.Elapsed()).
			Str("pv", lineString(line)).
			Msg("depth-complete")
		if searchParams.Progress != nil && sc.nodes >= int64(e.ProgressMinNodes) {
			searchParams.Progress(result)
		}

		if sc.tm.OnIterationComplete(depth, r.Score) {
			break
		}
	}

	searchNodesTotal.Add(float64(sc.nodes))
	cacheHitsTotal.Add(float64(sc.cacheHits))
	cacheEntries.Set(float64(e.cache.Len()))
	completedDepth.Observe(float64(result.Depth))
	thinkDuration.Observe(timer.Elapsed().Seconds())
	return result
}

func (e *Engine) newSearchContext(ctx context.Context, p *Position, limits LimitsType, timer Timer) *searchContext {
	var phase = e.evaluator.Phase(p)
	var sc = &searchContext{
		ctx:       ctx,
		position:  p,
		evaluator: e.evaluator,
		tm:        newTimeManager(timer, limits, e.ThinkTime, p),
		options:   &e.Options,
		negator:   1,
		phase:     phase,
		values:    e.evaluator.PieceValues(phase),
	}
	if !p.WhiteMove() {
		sc.negator = -1
	}
	if e.UseTransCache {
		sc.cache = e.cache
	}
	sc.orderer = moveOrderer{values: &sc.values, phase: phase}
	return sc
}

func lineString(line []Move) string {
	return strings.Join(lo.Map(line, func(m Move, _ int) string {
		return m.String()
	}), " ")
}
