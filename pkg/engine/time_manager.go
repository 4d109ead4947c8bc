package engine

import (
	"time"

	. "github.com/ChizhovVadim/CounterBot/pkg/common"
)

// Timer reports the time spent on the current move.
type Timer interface {
	Elapsed() time.Duration
}

type wallTimer struct {
	start time.Time
}

func StartTimer() Timer {
	return wallTimer{start: time.Now()}
}

func (t wallTimer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// timeManager decides when to stop. The soft limit is checked between
// iterations, the hard limit between sibling moves near the root.
type timeManager struct {
	timer     Timer
	limits    LimitsType
	softLimit time.Duration
	hardLimit time.Duration
}

func newTimeManager(timer Timer, limits LimitsType, thinkTime time.Duration, p *Position) *timeManager {
	var tm = &timeManager{
		timer:  timer,
		limits: limits,
	}

	if limits.MoveTime > 0 {
		tm.hardLimit = time.Duration(limits.MoveTime) * time.Millisecond
		tm.softLimit = tm.hardLimit
	} else if limits.WhiteTime > 0 || limits.BlackTime > 0 {
		var main, inc time.Duration
		if p.WhiteMove() {
			main = time.Duration(limits.WhiteTime) * time.Millisecond
			inc = time.Duration(limits.WhiteIncrement) * time.Millisecond
		} else {
			main = time.Duration(limits.BlackTime) * time.Millisecond
			inc = time.Duration(limits.BlackIncrement) * time.Millisecond
		}
		tm.softLimit, tm.hardLimit = calcLimits(main, inc, limits.MovesToGo)
	} else if !limits.Infinite && limits.Depth == 0 && limits.Nodes == 0 && thinkTime > 0 {
		tm.softLimit = thinkTime
		tm.hardLimit = thinkTime
	}

	return tm
}

func (tm *timeManager) IsHardLimitReached(nodes int64) bool {
	if tm.limits.Nodes > 0 && nodes >= int64(tm.limits.Nodes) {
		return true
	}
	return tm.hardLimit != 0 && tm.timer.Elapsed() >= tm.hardLimit
}

// OnIterationComplete reports whether the search should not start another iteration.
func (tm *timeManager) OnIterationComplete(depth, score int) bool {
	if tm.limits.Infinite {
		return false
	}
	if tm.limits.Depth != 0 && depth >= tm.limits.Depth {
		return true
	}
	if IsMateScore(score) {
		return true
	}
	return tm.softLimit != 0 && tm.timer.Elapsed() >= tm.softLimit
}

func calcLimits(main, inc time.Duration, moves int) (soft, hard time.Duration) {
	const (
		DefaultMovesToGo = 40
		MoveOverhead     = 300 * time.Millisecond
		MinTimeLimit     = 1 * time.Millisecond
	)

	main -= MoveOverhead
	if main < MinTimeLimit {
		main = MinTimeLimit
	}

	if moves == 0 {
		var ideal = main/35 + inc/2
		soft = ideal * 7 / 10
		hard = ideal * 21 / 10
	} else {
		moves = Min(moves, DefaultMovesToGo)
		soft = (main/time.Duration(moves+1) + inc) * 7 / 10
		hard = (main/time.Duration(moves+1) + inc) * 21 / 10
	}

	hard = limitDuration(hard, MinTimeLimit, main)
	soft = limitDuration(soft, MinTimeLimit, main)

	return
}

func limitDuration(v, min, max time.Duration) time.Duration {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
