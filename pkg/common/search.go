package common

type LimitsType struct {
	Infinite       bool
	WhiteTime      int
	BlackTime      int
	WhiteIncrement int
	BlackIncrement int
	MoveTime       int
	MovesToGo      int
	Depth          int
	Nodes          int
}

type SearchParams struct {
	Position *Position
	Limits   LimitsType
	Progress func(si SearchInfo)
}

type SearchInfo struct {
	// Eval is the raw score for the side to move; Score is its UCI form.
	Eval      int
	Score     UciScore
	Depth     int
	Nodes     int64
	CacheHits int64
	Time      int64
	MainLine  []Move
}

type UciScore struct {
	Centipawns int
	Mate       int
}
