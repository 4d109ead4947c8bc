package engine

import (
	. "github.com/ChizhovVadim/CounterBot/pkg/common"
)

const (
	boundLower = 1 << iota
	boundUpper
)

const boundExact = boundLower | boundUpper

type SearchResult struct {
	Score int
	PV    []Move
}

type transEntry struct {
	depth  int
	bound  int
	result SearchResult
}

// TransCache memoizes search results by position key. It is cleared as a
// whole once it grows past its ceiling; there is no partial eviction.
// Distinct positions sharing a key are not detected.
type TransCache struct {
	ceiling int
	entries map[uint64]transEntry
}

func NewTransCache(ceiling int) *TransCache {
	return &TransCache{
		ceiling: ceiling,
		entries: make(map[uint64]transEntry),
	}
}

func (tc *TransCache) Len() int {
	return len(tc.entries)
}

func (tc *TransCache) Ceiling() int {
	return tc.ceiling
}

func (tc *TransCache) Clear() {
	clear(tc.entries)
}

// ClearIfFull drops every entry when the cache holds more than its ceiling.
func (tc *TransCache) ClearIfFull() (cleared int) {
	if len(tc.entries) <= tc.ceiling {
		return 0
	}
	cleared = len(tc.entries)
	tc.Clear()
	return cleared
}

// Lookup returns a stored result searched at least minDepth deep whose bound
// settles the (alpha, beta) window.
func (tc *TransCache) Lookup(key uint64, minDepth, alpha, beta int) (SearchResult, bool) {
	var entry, found = tc.entries[key]
	if !found || entry.depth < minDepth {
		return SearchResult{}, false
	}
	var score = entry.result.Score
	if entry.bound == boundExact ||
		entry.bound == boundLower && score >= beta ||
		entry.bound == boundUpper && score <= alpha {
		return entry.result, true
	}
	return SearchResult{}, false
}

// BestMove returns the first move of the stored line for key, if any.
func (tc *TransCache) BestMove(key uint64) (Move, bool) {
	var entry, found = tc.entries[key]
	if !found || len(entry.result.PV) == 0 {
		return MoveEmpty, false
	}
	return entry.result.PV[len(entry.result.PV)-1], true
}

// Store keeps the result unless a deeper one is already cached.
func (tc *TransCache) Store(key uint64, depth int, result SearchResult, bound int) {
	if old, found := tc.entries[key]; found && old.depth > depth {
		return
	}
	tc.entries[key] = transEntry{
		depth:  depth,
		bound:  bound,
		result: result,
	}
}

func boundFor(score, alpha, beta int) int {
	if score <= alpha {
		return boundUpper
	}
	if score >= beta {
		return boundLower
	}
	return boundExact
}
