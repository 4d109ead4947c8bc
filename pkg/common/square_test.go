package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSquareHelpers(t *testing.T) {
	assert.Equal(t, SquareE4, ParseSquare("e4"))
	assert.Equal(t, SquareNone, ParseSquare("-"))
	assert.Equal(t, SquareNone, ParseSquare("i9"))
	assert.Equal(t, "h8", SquareName(SquareH8))
	assert.Equal(t, 14, ManhattanDistance(SquareA1, SquareH8))
	assert.Equal(t, 0, CentreDistance(SquareD5))
	assert.Equal(t, 6, CentreDistance(SquareA1))
	assert.Equal(t, 6, CentreDistance(SquareH8))
	assert.Equal(t, Rank7, RelativeRank(SquareA2, SideBlack))
}
